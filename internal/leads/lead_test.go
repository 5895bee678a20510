package leads

import "testing"

func TestBandForScoreCoversFullRange(t *testing.T) {
	want := map[int]SignalBand{
		1: BandLow, 2: BandLow, 3: BandLow, 4: BandLow,
		5: BandMedium, 6: BandMedium, 7: BandMedium,
		8: BandHigh, 9: BandHigh, 10: BandHigh,
	}

	for score, band := range want {
		if got := BandForScore(score); got != band {
			t.Errorf("BandForScore(%d) = %s, want %s", score, got, band)
		}
	}
}

func TestBandForScoreMonotonic(t *testing.T) {
	rank := map[SignalBand]int{BandLow: 0, BandMedium: 1, BandHigh: 2}

	prev := BandForScore(MinScore)
	for score := MinScore + 1; score <= MaxScore; score++ {
		cur := BandForScore(score)
		if rank[cur] < rank[prev] {
			t.Fatalf("band decreased from %s to %s at score %d", prev, cur, score)
		}
		prev = cur
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{7, 7},
		{10, 10},
		{14, 10},
	}

	for _, tc := range cases {
		if got := ClampScore(tc.in); got != tc.want {
			t.Errorf("ClampScore(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestBandForScoreClampsOutOfRange(t *testing.T) {
	if got := BandForScore(14); got != BandHigh {
		t.Errorf("BandForScore(14) = %s, want %s", got, BandHigh)
	}

	if got := BandForScore(-1); got != BandLow {
		t.Errorf("BandForScore(-1) = %s, want %s", got, BandLow)
	}
}

func TestRawPostURLs(t *testing.T) {
	post := RawPost{
		Author:    "anxious_learner",
		Permalink: "/r/languagelearning/comments/abc123/scared_to_speak/",
	}

	if got := post.PostURL(); got != "https://reddit.com/r/languagelearning/comments/abc123/scared_to_speak/" {
		t.Errorf("unexpected post URL: %s", got)
	}

	if got := post.MessageURL(); got != "https://reddit.com/message/compose/?to=anxious_learner" {
		t.Errorf("unexpected message URL: %s", got)
	}
}

func TestNewScoredLeadDerivesBand(t *testing.T) {
	scored := NewScoredLead(Lead{}, 14, "Speaking Anxiety")

	if scored.Score != 10 {
		t.Errorf("expected clamped score 10, got %d", scored.Score)
	}

	if scored.Band != BandHigh {
		t.Errorf("expected band HIGH, got %s", scored.Band)
	}
}
