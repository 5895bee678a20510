package leads

import (
	"fmt"
	"time"
)

// DeletedAuthor is the placeholder Reddit substitutes for removed accounts.
const DeletedAuthor = "[deleted]"

// SignalBand classifies a signal score into coarse tiers.
type SignalBand string

const (
	BandLow    SignalBand = "LOW"
	BandMedium SignalBand = "MEDIUM"
	BandHigh   SignalBand = "HIGH"
)

const (
	MinScore = 1
	MaxScore = 10
)

// ClampScore forces a collaborator-provided score into the 1-10 contract
// range. Callers are expected to log when the returned value differs from
// the input.
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}

	if score > MaxScore {
		return MaxScore
	}

	return score
}

// BandForScore maps a signal score onto its band. Scores outside 1-10 are
// clamped first, so the mapping is total.
func BandForScore(score int) SignalBand {
	score = ClampScore(score)

	switch {
	case score <= 4:
		return BandLow
	case score <= 7:
		return BandMedium
	default:
		return BandHigh
	}
}

// RawPost is a Reddit submission as fetched from the source, immutable once
// created.
type RawPost struct {
	ID          string
	Subreddit   string
	Author      string
	Title       string
	Body        string
	Permalink   string
	CreatedAt   time.Time
	Upvotes     int
	NumComments int
}

// FullText is the combined title and body used for keyword matching.
func (p RawPost) FullText() string {
	return p.Title + " " + p.Body
}

// PostURL is the canonical reddit.com URL of the submission.
func (p RawPost) PostURL() string {
	return "https://reddit.com" + p.Permalink
}

// MessageURL opens Reddit's compose form addressed to the post author.
func (p RawPost) MessageURL() string {
	return fmt.Sprintf("https://reddit.com/message/compose/?to=%s", p.Author)
}

// Lead is a post that survived keyword filtering.
type Lead struct {
	Post            RawPost
	MatchedTriggers []string
	Language        string // ISO code, empty when undetected
	CapturedAt      time.Time
}

// ScoredLead adds the LLM signal assessment.
type ScoredLead struct {
	Lead
	Score    int
	Band     SignalBand
	Category string
}

// NewScoredLead builds a ScoredLead, deriving the band from the (clamped)
// score so the two can never disagree.
func NewScoredLead(lead Lead, score int, category string) ScoredLead {
	clamped := ClampScore(score)

	return ScoredLead{
		Lead:     lead,
		Score:    clamped,
		Band:     BandForScore(clamped),
		Category: category,
	}
}

// AnnotatedLead is the terminal record written to the sinks. Drafts are
// populated only when Worthy is true and the draft call succeeded.
type AnnotatedLead struct {
	ScoredLead
	Scored       bool
	Worthy       bool
	WorthyReason string
	PublicDraft  string
	DMDraft      string
}
