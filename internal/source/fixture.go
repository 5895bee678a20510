package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

// FixtureSource serves canned posts for offline runs and tests. Without a
// file it falls back to a built-in sample set covering the main scenarios:
// a strong lead, an excluded post, and background noise.
type FixtureSource struct {
	posts []leads.RawPost
}

func NewFixtureSource() *FixtureSource {
	return &FixtureSource{posts: samplePosts()}
}

// fixturePost is the on-disk shape. Timestamps accept any common layout.
type fixturePost struct {
	ID          string `json:"id"`
	Subreddit   string `json:"subreddit"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Permalink   string `json:"permalink"`
	CreatedAt   string `json:"created_at"`
	Upvotes     int    `json:"upvotes"`
	NumComments int    `json:"num_comments"`
}

// NewFixtureSourceFromFile loads posts from a JSON array on disk.
func NewFixtureSourceFromFile(path string) (*FixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var raw []fixturePost
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	posts := make([]leads.RawPost, 0, len(raw))
	for i, fp := range raw {
		createdAt := time.Now().UTC()
		if fp.CreatedAt != "" {
			parsed, err := dateparse.ParseAny(fp.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("fixture %d: parse created_at %q: %w", i, fp.CreatedAt, err)
			}
			createdAt = parsed.UTC()
		}

		posts = append(posts, leads.RawPost{
			ID:          fp.ID,
			Subreddit:   fp.Subreddit,
			Author:      fp.Author,
			Title:       fp.Title,
			Body:        fp.Body,
			Permalink:   fp.Permalink,
			CreatedAt:   createdAt,
			Upvotes:     fp.Upvotes,
			NumComments: fp.NumComments,
		})
	}

	return &FixtureSource{posts: posts}, nil
}

// Fetch returns the fixture posts, honoring req.Limit. Subreddit filtering is
// intentionally skipped so a small fixture file exercises the whole pipeline.
func (s *FixtureSource) Fetch(_ context.Context, req Request) ([]leads.RawPost, error) {
	posts := s.posts
	if req.Limit > 0 && len(posts) > req.Limit {
		posts = posts[:req.Limit]
	}

	out := make([]leads.RawPost, len(posts))
	copy(out, posts)

	return out, nil
}

func samplePosts() []leads.RawPost {
	now := time.Now().UTC()

	return []leads.RawPost{
		{
			ID:          "fx1anxty",
			Subreddit:   "languagelearning",
			Author:      "quiet_polyglot",
			Title:       "I freeze up every time I try to speak Japanese",
			Body:        "Three years of studying and I still can't speak. Meeting my in-laws in Tokyo next month and I'm terrified of embarrassing myself.",
			Permalink:   "/r/languagelearning/comments/fx1anxty/i_freeze_up_every_time/",
			CreatedAt:   now.Add(-2 * time.Hour),
			Upvotes:     48,
			NumComments: 21,
		},
		{
			ID:          "fx2moved",
			Subreddit:   "German",
			Author:      "berlin_bound",
			Title:       "Moving to Berlin in 6 weeks, need to learn fast",
			Body:        "Got a job offer and I'm relocating to Germany. Duolingo isn't working for me. How do I get conversational German before I move?",
			Permalink:   "/r/German/comments/fx2moved/moving_to_berlin/",
			CreatedAt:   now.Add(-5 * time.Hour),
			Upvotes:     12,
			NumComments: 9,
		},
		{
			ID:          "fx3jlpt",
			Subreddit:   "LearnJapanese",
			Author:      "kanji_grinder",
			Title:       "JLPT N2 grammar homework help",
			Body:        "Can someone explain this grammar point from my homework? Studying for the JLPT in December.",
			Permalink:   "/r/LearnJapanese/comments/fx3jlpt/jlpt_n2_grammar/",
			CreatedAt:   now.Add(-8 * time.Hour),
			Upvotes:     5,
			NumComments: 3,
		},
		{
			ID:          "fx4herit",
			Subreddit:   "Spanish",
			Author:      "half_and_half",
			Title:       "Heritage speaker who can't speak to relatives",
			Body:        "Grew up hearing Spanish at home but never speaking it. Now I can't speak to relatives at family gatherings and it hurts. Where do I even start with conversation practice?",
			Permalink:   "/r/Spanish/comments/fx4herit/heritage_speaker/",
			CreatedAt:   now.Add(-12 * time.Hour),
			Upvotes:     87,
			NumComments: 34,
		},
		{
			ID:          "fx5noise",
			Subreddit:   "languagelearning",
			Author:      "[deleted]",
			Title:       "What's your favorite language learning meme?",
			Body:        "Just for fun, drop your favorites below.",
			Permalink:   "/r/languagelearning/comments/fx5noise/favorite_meme/",
			CreatedAt:   now.Add(-16 * time.Hour),
			Upvotes:     203,
			NumComments: 156,
		},
		{
			ID:          "fx6plat",
			Subreddit:   "French",
			Author:      "plateau_paul",
			Title:       "Hit a wall at B1 French",
			Body:        "I've been learning for years, comfortably intermediate, but I've hit a plateau. I can read novels but freeze in real conversations. Losing motivation fast.",
			Permalink:   "/r/French/comments/fx6plat/hit_a_wall_b1/",
			CreatedAt:   now.Add(-20 * time.Hour),
			Upvotes:     31,
			NumComments: 18,
		},
	}
}
