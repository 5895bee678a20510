package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

const (
	defaultListingLimit = 100
	maxResponseBytes    = 5 * 1024 * 1024
	fetchTimeout        = 30 * time.Second
)

// RedditSource reads the public /new.json listing of one or more subreddits.
// No OAuth: the unauthenticated endpoint tolerates roughly one request per
// second per user agent, so the limiter defaults accordingly.
type RedditSource struct {
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
	logger    *zerolog.Logger
}

func NewRedditSource(baseURL, userAgent string, rps float64, logger *zerolog.Logger) *RedditSource {
	if rps <= 0 {
		rps = 1
	}

	return &RedditSource{
		client:    &http.Client{Timeout: fetchTimeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		logger:    logger,
	}
}

// listing mirrors the subset of Reddit's listing envelope we read.
type listing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
		After string `json:"after"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// Fetch pulls the newest posts across req.Subreddits using Reddit's
// multireddit syntax (sub1+sub2+...), paginating until req.Limit is reached
// or the listing runs dry.
func (s *RedditSource) Fetch(ctx context.Context, req Request) ([]leads.RawPost, error) {
	if len(req.Subreddits) == 0 {
		return nil, fmt.Errorf("no subreddits requested")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListingLimit
	}

	multi := strings.Join(req.Subreddits, "+")

	var (
		posts []leads.RawPost
		after string
	)

	for len(posts) < limit {
		pageSize := limit - len(posts)
		if pageSize > defaultListingLimit {
			pageSize = defaultListingLimit
		}

		page, err := s.fetchPage(ctx, multi, after, pageSize)
		if err != nil {
			return nil, err
		}

		for _, child := range page.Data.Children {
			posts = append(posts, toRawPost(child.Data))
		}

		if page.Data.After == "" || len(page.Data.Children) == 0 {
			break
		}

		after = page.Data.After
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}

	s.logger.Debug().
		Int("posts", len(posts)).
		Int("subreddits", len(req.Subreddits)).
		Msg("fetched listing")

	return posts, nil
}

func (s *RedditSource) fetchPage(ctx context.Context, multi, after string, limit int) (*listing, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("raw_json", "1")
	if after != "" {
		query.Set("after", after)
	}

	endpoint := fmt.Sprintf("%s/r/%s/new.json?%s", s.baseURL, multi, query.Encode())

	var page listing

	backoff := retry.WithMaxRetries(3, retry.NewExponential(time.Second))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		req.Header.Set("User-Agent", s.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			s.logger.Warn().Int("status", resp.StatusCode).Msg("listing fetch throttled, retrying")
			return retry.RetryableError(fmt.Errorf("HTTP %d", resp.StatusCode))
		default:
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return retry.RetryableError(err)
		}

		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("decode listing: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", multi, err)
	}

	return &page, nil
}

func toRawPost(p redditPost) leads.RawPost {
	return leads.RawPost{
		ID:          p.ID,
		Subreddit:   p.Subreddit,
		Author:      p.Author,
		Title:       p.Title,
		Body:        p.SelfText,
		Permalink:   p.Permalink,
		CreatedAt:   time.Unix(int64(p.CreatedUTC), 0).UTC(),
		Upvotes:     p.Score,
		NumComments: p.NumComments,
	}
}
