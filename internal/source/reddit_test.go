package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func listingJSON(after string, posts ...redditPost) string {
	type child struct {
		Data redditPost `json:"data"`
	}

	children := make([]child, len(posts))
	for i, p := range posts {
		children[i] = child{Data: p}
	}

	payload := map[string]any{
		"data": map[string]any{
			"children": children,
			"after":    after,
		},
	}

	b, _ := json.Marshal(payload)
	return string(b)
}

func TestRedditSourceFetch(t *testing.T) {
	var gotPath, gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")

		fmt.Fprint(w, listingJSON("", redditPost{
			ID:          "abc123",
			Subreddit:   "languagelearning",
			Author:      "learner",
			Title:       "scared to speak",
			SelfText:    "body text",
			Permalink:   "/r/languagelearning/comments/abc123/scared/",
			CreatedUTC:  1724300000,
			Score:       42,
			NumComments: 7,
		}))
	}))
	defer srv.Close()

	src := NewRedditSource(srv.URL, "test-agent/1.0", 100, testLogger())

	posts, err := src.Fetch(context.Background(), Request{
		Subreddits: []string{"languagelearning", "German"},
		Limit:      50,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/r/languagelearning+German/new.json" {
		t.Errorf("unexpected path: %s", gotPath)
	}

	if gotUA != "test-agent/1.0" {
		t.Errorf("unexpected user agent: %s", gotUA)
	}

	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}

	post := posts[0]
	if post.ID != "abc123" || post.Subreddit != "languagelearning" {
		t.Errorf("unexpected post: %+v", post)
	}

	if post.CreatedAt.Unix() != 1724300000 {
		t.Errorf("unexpected timestamp: %s", post.CreatedAt)
	}

	if post.Upvotes != 42 || post.NumComments != 7 {
		t.Errorf("counters not mapped: %+v", post)
	}
}

func TestRedditSourcePagination(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		switch r.URL.Query().Get("after") {
		case "":
			fmt.Fprint(w, listingJSON("t3_page2",
				redditPost{ID: "p1", Title: "first"},
				redditPost{ID: "p2", Title: "second"},
			))
		case "t3_page2":
			fmt.Fprint(w, listingJSON("", redditPost{ID: "p3", Title: "third"}))
		default:
			t.Errorf("unexpected after cursor: %s", r.URL.Query().Get("after"))
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	src := NewRedditSource(srv.URL, "test-agent/1.0", 100, testLogger())

	posts, err := src.Fetch(context.Background(), Request{
		Subreddits: []string{"polyglot"},
		Limit:      3,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected 2 listing calls, got %d", calls)
	}

	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}

	if posts[2].ID != "p3" {
		t.Errorf("pages out of order: %+v", posts)
	}
}

func TestRedditSourceRetriesOnThrottle(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		fmt.Fprint(w, listingJSON("", redditPost{ID: "ok1"}))
	}))
	defer srv.Close()

	src := NewRedditSource(srv.URL, "test-agent/1.0", 100, testLogger())

	posts, err := src.Fetch(context.Background(), Request{
		Subreddits: []string{"Spanish"},
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("fetch after throttle: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected retry after 429, got %d calls", calls)
	}

	if len(posts) != 1 || posts[0].ID != "ok1" {
		t.Errorf("unexpected posts: %+v", posts)
	}
}

func TestRedditSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewRedditSource(srv.URL, "test-agent/1.0", 100, testLogger())

	_, err := src.Fetch(context.Background(), Request{
		Subreddits: []string{"doesnotexist"},
		Limit:      10,
	})
	if err == nil {
		t.Fatal("expected error for 404")
	}

	if calls != 1 {
		t.Errorf("client error should not be retried, got %d calls", calls)
	}
}

func TestRedditSourceRequiresSubreddits(t *testing.T) {
	src := NewRedditSource("http://localhost", "test-agent/1.0", 100, testLogger())

	if _, err := src.Fetch(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for empty subreddit list")
	}
}
