package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Selftext  string `json:"selftext"`
				Permalink string `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// RedditSearcher implements SignalSearcher against reddit's public JSON
// search endpoint. No authentication; reddit rate-limits by user agent.
type RedditSearcher struct {
	http    httpDoer
	baseURL string
}

// NewRedditSearcher creates a RedditSearcher with sane timeouts.
func NewRedditSearcher() *RedditSearcher {
	return &RedditSearcher{
		http:    &http.Client{Timeout: 20 * time.Second},
		baseURL: "https://www.reddit.com",
	}
}

// SetHTTPClient overrides the HTTP client, mainly for tests.
func (r *RedditSearcher) SetHTTPClient(client httpDoer) {
	if client != nil {
		r.http = client
	}
}

// SetBaseURL overrides the reddit endpoint, mainly for tests.
func (r *RedditSearcher) SetBaseURL(base string) {
	r.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// Search runs a reddit post search and maps hits to SearchResults. Snippets
// are truncated; the full post stays behind the URL.
func (r *RedditSearcher) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	endpoint := r.baseURL + "/search.json?q=" + url.QueryEscape(query) +
		"&sort=relevance&limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build reddit request: %w", err)
	}
	req.Header.Set("User-Agent", "launchdeck-signals/1.0")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call reddit search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit search returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read reddit response: %w", err)
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode reddit response: %w", err)
	}

	results := make([]SearchResult, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Permalink == "" {
			continue
		}
		results = append(results, SearchResult{
			URL:     "https://www.reddit.com" + post.Permalink,
			Title:   post.Title,
			Snippet: truncateRunes(post.Selftext, 500),
			Source:  "reddit",
		})
	}
	return results, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "…"
}
