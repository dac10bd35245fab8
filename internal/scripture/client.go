// Package scripture fetches chapter text from a bible-api compatible
// endpoint and caches it locally, so a chapter is fetched over the
// network at most once.
package scripture

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://bible-api.com"

// Cache is the local chapter text store, keyed by "book:chapter".
type Cache interface {
	GetChapter(ctx context.Context, ref string) (string, bool, error)
	PutChapter(ctx context.Context, ref, text string) error
}

type Client struct {
	base  string
	http  *http.Client
	cache Cache
}

// NewClient builds a client for the given base URL; an empty base
// falls back to the public bible-api endpoint.
func NewClient(base string, cache Cache) *Client {
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: cache,
	}
}

type verse struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

type chapterResponse struct {
	Reference string  `json:"reference"`
	Verses    []verse `json:"verses"`
	Text      string  `json:"text"`
}

// Chapter returns the chapter text, serving from cache when possible.
// A cache read failure only costs a refetch.
func (c *Client) Chapter(ctx context.Context, book string, chapter int) (string, error) {
	ref := fmt.Sprintf("%s:%d", book, chapter)
	if c.cache != nil {
		if text, ok, err := c.cache.GetChapter(ctx, ref); err == nil && ok {
			return text, nil
		}
	}

	endpoint := fmt.Sprintf("%s/%s+%d", c.base, url.PathEscape(book), chapter)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", ref, resp.Status)
	}

	var decoded chapterResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode %s: %w", ref, err)
	}
	text := formatChapter(decoded)
	if text == "" {
		return "", fmt.Errorf("fetch %s: empty chapter", ref)
	}

	if c.cache != nil {
		if err := c.cache.PutChapter(ctx, ref, text); err != nil {
			log.Printf("[SCRIPTURE] caching %s failed: %v", ref, err)
		}
	}
	return text, nil
}

func formatChapter(resp chapterResponse) string {
	if len(resp.Verses) == 0 {
		return strings.TrimSpace(resp.Text)
	}
	var b strings.Builder
	for _, v := range resp.Verses {
		fmt.Fprintf(&b, "%d %s\n", v.Verse, strings.TrimSpace(v.Text))
	}
	return strings.TrimSpace(b.String())
}
