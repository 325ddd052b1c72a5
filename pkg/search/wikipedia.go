package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultWikipediaURL = "https://en.wikipedia.org"

// ErrArticleNotFound is returned when Wikipedia has no page for a title.
var ErrArticleNotFound = errors.New("wikipedia article not found")

// Summary is the lead section of a Wikipedia article.
type Summary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// Wikipedia fetches page summaries from the Wikipedia REST API.
type Wikipedia struct {
	BaseURL string
	Client  *http.Client
}

// NewWikipedia returns a client for English Wikipedia.
func NewWikipedia() *Wikipedia {
	return &Wikipedia{
		BaseURL: DefaultWikipediaURL,
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

type wikiSummaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Summary returns the summary of the article with the given title.
func (w *Wikipedia) Summary(ctx context.Context, title string) (Summary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Summary{}, ErrEmptyQuery
	}

	slug := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	endpoint := strings.TrimRight(w.BaseURL, "/") + "/api/rest_v1/page/summary/" + slug
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Summary{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "search-chat-go/1.0")

	resp, err := httpClient(w.Client).Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Summary{}, fmt.Errorf("%w: %s", ErrArticleNotFound, title)
	case resp.StatusCode != http.StatusOK:
		return Summary{}, fmt.Errorf("wikipedia error: status %d", resp.StatusCode)
	}

	var payload wikiSummaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return Summary{}, fmt.Errorf("decode wikipedia response: %w", err)
	}
	return Summary{
		Title:   payload.Title,
		Extract: payload.Extract,
		URL:     payload.ContentURLs.Desktop.Page,
		Kind:    payload.Type,
	}, nil
}
