// Package search queries public web endpoints on behalf of the agent's tools.
package search

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com"
	defaultTimeout       = 30 * time.Second
	maxBodyBytes         = 2 << 20
	userAgent            = "Lynx/2.8.9rel.1 libwww-FM/2.14"
)

// ErrEmptyQuery is returned when a search is requested without a query.
var ErrEmptyQuery = errors.New("query is required")

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// DuckDuckGo searches the DuckDuckGo HTML endpoint, which needs no API key.
type DuckDuckGo struct {
	BaseURL string
	Client  *http.Client
}

// NewDuckDuckGo returns a client for the public endpoint.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		BaseURL: DefaultDuckDuckGoURL,
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Search returns at most count results for query.
func (d *DuckDuckGo) Search(ctx context.Context, query string, count int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if count <= 0 {
		count = 5
	}

	endpoint := strings.TrimRight(d.BaseURL, "/") + "/html/?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := httpClient(d.Client).Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo search error: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read duckduckgo response: %w", err)
	}
	return parseDuckDuckGoHTML(string(body), count), nil
}

var (
	resultLinkRe    = regexp.MustCompile(`(?s)<a[^>]+class="result__a"[^>]+href="([^"]+)"[^>]*>(.*?)</a>`)
	resultSnippetRe = regexp.MustCompile(`(?s)<a[^>]+class="result__snippet"[^>]*>(.*?)</a>`)
	tagRe           = regexp.MustCompile(`<[^>]+>`)
)

// parseDuckDuckGoHTML reads results in page order. Each result spans from its
// title link to the next one, so a snippet is only taken from its own block.
func parseDuckDuckGoHTML(page string, count int) []Result {
	links := resultLinkRe.FindAllStringSubmatchIndex(page, -1)

	results := make([]Result, 0, count)
	for i, link := range links {
		if len(results) >= count {
			break
		}
		target := resolveRedirect(html.UnescapeString(page[link[2]:link[3]]))
		if !strings.HasPrefix(target, "http") {
			continue
		}
		r := Result{
			Title: cleanText(page[link[4]:link[5]]),
			URL:   target,
		}

		end := len(page)
		if i+1 < len(links) {
			end = links[i+1][0]
		}
		if snippet := resultSnippetRe.FindStringSubmatch(page[link[1]:end]); snippet != nil {
			r.Snippet = cleanText(snippet[1])
		}
		results = append(results, r)
	}
	return results
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> redirect links.
func resolveRedirect(link string) string {
	if strings.HasPrefix(link, "//") {
		link = "https:" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return link
}

func cleanText(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

func httpClient(c *http.Client) *http.Client {
	if c == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return c
}
