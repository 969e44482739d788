package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const duckDuckGoURL = "https://html.duckduckgo.com/html/"

// WebSearchResult is one hit from the fallback web search.
type WebSearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// WebSearcher grounds generation in external knowledge when a subject has no
// indexed material, by scraping DuckDuckGo's HTML results page.
type WebSearcher struct {
	httpClient *http.Client
	baseURL    string
}

func NewWebSearcher() *WebSearcher {
	return &WebSearcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    duckDuckGoURL,
	}
}

// Search returns up to maxResults hits for the query.
func (w *WebSearcher) Search(ctx context.Context, query string, maxResults int) ([]WebSearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		w.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; qp-generator/1.0)")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	var results []WebSearchResult
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())
		href, _ := link.Attr("href")

		if title == "" && snippet == "" {
			return true
		}
		results = append(results, WebSearchResult{Title: title, Snippet: snippet, URL: href})
		return len(results) < maxResults
	})

	return results, nil
}

// FormatResultsForContext renders search results for injection into a prompt.
func FormatResultsForContext(results []WebSearchResult) string {
	var b strings.Builder
	b.WriteString("Additional Web Context:\n")
	for i, r := range results {
		b.WriteString(fmt.Sprintf("%d. %s: %s\n\n", i+1, r.Title, r.Snippet))
	}
	return b.String()
}
