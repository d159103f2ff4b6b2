package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	userAgent      = "CareerCard/1.0"
	maxPageTextLen = 15000
)

// Fetcher performs the outbound HTTP requests behind portfolio
// parsing: the portfolio page itself and the GitHub API.
type Fetcher struct {
	httpClient    *http.Client
	githubAPIBase string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient:    &http.Client{Timeout: timeout},
		githubAPIBase: "https://api.github.com",
	}
}

// PageText fetches a portfolio page and reduces it to visible text,
// capped at 15000 characters. A non-2xx status is a hard failure;
// callers surface it as an upstream error.
func (f *Fetcher) PageText(ctx context.Context, pageURL string) (string, error) {
	body, err := f.getBody(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("unable to fetch portfolio: %w", err)
	}

	text := StripHTML(string(body))
	if runes := []rune(text); len(runes) > maxPageTextLen {
		text = string(runes[:maxPageTextLen])
	}

	return text, nil
}

var (
	scriptBlockRegex = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlockRegex  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
	runsOfSpaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTML removes script and style blocks, then all remaining tags,
// and collapses whitespace.
func StripHTML(html string) string {
	text := scriptBlockRegex.ReplaceAllString(html, " ")
	text = styleBlockRegex.ReplaceAllString(text, " ")
	text = htmlTagRegex.ReplaceAllString(text, " ")
	text = runsOfSpaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (f *Fetcher) getBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
