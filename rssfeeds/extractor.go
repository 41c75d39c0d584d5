package rssfeeds

import (
	"fmt"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	extractorTimeout = 30 * time.Second

	// fallbackSummaryLimit bounds the text taken from an extracted page
	fallbackSummaryLimit = 2000
)

// FallbackSummary fetches the article page once and extracts a readable
// excerpt, for feeds whose entries carry no summary text. This is a single
// targeted fetch, not crawling; any failure just leaves the summary empty.
func FallbackSummary(pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("article URL is empty")
	}

	article, err := readability.FromURL(pageURL, extractorTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	summary := strings.TrimSpace(article.Excerpt)
	if summary == "" {
		summary = strings.TrimSpace(article.TextContent)
	}
	if len(summary) > fallbackSummaryLimit {
		summary = summary[:fallbackSummaryLimit]
	}
	return summary, nil
}
