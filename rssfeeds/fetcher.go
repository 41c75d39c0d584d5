package rssfeeds

import (
	"context"
	"fmt"
	"strings"

	"intelhub/types"

	"github.com/mmcdole/gofeed"
)

// Fetch retrieves and parses an RSS/Atom feed, returning at most maxItems
// candidate items in feed order. Entries missing a title or link are dropped
// silently. A fetch or parse failure is returned to the caller, who treats
// the source as having produced zero items.
func Fetch(ctx context.Context, feedURL string, maxItems int) ([]types.CandidateItem, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	items := make([]types.CandidateItem, 0, min(len(feed.Items), maxItems))
	for _, entry := range feed.Items {
		if len(items) >= maxItems {
			break
		}

		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}

		// Prefer the description; some feeds only populate content
		summary := strings.TrimSpace(entry.Description)
		if summary == "" {
			summary = strings.TrimSpace(entry.Content)
		}

		items = append(items, types.CandidateItem{
			Title:   title,
			URL:     link,
			Summary: summary,
		})
	}

	return items, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
