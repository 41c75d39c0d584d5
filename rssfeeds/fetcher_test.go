package rssfeeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <item>
      <title>First story</title>
      <link>https://example.com/first</link>
      <description>Summary of the first story</description>
    </item>
    <item>
      <title>No link here</title>
      <description>This entry has no link and must be dropped</description>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.com/second</link>
    </item>
    <item>
      <title>Third story</title>
      <link>https://example.com/third</link>
      <description>Summary of the third story</description>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetchDropsEntriesMissingLink(t *testing.T) {
	srv := newFeedServer(t, testFeedXML)
	defer srv.Close()

	items, err := Fetch(context.Background(), srv.URL, 10)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("got %d items; want 3 (entry without link dropped)", len(items))
	}
	if items[0].Title != "First story" || items[0].URL != "https://example.com/first" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[0].Summary != "Summary of the first story" {
		t.Errorf("unexpected summary: %q", items[0].Summary)
	}
	if items[1].Title != "Second story" {
		t.Errorf("expected second valid entry, got %+v", items[1])
	}
	if items[1].Summary != "" {
		t.Errorf("entry without description should have empty summary, got %q", items[1].Summary)
	}
}

func TestFetchRespectsMaxItems(t *testing.T) {
	srv := newFeedServer(t, testFeedXML)
	defer srv.Close()

	items, err := Fetch(context.Background(), srv.URL, 1)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items; want 1", len(items))
	}
	if items[0].Title != "First story" {
		t.Errorf("maxItems should keep feed order, got %+v", items[0])
	}
}

func TestFetchUnreachableFeedReturnsError(t *testing.T) {
	srv := newFeedServer(t, testFeedXML)
	srv.Close() // close immediately so the URL refuses connections

	items, err := Fetch(context.Background(), srv.URL, 10)
	if err == nil {
		t.Fatal("expected error for unreachable feed")
	}
	if len(items) != 0 {
		t.Fatalf("expected zero items on error, got %d", len(items))
	}
}

func TestFetchMalformedFeedReturnsError(t *testing.T) {
	srv := newFeedServer(t, "this is not a feed document")
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL, 10); err == nil {
		t.Fatal("expected error for malformed feed")
	}
}
