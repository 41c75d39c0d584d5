package store

import (
	"context"
	"testing"
	"time"

	"intelhub/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, 60, "test-model"), mr
}

func sampleAnalysis(score int) types.Analysis {
	return types.Analysis{
		ImprovedTitle:   "Improved title",
		Summary:         "Executive summary",
		SuggestedAction: "Do something",
		Department:      "Finanzas y ROI",
		Topics:          []string{"Automation"},
		Score:           score,
	}
}

func TestUpsertArticleDedupIdempotence(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	item := types.CandidateItem{Title: "Raw", URL: "https://example.com/a", Summary: "text"}

	inserted, err := s.UpsertArticle(ctx, item, sampleAnalysis(80), "Src")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !inserted {
		t.Fatal("first upsert should insert")
	}

	inserted, err = s.UpsertArticle(ctx, item, sampleAnalysis(80), "Src")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if inserted {
		t.Fatal("second upsert for the same URL must be a no-op")
	}

	articles, err := s.QueryRecentArticles(ctx, 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d stored articles; want exactly 1", len(articles))
	}
}

func TestUpsertArticleFirstWriteWins(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	item := types.CandidateItem{Title: "Raw", URL: "https://example.com/a"}

	first := sampleAnalysis(90)
	first.ImprovedTitle = "Original title"
	if _, err := s.UpsertArticle(ctx, item, first, "Src"); err != nil {
		t.Fatal(err)
	}

	second := sampleAnalysis(10)
	second.ImprovedTitle = "Replacement title"
	if _, err := s.UpsertArticle(ctx, item, second, "Src"); err != nil {
		t.Fatal(err)
	}

	articles, _ := s.QueryRecentArticles(ctx, 10)
	if articles[0].Title != "Original title" {
		t.Fatalf("stored title = %q; the first write must be authoritative", articles[0].Title)
	}
	if articles[0].Analysis.Score != 90 {
		t.Fatalf("stored score = %d; want 90", articles[0].Analysis.Score)
	}
}

func TestUpsertArticleDepartmentFallback(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a := sampleAnalysis(70)
	a.Department = "Department of Nonsense"
	if _, err := s.UpsertArticle(ctx, types.CandidateItem{Title: "T", URL: "https://example.com/x"}, a, "Src"); err != nil {
		t.Fatal(err)
	}

	articles, _ := s.QueryRecentArticles(ctx, 1)
	if got := articles[0].Analysis.Department; got != "Innovación y Tendencias" {
		t.Fatalf("department = %q; want the fixed default", got)
	}
}

func TestUpsertArticleTruncatesTopics(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a := sampleAnalysis(70)
	a.Topics = []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	if _, err := s.UpsertArticle(ctx, types.CandidateItem{Title: "T", URL: "https://example.com/y"}, a, "Src"); err != nil {
		t.Fatal(err)
	}

	articles, _ := s.QueryRecentArticles(ctx, 1)
	got := articles[0].Analysis.Topics
	if len(got) != 4 {
		t.Fatalf("stored %d topics; want 4", len(got))
	}
	for i, want := range []string{"t1", "t2", "t3", "t4"} {
		if got[i] != want {
			t.Fatalf("topics[%d] = %q; want %q (first four kept in order)", i, got[i], want)
		}
	}
}

func TestUpsertArticleRelevanceThreshold(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.UpsertArticle(ctx, types.CandidateItem{Title: "T", URL: "https://example.com/hi"}, sampleAnalysis(60), "Src"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpsertArticle(ctx, types.CandidateItem{Title: "T", URL: "https://example.com/lo"}, sampleAnalysis(59), "Src"); err != nil {
		t.Fatal(err)
	}

	articles, _ := s.QueryRecentArticles(ctx, 10)
	for _, a := range articles {
		switch a.URL {
		case "https://example.com/hi":
			if !a.IsRelevant {
				t.Error("score 60 must be relevant at threshold 60")
			}
		case "https://example.com/lo":
			if a.IsRelevant {
				t.Error("score 59 must not be relevant at threshold 60")
			}
		}
	}
}

func TestQueryRecentArticlesNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, url := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		s.now = func() time.Time { return ts }
		if _, err := s.UpsertArticle(ctx, types.CandidateItem{Title: "T", URL: url}, sampleAnalysis(70), "Src"); err != nil {
			t.Fatal(err)
		}
	}

	articles, err := s.QueryRecentArticles(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles; want 2", len(articles))
	}
	if articles[0].URL != "https://example.com/3" || articles[1].URL != "https://example.com/2" {
		t.Fatalf("wrong order: %s, %s", articles[0].URL, articles[1].URL)
	}
}

func TestQueryArticlesSinceInclusiveBoundary(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	windowStart := now.Add(-24 * time.Hour)

	insertAt := func(url string, ts time.Time) {
		s.now = func() time.Time { return ts }
		if _, err := s.UpsertArticle(ctx, types.CandidateItem{Title: "T", URL: url}, sampleAnalysis(70), "Src"); err != nil {
			t.Fatal(err)
		}
	}

	insertAt("https://example.com/boundary", windowStart)                      // exactly at the boundary
	insertAt("https://example.com/outside", windowStart.Add(-time.Millisecond)) // just before it
	insertAt("https://example.com/inside", now.Add(-time.Hour))

	articles, err := s.QueryArticlesSince(ctx, windowStart, 10)
	if err != nil {
		t.Fatal(err)
	}

	urls := make(map[string]bool)
	for _, a := range articles {
		urls[a.URL] = true
	}
	if !urls["https://example.com/boundary"] {
		t.Error("article ingested exactly at the window boundary must be included")
	}
	if urls["https://example.com/outside"] {
		t.Error("article ingested before the window must be excluded")
	}
	if !urls["https://example.com/inside"] {
		t.Error("article inside the window must be included")
	}
}

func TestSaveDigestOverwritesSameKey(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	d := types.Digest{
		ID:          DigestDocID("2024-01-01", "Finanzas y ROI"),
		Date:        "2024-01-01",
		Department:  "Finanzas y ROI",
		CreatedAt:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		HTML:        "<div>first</div>",
		MinScore:    60,
		WindowHours: 24,
	}
	if err := s.SaveDigest(ctx, d); err != nil {
		t.Fatal(err)
	}

	d.HTML = "<div>second</div>"
	d.CreatedAt = d.CreatedAt.Add(time.Hour)
	if err := s.SaveDigest(ctx, d); err != nil {
		t.Fatal(err)
	}

	keys := mr.Keys()
	count := 0
	for _, k := range keys {
		if len(k) > len(newsletterKeyPrefix) && k[:len(newsletterKeyPrefix)] == newsletterKeyPrefix {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("found %d newsletter documents; composing twice for one (date, department) must keep one", count)
	}

	latest, err := s.LatestDigestForDepartment(ctx, "Finanzas y ROI")
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || latest.HTML != "<div>second</div>" {
		t.Fatalf("latest digest not overwritten: %+v", latest)
	}
}

func TestDigestDocIDSanitization(t *testing.T) {
	cases := []struct {
		date, dept, want string
	}{
		{"2024-01-01", "Finanzas y ROI", "2024-01-01__finanzas_y_roi"},
		{"2024-01-01", "Legal & Regulatory Affairs / Innovation", "2024-01-01__legal_regulatory_affairs_innovation"},
		{"2024-01-01", "Innovación y Tendencias", "2024-01-01__innovaci_n_y_tendencias"},
	}
	for _, c := range cases {
		if got := DigestDocID(c.date, c.dept); got != c.want {
			t.Errorf("DigestDocID(%q, %q) = %q; want %q", c.date, c.dept, got, c.want)
		}
	}
}

func TestLatestDigestForDepartmentEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	d, err := s.LatestDigestForDepartment(context.Background(), "Finanzas y ROI")
	if err != nil {
		t.Fatal(err)
	}
	if d != nil {
		t.Fatalf("expected nil digest, got %+v", d)
	}
}

func TestListEnabledFeedSourcesFilters(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sources := []types.Source{
		{Name: "Enabled Feed", Type: "feed", URL: "https://example.com/rss", Enabled: true},
		{Name: "Disabled Feed", Type: "feed", URL: "https://example.com/off", Enabled: false},
		{Name: "Wrong Type", Type: "scraper", URL: "https://example.com/html", Enabled: true},
	}
	for _, src := range sources {
		if err := s.SaveSource(ctx, src); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListEnabledFeedSources(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d sources; want 1", len(got))
	}
	if got[0].Name != "Enabled Feed" {
		t.Fatalf("unexpected source: %+v", got[0])
	}
}

func TestRunLedgerLifecycle(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	rec, err := s.StartRun(ctx, "api")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != types.RunStatusRunning {
		t.Fatalf("status = %s; want running", rec.Status)
	}
	if rec.Model != "test-model" {
		t.Fatalf("model = %q; want test-model", rec.Model)
	}

	rec.Status = types.RunStatusDone
	rec.Analyzed = 5
	rec.Added = 3
	rec.SkippedExisting = 2
	if err := s.FinishRun(ctx, rec); err != nil {
		t.Fatal(err)
	}

	raw, err := mr.Get(runKeyPrefix + rec.ID)
	if err != nil {
		t.Fatalf("run record not stored: %v", err)
	}
	if raw == "" {
		t.Fatal("empty run record")
	}
}
