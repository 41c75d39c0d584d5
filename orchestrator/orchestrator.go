package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"intelhub/config"
	"intelhub/digest"
	"intelhub/types"
)

// Store is the persistence surface the orchestrator needs. *store.Store
// satisfies it; tests substitute fakes.
type Store interface {
	ListEnabledFeedSources(ctx context.Context) ([]types.Source, error)
	ArticleExists(ctx context.Context, url string) (bool, error)
	UpsertArticle(ctx context.Context, item types.CandidateItem, analysis types.Analysis, sourceName string) (bool, error)
	QueryArticlesSince(ctx context.Context, since time.Time, limit int) ([]types.Article, error)
	StartRun(ctx context.Context, mode string) (types.RunRecord, error)
	FinishRun(ctx context.Context, rec types.RunRecord) error
	SaveDigest(ctx context.Context, d types.Digest) error
}

// Analyzer scores one item against the business.
type Analyzer interface {
	Analyze(ctx context.Context, sourceName, title, url, summary string) (types.Analysis, error)
	Model() string
}

// FetchFunc retrieves candidate items from one feed URL.
type FetchFunc func(ctx context.Context, url string, maxItems int) ([]types.CandidateItem, error)

// FallbackFunc produces a summary for items whose feed entry had none.
type FallbackFunc func(url string) (string, error)

// Deps bundles the collaborators for a pipeline run. All dependencies are
// constructed at startup and injected; nothing here reaches for globals.
type Deps struct {
	Store    Store
	Analyzer Analyzer
	Fetch    FetchFunc
	// Fallback is optional; nil disables the summary fallback fetch.
	Fallback FallbackFunc
	// Archiver is optional; nil disables S3 digest archiving.
	Archiver *digest.Archiver
}

// Params bounds one ingestion run. The caps exist to bound run cost and
// duration, not as backpressure.
type Params struct {
	MaxPerSource int
	MaxTotal     int
	Mode         string
	// GenerateDigests runs a digest pass after ingestion, inside the same
	// run ledger entry.
	GenerateDigests bool
	Digest          DigestParams
}

// DigestParams configures one digest generation pass.
type DigestParams struct {
	WindowHours int
	MinScore    int
	RecentLimit int
}

func (p Params) withDefaults() Params {
	if p.MaxPerSource <= 0 {
		p.MaxPerSource = config.DefaultMaxPerSource
	}
	if p.MaxTotal <= 0 {
		p.MaxTotal = config.DefaultMaxTotal
	}
	if p.Mode == "" {
		p.Mode = "api"
	}
	return p
}

func (p DigestParams) withDefaults() DigestParams {
	if p.WindowHours <= 0 {
		p.WindowHours = config.DefaultWindowHours
	}
	if p.MinScore <= 0 {
		p.MinScore = config.DefaultMinScore
	}
	if p.RecentLimit <= 0 {
		p.RecentLimit = config.DefaultRecentLimit
	}
	return p
}

// RunPipeline executes a single ingestion run: iterate enabled feed sources
// sequentially, skip already-stored URLs, analyze and store the rest. Per-item
// and per-source failures are counted and never abort the run; only a failure
// to read the source list is fatal, and it finalizes the ledger with an error
// status before returning.
func RunPipeline(ctx context.Context, deps Deps, params Params) (types.RunRecord, error) {
	params = params.withDefaults()

	rec, err := deps.Store.StartRun(ctx, params.Mode)
	if err != nil {
		return types.RunRecord{}, fmt.Errorf("failed to start run: %w", err)
	}
	log.Printf("=== Pipeline run %s started (mode=%s) ===", rec.ID, params.Mode)

	if err := runIngestion(ctx, deps, params, &rec); err != nil {
		rec.Status = types.RunStatusError
		rec.Error = err.Error()
		if ferr := deps.Store.FinishRun(ctx, rec); ferr != nil {
			log.Printf("Warning: failed to finalize errored run %s: %v", rec.ID, ferr)
		}
		return rec, err
	}

	if params.GenerateDigests {
		created, err := GenerateDigests(ctx, deps, params.Digest)
		if err != nil {
			// Ingested articles are already durable; a digest failure is
			// counted, not fatal
			rec.Errors++
			recordSampleError(&rec, "digests", err)
		}
		rec.Digests = created
	}

	rec.Status = types.RunStatusDone
	if err := deps.Store.FinishRun(ctx, rec); err != nil {
		log.Printf("Warning: failed to finalize run %s: %v", rec.ID, err)
	}

	log.Printf("=== Pipeline run %s complete: analyzed=%d added=%d skipped_existing=%d errors=%d ===",
		rec.ID, rec.Analyzed, rec.Added, rec.SkippedExisting, rec.Errors)
	return rec, nil
}

func runIngestion(ctx context.Context, deps Deps, params Params, rec *types.RunRecord) error {
	sources, err := deps.Store.ListEnabledFeedSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	rec.Sources = len(sources)
	log.Printf("Processing %d enabled feed sources", len(sources))

	totalDone := 0
	for _, src := range sources {
		if totalDone >= params.MaxTotal {
			break
		}

		items, err := deps.Fetch(ctx, src.URL, params.MaxPerSource)
		if err != nil {
			// One bad feed degrades to zero items; the run continues
			log.Printf("Warning: fetch failed for source %q: %v", src.Name, err)
			continue
		}
		log.Printf("Fetched %d items from %q", len(items), src.Name)

		for _, item := range items {
			if totalDone >= params.MaxTotal {
				break
			}
			totalDone++

			// Cost saver: skip the analyzer call entirely for known URLs.
			// A failed check falls open to analysis, accepting a possible
			// duplicate model call over a dropped item.
			exists, err := deps.Store.ArticleExists(ctx, item.URL)
			if err != nil {
				log.Printf("Warning: existence check failed for %s: %v", item.URL, err)
			} else if exists {
				rec.SkippedExisting++
				continue
			}

			if item.Summary == "" && deps.Fallback != nil {
				if summary, err := deps.Fallback(item.URL); err == nil {
					item.Summary = summary
				}
			}

			analysis, err := deps.Analyzer.Analyze(ctx, src.Name, item.Title, item.URL, item.Summary)
			if err != nil {
				rec.Errors++
				recordSampleError(rec, item.URL, err)
				continue
			}
			rec.Analyzed++

			inserted, err := deps.Store.UpsertArticle(ctx, item, analysis, src.Name)
			if err != nil {
				rec.Errors++
				recordSampleError(rec, item.URL, err)
				continue
			}
			if inserted {
				rec.Added++
			}
		}
	}
	return nil
}

// GenerateDigests composes and persists one digest per department over the
// trailing ingestion window. It returns how many digest documents were
// written.
func GenerateDigests(ctx context.Context, deps Deps, params DigestParams) (int, error) {
	params = params.withDefaults()

	since := time.Now().UTC().Add(-time.Duration(params.WindowHours) * time.Hour)
	articles, err := deps.Store.QueryArticlesSince(ctx, since, params.RecentLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to load window articles: %w", err)
	}
	dateLabel := time.Now().UTC().Format("2006-01-02")
	log.Printf("Composing digests for %s: %d articles in the last %dh", dateLabel, len(articles), params.WindowHours)

	created := 0
	for _, dept := range config.Departments {
		d := digest.Compose(dept, articles, dateLabel, params.MinScore, params.WindowHours)
		if err := deps.Store.SaveDigest(ctx, d); err != nil {
			return created, fmt.Errorf("failed to save digest for %q: %w", dept, err)
		}
		created++

		if deps.Archiver != nil {
			if err := deps.Archiver.Archive(ctx, d); err != nil {
				log.Printf("Warning: S3 archive failed for digest %s: %v", d.ID, err)
			}
		}
	}

	log.Printf("Digests generated: %d", created)
	return created, nil
}

func recordSampleError(rec *types.RunRecord, url string, err error) {
	if len(rec.SampleErrors) < config.MaxSampleErrors {
		rec.SampleErrors = append(rec.SampleErrors, fmt.Sprintf("%s -> %v", url, err))
	}
}
