package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"intelhub/analyzer"
	"intelhub/api"
	"intelhub/common"
	"intelhub/config"
	"intelhub/digest"
	"intelhub/mailer"
	"intelhub/orchestrator"
	"intelhub/rssfeeds"
	"intelhub/store"
	"intelhub/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	st, err := store.New(store.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
		MinScore: cfg.MinScore,
		Model:    cfg.Model,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis at %s: %v", cfg.RedisAddr, err)
	}
	defer st.Close()

	archiver, err := digest.NewArchiver(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix, cfg.S3UsePathStyle)
	if err != nil {
		log.Printf("Warning: failed to init S3 archiver: %v (archiving disabled)", err)
		archiver = nil
	}
	if archiver != nil {
		log.Printf("S3 digest archive enabled: bucket %q", cfg.S3Bucket)
	}

	// Bounded retry on the two flaky network edges; the pipeline loop itself
	// stays retry-free
	fetch := func(ctx context.Context, url string, maxItems int) ([]types.CandidateItem, error) {
		var items []types.CandidateItem
		err := common.Retry(ctx, cfg.FetchAttempts, cfg.RetryBackoff, func() error {
			var ferr error
			items, ferr = rssfeeds.Fetch(ctx, url, maxItems)
			return ferr
		})
		return items, err
	}

	deps := orchestrator.Deps{
		Store:    st,
		Analyzer: analyzer.WithRetry(analyzer.New(cfg.CohereAPIKey, cfg.Model), cfg.AnalyzeAttempts, cfg.RetryBackoff),
		Fetch:    fetch,
		Fallback: rssfeeds.FallbackSummary,
		Archiver: archiver,
	}

	app := &api.App{
		RunToken: cfg.RunToken,
		Store:    st,
		RunPipeline: func(ctx context.Context, params orchestrator.Params) (types.RunRecord, error) {
			return orchestrator.RunPipeline(ctx, deps, params)
		},
		GenerateDigests: func(ctx context.Context, params orchestrator.DigestParams) (int, error) {
			return orchestrator.GenerateDigests(ctx, deps, params)
		},
	}

	if cfg.SMTPConfigured() {
		m, err := mailer.New(cfg)
		if err != nil {
			log.Printf("Warning: failed to init mailer: %v (delivery disabled)", err)
		} else {
			app.Sender = m
			log.Printf("SMTP delivery enabled via %s", cfg.SMTPHost)
		}
	}

	addr := ":" + cfg.Port
	r := api.NewRouter(app)
	log.Printf("Starting API server on %s (model=%s)", addr, cfg.Model)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/pipeline/run")
	log.Println("  POST /api/digests/generate")
	log.Println("  POST /api/digests/send")
	log.Println("  GET  /api/digests/latest")
	log.Println("  GET  /api/articles/recent")
	log.Println("  POST /api/sources")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
