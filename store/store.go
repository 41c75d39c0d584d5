package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key layout. Articles are keyed by content ID (sha256 of the exact URL),
// newsletters by sanitized date+department, runs by a timestamp token.
const (
	articleKeyPrefix    = "news:article:"
	articlesByIngested  = "news:by_ingested"
	sourceKeyPrefix     = "source:"
	sourcesIndex        = "sources:index"
	newsletterKeyPrefix = "newsletter:"
	newslettersByDept   = "newsletters:dept:"
	runKeyPrefix        = "run:"
)

// Config configures the redis connection and write-time policy.
type Config struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	// MinScore is the relevance threshold applied when articles are written
	MinScore int
	// Model is recorded on every stored analysis
	Model string
}

// Store is a redis-backed document store covering the four collections the
// pipeline uses: sources, articles, newsletters and runs.
type Store struct {
	client   *redis.Client
	minScore int
	model    string

	now func() time.Time
}

// New creates a Store and verifies connectivity.
func New(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping to verify
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Store{
		client:   client,
		minScore: cfg.MinScore,
		model:    cfg.Model,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// NewWithClient wraps an existing redis client (used by tests with miniredis).
func NewWithClient(client *redis.Client, minScore int, model string) *Store {
	return &Store{
		client:   client,
		minScore: minScore,
		model:    model,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Close releases the underlying connection.
func (s *Store) Close() error { return s.client.Close() }

var docIDPattern = regexp.MustCompile(`[^a-z0-9_-]+`)

// SanitizeDocID maps arbitrary text to the allowed document ID character set
// [a-z0-9_-], the same way for every caller, so composite keys stay stable.
func SanitizeDocID(raw string) string {
	return strings.Trim(docIDPattern.ReplaceAllString(strings.ToLower(raw), "_"), "_")
}

// timeScore converts a timestamp to a sorted set score with millisecond
// precision. The same conversion is used for writes and range queries so
// window boundaries stay inclusive.
func timeScore(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000.0
}
