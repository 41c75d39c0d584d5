package analyzer

import (
	"context"
	"time"

	"intelhub/common"
	"intelhub/types"
)

// Retrying wraps an Analyzer with a bounded retry policy. Every failure mode
// is retried the same way: a fresh model call produces an independent sample.
type Retrying struct {
	inner    *Analyzer
	attempts int
	backoff  time.Duration
}

// WithRetry decorates the analyzer; attempts <= 1 keeps single-try behavior.
func WithRetry(inner *Analyzer, attempts int, backoff time.Duration) *Retrying {
	return &Retrying{inner: inner, attempts: attempts, backoff: backoff}
}

func (r *Retrying) Model() string { return r.inner.Model() }

func (r *Retrying) Analyze(ctx context.Context, sourceName, title, url, summary string) (types.Analysis, error) {
	var out types.Analysis
	err := common.Retry(ctx, r.attempts, r.backoff, func() error {
		var aerr error
		out, aerr = r.inner.Analyze(ctx, sourceName, title, url, summary)
		return aerr
	})
	return out, err
}
