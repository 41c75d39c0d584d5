package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyBackend fails a fixed number of calls before succeeding.
type flakyBackend struct {
	failures int
	calls    int
}

func (f *flakyBackend) GenerateJSON(context.Context, string, string, map[string]interface{}) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("transient")
	}
	return validResponse, nil
}

func TestRetryingAnalyzerRecoversFromTransientFailure(t *testing.T) {
	backend := &flakyBackend{failures: 2}
	a := WithRetry(NewWithBackend(backend, "test-model"), 3, time.Millisecond)

	got, err := a.Analyze(context.Background(), "S", "T", "https://example.com", "body")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Score != 85 {
		t.Fatalf("score = %d; want 85", got.Score)
	}
	if backend.calls != 3 {
		t.Fatalf("backend called %d times; want 3", backend.calls)
	}
}

func TestRetryingAnalyzerExhaustsAttempts(t *testing.T) {
	backend := &flakyBackend{failures: 10}
	a := WithRetry(NewWithBackend(backend, "test-model"), 2, time.Millisecond)

	_, err := a.Analyze(context.Background(), "S", "T", "https://example.com", "body")
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("expected *AnalysisError, got %T: %v", err, err)
	}
	if backend.calls != 2 {
		t.Fatalf("backend called %d times; want 2", backend.calls)
	}
}

func TestRetryingAnalyzerExposesModel(t *testing.T) {
	a := WithRetry(NewWithBackend(&flakyBackend{}, "test-model"), 1, 0)
	if a.Model() != "test-model" {
		t.Fatalf("model = %q", a.Model())
	}
}
