package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CandidateItem is a single feed entry as returned by the fetcher, before
// analysis. Entries missing a title or link never make it this far.
type CandidateItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Analysis is the structured output of the relevance analyzer. JSON field
// names match the model's response schema.
type Analysis struct {
	ImprovedTitle   string   `json:"titulo_mejorado"`
	Summary         string   `json:"resumen"`
	SuggestedAction string   `json:"accion"`
	Department      string   `json:"departamento"`
	Topics          []string `json:"topics"`
	Score           int      `json:"score"`
}

// StoredAnalysis is the analysis block embedded in a persisted article.
// Department fallback and topic truncation have already been applied.
type StoredAnalysis struct {
	Department      string   `json:"departamento"`
	Summary         string   `json:"resumen_ejecutivo"`
	SuggestedAction string   `json:"accion_sugerida"`
	Score           int      `json:"relevancia_score"`
	Topics          []string `json:"topics"`
	Model           string   `json:"model"`
}

// Article is a persisted, analyzed news item. Its storage key is
// ContentID(URL), so at most one article ever exists per exact URL.
// IngestedAt is the pipeline's write time, not the feed's publish time.
type Article struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	URL        string         `json:"url"`
	Source     string         `json:"source"`
	IngestedAt time.Time      `json:"published_at"`
	Analysis   StoredAnalysis `json:"analysis"`
	IsRelevant bool           `json:"is_relevant"`
}

// DigestItem is the (title, URL) pair kept in a digest's item list.
type DigestItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Digest is a per-department newsletter document. Its storage key is the
// sanitized date+department label, so re-running the composer for the same
// day overwrites the same logical document.
type Digest struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Department  string       `json:"department"`
	MinScore    int          `json:"min_score"`
	WindowHours int          `json:"window_hours"`
	CreatedAt   time.Time    `json:"created_at"`
	Items       []DigestItem `json:"items"`
	HTML        string       `json:"html"`
}

// Source describes one configured feed. Only enabled feed sources are
// processed by the pipeline.
type Source struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// RunStatus enumerates run ledger states.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusDone    RunStatus = "done"
	RunStatusError   RunStatus = "error"
)

// RunRecord is the audit trail entry for one pipeline run. It is written at
// run start and finalized exactly once at run end; core logic never reads it.
type RunRecord struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at,omitempty"`
	Status          RunStatus `json:"status"`
	Mode            string    `json:"mode"`
	Sources         int       `json:"sources"`
	Analyzed        int       `json:"analyzed"`
	Added           int       `json:"added"`
	SkippedExisting int       `json:"skipped_existing"`
	Errors          int       `json:"errors"`
	Digests         int       `json:"digests,omitempty"`
	Model           string    `json:"model"`
	Error           string    `json:"error,omitempty"`
	SampleErrors    []string  `json:"sample_errors,omitempty"`
}

// ContentID returns the deterministic storage identity for a URL: the full
// hex sha256 of the exact string. No normalization is applied, so URLs
// differing only in query string or trailing slash map to distinct articles.
func ContentID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}
