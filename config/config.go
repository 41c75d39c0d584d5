package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries all injected settings for the service. It is built once at
// startup and passed into components explicitly; nothing reads the
// environment after Load returns.
type Config struct {
	// HTTP
	Port     string
	RunToken string // shared secret for the pipeline trigger endpoint

	// Analyzer
	CohereAPIKey string
	Model        string

	// Redis document store
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Relevance threshold used for is_relevant at write time
	MinScore int

	// Optional S3 digest archive. Empty bucket disables archiving.
	S3Bucket       string
	S3Region       string
	S3Prefix       string
	S3UsePathStyle bool

	// Bounded retry policy for external calls. Attempts of 1 disable retry.
	FetchAttempts   int
	AnalyzeAttempts int
	RetryBackoff    time.Duration

	// Optional SMTP delivery. Empty host disables the send endpoint.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFromName string
}

// Load reads configuration from the environment. Missing required keys are a
// startup error; the process refuses to run partially configured.
func Load() (Config, error) {
	cfg := Config{
		Port:            GetEnvOrDefault("PORT", "8080"),
		RunToken:        os.Getenv("RUN_TOKEN"),
		CohereAPIKey:    os.Getenv("COHERE_API_KEY"),
		Model:           GetEnvOrDefault("ANALYZER_MODEL", "command-r-plus-08-2024"),
		RedisAddr:       GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         GetEnvInt("REDIS_DB", 0),
		MinScore:        GetEnvInt("MIN_SCORE", DefaultMinScore),
		S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:        strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Prefix:        strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/"),
		S3UsePathStyle:  strings.EqualFold(os.Getenv("S3_USE_PATH_STYLE"), "true"),
		FetchAttempts:   GetEnvInt("FETCH_ATTEMPTS", 2),
		AnalyzeAttempts: GetEnvInt("ANALYZE_ATTEMPTS", 1),
		RetryBackoff:    time.Duration(GetEnvInt("RETRY_BACKOFF_MS", 500)) * time.Millisecond,
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        GetEnvInt("SMTP_PORT", 587),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		SMTPFromName:    GetEnvOrDefault("SMTP_FROM_NAME", "Intelligence Hub"),
	}

	if cfg.CohereAPIKey == "" {
		return Config{}, fmt.Errorf("COHERE_API_KEY is not set")
	}
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		return Config{}, fmt.Errorf("MIN_SCORE must be in [0,100], got %d", cfg.MinScore)
	}

	return cfg, nil
}

// SMTPConfigured reports whether all required SMTP settings are present.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// GetEnvInt returns an integer environment variable or a default value
func GetEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
