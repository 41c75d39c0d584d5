package config

// Departments is the fixed set of business areas an article can be routed to.
// The analyzer is instructed to pick one of these; anything else is replaced
// by DefaultDepartment when the article is stored.
var Departments = []string{
	"Finanzas y ROI",
	"FoodTech and Supply Chain",
	"Innovación y Tendencias",
	"Tecnología e Innovación",
	"Legal & Regulatory Affairs / Innovation",
}

// DefaultDepartment is used when the model returns a department outside the
// allowed set.
const DefaultDepartment = "Innovación y Tendencias"

// Topics is the fixed tag vocabulary offered to the analyzer.
var Topics = []string{
	"LLMs & Agents", "RAG & Search", "MLOps & Observability",
	"Data Platforms", "Security & Governance", "Automation",
	"Regulation", "Productivity Tools", "FoodTech", "Supply Chain",
}

// Pipeline Constants
const (
	// MaxTopics caps the topic tags persisted per article; extras are dropped
	MaxTopics = 4

	// SummaryCharBudget bounds the feed summary text sent to the model
	SummaryCharBudget = 1500

	// MaxSampleErrors caps the error messages kept on a run record
	MaxSampleErrors = 5

	// DefaultMinScore is the relevance threshold for is_relevant and digests
	DefaultMinScore = 60

	// DefaultMaxPerSource bounds items fetched per feed
	DefaultMaxPerSource = 8

	// DefaultMaxTotal bounds items processed per run
	DefaultMaxTotal = 25

	// DefaultWindowHours is the trailing ingestion window for digests
	DefaultWindowHours = 24

	// DefaultRecentLimit is how many recent articles the digest pass loads
	DefaultRecentLimit = 250

	// DigestMaxItems caps the articles embedded in one digest document
	DigestMaxItems = 10
)

// Source Constants
const (
	// SourceTypeFeed is the only source kind the pipeline processes
	SourceTypeFeed = "feed"
)
