package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"intelhub/config"
	"intelhub/types"
)

// ChatBackend sends a prompt constrained by a JSON schema and returns the
// model's raw text response.
type ChatBackend interface {
	GenerateJSON(ctx context.Context, model, prompt string, schema map[string]interface{}) (string, error)
}

// AnalysisError reports that the model's response could not be parsed into
// the required schema. It is scoped to a single item; the caller counts it
// and moves on.
type AnalysisError struct {
	Reason string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("analysis failed: %s", e.Reason)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyzer scores and classifies news items against the business using a
// generative model. One model call per item; no batching, no retries.
type Analyzer struct {
	backend ChatBackend
	model   string
}

// New creates an Analyzer backed by the Cohere chat API.
func New(apiKey, model string) *Analyzer {
	return &Analyzer{backend: newCohereBackend(apiKey), model: model}
}

// NewWithBackend creates an Analyzer with a custom backend.
func NewWithBackend(backend ChatBackend, model string) *Analyzer {
	return &Analyzer{backend: backend, model: model}
}

// Model returns the configured model identifier.
func (a *Analyzer) Model() string { return a.model }

// Analyze sends one item to the model and validates the structured result.
// Any schema mismatch (bad JSON, missing field, score out of range) returns
// an *AnalysisError for this item only.
func (a *Analyzer) Analyze(ctx context.Context, sourceName, title, url, summary string) (types.Analysis, error) {
	prompt := buildPrompt(sourceName, title, url, summary)

	raw, err := a.backend.GenerateJSON(ctx, a.model, prompt, analysisSchema())
	if err != nil {
		return types.Analysis{}, &AnalysisError{Reason: "model call failed", Err: err}
	}

	return parseAnalysis(raw)
}

// buildPrompt embeds the fixed enumerations and the item under analysis.
// The summary is truncated to a fixed character budget to bound cost and
// stay inside model context limits. The score rule is advisory to the model.
func buildPrompt(sourceName, title, url, summary string) string {
	if len(summary) > config.SummaryCharBudget {
		summary = summary[:config.SummaryCharBudget]
	}

	var b strings.Builder
	b.WriteString("Eres analista de inteligencia competitiva para AMC Global (alimentos/ingredientes).\n")
	b.WriteString("Debes curar noticias de IA, digitalización y tecnología aplicada al negocio.\n\n")
	b.WriteString("Devuelve SOLO JSON válido siguiendo este schema.\n\n")
	b.WriteString("Departamentos permitidos:\n")
	b.WriteString(fmt.Sprintf("%v\n\n", config.Departments))
	b.WriteString("Topics permitidos (elige máx 4):\n")
	b.WriteString(fmt.Sprintf("%v\n\n", config.Topics))
	b.WriteString("Noticia:\n")
	b.WriteString(fmt.Sprintf("- Fuente: %s\n", sourceName))
	b.WriteString(fmt.Sprintf("- Título: %s\n", title))
	b.WriteString(fmt.Sprintf("- URL: %s\n", url))
	b.WriteString(fmt.Sprintf("- Texto: %s\n\n", summary))
	b.WriteString("Reglas:\n")
	b.WriteString("- Si no es relevante para AMC, score debe ser < 60.\n")
	b.WriteString("- 'accion' debe ser accionable para un área de negocio.\n")
	return b.String()
}

// analysisSchema is the machine-checked response contract sent to the model.
func analysisSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"titulo_mejorado": map[string]interface{}{"type": "string"},
			"resumen":         map[string]interface{}{"type": "string"},
			"accion":          map[string]interface{}{"type": "string"},
			"departamento":    map[string]interface{}{"type": "string"},
			"topics": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"score": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
		},
		"required": []string{"titulo_mejorado", "resumen", "accion", "departamento", "score"},
	}
}

// parseAnalysis converts untrusted model output into a typed Analysis. This
// is the single point where model text becomes typed data; nothing past this
// boundary assumes well-formed input.
func parseAnalysis(raw string) (types.Analysis, error) {
	var decoded struct {
		ImprovedTitle   *string  `json:"titulo_mejorado"`
		Summary         *string  `json:"resumen"`
		SuggestedAction *string  `json:"accion"`
		Department      *string  `json:"departamento"`
		Topics          []string `json:"topics"`
		Score           *int     `json:"score"`
	}

	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return types.Analysis{}, &AnalysisError{Reason: "malformed JSON", Err: err}
	}

	missing := func(field string) (types.Analysis, error) {
		return types.Analysis{}, &AnalysisError{Reason: fmt.Sprintf("missing required field %q", field)}
	}
	switch {
	case decoded.ImprovedTitle == nil || *decoded.ImprovedTitle == "":
		return missing("titulo_mejorado")
	case decoded.Summary == nil || *decoded.Summary == "":
		return missing("resumen")
	case decoded.SuggestedAction == nil || *decoded.SuggestedAction == "":
		return missing("accion")
	case decoded.Department == nil || *decoded.Department == "":
		return missing("departamento")
	case decoded.Score == nil:
		return missing("score")
	}

	if *decoded.Score < 0 || *decoded.Score > 100 {
		return types.Analysis{}, &AnalysisError{
			Reason: fmt.Sprintf("score %d outside [0,100]", *decoded.Score),
		}
	}

	return types.Analysis{
		ImprovedTitle:   *decoded.ImprovedTitle,
		Summary:         *decoded.Summary,
		SuggestedAction: *decoded.SuggestedAction,
		Department:      *decoded.Department,
		Topics:          decoded.Topics,
		Score:           *decoded.Score,
	}, nil
}
