package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intelhub/orchestrator"
)

// RegisterPipelineRoutes registers the ingestion trigger endpoint.
func RegisterPipelineRoutes(r *gin.Engine, app *App) {
	g := r.Group("/api/pipeline")
	g.Use(requireRunToken(app))
	g.POST("/run", app.handlePipelineRun)
}

// pipelineRunRequest carries optional run bounds. Zero values fall back to
// the configured defaults.
type pipelineRunRequest struct {
	MaxPerSource    int  `json:"max_per_source"`
	MaxTotal        int  `json:"max_total"`
	GenerateDigests bool `json:"generate_digests"`
	WindowHours     int  `json:"window_hours"`
	MinScore        int  `json:"min_score"`
}

// handlePipelineRun executes one full ingestion run synchronously and returns
// the run summary. The caller holds the connection open for the duration;
// runs are bounded by the item caps.
func (app *App) handlePipelineRun(c *gin.Context) {
	var req pipelineRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	rec, err := app.RunPipeline(c.Request.Context(), orchestrator.Params{
		MaxPerSource:    req.MaxPerSource,
		MaxTotal:        req.MaxTotal,
		Mode:            "api",
		GenerateDigests: req.GenerateDigests,
		Digest: orchestrator.DigestParams{
			WindowHours: req.WindowHours,
			MinScore:    req.MinScore,
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "run": rec})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run": rec})
}
