package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"intelhub/orchestrator"
)

// RegisterDigestRoutes registers digest generation, lookup, and delivery.
func RegisterDigestRoutes(r *gin.Engine, app *App) {
	g := r.Group("/api/digests")
	g.GET("/latest", app.handleLatestDigest)

	guarded := g.Group("")
	guarded.Use(requireRunToken(app))
	guarded.POST("/generate", app.handleGenerateDigests)
	guarded.POST("/send", app.handleSendDigest)
}

type generateDigestsRequest struct {
	WindowHours int `json:"window_hours"`
	MinScore    int `json:"min_score"`
}

func (app *App) handleGenerateDigests(c *gin.Context) {
	var req generateDigestsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := app.GenerateDigests(c.Request.Context(), orchestrator.DigestParams{
		WindowHours: req.WindowHours,
		MinScore:    req.MinScore,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"digests": created})
}

func (app *App) handleLatestDigest(c *gin.Context) {
	department := c.Query("department")
	if department == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department query parameter is required"})
		return
	}

	d, err := app.Store.LatestDigestForDepartment(c.Request.Context(), department)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no digest for department " + department})
		return
	}
	c.JSON(http.StatusOK, gin.H{"digest": d})
}

type sendDigestRequest struct {
	Department string `json:"department"`
	To         string `json:"to"`
}

// handleSendDigest mails the latest stored digest for a department. A server
// without SMTP configured refuses instead of crashing.
func (app *App) handleSendDigest(c *gin.Context) {
	if app.Sender == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "smtp delivery is not configured"})
		return
	}

	var req sendDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Department == "" || req.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department and to are required"})
		return
	}

	d, err := app.Store.LatestDigestForDepartment(c.Request.Context(), req.Department)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no digest for department " + req.Department})
		return
	}

	subject := fmt.Sprintf("AMC Intelligence Digest %s (%s)", d.Department, d.Date)
	if err := app.Sender.SendDigest(c.Request.Context(), req.To, subject, d.HTML); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "to": req.To, "digest": d.ID})
}
