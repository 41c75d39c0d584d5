package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intelhub/config"
	"intelhub/types"
)

// RegisterSourceRoutes registers the admin endpoint for seeding feed sources.
func RegisterSourceRoutes(r *gin.Engine, app *App) {
	g := r.Group("/api/sources")
	g.Use(requireRunToken(app))
	g.POST("", app.handleSaveSource)
}

// handleSaveSource creates or updates a feed source descriptor.
func (app *App) handleSaveSource(c *gin.Context) {
	var src types.Source
	if err := c.ShouldBindJSON(&src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if src.Name == "" || src.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and url are required"})
		return
	}
	if src.Type == "" {
		src.Type = config.SourceTypeFeed
	}

	if err := app.Store.SaveSource(c.Request.Context(), src); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "saved", "source": src.Name})
}
