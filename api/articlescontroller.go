package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"intelhub/types"
)

// RegisterArticleRoutes registers the article read surface.
func RegisterArticleRoutes(r *gin.Engine, app *App) {
	r.GET("/api/articles/recent", app.handleRecentArticles)
}

// handleRecentArticles lists stored articles newest-ingested first.
// ?limit bounds the result; ?relevant=true keeps only articles at or above
// the relevance threshold.
func (app *App) handleRecentArticles(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	articles, err := app.Store.QueryRecentArticles(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.Query("relevant") == "true" {
		filtered := make([]types.Article, 0, len(articles))
		for _, a := range articles {
			if a.IsRelevant {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}
