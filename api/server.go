package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"intelhub/orchestrator"
	"intelhub/types"
)

// Store is the read/write surface the HTTP layer needs from the document
// store. *store.Store satisfies it; handler tests substitute fakes.
type Store interface {
	QueryRecentArticles(ctx context.Context, limit int) ([]types.Article, error)
	LatestDigestForDepartment(ctx context.Context, department string) (*types.Digest, error)
	SaveSource(ctx context.Context, src types.Source) error
}

// DigestSender delivers a rendered digest to one recipient.
type DigestSender interface {
	SendDigest(ctx context.Context, to, subject, html string) error
}

// App wires the HTTP surface to the pipeline. The run functions are fields so
// handler tests can observe parameters without a live store or model.
type App struct {
	RunToken string
	Store    Store
	// Sender is nil when SMTP is not configured; the send endpoint refuses.
	Sender DigestSender

	RunPipeline     func(ctx context.Context, params orchestrator.Params) (types.RunRecord, error)
	GenerateDigests func(ctx context.Context, params orchestrator.DigestParams) (int, error)
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(app *App) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterPipelineRoutes(r, app)
	RegisterDigestRoutes(r, app)
	RegisterArticleRoutes(r, app)
	RegisterSourceRoutes(r, app)
	RegisterHealthRoutes(r)
	return r
}

// requireRunToken guards the mutating endpoints with the X-Run-Token shared
// secret. A server with no token configured refuses every trigger rather
// than running open.
func requireRunToken(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.RunToken == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "run token is not configured"})
			return
		}
		if c.GetHeader("X-Run-Token") != app.RunToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid run token"})
			return
		}
		c.Next()
	}
}
