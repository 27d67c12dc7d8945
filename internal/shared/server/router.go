package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/applicants"
	googleauth "github.com/Mareenraj/ATS/internal/auth"
	"github.com/Mareenraj/ATS/internal/dashboard"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/shared/config"
	"github.com/Mareenraj/ATS/internal/shared/metrics"
	"github.com/Mareenraj/ATS/internal/shared/server/middleware"
	"github.com/Mareenraj/ATS/internal/shared/server/respond"
	"github.com/Mareenraj/ATS/internal/users"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupApply   = "APPLY"
	rateGroupAnalyze = "ANALYZE"
)

// RouterDeps carries the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config           config.Config
	UserHandler      *users.Handler
	JobHandler       *jobs.Handler
	ApplicantHandler *applicants.Handler
	DashboardHandler *dashboard.Handler
	GoogleAuth       *googleauth.GoogleService
	RateLimiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Session(cfg.SessionTTL, cfg.Env == "production"),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
			Limiter:      deps.RateLimiter,
			Rules: map[string]middleware.RateLimitRule{
				rateGroupDefault: {Rate: 10, Burst: 30},
				rateGroupApply:   {Rate: 0.2, Burst: 3},
				rateGroupAnalyze: {Rate: 0.5, Burst: 2},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(api)
	}
	if deps.ApplicantHandler != nil {
		deps.ApplicantHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api)
	}

	return r
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return rateGroupDefault
	}
	switch c.FullPath() {
	case "/api/v1/jobs/:id/applications":
		return rateGroupApply
	case "/api/v1/applicants/:id/analyze":
		return rateGroupAnalyze
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
