package http

import (
	"github.com/cympfh/connect-four/internal/transport/http/middleware"
	"github.com/cympfh/connect-four/pkg/auth"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AllowedOrigins []string
	JWTSecret      string
	Limiter        middleware.Limiter
	Solve          *SolveHandler
	Analyses       *AnalysisHandler // nil without a database
	Token          *TokenHandler
	Health         *HealthHandler
	WebSocket      gin.HandlerFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	router.GET("/api/health", deps.Health.Health)
	router.POST("/api/token", deps.Token.Issue)

	// rate limited
	solve := router.Group("/")
	solve.Use(middleware.RateLimitMiddleware(deps.Limiter))
	{
		solve.GET("/api/solve/:game/:next", deps.Solve.SolveByCode)
		solve.POST("/api/solve", deps.Solve.Solve)
		if deps.WebSocket != nil {
			solve.GET("/ws/solve", deps.WebSocket)
		}
	}

	if deps.Analyses != nil {
		protected := router.Group("/")
		protected.Use(middleware.AuthMiddleware(deps.JWTSecret, auth.ScopeReadAnalyses))
		{
			protected.GET("/api/analyses", deps.Analyses.List)
			protected.GET("/api/analyses/:id", deps.Analyses.Get)
		}
	}

	return router
}
