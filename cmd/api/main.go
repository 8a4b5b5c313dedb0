package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cympfh/connect-four/internal/config"
	"github.com/cympfh/connect-four/internal/repository/postgres"
	"github.com/cympfh/connect-four/internal/repository/redis"
	"github.com/cympfh/connect-four/internal/service/analysis"
	"github.com/cympfh/connect-four/internal/service/cleanup"
	"github.com/cympfh/connect-four/internal/service/solver"
	transportHttp "github.com/cympfh/connect-four/internal/transport/http"
	"github.com/cympfh/connect-four/internal/transport/http/middleware"
	"github.com/cympfh/connect-four/internal/transport/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info().Msg("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database is optional; without it analyses are not recorded
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		log.Info().Msg("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	} else {
		log.Info().Msg("DATABASE_URL not set, analysis history disabled")
	}

	redisClient := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var analysisRepo *postgres.AnalysisRepo
	var svcRepo analysis.Repository
	if db != nil {
		analysisRepo = postgres.NewAnalysisRepo(db)
		svcRepo = analysisRepo
	}

	svc := analysis.NewService(analysis.Options{
		Trials:  cfg.SolverTrials,
		Workers: cfg.SolverWorkers,
		Sources: solver.CryptoSources(),
		Timeout: cfg.SolveTimeout,
		Verbose: cfg.SolverVerbose,
	}, svcRepo)

	health := map[string]transportHttp.Pinger{"postgres": nil, "redis": nil}

	var limiter middleware.Limiter
	if redisClient != nil {
		rl := redis.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
		health["redis"] = rl
		limiter = rl
	}

	deps := transportHttp.RouterDeps{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		Solve:          transportHttp.NewSolveHandler(svc),
		Token:          transportHttp.NewTokenHandler(cfg.APIKeyHash, cfg.JWTSecret, cfg.JWTTTL),
		Limiter:        limiter,
		WebSocket:      websocket.NewHandler(svc, limiter, cfg.AllowedOrigins).HandleWebSocket,
	}
	if db != nil {
		health["postgres"] = db
		deps.Analyses = transportHttp.NewAnalysisHandler(analysisRepo)

		cleanup.NewWorker(analysisRepo, cfg.AnalysisRetentionDays).Start(ctx)
	}
	deps.Health = transportHttp.NewHealthHandler(health)

	router := transportHttp.NewRouter(deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
