package config

import (
	"errors"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                  string
	Environment           string
	AllowedOrigins        []string
	FrontendURL           string
	DatabaseURL           string
	DBMaxOpenConns        int
	DBMaxIdleConns        int
	DBConnMaxLifetimeMin  int
	RedisURL              string
	RedisPassword         string
	JWTSecret             string
	JWTTTL                time.Duration
	APIKeyHash            string
	SolverTrials          int
	SolverWorkers         int
	SolverVerbose         bool
	SolveTimeout          time.Duration
	RateLimitPerMinute    int
	AnalysisRetentionDays int
	LogLevel              string
}

var AppConfig *Config

const DefaultJWTSecret = "your-secret-key-change-this-in-production"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in production")

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	// Database Config
	// Append simple_protocol for PgBouncer compatibility (pgx driver)
	dbURL := GetEnv("DATABASE_URL", "")
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:                  port,
		Environment:           environment,
		AllowedOrigins:        allowedOrigins,
		FrontendURL:           frontendURL,
		DatabaseURL:           dbURL,
		DBMaxOpenConns:        GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:        GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin:  GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:              GetEnv("REDIS_URL", ""),
		RedisPassword:         GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:             GetEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:                time.Duration(GetEnvAsInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		APIKeyHash:            GetEnv("API_KEY_HASH", ""),
		SolverTrials:          GetEnvAsInt("SOLVER_TRIALS", 200),
		SolverWorkers:         GetEnvAsInt("SOLVER_WORKERS", runtime.NumCPU()),
		SolverVerbose:         GetEnvAsBool("SOLVER_VERBOSE", false),
		SolveTimeout:          time.Duration(GetEnvAsInt("SOLVE_TIMEOUT_SECONDS", 30)) * time.Second,
		RateLimitPerMinute:    GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		AnalysisRetentionDays: GetEnvAsInt("ANALYSIS_RETENTION_DAYS", 30),
		LogLevel:              GetEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects settings that are only acceptable during development.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}
