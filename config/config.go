// ABOUTME: Configuration loader for the topology analyzer service
// ABOUTME: Loads settings from environment variables (and optional .env) with defaults

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	CacheTTL int // seconds, TTL for cached analysis responses

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitWrite   int  // Requests per minute for analysis endpoints (default: 30)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)

	// Engine
	DefaultGoal      string // default optimization goal when a request omits one
	MaxShortcuts     int    // upper bound on k accepted from requests (default: 100)
	EvalParallelism  int    // concurrent candidate evaluations (0 = GOMAXPROCS)
	LeaderboardLimit int    // default leaderboard size (default: 10)
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		CacheTTL: getEnvInt("CACHE_TTL", 60),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 30),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		DefaultGoal:      getEnv("DEFAULT_GOAL", "balanced"),
		MaxShortcuts:     getEnvInt("MAX_SHORTCUTS", 100),
		EvalParallelism:  getEnvInt("EVAL_PARALLELISM", 0),
		LeaderboardLimit: getEnvInt("LEADERBOARD_LIMIT", 10),
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_WRITE", cfg.RateLimitWrite},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	switch cfg.DefaultGoal {
	case "latency", "paths", "load", "balanced":
	default:
		return nil, fmt.Errorf("DEFAULT_GOAL must be one of latency, paths, load, balanced, got %q", cfg.DefaultGoal)
	}

	if cfg.MaxShortcuts < 1 {
		return nil, fmt.Errorf("MAX_SHORTCUTS must be at least 1, got %d", cfg.MaxShortcuts)
	}
	if cfg.EvalParallelism < 0 {
		return nil, fmt.Errorf("EVAL_PARALLELISM cannot be negative, got %d", cfg.EvalParallelism)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
