package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort                = "8080"
	defaultEmbeddingModel      = "text-embedding-3-small"
	defaultEmbeddingDimensions = 1536
	defaultSearchLimit         = 10
	defaultMinSimilarity       = 0.2
	defaultPinningCacheTTL     = 5 * time.Minute
	defaultEmbeddingCacheTTL   = 24 * time.Hour
	defaultRateLimit           = "60-M"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = os.Getenv("SUPABASE_CONNECTION_STRING")
	}

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	embeddingModel := os.Getenv("EMBEDDING_MODEL")
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	dimensions, err := intFromEnv("EMBEDDING_DIMENSIONS", defaultEmbeddingDimensions)
	if err != nil {
		return nil, err
	}

	limit, err := intFromEnv("SEARCH_DEFAULT_LIMIT", defaultSearchLimit)
	if err != nil {
		return nil, err
	}

	if limit < 1 {
		return nil, fmt.Errorf("SEARCH_DEFAULT_LIMIT must be positive, got %d", limit)
	}

	minSimilarity, err := floatFromEnv("SEARCH_MIN_SIMILARITY", defaultMinSimilarity)
	if err != nil {
		return nil, err
	}

	if minSimilarity < 0 || minSimilarity > 1 {
		return nil, fmt.Errorf("SEARCH_MIN_SIMILARITY must be within [0,1], got %v", minSimilarity)
	}

	pinningTTL, err := durationFromEnv("PINNING_CACHE_TTL", defaultPinningCacheTTL)
	if err != nil {
		return nil, err
	}

	embeddingTTL, err := durationFromEnv("EMBEDDING_CACHE_TTL", defaultEmbeddingCacheTTL)
	if err != nil {
		return nil, err
	}

	rateLimit := os.Getenv("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}

	return &Config{
		OpenAIKey:           openaiKey,
		DatabaseURL:         databaseURL,
		RedisURL:            os.Getenv("REDIS_URL"),
		Environment:         environment,
		Port:                port,
		EmbeddingModel:      embeddingModel,
		EmbeddingDimensions: dimensions,
		Search: SearchConfig{
			DefaultLimit:  limit,
			MinSimilarity: minSimilarity,
		},
		PinningCacheTTL:   pinningTTL,
		EmbeddingCacheTTL: embeddingTTL,
		RateLimit:         rateLimit,
		CORSOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
	}, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return val, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return val, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return val, nil
}

// splits a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string

	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
