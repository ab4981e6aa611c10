package config

import "time"

type Config struct {
	OpenAIKey           string
	DatabaseURL         string
	RedisURL            string
	Environment         string
	Port                string
	EmbeddingModel      string
	EmbeddingDimensions int
	Search              SearchConfig
	PinningCacheTTL     time.Duration
	EmbeddingCacheTTL   time.Duration
	RateLimit           string // ulule limiter format, e.g. "60-M"
	CORSOrigins         []string
}

// defaults applied to search requests that leave them unset
type SearchConfig struct {
	DefaultLimit  int
	MinSimilarity float64
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
