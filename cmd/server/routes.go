package main

import (
	"fmt"

	"codeberg.org/showcase/server/api/rest/assets"
	"codeberg.org/showcase/server/api/rest/health"
	"codeberg.org/showcase/server/api/rest/middleware"
	"codeberg.org/showcase/server/api/rest/search"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	if err := search.RegisterValidators(); err != nil {
		return err
	}

	var redisClient *redis.Client
	if server.redis != nil {
		redisClient = server.redis.Client()
	}

	limiterStore, err := middleware.NewLimiterStore(redisClient)
	if err != nil {
		return err
	}

	searchLimit, err := middleware.RateLimit(server.config.RateLimit, limiterStore)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.CORS(server.config.CORSOrigins),
	)

	deps := map[string]health.Pinger{"postgres": server.db}
	if server.redis != nil {
		deps["redis"] = server.redis
	}

	router.GET("/health", health.Handler)
	router.GET("/health/ready", health.ReadyHandler(deps, server.services.VectorStore))

	v1 := router.Group("/api/v1")

	{
		search.RegisterRoutes(v1, server.services.Retriever, server.services.QueryLog, server.services.QueryLog, searchLimit)
		assets.RegisterRoutes(v1, server.services.Assets)
	}

	return nil
}
