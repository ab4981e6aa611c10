package main

import (
	"codeberg.org/showcase/server/internal/assets"
	"codeberg.org/showcase/server/internal/cache"
	"codeberg.org/showcase/server/internal/config"
	"codeberg.org/showcase/server/internal/pinning"
	"codeberg.org/showcase/server/internal/querylog"
	"codeberg.org/showcase/server/internal/retriever"
	"codeberg.org/showcase/server/internal/vectorstore"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	cache    cache.Cache
	redis    *cache.RedisCache // nil when running on the in-memory cache
	services *Services
	router   *gin.Engine
}

// holds all service clients built at startup
type Services struct {
	VectorStore *vectorstore.Store
	Assets      *assets.Repository
	Rules       *pinning.CachedRuleStore
	Retriever   *retriever.Client
	QueryLog    *querylog.Service
}
