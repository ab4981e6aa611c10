package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/showcase/server/internal/cache"
	"codeberg.org/showcase/server/internal/config"
	"codeberg.org/showcase/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config, flags config.Flags) (*Server, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// supabase pooler has ~10-15 connections on the free tier, so keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgBouncer in transaction mode doesn't support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	server := &Server{
		db:     db,
		config: cfg,
	}

	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCacheFromURL(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}

		server.redis = redisCache
		server.cache = redisCache
	} else {
		logger.Warn("REDIS_URL not set, using in-memory cache and rate limits")
		server.cache = cache.NewMemoryCache()
	}

	services, err := InitializeServices(ctx, cfg, flags, db, server.cache)
	if err != nil {
		server.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	server.services = services

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server.router = gin.New()

	if err := RegisterRoutes(server.router, server); err != nil {
		server.Close()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return server, nil
}

// releases redis and the database pool
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	s.db.Close()
}
