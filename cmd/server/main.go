package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/showcase/server/internal/config"
	"codeberg.org/showcase/server/internal/logger"
)

func main() {
	logger.Info("starting showcase search server")

	flags, err := config.ParseServerFlags(os.Args[1:])
	if err != nil {
		logger.Fatal("failed to parse flags", "error", err)
	}

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// .env may have changed ENVIRONMENT or LOG_LEVEL after the package init ran
	logger.SetDefault(logger.New(cfg.Environment, os.Getenv("LOG_LEVEL")))

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)

	// create server with all dependencies
	srv, err := NewServer(startupCtx, cfg, flags)
	startupCancel()

	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// SIGHUP refreshes pinning rules without a restart
	reloadCtx, stopReload := context.WithCancel(context.Background())
	defer stopReload()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	go watchRuleReload(reloadCtx, hup, srv.services.Rules)

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stopReload()

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// let pending query log writes land before the pool goes away
	if err := srv.services.QueryLog.Wait(ctx); err != nil {
		logger.Warn("query log writes still pending at shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
