package main

import (
	"context"
	"os"

	"codeberg.org/showcase/server/internal/logger"
)

type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// drops the cached pinning rules on every signal so edits to pinning_rules
// apply without waiting for the cache TTL; returns when ctx is done
func watchRuleReload(ctx context.Context, signals <-chan os.Signal, rules cacheInvalidator) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			if err := rules.Invalidate(ctx); err != nil {
				logger.Warn("failed to invalidate pinning rule cache", "error", err)
				continue
			}

			logger.Info("pinning rule cache invalidated")
		}
	}
}
