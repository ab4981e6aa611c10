package health

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/showcase/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	serviceName  = "showcase-search"
	checkTimeout = 2 * time.Second
)

var Version = "dev"

type Pinger interface {
	Ping(ctx context.Context) error
}

// reports which match function the vector store is using
type MatchInfo interface {
	MatchFunction() string
	SupportsCapabilityFilter() bool
}

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: serviceName,
		Version: Version,
	})
}

// pings every dependency; 503 when any of them is down
func ReadyHandler(deps map[string]Pinger, store MatchInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		resp := ReadyResponse{
			Status:           "ready",
			Checks:           make(map[string]string, len(deps)),
			MatchFunction:    store.MatchFunction(),
			CapabilityFilter: store.SupportsCapabilityFilter(),
		}

		status := http.StatusOK

		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				logger.FromContext(ctx).Warn("readiness check failed", "dependency", name, "error", err)
				resp.Checks[name] = "down"
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable

				continue
			}

			resp.Checks[name] = "up"
		}

		c.JSON(status, resp)
	}
}
