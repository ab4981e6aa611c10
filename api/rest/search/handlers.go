package search

import (
	"context"
	"net/http"
	"strings"
	"time"

	"codeberg.org/showcase/server/internal/capability"
	apierrors "codeberg.org/showcase/server/internal/errors"
	"codeberg.org/showcase/server/internal/querylog"
	"codeberg.org/showcase/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

const (
	defaultStatsWindow = 24 * time.Hour
	maxStatsWindow     = 30 * 24 * time.Hour
)

type Searcher interface {
	SearchWithPinning(ctx context.Context, query string, opts retriever.PinnedSearchOptions) retriever.PinnedSearchResult
	SearchAssets(ctx context.Context, query string, opts retriever.SearchOptions) ([]retriever.SearchResult, error)
}

type QueryRecorder interface {
	Record(ctx context.Context, e querylog.Entry)
}

type StatsReader interface {
	Stats(ctx context.Context, since time.Time) ([]querylog.CapabilityStats, error)
}

// Handler godoc
// @Summary Search showcase assets
// @Description Keyword-pinned assets followed by reranked vector search results. An empty result is a 200; a failed vector search still returns the pinned assets.
// @Tags search
// @Accept json
// @Produce json
// @Param request body Request true "Search request"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/search [post]
func Handler(searcher Searcher, recorder QueryRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			apierrors.BadRequest(c, "query must not be blank", nil)
			return
		}

		start := time.Now()

		result := searcher.SearchWithPinning(c.Request.Context(), query, retriever.PinnedSearchOptions{
			Limit:      req.Limit,
			Types:      toTypes(req.Types),
			Capability: capability.Capability(req.Capability),
		})

		if recorder != nil {
			entry := querylog.Entry{
				Query:        query,
				PinnedIDs:    retriever.AssetIDs(result.Pinned),
				ResultIDs:    retriever.ResultIDs(result.Searched),
				SearchFailed: result.SearchError != nil,
				Latency:      time.Since(start),
			}

			if result.DetectedCapability != nil {
				entry.DetectedCapability = capability.Capability(*result.DetectedCapability)
			}

			recorder.Record(c.Request.Context(), entry)
		}

		c.JSON(http.StatusOK, result)
	}
}

// AssetsHandler godoc
// @Summary Vector search without pinning
// @Description Raw reranked vector search with client and similarity filters, for internal tools
// @Tags search
// @Accept json
// @Produce json
// @Param request body AssetsRequest true "Search request"
// @Success 200 {object} AssetsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /api/v1/search/assets [post]
func AssetsHandler(searcher Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AssetsRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			apierrors.BadRequest(c, "query must not be blank", nil)
			return
		}

		results, err := searcher.SearchAssets(c.Request.Context(), query, retriever.SearchOptions{
			Limit:            req.Limit,
			Types:            toTypes(req.Types),
			Client:           strings.TrimSpace(req.Client),
			MinSimilarity:    req.MinSimilarity,
			FilterCapability: capability.Capability(req.Capability),
			BoostCapability:  capability.Capability(req.BoostCapability),
		})

		if err != nil {
			apierrors.DependencyError(c, "search failed", err)
			return
		}

		c.JSON(http.StatusOK, AssetsResponse{
			Results: results,
			Count:   len(results),
		})
	}
}

// lists the capability taxonomy in detection order
func CapabilitiesHandler(c *gin.Context) {
	all := capability.All()
	infos := make([]CapabilityInfo, 0, len(all))

	for _, cp := range all {
		infos = append(infos, CapabilityInfo{
			ID:       cp,
			Keywords: capability.Keywords(cp),
		})
	}

	c.JSON(http.StatusOK, CapabilitiesResponse{Capabilities: infos})
}

// runs the keyword detector on a query without searching
func DetectHandler(c *gin.Context) {
	var req DetectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, DetectResponse{
		Capability: capability.Detect(req.Query).Ptr(),
	})
}

// aggregates logged searches per detected capability; ?window=72h
func StatsHandler(stats StatsReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		window := defaultStatsWindow

		if raw := c.Query("window"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil || parsed <= 0 || parsed > maxStatsWindow {
				apierrors.BadRequest(c, "window must be a positive duration up to 720h", err)
				return
			}

			window = parsed
		}

		result, err := stats.Stats(c.Request.Context(), time.Now().Add(-window))
		if err != nil {
			apierrors.DependencyError(c, "failed to load search stats", err)
			return
		}

		c.JSON(http.StatusOK, StatsResponse{
			Window: window.String(),
			Stats:  result,
		})
	}
}
