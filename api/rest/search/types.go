package search

import (
	"codeberg.org/showcase/server/internal/assets"
	"codeberg.org/showcase/server/internal/capability"
	"codeberg.org/showcase/server/internal/querylog"
	"codeberg.org/showcase/server/internal/retriever"
)

// Request represents the request body for a pinned search
type Request struct {
	Query      string   `json:"query" binding:"required,min=1,max=500"`
	Limit      int      `json:"limit" binding:"omitempty,min=1,max=50"`
	Types      []string `json:"types" binding:"omitempty,max=5,dive,oneof=case_study article video deck diagram"`
	Capability string   `json:"capability" binding:"omitempty,capability"`
}

// Response is the pinned search result as rendered by the front end
type Response = retriever.PinnedSearchResult

// AssetsRequest exposes the raw vector search with its extra filters
type AssetsRequest struct {
	Query           string   `json:"query" binding:"required,min=1,max=500"`
	Limit           int      `json:"limit" binding:"omitempty,min=1,max=50"`
	Types           []string `json:"types" binding:"omitempty,max=5,dive,oneof=case_study article video deck diagram"`
	Client          string   `json:"client" binding:"omitempty,max=200"`
	MinSimilarity   *float64 `json:"min_similarity" binding:"omitempty,min=0,max=1"`
	Capability      string   `json:"capability" binding:"omitempty,capability"`
	BoostCapability string   `json:"boost_capability" binding:"omitempty,capability"`
}

type AssetsResponse struct {
	Results []retriever.SearchResult `json:"results"`
	Count   int                      `json:"count"`
}

type CapabilityInfo struct {
	ID       capability.Capability `json:"id"`
	Keywords []string              `json:"keywords"`
}

type CapabilitiesResponse struct {
	Capabilities []CapabilityInfo `json:"capabilities"`
}

type DetectRequest struct {
	Query string `json:"query" binding:"required,max=500"`
}

type DetectResponse struct {
	Capability *string `json:"capability"`
}

type StatsResponse struct {
	Window string                     `json:"window"`
	Stats  []querylog.CapabilityStats `json:"stats"`
}

func toTypes(raw []string) []assets.Type {
	if len(raw) == 0 {
		return nil
	}

	types := make([]assets.Type, 0, len(raw))
	for _, t := range raw {
		types = append(types, assets.Type(t))
	}

	return types
}
