package querylog

import (
	"time"

	"codeberg.org/showcase/server/internal/capability"
)

// one served search
type Entry struct {
	Query              string
	DetectedCapability capability.Capability
	PinnedIDs          []string
	ResultIDs          []string
	SearchFailed       bool
	Latency            time.Duration
}

// aggregated search traffic for one detected capability ("" = none detected)
type CapabilityStats struct {
	Capability   string  `json:"capability"`
	Searches     int     `json:"searches"`
	Failed       int     `json:"failed"`
	Empty        int     `json:"empty"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
}
