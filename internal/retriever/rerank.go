package retriever

import (
	"cmp"
	"slices"

	"codeberg.org/showcase/server/internal/capability"
	"codeberg.org/showcase/server/internal/vectorstore"
)

// additive score adjustments applied on top of raw similarity
type Boosts struct {
	CaseStudy        float64
	HighQuality      float64
	QualityThreshold float64
	CapabilityMatch  float64
}

var DefaultBoosts = Boosts{
	CaseStudy:        0.10,
	HighQuality:      0.05,
	QualityThreshold: 4,
	CapabilityMatch:  0.15,
}

// boosted similarity for one match, capped at 1
func (b Boosts) score(m vectorstore.Match, boost capability.Capability) float64 {
	s := m.Similarity

	if m.Asset.IsCaseStudy() {
		s += b.CaseStudy
	}

	if q := m.Asset.Metadata.QualityScore; q != nil && *q >= b.QualityThreshold {
		s += b.HighQuality
	}

	if boost != capability.None && m.Asset.Metadata.PrimaryCapability == boost {
		s += b.CapabilityMatch
	}

	return min(s, maxSimilarity)
}

// scores every match and orders them by boosted similarity, highest first.
// equal scores keep store order.
func rerank(matches []vectorstore.Match, boosts Boosts, boost capability.Capability) []SearchResult {
	results := make([]SearchResult, 0, len(matches))

	for _, m := range matches {
		results = append(results, SearchResult{
			Asset:      m.Asset,
			Similarity: boosts.score(m, boost),
			ChunkText:  m.ChunkText,
		})
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})

	return results
}

// keeps the first occurrence of each asset
func dedupeByAsset(results []SearchResult) []SearchResult {
	seen := make(map[string]bool, len(results))
	out := make([]SearchResult, 0, len(results))

	for _, r := range results {
		if seen[r.Asset.ID] {
			continue
		}

		seen[r.Asset.ID] = true
		out = append(out, r)
	}

	return out
}

func excludePinned(results []SearchResult, pinned map[string]bool) []SearchResult {
	if len(pinned) == 0 {
		return results
	}

	out := make([]SearchResult, 0, len(results))

	for _, r := range results {
		if !pinned[r.Asset.ID] {
			out = append(out, r)
		}
	}

	return out
}
