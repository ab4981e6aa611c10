package retriever

import "codeberg.org/showcase/server/internal/assets"

func truncate[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}

	if len(s) <= n {
		return s
	}

	return s[:n]
}

func assetIDSet(list []assets.Asset) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, a := range list {
		set[a.ID] = true
	}

	return set
}

// asset ids of search results, in order
func ResultIDs(results []SearchResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Asset.ID)
	}

	return ids
}

func AssetIDs(list []assets.Asset) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}

	return ids
}
