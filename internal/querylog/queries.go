package querylog

const (
	queryInsertSearch = `
		INSERT INTO search_queries (
			query, detected_capability, pinned_asset_ids, result_asset_ids, search_failed, latency_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	queryCapabilityStats = `
		SELECT
			COALESCE(detected_capability, '') AS capability,
			COUNT(*) AS searches,
			COUNT(*) FILTER (WHERE search_failed) AS failed,
			COUNT(*) FILTER (WHERE cardinality(pinned_asset_ids) = 0 AND cardinality(result_asset_ids) = 0) AS empty,
			COALESCE(AVG(latency_ms), 0)::float8 AS avg_latency_ms
		FROM search_queries
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY searches DESC
	`
)
