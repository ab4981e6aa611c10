package vectorstore

const (
	matchFunctionV1 = "match_asset_chunks"
	matchFunctionV2 = "match_asset_chunks_v2"

	queryMatchV1 = `
		SELECT asset, similarity, chunk_text
		FROM match_asset_chunks($1, $2, $3, $4, $5)
	`

	queryMatchV2 = `
		SELECT asset, similarity, chunk_text
		FROM match_asset_chunks_v2($1, $2, $3, $4, $5, $6)
	`

	queryFunctionExists = `
		SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = $1)
	`
)
