package assets

const (
	assetColumns = `
		id::text, type, title, client_name, description, content, metadata,
		thumbnail_url, source_url, created_at, updated_at
	`

	queryGetByIDs = `
		SELECT` + assetColumns + `
		FROM assets
		WHERE id::text = ANY($1)
	`

	queryGetByID = `
		SELECT` + assetColumns + `
		FROM assets
		WHERE id::text = $1
	`
)
