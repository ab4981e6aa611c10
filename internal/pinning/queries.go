package pinning

const (
	queryListRules = `
		SELECT keyword, asset_id::text, priority
		FROM pinning_rules
		WHERE keyword <> ''
		ORDER BY priority DESC, created_at ASC
	`
)
