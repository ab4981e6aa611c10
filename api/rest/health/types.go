package health

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

type ReadyResponse struct {
	Status           string            `json:"status"`
	Checks           map[string]string `json:"checks"`
	MatchFunction    string            `json:"match_function"`
	CapabilityFilter bool              `json:"capability_filter"`
}
