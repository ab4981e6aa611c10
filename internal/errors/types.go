package errors

// standardized error body
type ErrorResponse struct {
	Error   string            `json:"error"`             // error code (e.g., "not_found", "validation_error")
	Message string            `json:"message"`           // user-friendly message
	Details string            `json:"details,omitempty"` // optional details (sanitized in production)
	Fields  map[string]string `json:"fields,omitempty"`  // per-field validation failures
}

type ErrorInfo struct {
	category  string
	sanitized string
}
