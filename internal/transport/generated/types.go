// Package generated holds the HTTP contract of the lookup API: wire types,
// the server interface and chi route registration with parameter binding.
package generated

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Defines values for ErrorResponseCode.
const (
	ErrorResponseCodeBadRequest    ErrorResponseCode = "bad_request"
	ErrorResponseCodeInternalError ErrorResponseCode = "internal_error"
	ErrorResponseCodeNotFound      ErrorResponseCode = "not_found"
)

// ErrorResponse is returned on request and server errors.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// UpstreamErrorResponse is returned when the museum backend fails.
type UpstreamErrorResponse struct {
	Message string `json:"message"`
}

// LookupResponse answers an artwork lookup. Link holds the image link on a
// match and a human-readable explanation otherwise.
type LookupResponse struct {
	Link       string `json:"link"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Total      int    `json:"total"`
	MatchCount int    `json:"matchCount"`
	Museum     string `json:"museum"`
}

// LookupParams defines parameters for Lookup.
type LookupParams struct {
	// Title is matched case-insensitively as a substring of record titles.
	Title *string `form:"title,omitempty" json:"title,omitempty"`
	// Artist is passed to the museum search.
	Artist *string `form:"artist,omitempty" json:"artist,omitempty"`
}

// HealthResponseStatus is the aggregated health status.
type HealthResponseStatus string

// Defines values for HealthResponseStatus.
const (
	HealthResponseStatusOk       HealthResponseStatus = "ok"
	HealthResponseStatusDegraded HealthResponseStatus = "degraded"
	HealthResponseStatusError    HealthResponseStatus = "error"
)

// HealthResponseChecks is a single component check outcome.
type HealthResponseChecks string

// Defines values for HealthResponseChecks.
const (
	HealthResponseChecksOk    HealthResponseChecks = "ok"
	HealthResponseChecksError HealthResponseChecks = "error"
)

// HealthResponse reports component health.
type HealthResponse struct {
	Status HealthResponseStatus            `json:"status"`
	Checks map[string]HealthResponseChecks `json:"checks"`
}

// VersionResponse reports build information.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}
