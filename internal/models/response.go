package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// QueryResponse is returned by POST /query on success. Error is always null on
// success and is kept in the shape for wire compatibility with older clients;
// failures are reported as ErrorResponse with a distinct status code instead.
type QueryResponse struct {
	Query   string      `json:"query"`
	Results []ResultRow `json:"results"`
	Error   *string     `json:"error"`
}
