package models

import "strings"

// QueryRequest for POST /query (natural language question)
type QueryRequest struct {
	Query string `json:"query"`
}

// Validate rejects requests with a missing or blank query field before any
// component runs.
func (r *QueryRequest) Validate() string {
	if strings.TrimSpace(r.Query) == "" {
		return "query field is required"
	}
	return ""
}
