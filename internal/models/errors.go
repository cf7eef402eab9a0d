package models

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the single failure shape for every error path.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func WriteError(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Detail: detail})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
