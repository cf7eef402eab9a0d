package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vannaai/vannaai/internal/handler"
	"github.com/vannaai/vannaai/internal/models"
)

func TestHealthAlwaysOK(t *testing.T) {
	// The health probe makes no downstream calls, so it answers ok even when
	// the database and the LLM provider are down.
	h := handler.NewHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status: got %q", resp.Status)
	}
	if resp.Service != "vanna-ai" {
		t.Errorf("service: got %q", resp.Service)
	}
}
