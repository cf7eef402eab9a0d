package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vannaai/vannaai/internal/models"
	"github.com/vannaai/vannaai/internal/security"
	"github.com/vannaai/vannaai/internal/service"
)

// SQLGenerator produces a candidate SQL string for a natural-language question.
type SQLGenerator interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
}

// QueryExecutor runs a screened SQL statement and returns normalized rows.
type QueryExecutor interface {
	ExecuteQuery(ctx context.Context, sqlText string) (*service.QueryResult, error)
}

// QueryHandler handles POST /query: question in, generated SQL plus rows out.
type QueryHandler struct {
	gen         SQLGenerator
	db          QueryExecutor
	sqlVal      *security.SQLValidator
	dataMasker  *security.DataMasker
	auditLogger *security.AuditLogger
	enableMask  bool
}

func NewQueryHandler(
	gen SQLGenerator,
	db QueryExecutor,
	sqlVal *security.SQLValidator,
	dataMasker *security.DataMasker,
	auditLogger *security.AuditLogger,
	enableMask bool,
) *QueryHandler {
	return &QueryHandler{
		gen:         gen,
		db:          db,
		sqlVal:      sqlVal,
		dataMasker:  dataMasker,
		auditLogger: auditLogger,
		enableMask:  enableMask,
	}
}

// Query handles POST /query.
//
// Example questions:
//   - "Show me total spend by vendor"
//   - "What are the top 5 customers by invoice amount?"
//   - "How many invoices were paid in January?"
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if msg := req.Validate(); msg != "" {
		models.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	apiKey := r.Header.Get("X-API-Key")
	start := time.Now()

	sqlText, err := h.gen.GenerateSQL(r.Context(), req.Query)
	if err != nil {
		h.auditLogger.LogQuery(req.Query, "", apiKey, time.Since(start).Milliseconds(), 0, false, err.Error())
		models.WriteError(w, http.StatusInternalServerError, "Error generating SQL: "+err.Error())
		return
	}

	// Keyword gate: the database is never contacted for a rejected statement.
	if msg := h.sqlVal.Validate(sqlText); msg != "" {
		h.auditLogger.LogQuery(req.Query, sqlText, apiKey, time.Since(start).Milliseconds(), 0, false, msg)
		models.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.db.ExecuteQuery(r.Context(), sqlText)
	if err != nil {
		h.auditLogger.LogQuery(req.Query, sqlText, apiKey, time.Since(start).Milliseconds(), 0, false, err.Error())
		models.WriteError(w, http.StatusInternalServerError, "Error executing SQL: "+err.Error())
		return
	}

	data := result.Data
	if h.enableMask {
		data = h.dataMasker.MaskRows(data)
	}

	// Rows go out in database column order, not map-key order.
	rows := make([]models.ResultRow, len(data))
	for i, row := range data {
		rows[i] = models.NewResultRow(result.Columns, row)
	}

	h.auditLogger.LogQuery(req.Query, sqlText, apiKey, time.Since(start).Milliseconds(), len(rows), true, "")

	models.WriteJSON(w, http.StatusOK, models.QueryResponse{
		Query:   sqlText,
		Results: rows,
		Error:   nil,
	})
}
