package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger records query lifecycle events with hashed identifiers so raw
// SQL and API keys never land in the log stream.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogQuery records one natural-language query round trip.
func (a *AuditLogger) LogQuery(
	question, sql, apiKey string,
	executionTimeMs int64,
	rowCount int,
	success bool,
	errMsg string,
) {
	if !a.enabled {
		return
	}
	sqlHash := ""
	if sql != "" {
		sqlHash = hashStr(sql)[:16]
	}

	evt := log.Info().
		Str("event", "query_audit").
		Str("question_hash", hashStr(question)[:16]).
		Str("sql_hash", sqlHash).
		Str("api_key_hash", hashStr(apiKey)[:16]).
		Int64("execution_time_ms", executionTimeMs).
		Int("row_count", rowCount).
		Bool("success", success)

	if errMsg != "" {
		evt = evt.Str("error", errMsg)
	}
	evt.Msg("audit")
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
