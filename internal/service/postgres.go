package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresService executes read statements against the application database.
// The *sql.DB pool is process-wide; each request checks out its own session.
type PostgresService struct {
	db *sql.DB
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewPostgresService opens the connection pool and verifies connectivity once
// at startup.
func NewPostgresService(ctx context.Context, cfg DBConfig) (*PostgresService, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is required")
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresService{db: db}, nil
}

// NewPostgresServiceFromDB wraps an existing pool. Used by tests to substitute
// a mock database.
func NewPostgresServiceFromDB(db *sql.DB) *PostgresService {
	return &PostgresService{db: db}
}

// Close releases the connection pool.
func (s *PostgresService) Close() error {
	return s.db.Close()
}

// TestConnection verifies database connectivity.
func (s *PostgresService) TestConnection(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// QueryResult holds normalized rows in database order.
type QueryResult struct {
	Data            []map[string]any
	Columns         []string
	RowCount        int
	ExecutionTimeMs int64
}

// ExecuteQuery runs one read statement on a dedicated session and returns all
// rows with JSON-safe values. The session is released on every exit path.
// Callers are responsible for screening the statement first; no validation
// happens here.
func (s *PostgresService) ExecuteQuery(ctx context.Context, sqlText string) (*QueryResult, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire session: %w", err)
	}
	defer conn.Close()

	start := time.Now()
	rows, err := conn.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}
	dbTypes := make([]string, len(colTypes))
	for i, ct := range colTypes {
		dbTypes[i] = ct.DatabaseTypeName()
	}

	data := []map[string]any{}
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(raw[i], dbTypes[i])
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return &QueryResult{
		Data:            data,
		Columns:         columns,
		RowCount:        len(data),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// normalizeValue maps native driver values onto JSON-safe scalars: date/time
// values become ISO-8601 strings, arbitrary-precision decimals become float64,
// plain scalars and null pass through. Anything outside the known set is
// rendered as a string rather than guessed at.
func normalizeValue(v any, dbType string) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		s := string(val)
		if isDecimalType(dbType) {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
		return s
	case string:
		if isDecimalType(dbType) {
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return f
			}
		}
		return val
	case bool, int64, float64, int32, int:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func isDecimalType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "NUMERIC", "DECIMAL", "MONEY":
		return true
	}
	return false
}
