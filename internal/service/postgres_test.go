package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockService(t *testing.T) (*PostgresService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresServiceFromDB(db), mock
}

func TestExecuteQueryNormalizesValues(t *testing.T) {
	svc, mock := newMockService(t)

	invoiceDate := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	cols := []*sqlmock.Column{
		sqlmock.NewColumn("name").OfType("VARCHAR", ""),
		sqlmock.NewColumn("total").OfType("NUMERIC", []byte("0")),
		sqlmock.NewColumn("invoice_date").OfType("TIMESTAMP", time.Time{}),
		sqlmock.NewColumn("note").OfType("VARCHAR", "").Nullable(true),
	}
	rows := sqlmock.NewRowsWithColumnDefinition(cols...).
		AddRow("Acme Corp", []byte("12.50"), invoiceDate, nil)

	query := "SELECT name, total, invoice_date, note FROM invoices"
	mock.ExpectQuery(query).WillReturnRows(rows)

	result, err := svc.ExecuteQuery(context.Background(), query)
	if err != nil {
		t.Fatalf("ExecuteQuery: %v", err)
	}

	if len(result.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Data))
	}
	row := result.Data[0]

	if row["name"] != "Acme Corp" {
		t.Errorf("name: got %v", row["name"])
	}
	if total, ok := row["total"].(float64); !ok || total != 12.5 {
		t.Errorf("numeric 12.50 should normalize to float64 12.5, got %T %v", row["total"], row["total"])
	}
	if row["invoice_date"] != "2024-01-15T09:30:00Z" {
		t.Errorf("timestamp should normalize to ISO-8601, got %v", row["invoice_date"])
	}
	if row["note"] != nil {
		t.Errorf("null should stay null, got %v", row["note"])
	}

	wantCols := []string{"name", "total", "invoice_date", "note"}
	if len(result.Columns) != len(wantCols) {
		t.Fatalf("columns: got %v", result.Columns)
	}
	for i, c := range wantCols {
		if result.Columns[i] != c {
			t.Errorf("column order: position %d got %q, want %q", i, result.Columns[i], c)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestExecuteQueryPreservesRowOrder(t *testing.T) {
	svc, mock := newMockService(t)

	cols := []*sqlmock.Column{
		sqlmock.NewColumn("name").OfType("VARCHAR", ""),
		sqlmock.NewColumn("total").OfType("NUMERIC", []byte("0")),
	}
	rows := sqlmock.NewRowsWithColumnDefinition(cols...).
		AddRow("Zeta Supplies", []byte("300.00")).
		AddRow("Acme Corp", []byte("150.25"))

	query := "SELECT name, total FROM spend"
	mock.ExpectQuery(query).WillReturnRows(rows)

	result, err := svc.ExecuteQuery(context.Background(), query)
	if err != nil {
		t.Fatalf("ExecuteQuery: %v", err)
	}
	// No implicit sort: database order is preserved.
	if result.Data[0]["name"] != "Zeta Supplies" || result.Data[1]["name"] != "Acme Corp" {
		t.Errorf("row order changed: %v", result.Data)
	}
	if result.Data[1]["total"] != 150.25 {
		t.Errorf("second row total: got %v", result.Data[1]["total"])
	}
}

func TestExecuteQueryEmptyResult(t *testing.T) {
	svc, mock := newMockService(t)

	cols := []*sqlmock.Column{sqlmock.NewColumn("id").OfType("INT8", int64(0))}
	query := "SELECT id FROM payments WHERE 1 = 0"
	mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRowsWithColumnDefinition(cols...))

	result, err := svc.ExecuteQuery(context.Background(), query)
	if err != nil {
		t.Fatalf("ExecuteQuery: %v", err)
	}
	if result.Data == nil {
		t.Error("empty result should be an empty slice, not nil")
	}
	if result.RowCount != 0 {
		t.Errorf("row count: got %d", result.RowCount)
	}
}

func TestExecuteQueryDatabaseError(t *testing.T) {
	svc, mock := newMockService(t)

	query := "SELECT nope FROM nowhere"
	mock.ExpectQuery(query).WillReturnError(errors.New(`relation "nowhere" does not exist`))

	_, err := svc.ExecuteQuery(context.Background(), query)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error should carry the database message, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestNormalizeValueScalars(t *testing.T) {
	if got := normalizeValue(int64(7), "INT8"); got != int64(7) {
		t.Errorf("int64 should pass through, got %v", got)
	}
	if got := normalizeValue(true, "BOOL"); got != true {
		t.Errorf("bool should pass through, got %v", got)
	}
	if got := normalizeValue([]byte("plain"), "TEXT"); got != "plain" {
		t.Errorf("bytes should become string, got %v", got)
	}
	if got := normalizeValue("12.50", "NUMERIC"); got != 12.5 {
		t.Errorf("numeric string should become float64, got %v", got)
	}
	if got := normalizeValue(nil, "NUMERIC"); got != nil {
		t.Errorf("nil should stay nil, got %v", got)
	}
}
