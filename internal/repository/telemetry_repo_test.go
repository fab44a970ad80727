package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"carbon_netzero/internal/models"
)

var telemetryCols = []string{"id", "recorded_at", "department", "scope", "current", "voltage", "power", "energy", "co2_emissions"}

func TestTelemetrySQLite_Insert_FillsDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTelemetrySQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertTelemetrySQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Casting", 1, 2.0, 230.0, 460.0, 0.46, 0.0023).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Insert(context.Background(), models.TelemetryRecord{
		Department: "Casting", Scope: 1, Current: 2, Voltage: 230, Power: 460, Energy: 0.46, CO2Emissions: 0.0023,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
	if got.Timestamp.IsZero() || got.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", got.Timestamp)
	}
}

func TestTelemetrySQLite_Insert_KeepsTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	ts := time.Date(2025, 3, 1, 10, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

	mock.ExpectExec(regexp.QuoteMeta(insertTelemetrySQL)).
		WithArgs("id-1", "2025-03-01 05:00:00.000", "Forging", 2, 0.0, 0.0, 0.0, 0.0, 0.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := NewTelemetrySQLite(db).Insert(context.Background(), models.TelemetryRecord{
		ID: "id-1", Timestamp: ts, Department: "Forging", Scope: 2,
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
}

func TestTelemetrySQLite_Insert_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(insertTelemetrySQL)).WillReturnError(errors.New("disk full"))

	_, err := NewTelemetrySQLite(db).Insert(context.Background(), models.TelemetryRecord{Department: "X", Scope: 1})
	if err == nil || !strings.Contains(err.Error(), "insert telemetry") {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestTelemetrySQLite_InsertBatch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertTelemetrySQL))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := NewTelemetrySQLite(db).InsertBatch(context.Background(), []models.TelemetryRecord{
		{Department: "A", Scope: 1},
		{Department: "B", Scope: 2},
	})
	if err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
}

func TestTelemetrySQLite_InsertBatch_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertTelemetrySQL))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	_, err := NewTelemetrySQLite(db).InsertBatch(context.Background(), []models.TelemetryRecord{
		{Department: "A", Scope: 1},
		{Department: "B", Scope: 2},
	})
	if err == nil || !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("expected row error, got %v", err)
	}
}

func TestTelemetrySQLite_Query_Ascending(t *testing.T) {
	db, mock := newMockDB(t)
	from := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	to := from.Add(6 * time.Hour)

	rows := sqlmock.NewRows(telemetryCols).
		AddRow("a", "2025-03-01 02:05:00.000", "Casting", 1, 2.0, 230.0, 460.0, 0.46, 0.002).
		AddRow("b", "2025-03-01T03:00:00Z", "Forging", 1, 3.0, 230.0, 690.0, 0.69, 0.003)
	mock.ExpectQuery(regexp.QuoteMeta(selectTelemetrySQL + " WHERE recorded_at >= ? AND recorded_at <= ? ORDER BY recorded_at ASC")).
		WithArgs("2025-03-01 02:00:00.000", "2025-03-01 08:00:00.000").
		WillReturnRows(rows)

	got, err := NewTelemetrySQLite(db).Query(context.Background(), from, to, "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if want := time.Date(2025, 3, 1, 2, 5, 0, 0, time.UTC); !got[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", got[0].Timestamp, want)
	}
	if got[1].Department != "Forging" || got[1].CO2Emissions != 0.003 {
		t.Fatalf("unexpected record: %+v", got[1])
	}
}

func TestTelemetrySQLite_Query_BadTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows(telemetryCols).AddRow("a", "yesterday", "Casting", 1, 0.0, 0.0, 0.0, 0.0, 0.0)
	mock.ExpectQuery(regexp.QuoteMeta(selectTelemetrySQL + " ORDER BY recorded_at ASC")).WillReturnRows(rows)

	if _, err := NewTelemetrySQLite(db).Query(context.Background(), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatal("expected scan error")
	}
}

func TestTelemetrySQLite_Recent(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows(telemetryCols).AddRow("z", "2025-03-01 09:00:00.000", "Melting", 3, 1.0, 230.0, 210.0, 0.3, 0.4)
	mock.ExpectQuery(regexp.QuoteMeta(selectTelemetrySQL + " WHERE department = ? ORDER BY recorded_at DESC LIMIT ?")).
		WithArgs("Melting", 10).
		WillReturnRows(rows)

	got, err := NewTelemetrySQLite(db).Recent(context.Background(), TelemetryFilter{Department: " Melting "}, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Scope != 3 {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestTelemetrySQLite_Oldest(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectTelemetrySQL + " ORDER BY recorded_at ASC LIMIT ?")).
		WithArgs(5000).
		WillReturnRows(sqlmock.NewRows(telemetryCols))

	got, err := NewTelemetrySQLite(db).Oldest(context.Background(), "", 5000)
	if err != nil {
		t.Fatalf("Oldest: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTelemetrySQLite_Hotspots(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"department", "total"}).
		AddRow("Melting", 4.2).
		AddRow("Forging", 1.5)
	mock.ExpectQuery(regexp.QuoteMeta(hotspotsSQL + " GROUP BY department ORDER BY total DESC LIMIT ?")).
		WithArgs(3).
		WillReturnRows(rows)

	got, err := NewTelemetrySQLite(db).Hotspots(context.Background(), TelemetryFilter{}, 3)
	if err != nil {
		t.Fatalf("Hotspots: %v", err)
	}
	if len(got) != 2 || got[0] != (models.Hotspot{Department: "Melting", TotalCO2: 4.2}) {
		t.Fatalf("unexpected hotspots: %+v", got)
	}
}

func TestTelemetrySQLite_Totals(t *testing.T) {
	db, mock := newMockDB(t)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(totalsSQL + " WHERE recorded_at >= ? AND department = ?")).
		WithArgs("2025-01-01 00:00:00.000", "Casting").
		WillReturnRows(sqlmock.NewRows([]string{"co2", "energy", "n"}).AddRow(12.5, 300.0, 40))

	got, err := NewTelemetrySQLite(db).Totals(context.Background(), TelemetryFilter{From: from, Department: "Casting"})
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got != (EmissionTotals{CO2: 12.5, Energy: 300, Samples: 40}) {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestTelemetrySQLite_Totals_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(totalsSQL)).WillReturnError(errors.New("locked"))

	if _, err := NewTelemetrySQLite(db).Totals(context.Background(), TelemetryFilter{}); err == nil {
		t.Fatal("expected error")
	}
}
