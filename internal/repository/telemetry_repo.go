package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"carbon_netzero/internal/models"

	"github.com/google/uuid"
)

type TelemetrySQLite struct {
	db *sql.DB
}

func NewTelemetrySQLite(db *sql.DB) *TelemetrySQLite { return &TelemetrySQLite{db: db} }

var _ TelemetryRepo = (*TelemetrySQLite)(nil)

const (
	telemetryColumns = `id, recorded_at, department, scope, current, voltage, power, energy, co2_emissions`

	insertTelemetrySQL = `INSERT INTO telemetry (` + telemetryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectTelemetrySQL = `SELECT ` + telemetryColumns + ` FROM telemetry`
	hotspotsSQL        = `SELECT department, COALESCE(SUM(co2_emissions), 0) AS total FROM telemetry`
	totalsSQL          = `SELECT COALESCE(SUM(co2_emissions), 0), COALESCE(SUM(energy), 0), COUNT(*) FROM telemetry`
)

// prepare fills the ID and normalizes the timestamp to UTC, defaulting to now.
func prepare(r models.TelemetryRecord) models.TelemetryRecord {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	r.Timestamp = r.Timestamp.UTC()
	return r
}

func telemetryArgs(r models.TelemetryRecord) []any {
	return []any{r.ID, formatTS(r.Timestamp), r.Department, r.Scope, r.Current, r.Voltage, r.Power, r.Energy, r.CO2Emissions}
}

// Insert stores r and returns it with ID and timestamp filled.
func (r *TelemetrySQLite) Insert(ctx context.Context, rec models.TelemetryRecord) (models.TelemetryRecord, error) {
	rec = prepare(rec)
	if _, err := r.db.ExecContext(ctx, insertTelemetrySQL, telemetryArgs(rec)...); err != nil {
		return models.TelemetryRecord{}, fmt.Errorf("insert telemetry for %q: %w", rec.Department, err)
	}
	return rec, nil
}

// InsertBatch stores rs in one transaction.
func (r *TelemetrySQLite) InsertBatch(ctx context.Context, rs []models.TelemetryRecord) (int, error) {
	if len(rs) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin telemetry batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertTelemetrySQL)
	if err != nil {
		return 0, fmt.Errorf("prepare telemetry insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range rs {
		if _, err := stmt.ExecContext(ctx, telemetryArgs(prepare(rec))...); err != nil {
			return 0, fmt.Errorf("insert telemetry row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit telemetry batch: %w", err)
	}
	return len(rs), nil
}

func (r *TelemetrySQLite) Query(ctx context.Context, from, to time.Time, department string) ([]models.TelemetryRecord, error) {
	where, args := filterClause(TelemetryFilter{From: from, To: to, Department: department})
	return r.list(ctx, selectTelemetrySQL+where+" ORDER BY recorded_at ASC", args)
}

func (r *TelemetrySQLite) Recent(ctx context.Context, f TelemetryFilter, limit int) ([]models.TelemetryRecord, error) {
	where, args := filterClause(f)
	return r.list(ctx, selectTelemetrySQL+where+" ORDER BY recorded_at DESC LIMIT ?", append(args, limit))
}

func (r *TelemetrySQLite) Oldest(ctx context.Context, department string, limit int) ([]models.TelemetryRecord, error) {
	where, args := filterClause(TelemetryFilter{Department: department})
	return r.list(ctx, selectTelemetrySQL+where+" ORDER BY recorded_at ASC LIMIT ?", append(args, limit))
}

// Hotspots ranks departments by summed co2, highest first.
func (r *TelemetrySQLite) Hotspots(ctx context.Context, f TelemetryFilter, limit int) ([]models.Hotspot, error) {
	where, args := filterClause(f)
	q := hotspotsSQL + where + " GROUP BY department ORDER BY total DESC LIMIT ?"
	rows, err := r.db.QueryContext(ctx, q, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("query hotspots: %w", err)
	}
	defer rows.Close()

	out := make([]models.Hotspot, 0, limit)
	for rows.Next() {
		var h models.Hotspot
		if err := rows.Scan(&h.Department, &h.TotalCO2); err != nil {
			return nil, fmt.Errorf("scan hotspot: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotspots: %w", err)
	}
	return out, nil
}

func (r *TelemetrySQLite) Totals(ctx context.Context, f TelemetryFilter) (EmissionTotals, error) {
	where, args := filterClause(f)
	var t EmissionTotals
	if err := r.db.QueryRowContext(ctx, totalsSQL+where, args...).Scan(&t.CO2, &t.Energy, &t.Samples); err != nil {
		return EmissionTotals{}, fmt.Errorf("query emission totals: %w", err)
	}
	return t, nil
}

func (r *TelemetrySQLite) list(ctx context.Context, q string, args []any) ([]models.TelemetryRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query telemetry: %w", err)
	}
	defer rows.Close()

	out := make([]models.TelemetryRecord, 0, 64)
	for rows.Next() {
		var (
			rec models.TelemetryRecord
			ts  sqlTime
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Department, &rec.Scope,
			&rec.Current, &rec.Voltage, &rec.Power, &rec.Energy, &rec.CO2Emissions); err != nil {
			return nil, fmt.Errorf("scan telemetry: %w", err)
		}
		rec.Timestamp = ts.Time
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telemetry: %w", err)
	}
	return out, nil
}

// filterClause builds a WHERE clause (with leading space) for f.
func filterClause(f TelemetryFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !f.From.IsZero() {
		conds = append(conds, "recorded_at >= ?")
		args = append(args, formatTS(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "recorded_at <= ?")
		args = append(args, formatTS(f.To))
	}
	if dep := strings.TrimSpace(f.Department); dep != "" {
		conds = append(conds, "department = ?")
		args = append(args, dep)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
