package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"carbon_netzero/internal/models"

	"github.com/google/uuid"
)

type OffsetSQLite struct {
	db *sql.DB
}

func NewOffsetSQLite(db *sql.DB) *OffsetSQLite { return &OffsetSQLite{db: db} }

var _ OffsetRepo = (*OffsetSQLite)(nil)

const (
	insertOffsetSQL = `INSERT INTO offsets (id, description, amount, recorded_at) VALUES (?, ?, ?, ?)`
	listOffsetsSQL  = `SELECT id, description, amount, recorded_at FROM offsets ORDER BY recorded_at DESC LIMIT ?`
	totalOffsetsSQL = `SELECT COALESCE(SUM(amount), 0) FROM offsets`
)

func (r *OffsetSQLite) Insert(ctx context.Context, o models.CarbonOffset) (models.CarbonOffset, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now()
	}
	o.Timestamp = o.Timestamp.UTC()

	if _, err := r.db.ExecContext(ctx, insertOffsetSQL, o.ID, o.Description, o.Amount, formatTS(o.Timestamp)); err != nil {
		return models.CarbonOffset{}, fmt.Errorf("insert offset: %w", err)
	}
	return o, nil
}

// List returns up to limit offsets, newest first.
func (r *OffsetSQLite) List(ctx context.Context, limit int) ([]models.CarbonOffset, error) {
	rows, err := r.db.QueryContext(ctx, listOffsetsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query offsets: %w", err)
	}
	defer rows.Close()

	out := make([]models.CarbonOffset, 0, 16)
	for rows.Next() {
		var (
			o  models.CarbonOffset
			ts sqlTime
		)
		if err := rows.Scan(&o.ID, &o.Description, &o.Amount, &ts); err != nil {
			return nil, fmt.Errorf("scan offset: %w", err)
		}
		o.Timestamp = ts.Time
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offsets: %w", err)
	}
	return out, nil
}

// Total sums every recorded offset.
func (r *OffsetSQLite) Total(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, totalOffsetsSQL).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum offsets: %w", err)
	}
	return total, nil
}
