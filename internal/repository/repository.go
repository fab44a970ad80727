package repository

import (
	"context"
	"database/sql"
	"time"

	"carbon_netzero/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TelemetryFilter narrows telemetry reads. Zero fields are ignored.
type TelemetryFilter struct {
	From       time.Time
	To         time.Time
	Department string
}

// EmissionTotals sums co2 and energy over a filtered set of readings.
type EmissionTotals struct {
	CO2     float64
	Energy  float64
	Samples int
}

type TelemetryRepo interface {
	Insert(ctx context.Context, r models.TelemetryRecord) (models.TelemetryRecord, error)
	InsertBatch(ctx context.Context, rs []models.TelemetryRecord) (int, error)
	// Query returns readings in [from, to], oldest first.
	Query(ctx context.Context, from, to time.Time, department string) ([]models.TelemetryRecord, error)
	// Recent returns up to limit readings, newest first.
	Recent(ctx context.Context, f TelemetryFilter, limit int) ([]models.TelemetryRecord, error)
	// Oldest returns up to limit readings, oldest first.
	Oldest(ctx context.Context, department string, limit int) ([]models.TelemetryRecord, error)
	Hotspots(ctx context.Context, f TelemetryFilter, limit int) ([]models.Hotspot, error)
	Totals(ctx context.Context, f TelemetryFilter) (EmissionTotals, error)
}

type OffsetRepo interface {
	Insert(ctx context.Context, o models.CarbonOffset) (models.CarbonOffset, error)
	List(ctx context.Context, limit int) ([]models.CarbonOffset, error)
	Total(ctx context.Context) (float64, error)
}

type Repository struct {
	Telemetry TelemetryRepo
	Offsets   OffsetRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Telemetry: NewTelemetrySQLite(db),
		Offsets:   NewOffsetSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
