package service

import (
	"context"
	"time"

	"carbon_netzero/internal/advice"
	"carbon_netzero/internal/logger"
	"carbon_netzero/internal/models"
	"carbon_netzero/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Emissions covers telemetry ingest and the read views over it.
type Emissions interface {
	Ingest(ctx context.Context, r models.TelemetryRecord) (models.TelemetryRecord, error)
	Recent(ctx context.Context, q RecentQuery) ([]models.TelemetryRecord, error)
	Hotspots(ctx context.Context) ([]models.Hotspot, error)
	Predict(ctx context.Context, minutesAhead int, department string) (models.EmissionForecast, error)
	// LiveSnapshot aggregates the last window of telemetry for streaming.
	LiveSnapshot(ctx context.Context, window time.Duration) (models.Snapshot, error)
}

type Offsets interface {
	Record(ctx context.Context, o models.CarbonOffset) (models.CarbonOffset, error)
	List(ctx context.Context) ([]models.CarbonOffset, error)
}

type Reports interface {
	Summary(ctx context.Context, f repository.TelemetryFilter) (models.ReportSummary, error)
}

// Advice is satisfied by *advice.Pipeline.
type Advice interface {
	Strategies(ctx context.Context, req advice.Request) advice.Outcome
}

type Seeder interface {
	Seed(ctx context.Context) (int, error)
}

// Simulator runs the background loop that feeds synthetic telemetry.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// AlertSink accepts threshold alerts without blocking. *notify.Dispatcher
// satisfies it.
type AlertSink interface {
	Submit(a models.EmissionAlert) bool
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Emissions
	Offsets
	Reports
	Advice
	Seeder
	Simulator
}

// Deps carries everything beyond the repositories that services need.
type Deps struct {
	Log            *logger.Logger
	Pipeline       *advice.Pipeline
	Alerts         AlertSink
	AlertThreshold float64
	Auth           AuthConfig
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, d Deps) *Service {
	emissions := NewEmissionsService(repos.Telemetry, d.Alerts, d.AlertThreshold, d.Log)
	return &Service{
		Authorization: NewAuthService(repos.Auth, d.Auth),
		Emissions:     emissions,
		Offsets:       NewOffsetsService(repos.Offsets),
		Reports:       NewReportsService(repos.Telemetry, repos.Offsets),
		Advice:        d.Pipeline,
		Seeder:        NewSeedService(repos.Telemetry),
		Simulator:     NewSimulatorService(emissions, d.Log),
	}
}
