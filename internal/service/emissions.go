package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"carbon_netzero/internal/advice"
	"carbon_netzero/internal/logger"
	"carbon_netzero/internal/models"
	"carbon_netzero/internal/repository"

	"github.com/google/uuid"
)

// Query bounds for the read views.
const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
	HotspotLimit       = 3

	DefaultMinutesAhead = 60
	MaxMinutesAhead     = 24 * 60
	maxForecastSamples  = 5000

	InsufficientDataMessage = "Insufficient data"
)

// ErrInvalidTelemetry wraps every ingest validation failure.
var ErrInvalidTelemetry = errors.New("invalid telemetry")

// RecentQuery filters the recent readings view.
type RecentQuery struct {
	Limit      int
	From       time.Time
	To         time.Time
	Department string
}

type EmissionsService struct {
	repo      repository.TelemetryRepo
	alerts    AlertSink
	threshold float64
	log       *logger.Logger
	now       func() time.Time
}

// NewEmissionsService returns the telemetry service. Alerts are raised for
// readings at or above threshold when threshold > 0 and alerts is non-nil.
func NewEmissionsService(repo repository.TelemetryRepo, alerts AlertSink, threshold float64, log *logger.Logger) *EmissionsService {
	return &EmissionsService{
		repo:      repo,
		alerts:    alerts,
		threshold: threshold,
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

// Ingest validates and stores one reading, then raises a threshold alert if
// needed. Alerting never fails the ingest.
func (s *EmissionsService) Ingest(ctx context.Context, r models.TelemetryRecord) (models.TelemetryRecord, error) {
	r.Department = strings.TrimSpace(r.Department)
	if err := validateTelemetry(r); err != nil {
		return models.TelemetryRecord{}, err
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = s.now()
	}
	r.Timestamp = r.Timestamp.UTC()

	stored, err := s.repo.Insert(ctx, r)
	if err != nil {
		return models.TelemetryRecord{}, fmt.Errorf("store telemetry: %w", err)
	}
	s.maybeAlert(stored)
	return stored, nil
}

func (s *EmissionsService) maybeAlert(r models.TelemetryRecord) {
	if s.alerts == nil || s.threshold <= 0 || r.CO2Emissions < s.threshold {
		return
	}
	a := models.EmissionAlert{
		ID:         uuid.NewString(),
		Department: r.Department,
		Scope:      r.Scope,
		Value:      r.CO2Emissions,
		Threshold:  s.threshold,
		Timestamp:  r.Timestamp,
	}
	if s.alerts.Submit(a) {
		s.log.Infow("emission alert queued", "department", a.Department, "value", a.Value, "threshold", a.Threshold)
	}
}

func validateTelemetry(r models.TelemetryRecord) error {
	if r.Department == "" {
		return fmt.Errorf("%w: department is required", ErrInvalidTelemetry)
	}
	if r.Scope < 1 || r.Scope > 3 {
		return fmt.Errorf("%w: scope must be 1, 2 or 3", ErrInvalidTelemetry)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"current", r.Current},
		{"voltage", r.Voltage},
		{"power", r.Power},
		{"energy", r.Energy},
		{"co2_emissions", r.CO2Emissions},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidTelemetry, f.name)
		}
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidTelemetry, f.name)
		}
	}
	return nil
}

// Recent returns the newest readings matching q. Limit is clamped to
// [1, MaxRecentLimit]; zero selects DefaultRecentLimit.
func (s *EmissionsService) Recent(ctx context.Context, q RecentQuery) ([]models.TelemetryRecord, error) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	limit = clampInt(limit, 1, MaxRecentLimit)
	return s.repo.Recent(ctx, repository.TelemetryFilter{From: q.From, To: q.To, Department: q.Department}, limit)
}

// Hotspots returns the top departments by cumulative CO2.
func (s *EmissionsService) Hotspots(ctx context.Context) ([]models.Hotspot, error) {
	return s.repo.Hotspots(ctx, repository.TelemetryFilter{}, HotspotLimit)
}

// Predict fits CO2 against minutes since the first stored reading and
// extrapolates minutesAhead past the last one.
func (s *EmissionsService) Predict(ctx context.Context, minutesAhead int, department string) (models.EmissionForecast, error) {
	if minutesAhead == 0 {
		minutesAhead = DefaultMinutesAhead
	}
	minutesAhead = clampInt(minutesAhead, 1, MaxMinutesAhead)

	recs, err := s.repo.Oldest(ctx, department, maxForecastSamples)
	if err != nil {
		return models.EmissionForecast{}, fmt.Errorf("load forecast history: %w", err)
	}
	if len(recs) < 2 {
		return models.EmissionForecast{Message: InsufficientDataMessage, Samples: len(recs)}, nil
	}

	t0 := recs[0].Timestamp
	xs := make([]float64, len(recs))
	ys := make([]float64, len(recs))
	for i, r := range recs {
		xs[i] = r.Timestamp.Sub(t0).Minutes()
		ys[i] = r.CO2Emissions
	}
	slope, intercept := linearFit(xs, ys)
	predicted := slope*(xs[len(xs)-1]+float64(minutesAhead)) + intercept

	return models.EmissionForecast{
		Prediction:   &predicted,
		Slope:        &slope,
		Intercept:    &intercept,
		MinutesAhead: minutesAhead,
		Samples:      len(recs),
	}, nil
}

// LiveSnapshot aggregates readings from the last window.
func (s *EmissionsService) LiveSnapshot(ctx context.Context, window time.Duration) (models.Snapshot, error) {
	now := s.now().UTC()
	recs, err := s.repo.Query(ctx, now.Add(-window), now, "")
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load live window: %w", err)
	}
	hours := int(math.Ceil(window.Hours()))
	return advice.BuildSnapshot(hours, recs), nil
}

// linearFit is ordinary least squares. A degenerate x spread yields slope 0.
func linearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	if denom := n*sumXX - sumX*sumX; denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
	}
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
