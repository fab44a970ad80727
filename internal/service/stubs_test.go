package service

import (
	"context"
	"sync"
	"time"

	"carbon_netzero/internal/models"
	"carbon_netzero/internal/repository"
)

// telemetryRepoStub records writes and answers reads from fixed data.
type telemetryRepoStub struct {
	mu sync.Mutex

	inserted []models.TelemetryRecord
	insertFn func(models.TelemetryRecord) error

	rows     []models.TelemetryRecord
	hotspots []models.Hotspot
	totals   repository.EmissionTotals
	err      error

	lastFilter repository.TelemetryFilter
	lastLimit  int
	lastDept   string
}

func (s *telemetryRepoStub) Insert(_ context.Context, r models.TelemetryRecord) (models.TelemetryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertFn != nil {
		if err := s.insertFn(r); err != nil {
			return models.TelemetryRecord{}, err
		}
	}
	if r.ID == "" {
		r.ID = "generated"
	}
	s.inserted = append(s.inserted, r)
	return r, nil
}

func (s *telemetryRepoStub) InsertBatch(_ context.Context, rs []models.TelemetryRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.inserted = append(s.inserted, rs...)
	return len(rs), nil
}

func (s *telemetryRepoStub) Query(_ context.Context, from, to time.Time, department string) ([]models.TelemetryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = repository.TelemetryFilter{From: from, To: to, Department: department}
	return s.rows, s.err
}

func (s *telemetryRepoStub) Recent(_ context.Context, f repository.TelemetryFilter, limit int) ([]models.TelemetryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter, s.lastLimit = f, limit
	return s.rows, s.err
}

func (s *telemetryRepoStub) Oldest(_ context.Context, department string, limit int) ([]models.TelemetryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDept, s.lastLimit = department, limit
	return s.rows, s.err
}

func (s *telemetryRepoStub) Hotspots(_ context.Context, f repository.TelemetryFilter, limit int) ([]models.Hotspot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter, s.lastLimit = f, limit
	return s.hotspots, s.err
}

func (s *telemetryRepoStub) Totals(_ context.Context, f repository.TelemetryFilter) (repository.EmissionTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = f
	return s.totals, s.err
}

func (s *telemetryRepoStub) insertedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inserted)
}

type offsetRepoStub struct {
	inserted []models.CarbonOffset
	list     []models.CarbonOffset
	total    float64
	err      error
	limit    int
}

func (s *offsetRepoStub) Insert(_ context.Context, o models.CarbonOffset) (models.CarbonOffset, error) {
	if s.err != nil {
		return models.CarbonOffset{}, s.err
	}
	s.inserted = append(s.inserted, o)
	return o, nil
}

func (s *offsetRepoStub) List(_ context.Context, limit int) ([]models.CarbonOffset, error) {
	s.limit = limit
	return s.list, s.err
}

func (s *offsetRepoStub) Total(context.Context) (float64, error) { return s.total, s.err }

// alertSinkStub collects alerts; accept=false simulates a full queue.
type alertSinkStub struct {
	mu     sync.Mutex
	alerts []models.EmissionAlert
	reject bool
}

func (a *alertSinkStub) Submit(al models.EmissionAlert) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.reject {
		return false
	}
	a.alerts = append(a.alerts, al)
	return true
}

func (a *alertSinkStub) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.alerts)
}
