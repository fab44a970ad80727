package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"carbon_netzero/internal/logger"
	"carbon_netzero/internal/models"
)

// Synthetic load profile per department.
type loadProfile struct {
	department string
	scope      int
	baseAmps   float64
	volts      float64
}

var simulatedPlant = []loadProfile{
	{department: "Forging", scope: 1, baseAmps: 12, volts: 400},
	{department: "Casting", scope: 1, baseAmps: 9, volts: 400},
	{department: "Assembly", scope: 2, baseAmps: 4, volts: 230},
	{department: "Packaging", scope: 2, baseAmps: 2.5, volts: 230},
	{department: "Melting", scope: 3, baseAmps: 20, volts: 400},
}

const (
	// kg CO2e per kWh, roughly a coal-heavy grid
	gridEmissionFactor = 0.82
	// chance per reading of a load spike
	spikeProbability = 0.02
	spikeFactor      = 6.0
)

// Ingester is the write path the simulator feeds.
type Ingester interface {
	Ingest(ctx context.Context, r models.TelemetryRecord) (models.TelemetryRecord, error)
}

// SimulatorService produces synthetic plant telemetry on a ticker.
type SimulatorService struct {
	ingest Ingester
	log    *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatorService(ingest Ingester, log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		ingest: ingest,
		log:    logger.OrNop(log),
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1)),
	}
}

// Run ticks at the given interval until ctx is canceled, ingesting one
// reading per department each tick.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now, tick)
		}
	}
}

// step ingests one reading per department covering the elapsed interval.
func (s *SimulatorService) step(ctx context.Context, now time.Time, interval time.Duration) int {
	stored := 0
	for _, p := range simulatedPlant {
		r := s.reading(p, now, interval)
		if _, err := s.ingest.Ingest(ctx, r); err != nil {
			s.log.Warnw("simulator ingest failed", "department", p.department, "err", err)
			continue
		}
		stored++
	}
	return stored
}

func (s *SimulatorService) reading(p loadProfile, now time.Time, interval time.Duration) models.TelemetryRecord {
	s.mu.Lock()
	noise := 0.85 + s.rng.Float64()*0.3
	spike := s.rng.Float64() < spikeProbability
	s.mu.Unlock()

	amps := p.baseAmps * noise
	if spike {
		amps *= spikeFactor
	}
	power := amps * p.volts
	energy := power / 1000 * interval.Hours()
	return models.TelemetryRecord{
		Timestamp:    now.UTC(),
		Department:   p.department,
		Scope:        p.scope,
		Current:      amps,
		Voltage:      p.volts,
		Power:        power,
		Energy:       energy,
		CO2Emissions: energy * gridEmissionFactor,
	}
}
