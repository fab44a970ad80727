package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"carbon_netzero/internal/models"
	"carbon_netzero/internal/repository"
)

// Departments covered by the sample data set.
var sampleDepartments = []string{"Forging", "Casting", "Assembly", "Packaging"}

const (
	sampleReadings  = 80
	meltingReadings = 10
	// kg CO2e per kWh used for synthetic readings
	sampleEmissionFactor = 0.005
)

type SeedService struct {
	repo repository.TelemetryRepo
	now  func() time.Time
	rng  *rand.Rand
}

func NewSeedService(repo repository.TelemetryRepo) *SeedService {
	return &SeedService{
		repo: repo,
		now:  time.Now,
		rng:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// Seed inserts the demo data set and returns how many rows were written.
func (s *SeedService) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.InsertBatch(ctx, SampleData(s.now(), s.rng))
	if err != nil {
		return 0, fmt.Errorf("seed sample telemetry: %w", err)
	}
	return n, nil
}

// SampleData builds one reading per minute over the last 80 minutes, cycling
// through four departments, plus ten heavier scope-3 Melting readings five
// minutes apart.
func SampleData(now time.Time, rng *rand.Rand) []models.TelemetryRecord {
	out := make([]models.TelemetryRecord, 0, sampleReadings+meltingReadings)
	for i := 0; i < sampleReadings; i++ {
		current := 2 + rng.Float64()*3
		voltage := 220 + rng.Float64()*20
		power := current * voltage * 0.5
		energy := power / 1000
		out = append(out, models.TelemetryRecord{
			Timestamp:    now.Add(-time.Duration(sampleReadings-i) * time.Minute).UTC(),
			Department:   sampleDepartments[i%len(sampleDepartments)],
			Scope:        i%3 + 1,
			Current:      current,
			Voltage:      voltage,
			Power:        power,
			Energy:       energy,
			CO2Emissions: energy * sampleEmissionFactor,
		})
	}
	for i := 0; i < meltingReadings; i++ {
		out = append(out, models.TelemetryRecord{
			Timestamp:    now.Add(-time.Duration(i) * 5 * time.Minute).UTC(),
			Department:   "Melting",
			Scope:        3,
			Current:      1 + rng.Float64(),
			Voltage:      230,
			Power:        200 + rng.Float64()*50,
			Energy:       0.3 + rng.Float64()*0.1,
			CO2Emissions: 0.3 + rng.Float64()*0.2,
		})
	}
	return out
}
