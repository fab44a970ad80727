package service

import (
	"context"
	"fmt"
	"math"

	"carbon_netzero/internal/models"
	"carbon_netzero/internal/repository"

	"golang.org/x/sync/errgroup"
)

type ReportsService struct {
	telemetry repository.TelemetryRepo
	offsets   repository.OffsetRepo
}

func NewReportsService(telemetry repository.TelemetryRepo, offsets repository.OffsetRepo) *ReportsService {
	return &ReportsService{telemetry: telemetry, offsets: offsets}
}

// Summary computes net-zero progress. Emissions honor f; offsets are counted
// in full.
func (s *ReportsService) Summary(ctx context.Context, f repository.TelemetryFilter) (models.ReportSummary, error) {
	var (
		totals   repository.EmissionTotals
		offsets  float64
		hotspots []models.Hotspot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if totals, err = s.telemetry.Totals(gctx, f); err != nil {
			return fmt.Errorf("emission totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if offsets, err = s.offsets.Total(gctx); err != nil {
			return fmt.Errorf("offset totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if hotspots, err = s.telemetry.Hotspots(gctx, f, HotspotLimit); err != nil {
			return fmt.Errorf("hotspots: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.ReportSummary{}, err
	}

	sum := models.ReportSummary{
		TotalCO2:     totals.CO2,
		TotalEnergy:  totals.Energy,
		TotalOffsets: offsets,
		NetCO2:       math.Max(0, totals.CO2-offsets),
		Hotspots:     hotspots,
	}
	if totals.CO2 > 0 {
		sum.Progress = math.Min(100, offsets/totals.CO2*100)
	}
	if sum.Hotspots == nil {
		sum.Hotspots = []models.Hotspot{}
	}
	return sum, nil
}
