package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"carbon_netzero/internal/models"
	"carbon_netzero/internal/repository"
)

const offsetListLimit = 200

// ErrInvalidOffset wraps offset validation failures.
var ErrInvalidOffset = errors.New("invalid offset")

type OffsetsService struct {
	repo repository.OffsetRepo
}

func NewOffsetsService(repo repository.OffsetRepo) *OffsetsService {
	return &OffsetsService{repo: repo}
}

func (s *OffsetsService) Record(ctx context.Context, o models.CarbonOffset) (models.CarbonOffset, error) {
	o.Description = strings.TrimSpace(o.Description)
	if o.Description == "" {
		return models.CarbonOffset{}, fmt.Errorf("%w: description is required", ErrInvalidOffset)
	}
	if math.IsNaN(o.Amount) || math.IsInf(o.Amount, 0) || o.Amount < 0 {
		return models.CarbonOffset{}, fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidOffset)
	}
	stored, err := s.repo.Insert(ctx, o)
	if err != nil {
		return models.CarbonOffset{}, fmt.Errorf("store offset: %w", err)
	}
	return stored, nil
}

// List returns the newest offsets.
func (s *OffsetsService) List(ctx context.Context) ([]models.CarbonOffset, error) {
	return s.repo.List(ctx, offsetListLimit)
}
