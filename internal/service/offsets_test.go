package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"carbon_netzero/internal/models"
)

func TestOffsetsService_Record(t *testing.T) {
	tests := []struct {
		name    string
		in      models.CarbonOffset
		wantErr bool
	}{
		{"ok", models.CarbonOffset{Description: " Solar PPA ", Amount: 120}, false},
		{"zero amount", models.CarbonOffset{Description: "Trees", Amount: 0}, false},
		{"blank description", models.CarbonOffset{Description: "  ", Amount: 1}, true},
		{"negative", models.CarbonOffset{Description: "x", Amount: -1}, true},
		{"NaN", models.CarbonOffset{Description: "x", Amount: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &offsetRepoStub{}
			got, err := NewOffsetsService(repo).Record(context.Background(), tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOffset) {
					t.Fatalf("expected ErrInvalidOffset, got %v", err)
				}
				if len(repo.inserted) != 0 {
					t.Fatal("invalid offset stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("Record: %v", err)
			}
			if got.Description == "" || got.Description[0] == ' ' {
				t.Fatalf("description not trimmed: %q", got.Description)
			}
		})
	}
}

func TestOffsetsService_List(t *testing.T) {
	repo := &offsetRepoStub{list: []models.CarbonOffset{{ID: "a"}}}
	got, err := NewOffsetsService(repo).List(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("List = %+v, %v", got, err)
	}
	if repo.limit != offsetListLimit {
		t.Fatalf("limit = %d", repo.limit)
	}
}
