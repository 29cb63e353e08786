package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/garden"
)

func TestSimulateSample(t *testing.T) {
	profile := garden.Profile{
		WaterFrequencyDays:       2,
		FertilizeFrequencyDays:   14,
		PruneFrequencyDays:       30,
		SunlightFrequencyDays:    1,
		MaxHeightCm:              250,
		GrowthRatePercentPerWeek: 10,
	}
	planted := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	plant := &types.Plant{ID: uuid.New(), PlantingDate: planted}

	fresh := simulateSample(plant, profile, planted)
	if fresh.HeightCm != 0 {
		t.Fatalf("height at planting = %v, want 0", fresh.HeightCm)
	}
	if fresh.Stage != types.StageSeedling {
		t.Fatalf("stage at planting = %s, want %s", fresh.Stage, types.StageSeedling)
	}
	if fresh.Source != types.SourceSimulated {
		t.Fatalf("source = %s, want simulated", fresh.Source)
	}
	if fresh.PlantID != plant.ID {
		t.Fatalf("sample not bound to plant")
	}

	// 16 weeks at 10%/week puts the plant in the 80-100% band.
	grown := simulateSample(plant, profile, planted.AddDate(0, 0, 16*7))
	if grown.HeightCm <= fresh.HeightCm || grown.HeightCm > profile.MaxHeightCm {
		t.Fatalf("height after 16 weeks = %v", grown.HeightCm)
	}
	pct := garden.Percentage(grown.HeightCm, profile.MaxHeightCm)
	if pct < 80 || pct >= 100 {
		t.Fatalf("growth percentage after 16 weeks = %v, want in [80,100)", pct)
	}
	if grown.Stage != types.StageBlooming {
		t.Fatalf("stage after 16 weeks = %s, want %s", grown.Stage, types.StageBlooming)
	}
}
