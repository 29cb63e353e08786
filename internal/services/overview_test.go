package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
)

func TestMostCommonStage(t *testing.T) {
	now := time.Now().UTC()
	plantA := uuid.New()
	plantB := uuid.New()
	plantC := uuid.New()

	sample := func(plant uuid.UUID, stage types.GrowthStage, age time.Duration) *types.GrowthSample {
		return &types.GrowthSample{
			ID:         uuid.New(),
			PlantID:    plant,
			Stage:      stage,
			RecordedAt: now.Add(-age),
		}
	}

	// Newest-first ordering, as ListByOwner returns.
	samples := []*types.GrowthSample{
		sample(plantA, types.StageBlooming, time.Hour),
		sample(plantA, types.StageSeedling, 48*time.Hour),
		sample(plantB, types.StageBlooming, 2*time.Hour),
		sample(plantC, types.StageWilting, time.Hour),
	}

	got := mostCommonStage(samples)
	if got != types.StageBlooming {
		t.Fatalf("mostCommonStage = %s, want %s", got, types.StageBlooming)
	}
}

func TestMostCommonStageUsesLatestPerPlant(t *testing.T) {
	now := time.Now().UTC()
	plant := uuid.New()

	// The plant's older samples say SEEDLING twice, but only the latest
	// label should count.
	samples := []*types.GrowthSample{
		{ID: uuid.New(), PlantID: plant, Stage: types.StageBudding, RecordedAt: now},
		{ID: uuid.New(), PlantID: plant, Stage: types.StageSeedling, RecordedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), PlantID: plant, Stage: types.StageSeedling, RecordedAt: now.Add(-2 * time.Hour)},
	}
	if got := mostCommonStage(samples); got != types.StageBudding {
		t.Fatalf("mostCommonStage = %s, want %s", got, types.StageBudding)
	}
}

func TestMostCommonStageEmpty(t *testing.T) {
	if got := mostCommonStage(nil); got != "" {
		t.Fatalf("mostCommonStage(nil) = %q, want empty", got)
	}
}
