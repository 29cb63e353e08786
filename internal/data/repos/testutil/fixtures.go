package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
)

func SeedPlant(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, gridPosition int) *types.Plant {
	tb.Helper()
	now := time.Now().UTC()
	p := &types.Plant{
		ID:           uuid.New(),
		OwnerUserID:  ownerID,
		Name:         "Rosie",
		Species:      "rose",
		Color:        types.ColorRed,
		PlantingDate: now,
		GridPosition: gridPosition,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed plant: %v", err)
	}
	return p
}

func SeedCareProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, plantID uuid.UUID) *types.CareProfile {
	tb.Helper()
	now := time.Now().UTC()
	cp := &types.CareProfile{
		ID:                       uuid.New(),
		PlantID:                  plantID,
		WaterFrequencyDays:       3,
		FertilizeFrequencyDays:   14,
		PruneFrequencyDays:       30,
		SunlightFrequencyDays:    1,
		MaxHeightCm:              100,
		GrowthRatePercentPerWeek: 5,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := tx.WithContext(ctx).Create(cp).Error; err != nil {
		tb.Fatalf("seed care profile: %v", err)
	}
	return cp
}
