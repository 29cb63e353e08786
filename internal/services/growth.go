package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/garden"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type RecordGrowthInput struct {
	Stage  string  `json:"stage"`
	Height float64 `json:"height"`
	Notes  string  `json:"notes"`
}

type GrowthService interface {
	Record(ctx context.Context, ownerID, plantID uuid.UUID, input RecordGrowthInput) (*types.GrowthSample, error)
	LatestByPlant(ctx context.Context, ownerID, plantID uuid.UUID) (*types.GrowthSample, error)
	ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]*types.GrowthSample, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]*types.GrowthSample, error)
}

type growthService struct {
	db      *gorm.DB
	log     *logger.Logger
	plants  repos.PlantRepo
	samples repos.GrowthSampleRepo
	now     func() time.Time
}

func NewGrowthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	plants repos.PlantRepo,
	samples repos.GrowthSampleRepo,
) GrowthService {
	return &growthService{
		db:      db,
		log:     baseLog.With("service", "GrowthService"),
		plants:  plants,
		samples: samples,
		now:     time.Now,
	}
}

func (s *growthService) Record(ctx context.Context, ownerID, plantID uuid.UUID, input RecordGrowthInput) (*types.GrowthSample, error) {
	stage := types.GrowthStage(strings.ToUpper(strings.TrimSpace(input.Stage)))
	if !types.ValidGrowthStage(stage) {
		return nil, validationErr("unknown growth stage %q", input.Stage)
	}
	if err := garden.ValidateHeight(input.Height); err != nil {
		return nil, validationErr("%v", err)
	}

	plant, err := s.plants.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, notFoundErr("flower")
	}

	now := s.now().UTC()
	sample := &types.GrowthSample{
		ID:         uuid.New(),
		PlantID:    plantID,
		Stage:      stage,
		HeightCm:   input.Height,
		Source:     types.SourceManual,
		Notes:      strings.TrimSpace(input.Notes),
		RecordedAt: now,
		CreatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.samples.Create(inner, []*types.GrowthSample{sample}); err != nil {
			return err
		}
		return s.plants.UpdateFields(inner, plantID, map[string]interface{}{
			"current_height": input.Height,
		})
	})
	if err != nil {
		return nil, err
	}
	return sample, nil
}

func (s *growthService) LatestByPlant(ctx context.Context, ownerID, plantID uuid.UUID) (*types.GrowthSample, error) {
	plant, err := s.plants.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, notFoundErr("flower")
	}
	return s.samples.LatestByPlant(dbctx.Context{Ctx: ctx}, plantID)
}

func (s *growthService) ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]*types.GrowthSample, error) {
	plant, err := s.plants.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, notFoundErr("flower")
	}
	return s.samples.ListByPlant(dbctx.Context{Ctx: ctx}, plantID)
}

func (s *growthService) ListAll(ctx context.Context, ownerID uuid.UUID) ([]*types.GrowthSample, error) {
	return s.samples.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID)
}

// simulateSample derives an in-memory sample for plants that were never
// measured. Nothing is persisted; the sample only feeds status reads.
func simulateSample(plant *types.Plant, profile garden.Profile, now time.Time) *types.GrowthSample {
	height := garden.HeightAt(profile, now.Sub(plant.PlantingDate))
	pct := garden.Percentage(height, profile.MaxHeightCm)
	return &types.GrowthSample{
		ID:         uuid.New(),
		PlantID:    plant.ID,
		Stage:      simulatedStage(garden.StageBucket(pct)),
		HeightCm:   height,
		Source:     types.SourceSimulated,
		RecordedAt: now,
	}
}
