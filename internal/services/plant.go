package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/garden"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
	"github.com/florabyte/flowerbed-backend/internal/platform/apierr"
)

const (
	seedAttempts = 3
	seedBackoff  = 300 * time.Millisecond
)

type CreatePlantInput struct {
	Name         string  `json:"flowerName"`
	Species      string  `json:"species"`
	Color        string  `json:"color"`
	PlantingDate string  `json:"plantingDate"`
	GridPosition int     `json:"gridPosition"`
	Height       float64 `json:"currentHeight"`
}

type UpdatePlantInput struct {
	Name  *string `json:"flowerName"`
	Color *string `json:"color"`
}

type CareProfileInput struct {
	WaterFrequencyDays       *int     `json:"waterFrequencyDays"`
	FertilizeFrequencyDays   *int     `json:"fertilizeFrequencyDays"`
	PruneFrequencyDays       *int     `json:"pruneFrequencyDays"`
	SunlightFrequencyDays    *int     `json:"sunlightFrequencyDays"`
	MaxHeightCm              *float64 `json:"maxHeightCm"`
	GrowthRatePercentPerWeek *float64 `json:"growthRatePercentPerWeek"`
}

type PlantStatus struct {
	Plant            *types.Plant             `json:"flower"`
	CurrentHeight    float64                  `json:"currentHeight"`
	GrowthPercentage float64                  `json:"growthPercentage"`
	StageBucket      int                      `json:"stageBucket"`
	StageLabel       types.GrowthStage        `json:"stageLabel"`
	Health           garden.HealthReport      `json:"health"`
	PendingTasks     []*types.MaintenanceTask `json:"pendingTasks"`
	DueToday         []*types.MaintenanceTask `json:"dueToday"`
}

type PlantService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreatePlantInput) (*types.Plant, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*types.Plant, error)
	Get(ctx context.Context, ownerID, plantID uuid.UUID) (*types.Plant, error)
	Update(ctx context.Context, ownerID, plantID uuid.UUID, input UpdatePlantInput) (*types.Plant, error)
	Delete(ctx context.Context, ownerID, plantID uuid.UUID) error
	UpdateCareProfile(ctx context.Context, ownerID, plantID uuid.UUID, input CareProfileInput) (*types.CareProfile, error)
	GetCareProfile(ctx context.Context, ownerID, plantID uuid.UUID) (*types.CareProfile, error)
	Status(ctx context.Context, ownerID, plantID uuid.UUID, loc *time.Location) (*PlantStatus, error)
}

type plantService struct {
	db        *gorm.DB
	log       *logger.Logger
	catalog   *garden.Catalog
	plants    repos.PlantRepo
	profiles  repos.CareProfileRepo
	tasks     repos.MaintenanceTaskRepo
	samples   repos.GrowthSampleRepo
	backfills repos.CareBackfillRepo
	now       func() time.Time
}

func NewPlantService(
	db *gorm.DB,
	baseLog *logger.Logger,
	catalog *garden.Catalog,
	plants repos.PlantRepo,
	profiles repos.CareProfileRepo,
	tasks repos.MaintenanceTaskRepo,
	samples repos.GrowthSampleRepo,
	backfills repos.CareBackfillRepo,
) PlantService {
	return &plantService{
		db:        db,
		log:       baseLog.With("service", "PlantService"),
		catalog:   catalog,
		plants:    plants,
		profiles:  profiles,
		tasks:     tasks,
		samples:   samples,
		backfills: backfills,
		now:       time.Now,
	}
}

func validationErr(format string, args ...interface{}) *apierr.Error {
	return apierr.New(http.StatusBadRequest, "validation_failed", fmt.Errorf(format, args...))
}

func notFoundErr(what string) *apierr.Error {
	return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("%s not found", what))
}

func (s *plantService) Create(ctx context.Context, ownerID uuid.UUID, input CreatePlantInput) (*types.Plant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationErr("a name is required")
	}
	if len(name) > types.MaxNameLength {
		return nil, validationErr("name must be at most %d characters", types.MaxNameLength)
	}
	color := types.PlantColor(strings.ToUpper(strings.TrimSpace(input.Color)))
	if !types.ValidColor(color) {
		return nil, validationErr("unknown color %q", input.Color)
	}
	if input.GridPosition < 0 || input.GridPosition >= types.GridSize {
		return nil, validationErr("grid position must be in 0..%d", types.GridSize-1)
	}
	plantingDate, err := time.Parse("2006-01-02", strings.TrimSpace(input.PlantingDate))
	if err != nil {
		return nil, validationErr("planting date must be YYYY-MM-DD: %v", err)
	}
	if input.Height != 0 {
		if err := garden.ValidateHeight(input.Height); err != nil {
			return nil, validationErr("%v", err)
		}
	}

	species := strings.ToLower(strings.TrimSpace(input.Species))
	profile, known := s.catalog.Lookup(species)
	if !known {
		s.log.Info("Unknown species, using default care profile", "species", species)
	}

	now := s.now().UTC()
	plant := &types.Plant{
		ID:            uuid.New(),
		OwnerUserID:   ownerID,
		Name:          name,
		Species:       species,
		Color:         color,
		PlantingDate:  plantingDate,
		GridPosition:  input.GridPosition,
		CurrentHeight: input.Height,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	careProfile := &types.CareProfile{
		ID:                       uuid.New(),
		PlantID:                  plant.ID,
		WaterFrequencyDays:       profile.WaterFrequencyDays,
		FertilizeFrequencyDays:   profile.FertilizeFrequencyDays,
		PruneFrequencyDays:       profile.PruneFrequencyDays,
		SunlightFrequencyDays:    profile.SunlightFrequencyDays,
		MaxHeightCm:              profile.MaxHeightCm,
		GrowthRatePercentPerWeek: profile.GrowthRatePercentPerWeek,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	// A creation-time height is a real measurement: record it as the first
	// manual sample so status reads it instead of simulating from zero.
	var initialSample *types.GrowthSample
	if input.Height > 0 {
		initialSample = &types.GrowthSample{
			ID:         uuid.New(),
			PlantID:    plant.ID,
			Stage:      simulatedStage(garden.StageBucket(garden.Percentage(input.Height, profile.MaxHeightCm))),
			HeightCm:   input.Height,
			Source:     types.SourceManual,
			RecordedAt: now,
			CreatedAt:  now,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.plants.Create(inner, []*types.Plant{plant}); err != nil {
			return err
		}
		if _, err := s.profiles.Create(inner, []*types.CareProfile{careProfile}); err != nil {
			return err
		}
		if initialSample != nil {
			if _, err := s.samples.Create(inner, []*types.GrowthSample{initialSample}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if repos.IsUniqueViolation(err, "") {
			return nil, apierr.New(http.StatusConflict, "conflict", fmt.Errorf("grid position %d is already planted", input.GridPosition))
		}
		return nil, err
	}

	s.seedCareTasks(ctx, plant, profile, now)
	return plant, nil
}

// seedCareTasks schedules the initial obligations in their own transaction.
// The plant already exists; a seeding failure must not roll it back. After
// bounded retries the missing kinds are queued for reconciliation instead.
func (s *plantService) seedCareTasks(ctx context.Context, plant *types.Plant, profile garden.Profile, now time.Time) {
	tasks := garden.SeedTasks(plant.ID, plant.Name, profile, now)

	var lastErr error
	for attempt := 1; attempt <= seedAttempts; attempt++ {
		_, lastErr = s.tasks.Create(dbctx.Context{Ctx: ctx}, tasks)
		if lastErr == nil {
			return
		}
		s.log.Warn("Seeding care tasks failed",
			"plant_id", plant.ID, "attempt", attempt, "error", lastErr)
		if attempt < seedAttempts {
			time.Sleep(seedBackoff)
		}
	}

	row := &types.CareBackfill{
		ID:        uuid.New(),
		PlantID:   plant.ID,
		Kinds:     backfillKinds(tasks),
		Attempts:  seedAttempts,
		LastError: lastErr.Error(),
		Status:    types.BackfillPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.backfills.Create(dbctx.Context{Ctx: ctx}, []*types.CareBackfill{row}); err != nil {
		s.log.Error("Failed to enqueue care backfill", "plant_id", plant.ID, "error", err)
	}
}

func (s *plantService) List(ctx context.Context, ownerID uuid.UUID) ([]*types.Plant, error) {
	return s.plants.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID)
}

func (s *plantService) Get(ctx context.Context, ownerID, plantID uuid.UUID) (*types.Plant, error) {
	plant, err := s.plants.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, notFoundErr("flower")
	}
	return plant, nil
}

func (s *plantService) Update(ctx context.Context, ownerID, plantID uuid.UUID, input UpdatePlantInput) (*types.Plant, error) {
	if _, err := s.Get(ctx, ownerID, plantID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validationErr("a name is required")
		}
		if len(name) > types.MaxNameLength {
			return nil, validationErr("name must be at most %d characters", types.MaxNameLength)
		}
		updates["name"] = name
	}
	if input.Color != nil {
		color := types.PlantColor(strings.ToUpper(strings.TrimSpace(*input.Color)))
		if !types.ValidColor(color) {
			return nil, validationErr("unknown color %q", *input.Color)
		}
		updates["color"] = color
	}
	if len(updates) > 0 {
		if err := s.plants.UpdateFields(dbctx.Context{Ctx: ctx}, plantID, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, ownerID, plantID)
}

func (s *plantService) Delete(ctx context.Context, ownerID, plantID uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, plantID); err != nil {
		return err
	}
	deleted, err := s.plants.Delete(dbctx.Context{Ctx: ctx}, plantID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFoundErr("flower")
	}
	return nil
}

func (s *plantService) GetCareProfile(ctx context.Context, ownerID, plantID uuid.UUID) (*types.CareProfile, error) {
	if _, err := s.Get(ctx, ownerID, plantID); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByPlantID(dbctx.Context{Ctx: ctx}, plantID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, notFoundErr("care profile")
	}
	return profile, nil
}

func (s *plantService) UpdateCareProfile(ctx context.Context, ownerID, plantID uuid.UUID, input CareProfileInput) (*types.CareProfile, error) {
	current, err := s.GetCareProfile(ctx, ownerID, plantID)
	if err != nil {
		return nil, err
	}

	next := gardenProfile(current)
	updates := map[string]interface{}{}
	if input.WaterFrequencyDays != nil {
		next.WaterFrequencyDays = *input.WaterFrequencyDays
		updates["water_frequency_days"] = *input.WaterFrequencyDays
	}
	if input.FertilizeFrequencyDays != nil {
		next.FertilizeFrequencyDays = *input.FertilizeFrequencyDays
		updates["fertilize_frequency_days"] = *input.FertilizeFrequencyDays
	}
	if input.PruneFrequencyDays != nil {
		next.PruneFrequencyDays = *input.PruneFrequencyDays
		updates["prune_frequency_days"] = *input.PruneFrequencyDays
	}
	if input.SunlightFrequencyDays != nil {
		next.SunlightFrequencyDays = *input.SunlightFrequencyDays
		updates["sunlight_frequency_days"] = *input.SunlightFrequencyDays
	}
	if input.MaxHeightCm != nil {
		next.MaxHeightCm = *input.MaxHeightCm
		updates["max_height_cm"] = *input.MaxHeightCm
	}
	if input.GrowthRatePercentPerWeek != nil {
		next.GrowthRatePercentPerWeek = *input.GrowthRatePercentPerWeek
		updates["growth_rate_percent_per_week"] = *input.GrowthRatePercentPerWeek
	}
	if err := garden.ValidateProfile(next); err != nil {
		return nil, validationErr("%v", err)
	}
	if len(updates) > 0 {
		updated, err := s.profiles.UpdateFieldsByPlantID(dbctx.Context{Ctx: ctx}, plantID, updates)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, notFoundErr("care profile")
		}
	}
	return s.profiles.GetByPlantID(dbctx.Context{Ctx: ctx}, plantID)
}

func (s *plantService) Status(ctx context.Context, ownerID, plantID uuid.UUID, loc *time.Location) (*PlantStatus, error) {
	plant, err := s.Get(ctx, ownerID, plantID)
	if err != nil {
		return nil, err
	}
	profileRow, err := s.profiles.GetByPlantID(dbctx.Context{Ctx: ctx}, plantID)
	if err != nil {
		return nil, err
	}
	if profileRow == nil {
		return nil, notFoundErr("care profile")
	}
	profile := gardenProfile(profileRow)
	now := s.now().UTC()

	var (
		latest  *types.GrowthSample
		pending []*types.MaintenanceTask
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = s.samples.LatestByPlant(dbctx.Context{Ctx: gctx}, plantID)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.tasks.ListPendingByPlant(dbctx.Context{Ctx: gctx}, plantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Manual samples take precedence; simulation only covers plants that were
	// never measured.
	sample := latest
	if sample == nil {
		sample = simulateSample(plant, profile, now)
	}
	height := sample.HeightCm
	label := sample.Stage
	pct := garden.Percentage(height, profile.MaxHeightCm)
	bucket := garden.StageBucket(pct)

	var dueToday []*types.MaintenanceTask
	for _, task := range pending {
		if garden.DueToday(task, now, loc) {
			dueToday = append(dueToday, task)
		}
	}

	return &PlantStatus{
		Plant:            plant,
		CurrentHeight:    height,
		GrowthPercentage: pct,
		StageBucket:      bucket,
		StageLabel:       label,
		Health:           garden.EvaluateHealth(pending, now),
		PendingTasks:     pending,
		DueToday:         dueToday,
	}, nil
}

// backfillKinds serializes the kinds a failed seeding still owes, in the
// shape the reconciler unmarshals.
func backfillKinds(tasks []*types.MaintenanceTask) datatypes.JSON {
	kinds := make([]types.TaskKind, 0, len(tasks))
	for _, task := range tasks {
		kinds = append(kinds, task.Kind)
	}
	raw, err := json.Marshal(kinds)
	if err != nil {
		return datatypes.JSON([]byte(`[]`))
	}
	return datatypes.JSON(raw)
}

func gardenProfile(cp *types.CareProfile) garden.Profile {
	return garden.Profile{
		WaterFrequencyDays:       cp.WaterFrequencyDays,
		FertilizeFrequencyDays:   cp.FertilizeFrequencyDays,
		PruneFrequencyDays:       cp.PruneFrequencyDays,
		SunlightFrequencyDays:    cp.SunlightFrequencyDays,
		MaxHeightCm:              cp.MaxHeightCm,
		GrowthRatePercentPerWeek: cp.GrowthRatePercentPerWeek,
	}
}

func simulatedStage(bucket int) types.GrowthStage {
	switch bucket {
	case garden.BucketFullyGrown, garden.BucketFlowering:
		return types.StageBlooming
	case garden.BucketMaturing, garden.BucketYoung:
		return types.StageBudding
	default:
		return types.StageSeedling
	}
}
