package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	"github.com/florabyte/flowerbed-backend/internal/data/repos/testutil"
	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/garden"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/pointers"
	"github.com/florabyte/flowerbed-backend/internal/platform/apierr"
)

func apiStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	return ae.Status, ae.Code
}

func TestPlantServiceCreateValidation(t *testing.T) {
	catalog, err := garden.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	// Validation fails before any persistence; nil collaborators are safe.
	svc := NewPlantService(nil, testLogger(t), catalog, nil, nil, nil, nil, nil)
	ctx := context.Background()
	owner := uuid.New()

	base := CreatePlantInput{
		Name:         "Sunny",
		Species:      "sunflower",
		Color:        "YELLOW",
		PlantingDate: "2026-03-10",
		GridPosition: 4,
	}

	cases := []struct {
		name   string
		mutate func(*CreatePlantInput)
	}{
		{"empty name", func(in *CreatePlantInput) { in.Name = "  " }},
		{"name too long", func(in *CreatePlantInput) { in.Name = "a very very long flower name" }},
		{"bad color", func(in *CreatePlantInput) { in.Color = "CHARTREUSE" }},
		{"grid too low", func(in *CreatePlantInput) { in.GridPosition = -1 }},
		{"grid too high", func(in *CreatePlantInput) { in.GridPosition = 9 }},
		{"bad date", func(in *CreatePlantInput) { in.PlantingDate = "10/03/2026" }},
		{"negative height", func(in *CreatePlantInput) { in.Height = -1 }},
		{"height too precise", func(in *CreatePlantInput) { in.Height = 45.123 }},
	}
	for _, tc := range cases {
		input := base
		tc.mutate(&input)
		_, err := svc.Create(ctx, owner, input)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		status, code := apiStatus(t, err)
		if status != 400 || code != "validation_failed" {
			t.Fatalf("%s: got status=%d code=%s", tc.name, status, code)
		}
	}
}

func TestBackfillKindsRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	tasks := []*types.MaintenanceTask{
		{ID: uuid.New(), Kind: types.TaskWatering, DueAt: now},
		{ID: uuid.New(), Kind: types.TaskPruning, DueAt: now},
	}

	var kinds []types.TaskKind
	if err := json.Unmarshal(backfillKinds(tasks), &kinds); err != nil {
		t.Fatalf("unmarshal kinds: %v", err)
	}
	if len(kinds) != 2 || kinds[0] != types.TaskWatering || kinds[1] != types.TaskPruning {
		t.Fatalf("kinds = %v", kinds)
	}
}

func newPlantServiceForDB(t *testing.T) (*plantService, func(ctx context.Context, ownerID, plantID uuid.UUID)) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	catalog, err := garden.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	plants := repos.NewPlantRepo(db, log)
	svc := NewPlantService(
		db, log, catalog,
		plants,
		repos.NewCareProfileRepo(db, log),
		repos.NewMaintenanceTaskRepo(db, log),
		repos.NewGrowthSampleRepo(db, log),
		repos.NewCareBackfillRepo(db, log),
	).(*plantService)

	cleanup := func(ctx context.Context, ownerID, plantID uuid.UUID) {
		_ = svc.Delete(ctx, ownerID, plantID)
	}
	return svc, cleanup
}

func TestPlantServiceCreateSeedsProfileAndTasks(t *testing.T) {
	svc, cleanup := newPlantServiceForDB(t)
	ctx := context.Background()
	owner := uuid.New()

	t0 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	plant, err := svc.Create(ctx, owner, CreatePlantInput{
		Name:         "Sunny",
		Species:      "Sunflower",
		Color:        "yellow",
		PlantingDate: "2026-03-10",
		GridPosition: 0,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer cleanup(ctx, owner, plant.ID)

	if plant.Species != "sunflower" {
		t.Fatalf("species not normalized: %q", plant.Species)
	}
	if plant.Color != types.ColorYellow {
		t.Fatalf("color not normalized: %q", plant.Color)
	}

	profile, err := svc.GetCareProfile(ctx, owner, plant.ID)
	if err != nil {
		t.Fatalf("GetCareProfile: %v", err)
	}
	if profile.WaterFrequencyDays != 2 {
		t.Fatalf("sunflower water cadence = %d, want 2", profile.WaterFrequencyDays)
	}
	if profile.MaxHeightCm != 250 {
		t.Fatalf("sunflower max height = %v, want 250", profile.MaxHeightCm)
	}

	status, err := svc.Status(ctx, owner, plant.ID, time.UTC)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.PendingTasks) != len(types.RecurringKinds) {
		t.Fatalf("pending tasks = %d, want %d", len(status.PendingTasks), len(types.RecurringKinds))
	}
	for _, task := range status.PendingTasks {
		days, ok := garden.Cadence(gardenProfile(profile), task.Kind)
		if !ok {
			t.Fatalf("unexpected seeded kind %s", task.Kind)
		}
		want := t0.AddDate(0, 0, days)
		if !task.DueAt.Equal(want) {
			t.Fatalf("%s dueAt = %v, want %v", task.Kind, task.DueAt, want)
		}
	}
	if status.Health.Water != garden.HealthGood {
		t.Fatalf("fresh plant should be healthy, got %+v", status.Health)
	}
	if status.CurrentHeight != 0 {
		t.Fatalf("height at planting = %v, want 0", status.CurrentHeight)
	}
	if status.StageBucket != garden.BucketSprout {
		t.Fatalf("stage bucket = %d, want %d", status.StageBucket, garden.BucketSprout)
	}
}

func TestPlantServiceCreateRecordsInitialHeight(t *testing.T) {
	svc, cleanup := newPlantServiceForDB(t)
	ctx := context.Background()
	owner := uuid.New()

	t0 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	plant, err := svc.Create(ctx, owner, CreatePlantInput{
		Name:         "Tall",
		Species:      "sunflower",
		Color:        "YELLOW",
		PlantingDate: "2026-03-10",
		GridPosition: 5,
		Height:       45,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer cleanup(ctx, owner, plant.ID)

	// The supplied height is a measurement: status must report it, not a
	// simulation from zero elapsed time.
	status, err := svc.Status(ctx, owner, plant.ID, time.UTC)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.CurrentHeight != 45 {
		t.Fatalf("status height = %v, want 45", status.CurrentHeight)
	}
	if status.GrowthPercentage != 18 {
		t.Fatalf("growth percentage = %v, want 18", status.GrowthPercentage)
	}

	latest, err := svc.samples.LatestByPlant(dbctx.Context{Ctx: ctx}, plant.ID)
	if err != nil {
		t.Fatalf("LatestByPlant: %v", err)
	}
	if latest == nil || latest.HeightCm != 45 {
		t.Fatalf("initial sample not recorded: %+v", latest)
	}
	if latest.Source != types.SourceManual {
		t.Fatalf("initial sample source = %s, want manual", latest.Source)
	}
}

func TestPlantServiceGridConflict(t *testing.T) {
	svc, cleanup := newPlantServiceForDB(t)
	ctx := context.Background()
	owner := uuid.New()

	input := CreatePlantInput{
		Name:         "First",
		Species:      "rose",
		Color:        "RED",
		PlantingDate: "2026-03-10",
		GridPosition: 5,
	}
	plant, err := svc.Create(ctx, owner, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer cleanup(ctx, owner, plant.ID)

	input.Name = "Second"
	_, err = svc.Create(ctx, owner, input)
	if err == nil {
		t.Fatalf("expected conflict on occupied grid position")
	}
	status, code := apiStatus(t, err)
	if status != 409 || code != "conflict" {
		t.Fatalf("got status=%d code=%s", status, code)
	}
}

func TestPlantServiceUnknownSpeciesFallsBack(t *testing.T) {
	svc, cleanup := newPlantServiceForDB(t)
	ctx := context.Background()
	owner := uuid.New()

	plant, err := svc.Create(ctx, owner, CreatePlantInput{
		Name:         "Mystery",
		Species:      "triffid",
		Color:        "PURPLE",
		PlantingDate: "2026-03-10",
		GridPosition: 7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer cleanup(ctx, owner, plant.ID)

	profile, err := svc.GetCareProfile(ctx, owner, plant.ID)
	if err != nil {
		t.Fatalf("GetCareProfile: %v", err)
	}
	def := garden.DefaultProfile
	if profile.WaterFrequencyDays != def.WaterFrequencyDays ||
		profile.MaxHeightCm != def.MaxHeightCm ||
		profile.GrowthRatePercentPerWeek != def.GrowthRatePercentPerWeek {
		t.Fatalf("unknown species did not get the default profile: %+v", profile)
	}
}

func TestPlantServiceUpdateCareProfileValidation(t *testing.T) {
	svc, cleanup := newPlantServiceForDB(t)
	ctx := context.Background()
	owner := uuid.New()

	plant, err := svc.Create(ctx, owner, CreatePlantInput{
		Name:         "Rosie",
		Species:      "rose",
		Color:        "RED",
		PlantingDate: "2026-03-10",
		GridPosition: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer cleanup(ctx, owner, plant.ID)

	_, err = svc.UpdateCareProfile(ctx, owner, plant.ID, CareProfileInput{WaterFrequencyDays: pointers.Int(0)})
	if err == nil {
		t.Fatalf("expected validation error for zero cadence")
	}
	status, code := apiStatus(t, err)
	if status != 400 || code != "validation_failed" {
		t.Fatalf("got status=%d code=%s", status, code)
	}

	_, err = svc.UpdateCareProfile(ctx, owner, plant.ID, CareProfileInput{MaxHeightCm: pointers.Float64(0)})
	if err == nil {
		t.Fatalf("expected validation error for zero max height")
	}
	if status, code := apiStatus(t, err); status != 400 || code != "validation_failed" {
		t.Fatalf("got status=%d code=%s", status, code)
	}

	updated, err := svc.UpdateCareProfile(ctx, owner, plant.ID, CareProfileInput{WaterFrequencyDays: pointers.Int(5)})
	if err != nil {
		t.Fatalf("UpdateCareProfile: %v", err)
	}
	if updated.WaterFrequencyDays != 5 {
		t.Fatalf("water cadence = %d, want 5", updated.WaterFrequencyDays)
	}
}

func TestPlantServiceDeleteRemovesDependents(t *testing.T) {
	svc, _ := newPlantServiceForDB(t)
	ctx := context.Background()
	owner := uuid.New()

	plant, err := svc.Create(ctx, owner, CreatePlantInput{
		Name:         "Goner",
		Species:      "tulips",
		Color:        "PINK",
		PlantingDate: "2026-03-10",
		GridPosition: 8,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, owner, plant.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(ctx, owner, plant.ID); err == nil {
		t.Fatalf("expected 404 after delete")
	}

	db := testutil.DB(t)
	var taskCount int64
	if err := db.Model(&types.MaintenanceTask{}).Where("plant_id = ?", plant.ID).Count(&taskCount).Error; err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	if taskCount != 0 {
		t.Fatalf("%d tasks survived plant deletion", taskCount)
	}

	err = svc.Delete(ctx, owner, plant.ID)
	if err == nil {
		t.Fatalf("expected 404 on repeated delete")
	}
	status, code := apiStatus(t, err)
	if status != 404 || code != "not_found" {
		t.Fatalf("got status=%d code=%s", status, code)
	}
}
