package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	"github.com/florabyte/flowerbed-backend/internal/data/repos/testutil"
	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
)

func TestReconcileServiceBackfillsMissingKinds(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	plantSvc, _ := newPlantServiceForDB(t)
	owner := uuid.New()

	plant, err := plantSvc.Create(ctx, owner, CreatePlantInput{
		Name:         "Patch",
		Species:      "cosmos",
		Color:        "WHITE",
		PlantingDate: "2026-03-10",
		GridPosition: 4,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer func() { _ = plantSvc.Delete(ctx, owner, plant.ID) }()

	taskRepo := repos.NewMaintenanceTaskRepo(db, log)
	backfillRepo := repos.NewCareBackfillRepo(db, log)
	dbc := dbctx.Context{Ctx: ctx}

	// Drop the seeded fertilizing task so the queue row has real work, then
	// claim watering also failed; reconciliation must skip the kind that is
	// still pending.
	pending, err := taskRepo.ListPendingByPlant(dbc, plant.ID)
	if err != nil {
		t.Fatalf("ListPendingByPlant: %v", err)
	}
	for _, task := range pending {
		if task.Kind == types.TaskFertilizing {
			if _, err := taskRepo.Delete(dbc, task.ID); err != nil {
				t.Fatalf("Delete seeded task: %v", err)
			}
		}
	}

	now := time.Now().UTC()
	row := &types.CareBackfill{
		ID:        uuid.New(),
		PlantID:   plant.ID,
		Kinds:     datatypes.JSON([]byte(`["WATERING","FERTILIZING"]`)),
		Attempts:  3,
		LastError: "seed failed",
		Status:    types.BackfillPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := backfillRepo.Create(dbc, []*types.CareBackfill{row}); err != nil {
		t.Fatalf("Create backfill: %v", err)
	}

	svc := NewReconcileService(
		db, log,
		repos.NewPlantRepo(db, log),
		repos.NewCareProfileRepo(db, log),
		taskRepo,
		backfillRepo,
	)
	resolved, err := svc.BackfillPending(ctx)
	if err != nil {
		t.Fatalf("BackfillPending: %v", err)
	}
	if resolved < 1 {
		t.Fatalf("resolved = %d, want >= 1", resolved)
	}

	kinds, err := taskRepo.PendingKindsByPlant(dbc, plant.ID)
	if err != nil {
		t.Fatalf("PendingKindsByPlant: %v", err)
	}
	counts := map[types.TaskKind]int{}
	for _, kind := range kinds {
		counts[kind]++
	}
	if counts[types.TaskFertilizing] != 1 {
		t.Fatalf("fertilizing tasks = %d, want 1", counts[types.TaskFertilizing])
	}
	if counts[types.TaskWatering] != 1 {
		t.Fatalf("watering tasks = %d, want exactly 1 (idempotent skip)", counts[types.TaskWatering])
	}

	// The queue row is resolved and a second pass finds nothing to do.
	resolved, err = svc.BackfillPending(ctx)
	if err != nil {
		t.Fatalf("BackfillPending (second pass): %v", err)
	}
	remaining, err := backfillRepo.ListPending(dbc, 100)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	for _, r := range remaining {
		if r.ID == row.ID {
			t.Fatalf("backfill row still pending after reconciliation")
		}
	}
	_ = resolved
}
