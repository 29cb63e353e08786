package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/garden"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

const maxBackfillAttempts = 10

// ReconcileService drains the care backfill queue: plants whose initial task
// seeding failed get their missing obligations re-seeded idempotently.
type ReconcileService interface {
	BackfillPending(ctx context.Context) (int, error)
}

type reconcileService struct {
	db        *gorm.DB
	log       *logger.Logger
	plants    repos.PlantRepo
	profiles  repos.CareProfileRepo
	tasks     repos.MaintenanceTaskRepo
	backfills repos.CareBackfillRepo
	now       func() time.Time
}

func NewReconcileService(
	db *gorm.DB,
	baseLog *logger.Logger,
	plants repos.PlantRepo,
	profiles repos.CareProfileRepo,
	tasks repos.MaintenanceTaskRepo,
	backfills repos.CareBackfillRepo,
) ReconcileService {
	return &reconcileService{
		db:        db,
		log:       baseLog.With("service", "ReconcileService"),
		plants:    plants,
		profiles:  profiles,
		tasks:     tasks,
		backfills: backfills,
		now:       time.Now,
	}
}

func (s *reconcileService) BackfillPending(ctx context.Context) (int, error) {
	rows, err := s.backfills.ListPending(dbctx.Context{Ctx: ctx}, 100)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, row := range rows {
		if err := s.reconcileRow(ctx, row); err != nil {
			s.log.Warn("Backfill row failed", "backfill_id", row.ID, "error", err)
			status := types.BackfillPending
			if row.Attempts+1 >= maxBackfillAttempts {
				status = types.BackfillAbandoned
				s.log.Error("Abandoning backfill row", "backfill_id", row.ID, "attempts", row.Attempts+1)
			}
			_ = s.backfills.UpdateFields(dbctx.Context{Ctx: ctx}, row.ID, map[string]interface{}{
				"attempts":   row.Attempts + 1,
				"last_error": err.Error(),
				"status":     status,
			})
			continue
		}
		if err := s.backfills.UpdateFields(dbctx.Context{Ctx: ctx}, row.ID, map[string]interface{}{
			"status": types.BackfillResolved,
		}); err != nil {
			return resolved, err
		}
		resolved++
	}
	return resolved, nil
}

func (s *reconcileService) reconcileRow(ctx context.Context, row *types.CareBackfill) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}

		plant, err := s.plants.GetByID(inner, row.PlantID)
		if err != nil {
			return err
		}
		if plant == nil {
			// Plant deleted before reconciliation; nothing left to seed.
			return nil
		}
		profileRow, err := s.profiles.GetByPlantID(inner, row.PlantID)
		if err != nil {
			return err
		}
		if profileRow == nil {
			return nil
		}
		profile := gardenProfile(profileRow)

		var wanted []types.TaskKind
		if err := json.Unmarshal(row.Kinds, &wanted); err != nil {
			return err
		}

		existing, err := s.tasks.PendingKindsByPlant(inner, row.PlantID)
		if err != nil {
			return err
		}
		have := map[types.TaskKind]bool{}
		for _, kind := range existing {
			have[kind] = true
		}

		now := s.now().UTC()
		var missing []*types.MaintenanceTask
		for _, kind := range wanted {
			if have[kind] {
				continue
			}
			days, ok := garden.Cadence(profile, kind)
			if !ok {
				continue
			}
			missing = append(missing, &types.MaintenanceTask{
				ID:        uuid.New(),
				PlantID:   plant.ID,
				Kind:      kind,
				DueAt:     garden.NextDue(now, days),
				Notes:     garden.TaskNotes(kind, plant.Name),
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if len(missing) == 0 {
			return nil
		}
		_, err = s.tasks.Create(inner, missing)
		return err
	})
}
