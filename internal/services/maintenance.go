package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/garden"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
	"github.com/florabyte/flowerbed-backend/internal/platform/apierr"
)

type CreateTaskInput struct {
	PlantID     uuid.UUID `json:"flower_id"`
	Kind        string    `json:"maintenanceType"`
	DueAt       time.Time `json:"maintenanceDate"`
	Notes       string    `json:"notes"`
	PerformedBy string    `json:"performedBy"`
}

type MaintenanceService interface {
	Complete(ctx context.Context, ownerID, taskID uuid.UUID, performedBy string) (*types.MaintenanceTask, error)
	CreateManual(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*types.MaintenanceTask, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
	ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]*types.MaintenanceTask, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]*types.MaintenanceTask, error)
}

type maintenanceService struct {
	db       *gorm.DB
	log      *logger.Logger
	plants   repos.PlantRepo
	profiles repos.CareProfileRepo
	tasks    repos.MaintenanceTaskRepo
	now      func() time.Time
}

func NewMaintenanceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	plants repos.PlantRepo,
	profiles repos.CareProfileRepo,
	tasks repos.MaintenanceTaskRepo,
) MaintenanceService {
	return &maintenanceService{
		db:       db,
		log:      baseLog.With("service", "MaintenanceService"),
		plants:   plants,
		profiles: profiles,
		tasks:    tasks,
		now:      time.Now,
	}
}

// Complete marks a task done and schedules the next occurrence of the same
// kind in the same transaction. Completing an already-completed task is an
// error, not a no-op: the caller acted on stale state and should refetch.
func (s *maintenanceService) Complete(ctx context.Context, ownerID, taskID uuid.UUID, performedBy string) (*types.MaintenanceTask, error) {
	now := s.now().UTC()
	var completed *types.MaintenanceTask

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}

		task, err := s.tasks.GetByID(inner, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return notFoundErr("task")
		}
		plant, err := s.plants.GetByOwnerAndID(inner, ownerID, task.PlantID)
		if err != nil {
			return err
		}
		if plant == nil {
			return notFoundErr("task")
		}
		if !task.Pending() {
			return apierr.New(http.StatusConflict, "already_completed",
				fmt.Errorf("task %s was already completed", taskID))
		}

		won, err := s.tasks.Complete(inner, taskID, now, performedBy)
		if err != nil {
			return err
		}
		if !won {
			return apierr.New(http.StatusConflict, "already_completed",
				fmt.Errorf("task %s was already completed", taskID))
		}

		profileRow, err := s.profiles.GetByPlantID(inner, task.PlantID)
		if err != nil {
			return err
		}
		if profileRow != nil {
			if days, ok := garden.Cadence(gardenProfile(profileRow), task.Kind); ok {
				followOn := &types.MaintenanceTask{
					ID:        uuid.New(),
					PlantID:   task.PlantID,
					Kind:      task.Kind,
					DueAt:     garden.NextDue(now, days),
					Notes:     garden.TaskNotes(task.Kind, plant.Name),
					CreatedAt: now,
					UpdatedAt: now,
				}
				if _, err := s.tasks.Create(inner, []*types.MaintenanceTask{followOn}); err != nil {
					return err
				}
			}
		}

		completed, err = s.tasks.GetByID(inner, taskID)
		return err
	})
	if err != nil {
		if repos.IsUniqueViolation(err, "uniq_pending_task_plant_kind") {
			return nil, apierr.New(http.StatusConflict, "conflict",
				fmt.Errorf("a pending task of that kind already exists"))
		}
		return nil, err
	}
	return completed, nil
}

func (s *maintenanceService) CreateManual(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*types.MaintenanceTask, error) {
	kind := types.TaskKind(strings.ToUpper(strings.TrimSpace(input.Kind)))
	if !types.ValidTaskKind(kind) {
		return nil, validationErr("unknown maintenance type %q", input.Kind)
	}
	if input.DueAt.IsZero() {
		return nil, validationErr("a due date is required")
	}

	plant, err := s.plants.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, input.PlantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, notFoundErr("flower")
	}

	now := s.now().UTC()
	notes := strings.TrimSpace(input.Notes)
	if notes == "" {
		notes = garden.TaskNotes(kind, plant.Name)
	}
	task := &types.MaintenanceTask{
		ID:        uuid.New(),
		PlantID:   plant.ID,
		Kind:      kind,
		DueAt:     input.DueAt.UTC(),
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.tasks.Create(dbctx.Context{Ctx: ctx}, []*types.MaintenanceTask{task}); err != nil {
		if repos.IsUniqueViolation(err, "uniq_pending_task_plant_kind") {
			return nil, apierr.New(http.StatusConflict, "conflict",
				fmt.Errorf("a pending %s task already exists for this flower", kind))
		}
		return nil, err
	}
	return task, nil
}

func (s *maintenanceService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	task, err := s.tasks.GetByID(dbctx.Context{Ctx: ctx}, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return notFoundErr("task")
	}
	plant, err := s.plants.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, task.PlantID)
	if err != nil {
		return err
	}
	if plant == nil {
		return notFoundErr("task")
	}
	deleted, err := s.tasks.Delete(dbctx.Context{Ctx: ctx}, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFoundErr("task")
	}
	return nil
}

func (s *maintenanceService) ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]*types.MaintenanceTask, error) {
	plant, err := s.plants.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, notFoundErr("flower")
	}
	return s.tasks.ListByPlant(dbctx.Context{Ctx: ctx}, plantID)
}

func (s *maintenanceService) ListAll(ctx context.Context, ownerID uuid.UUID) ([]*types.MaintenanceTask, error) {
	return s.tasks.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID)
}
