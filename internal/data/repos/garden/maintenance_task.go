package garden

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type MaintenanceTaskRepo interface {
	Create(dbc dbctx.Context, tasks []*types.MaintenanceTask) ([]*types.MaintenanceTask, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MaintenanceTask, error)
	ListByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]*types.MaintenanceTask, error)
	ListPendingByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]*types.MaintenanceTask, error)
	ListPendingByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.MaintenanceTask, error)
	ListByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.MaintenanceTask, error)
	EarliestPendingByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) (*types.MaintenanceTask, error)
	PendingKindsByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]types.TaskKind, error)
	Complete(dbc dbctx.Context, id uuid.UUID, completedAt time.Time, completedBy string) (bool, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type maintenanceTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaintenanceTaskRepo(db *gorm.DB, baseLog *logger.Logger) MaintenanceTaskRepo {
	return &maintenanceTaskRepo{
		db:  db,
		log: baseLog.With("repo", "MaintenanceTaskRepo"),
	}
}

func (r *maintenanceTaskRepo) Create(dbc dbctx.Context, tasks []*types.MaintenanceTask) ([]*types.MaintenanceTask, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tasks) == 0 {
		return []*types.MaintenanceTask{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *maintenanceTaskRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MaintenanceTask, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var task types.MaintenanceTask
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&task).Error
	if err != nil {
		return nil, err
	}
	if task.ID == uuid.Nil {
		return nil, nil
	}
	return &task, nil
}

func (r *maintenanceTaskRepo) ListByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]*types.MaintenanceTask, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.MaintenanceTask
	if plantID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("plant_id = ?", plantID).
		Order("due_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *maintenanceTaskRepo) ListPendingByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]*types.MaintenanceTask, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.MaintenanceTask
	if plantID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("plant_id = ? AND completed_at IS NULL", plantID).
		Order("due_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *maintenanceTaskRepo) ListPendingByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.MaintenanceTask, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.MaintenanceTask
	if ownerUserID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Joins("JOIN plant ON plant.id = maintenance_task.plant_id").
		Where("plant.owner_user_id = ? AND maintenance_task.completed_at IS NULL", ownerUserID).
		Order("maintenance_task.due_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *maintenanceTaskRepo) ListByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.MaintenanceTask, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.MaintenanceTask
	if ownerUserID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Joins("JOIN plant ON plant.id = maintenance_task.plant_id").
		Where("plant.owner_user_id = ?", ownerUserID).
		Order("maintenance_task.due_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *maintenanceTaskRepo) EarliestPendingByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) (*types.MaintenanceTask, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if ownerUserID == uuid.Nil {
		return nil, nil
	}
	var task types.MaintenanceTask
	err := transaction.WithContext(dbc.Ctx).
		Joins("JOIN plant ON plant.id = maintenance_task.plant_id").
		Where("plant.owner_user_id = ? AND maintenance_task.completed_at IS NULL", ownerUserID).
		Order("maintenance_task.due_at ASC").
		Limit(1).
		Find(&task).Error
	if err != nil {
		return nil, err
	}
	if task.ID == uuid.Nil {
		return nil, nil
	}
	return &task, nil
}

func (r *maintenanceTaskRepo) PendingKindsByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]types.TaskKind, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var kinds []types.TaskKind
	if plantID == uuid.Nil {
		return kinds, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.MaintenanceTask{}).
		Where("plant_id = ? AND completed_at IS NULL", plantID).
		Pluck("kind", &kinds).Error; err != nil {
		return nil, err
	}
	return kinds, nil
}

// Complete marks a pending task done. The completed_at IS NULL guard makes
// concurrent completions race-safe: only one caller sees rowsAffected > 0.
func (r *maintenanceTaskRepo) Complete(dbc dbctx.Context, id uuid.UUID, completedAt time.Time, completedBy string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.MaintenanceTask{}).
		Where("id = ? AND completed_at IS NULL", id).
		Updates(map[string]interface{}{
			"completed_at": completedAt,
			"completed_by": completedBy,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *maintenanceTaskRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.MaintenanceTask{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
