package garden

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (code 23505), optionally on a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

type PlantRepo interface {
	Create(dbc dbctx.Context, plants []*types.Plant) ([]*types.Plant, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Plant, error)
	GetByOwnerAndID(dbc dbctx.Context, ownerUserID, id uuid.UUID) (*types.Plant, error)
	ListByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.Plant, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	CountByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) (int64, error)
}

type plantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlantRepo(db *gorm.DB, baseLog *logger.Logger) PlantRepo {
	return &plantRepo{
		db:  db,
		log: baseLog.With("repo", "PlantRepo"),
	}
}

func (r *plantRepo) Create(dbc dbctx.Context, plants []*types.Plant) ([]*types.Plant, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(plants) == 0 {
		return []*types.Plant{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *plantRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Plant, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var plant types.Plant
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&plant).Error
	if err != nil {
		return nil, err
	}
	if plant.ID == uuid.Nil {
		return nil, nil
	}
	return &plant, nil
}

func (r *plantRepo) GetByOwnerAndID(dbc dbctx.Context, ownerUserID, id uuid.UUID) (*types.Plant, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if ownerUserID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var plant types.Plant
	err := transaction.WithContext(dbc.Ctx).
		Where("owner_user_id = ? AND id = ?", ownerUserID, id).
		Limit(1).
		Find(&plant).Error
	if err != nil {
		return nil, err
	}
	if plant.ID == uuid.Nil {
		return nil, nil
	}
	return &plant, nil
}

func (r *plantRepo) ListByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.Plant, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Plant
	if ownerUserID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("grid_position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plantRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Plant{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *plantRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Plant{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *plantRepo) CountByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if ownerUserID == uuid.Nil {
		return 0, nil
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Plant{}).
		Where("owner_user_id = ?", ownerUserID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
