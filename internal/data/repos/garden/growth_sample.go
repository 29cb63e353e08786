package garden

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type GrowthSampleRepo interface {
	Create(dbc dbctx.Context, samples []*types.GrowthSample) ([]*types.GrowthSample, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.GrowthSample, error)
	LatestByPlant(dbc dbctx.Context, plantID uuid.UUID) (*types.GrowthSample, error)
	ListByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]*types.GrowthSample, error)
	ListByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.GrowthSample, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type growthSampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGrowthSampleRepo(db *gorm.DB, baseLog *logger.Logger) GrowthSampleRepo {
	return &growthSampleRepo{
		db:  db,
		log: baseLog.With("repo", "GrowthSampleRepo"),
	}
}

func (r *growthSampleRepo) Create(dbc dbctx.Context, samples []*types.GrowthSample) ([]*types.GrowthSample, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(samples) == 0 {
		return []*types.GrowthSample{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *growthSampleRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.GrowthSample, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var sample types.GrowthSample
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&sample).Error
	if err != nil {
		return nil, err
	}
	if sample.ID == uuid.Nil {
		return nil, nil
	}
	return &sample, nil
}

func (r *growthSampleRepo) LatestByPlant(dbc dbctx.Context, plantID uuid.UUID) (*types.GrowthSample, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if plantID == uuid.Nil {
		return nil, nil
	}
	var sample types.GrowthSample
	err := transaction.WithContext(dbc.Ctx).
		Where("plant_id = ?", plantID).
		Order("recorded_at DESC").
		Limit(1).
		Find(&sample).Error
	if err != nil {
		return nil, err
	}
	if sample.ID == uuid.Nil {
		return nil, nil
	}
	return &sample, nil
}

func (r *growthSampleRepo) ListByPlant(dbc dbctx.Context, plantID uuid.UUID) ([]*types.GrowthSample, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.GrowthSample
	if plantID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("plant_id = ?", plantID).
		Order("recorded_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *growthSampleRepo) ListByOwner(dbc dbctx.Context, ownerUserID uuid.UUID) ([]*types.GrowthSample, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.GrowthSample
	if ownerUserID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Joins("JOIN plant ON plant.id = growth_sample.plant_id").
		Where("plant.owner_user_id = ?", ownerUserID).
		Order("growth_sample.recorded_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *growthSampleRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.GrowthSample{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
