package garden

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type CareProfileRepo interface {
	Create(dbc dbctx.Context, profiles []*types.CareProfile) ([]*types.CareProfile, error)
	GetByPlantID(dbc dbctx.Context, plantID uuid.UUID) (*types.CareProfile, error)
	UpdateFieldsByPlantID(dbc dbctx.Context, plantID uuid.UUID, updates map[string]interface{}) (bool, error)
}

type careProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareProfileRepo(db *gorm.DB, baseLog *logger.Logger) CareProfileRepo {
	return &careProfileRepo{
		db:  db,
		log: baseLog.With("repo", "CareProfileRepo"),
	}
}

func (r *careProfileRepo) Create(dbc dbctx.Context, profiles []*types.CareProfile) ([]*types.CareProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(profiles) == 0 {
		return []*types.CareProfile{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *careProfileRepo) GetByPlantID(dbc dbctx.Context, plantID uuid.UUID) (*types.CareProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if plantID == uuid.Nil {
		return nil, nil
	}
	var profile types.CareProfile
	err := transaction.WithContext(dbc.Ctx).
		Where("plant_id = ?", plantID).
		Limit(1).
		Find(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, nil
	}
	return &profile, nil
}

func (r *careProfileRepo) UpdateFieldsByPlantID(dbc dbctx.Context, plantID uuid.UUID, updates map[string]interface{}) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if plantID == uuid.Nil {
		return false, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.CareProfile{}).
		Where("plant_id = ?", plantID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
