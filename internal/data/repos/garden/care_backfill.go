package garden

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type CareBackfillRepo interface {
	Create(dbc dbctx.Context, rows []*types.CareBackfill) ([]*types.CareBackfill, error)
	ListPending(dbc dbctx.Context, limit int) ([]*types.CareBackfill, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type careBackfillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareBackfillRepo(db *gorm.DB, baseLog *logger.Logger) CareBackfillRepo {
	return &careBackfillRepo{
		db:  db,
		log: baseLog.With("repo", "CareBackfillRepo"),
	}
}

func (r *careBackfillRepo) Create(dbc dbctx.Context, rows []*types.CareBackfill) ([]*types.CareBackfill, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.CareBackfill{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *careBackfillRepo) ListPending(dbc dbctx.Context, limit int) ([]*types.CareBackfill, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 100
	}
	var out []*types.CareBackfill
	if err := transaction.WithContext(dbc.Ctx).
		Where("status = ?", types.BackfillPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *careBackfillRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.CareBackfill{}).
		Where("id = ?", id).
		Updates(updates).Error
}
