package garden

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	BackfillStatusPending   = "pending"
	BackfillStatusResolved  = "resolved"
	BackfillStatusAbandoned = "abandoned"
)

// CareBackfill queues plants whose initial task seeding failed after the
// bounded retry. The reconciler drains pending rows and re-seeds whatever
// kinds are still missing.
type CareBackfill struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PlantID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"flower_id"`
	Kinds     datatypes.JSON `gorm:"column:kinds;type:jsonb" json:"kinds"`
	Attempts  int            `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError string         `gorm:"column:last_error" json:"last_error,omitempty"`
	Status    string         `gorm:"column:status;not null;default:pending;index" json:"status"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CareBackfill) TableName() string { return "care_backfill" }
