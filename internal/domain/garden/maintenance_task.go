package garden

import (
	"time"

	"github.com/google/uuid"
)

type TaskKind string

const (
	TaskWatering    TaskKind = "WATERING"
	TaskFertilizing TaskKind = "FERTILIZING"
	TaskPruning     TaskKind = "PRUNING"
	TaskSunlight    TaskKind = "SUNLIGHT"
	TaskPestControl TaskKind = "PEST_CONTROL"
)

// RecurringKinds are the kinds the scheduler seeds and re-schedules on
// completion. PEST_CONTROL tasks are only ever created manually.
var RecurringKinds = []TaskKind{TaskWatering, TaskFertilizing, TaskPruning, TaskSunlight}

func ValidTaskKind(k TaskKind) bool {
	switch k {
	case TaskWatering, TaskFertilizing, TaskPruning, TaskSunlight, TaskPestControl:
		return true
	default:
		return false
	}
}

// MaintenanceTask is one occurrence of a care obligation. At most one pending
// (completed_at IS NULL) task of a given kind may exist per plant; the partial
// unique index uniq_pending_task_plant_kind enforces it at the storage layer.
type MaintenanceTask struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"task_id"`
	PlantID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"flower_id"`
	Kind        TaskKind   `gorm:"column:kind;not null;index" json:"maintenanceType"`
	DueAt       time.Time  `gorm:"column:due_at;not null;index" json:"maintenanceDate"`
	CompletedAt *time.Time `gorm:"column:completed_at;index" json:"completedAt,omitempty"`
	CompletedBy string     `gorm:"column:completed_by" json:"performedBy,omitempty"`
	Notes       string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (MaintenanceTask) TableName() string { return "maintenance_task" }

func (t *MaintenanceTask) Pending() bool {
	return t != nil && t.CompletedAt == nil
}
