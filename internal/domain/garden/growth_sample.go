package garden

import (
	"time"

	"github.com/google/uuid"
)

type GrowthStage string

const (
	StageSeed     GrowthStage = "SEED"
	StageSeedling GrowthStage = "SEEDLING"
	StageBudding  GrowthStage = "BUDDING"
	StageWilting  GrowthStage = "WILTING"
	StageBlooming GrowthStage = "BLOOMING"
)

func ValidGrowthStage(s GrowthStage) bool {
	switch s {
	case StageSeed, StageSeedling, StageBudding, StageWilting, StageBlooming:
		return true
	default:
		return false
	}
}

type GrowthSource string

const (
	GrowthSourceManual    GrowthSource = "manual"
	GrowthSourceSimulated GrowthSource = "simulated"
)

// GrowthSample is an append-only height reading. The stage field is a label
// chosen by the user or carried forward by the system; it is not derived from
// height. The growth-percentage bucket shown next to it is computed from the
// height alone.
type GrowthSample struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PlantID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"flower_id"`
	Stage      GrowthStage  `gorm:"column:stage;not null" json:"stage"`
	HeightCm   float64      `gorm:"column:height_cm;not null" json:"height"`
	Source     GrowthSource `gorm:"column:source;not null;default:manual" json:"source"`
	Notes      string       `gorm:"column:notes" json:"notes,omitempty"`
	RecordedAt time.Time    `gorm:"column:recorded_at;not null;index" json:"recordedAt"`
	CreatedAt  time.Time    `gorm:"not null;default:now()" json:"created_at"`
}

func (GrowthSample) TableName() string { return "growth_sample" }
