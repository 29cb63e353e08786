package garden

import (
	"time"

	"github.com/google/uuid"
)

// CareProfile holds the per-plant care cadence and growth parameters. It is
// seeded from the species catalog when the plant is created and may be
// overridden afterwards, one row per plant.
type CareProfile struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlantID                  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"flower_id"`
	WaterFrequencyDays       int       `gorm:"column:water_frequency_days;not null" json:"waterFrequencyDays"`
	FertilizeFrequencyDays   int       `gorm:"column:fertilize_frequency_days;not null" json:"fertilizeFrequencyDays"`
	PruneFrequencyDays       int       `gorm:"column:prune_frequency_days;not null" json:"pruneFrequencyDays"`
	SunlightFrequencyDays    int       `gorm:"column:sunlight_frequency_days;not null" json:"sunlightFrequencyDays"`
	MaxHeightCm              float64   `gorm:"column:max_height_cm;not null" json:"maxHeight"`
	GrowthRatePercentPerWeek float64   `gorm:"column:growth_rate_percent_per_week;not null" json:"growthRatePercentPerWeek"`
	CreatedAt                time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CareProfile) TableName() string { return "care_profile" }
