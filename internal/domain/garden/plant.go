package garden

import (
	"time"

	"github.com/google/uuid"
)

type PlantColor string

const (
	ColorRed    PlantColor = "RED"
	ColorYellow PlantColor = "YELLOW"
	ColorPink   PlantColor = "PINK"
	ColorWhite  PlantColor = "WHITE"
	ColorPurple PlantColor = "PURPLE"
)

// GridSize is the number of cells in a garden grid. Positions run 0..GridSize-1.
const GridSize = 9

// MaxNameLength matches the client-side input cap.
const MaxNameLength = 20

type Plant struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"flower_id"`
	OwnerUserID   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_plant_owner_grid" json:"owner_user_id"`
	Name          string     `gorm:"column:name;not null" json:"flowerName"`
	Species       string     `gorm:"column:species;not null;index" json:"species"`
	Color         PlantColor `gorm:"column:color;not null" json:"color"`
	PlantingDate  time.Time  `gorm:"column:planting_date;not null" json:"plantingDate"`
	GridPosition  int        `gorm:"column:grid_position;not null;uniqueIndex:uniq_plant_owner_grid" json:"gridPosition"`
	CurrentHeight float64    `gorm:"column:current_height;not null;default:0" json:"currentHeight"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Plant) TableName() string { return "plant" }

func ValidColor(c PlantColor) bool {
	switch c {
	case ColorRed, ColorYellow, ColorPink, ColorWhite, ColorPurple:
		return true
	default:
		return false
	}
}
