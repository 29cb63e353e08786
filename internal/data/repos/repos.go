package repos

import (
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/data/repos/garden"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type PlantRepo = garden.PlantRepo
type CareProfileRepo = garden.CareProfileRepo
type MaintenanceTaskRepo = garden.MaintenanceTaskRepo
type GrowthSampleRepo = garden.GrowthSampleRepo
type CareBackfillRepo = garden.CareBackfillRepo

func NewPlantRepo(db *gorm.DB, baseLog *logger.Logger) PlantRepo {
	return garden.NewPlantRepo(db, baseLog)
}

func NewCareProfileRepo(db *gorm.DB, baseLog *logger.Logger) CareProfileRepo {
	return garden.NewCareProfileRepo(db, baseLog)
}

func NewMaintenanceTaskRepo(db *gorm.DB, baseLog *logger.Logger) MaintenanceTaskRepo {
	return garden.NewMaintenanceTaskRepo(db, baseLog)
}

func NewGrowthSampleRepo(db *gorm.DB, baseLog *logger.Logger) GrowthSampleRepo {
	return garden.NewGrowthSampleRepo(db, baseLog)
}

func NewCareBackfillRepo(db *gorm.DB, baseLog *logger.Logger) CareBackfillRepo {
	return garden.NewCareBackfillRepo(db, baseLog)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally scoped to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	return garden.IsUniqueViolation(err, constraint)
}
