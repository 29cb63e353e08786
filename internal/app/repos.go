package app

import (
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type Repos struct {
	Plant           repos.PlantRepo
	CareProfile     repos.CareProfileRepo
	MaintenanceTask repos.MaintenanceTaskRepo
	GrowthSample    repos.GrowthSampleRepo
	CareBackfill    repos.CareBackfillRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Plant:           repos.NewPlantRepo(db, log),
		CareProfile:     repos.NewCareProfileRepo(db, log),
		MaintenanceTask: repos.NewMaintenanceTaskRepo(db, log),
		GrowthSample:    repos.NewGrowthSampleRepo(db, log),
		CareBackfill:    repos.NewCareBackfillRepo(db, log),
	}
}
