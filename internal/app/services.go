package app

import (
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/clients/redis"
	"github.com/florabyte/flowerbed-backend/internal/clients/weather"
	"github.com/florabyte/flowerbed-backend/internal/garden"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
	"github.com/florabyte/flowerbed-backend/internal/services"
)

type Services struct {
	Plant       services.PlantService
	Maintenance services.MaintenanceService
	Growth      services.GrowthService
	Weather     services.WeatherService
	Overview    services.OverviewService
	Reconcile   services.ReconcileService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	catalog, err := garden.DefaultCatalog()
	if err != nil {
		return Services{}, err
	}

	// Weather collaborators are optional: without them the weather endpoint
	// answers 503 and everything else keeps working.
	var provider weather.Client
	if p, err := weather.NewClient(log); err != nil {
		log.Warn("Weather provider disabled", "error", err)
	} else {
		provider = p
	}
	var cache redis.Cache
	if c, err := redis.NewCache(log); err != nil {
		log.Warn("Weather cache disabled", "error", err)
	} else {
		cache = c
	}

	return Services{
		Plant: services.NewPlantService(
			db, log, catalog,
			r.Plant, r.CareProfile, r.MaintenanceTask, r.GrowthSample, r.CareBackfill,
		),
		Maintenance: services.NewMaintenanceService(db, log, r.Plant, r.CareProfile, r.MaintenanceTask),
		Growth:      services.NewGrowthService(db, log, r.Plant, r.GrowthSample),
		Weather:     services.NewWeatherService(log, provider, cache, cfg.WeatherCacheTTL),
		Overview:    services.NewOverviewService(db, log, r.Plant, r.MaintenanceTask, r.GrowthSample),
		Reconcile:   services.NewReconcileService(db, log, r.Plant, r.CareProfile, r.MaintenanceTask, r.CareBackfill),
	}, nil
}
