package app

import (
	"github.com/florabyte/flowerbed-backend/internal/handlers"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type Handlers struct {
	Plant       *handlers.PlantHandler
	Maintenance *handlers.MaintenanceHandler
	Growth      *handlers.GrowthHandler
	Weather     *handlers.WeatherHandler
	Overview    *handlers.OverviewHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Plant:       handlers.NewPlantHandler(services.Plant),
		Maintenance: handlers.NewMaintenanceHandler(services.Maintenance),
		Growth:      handlers.NewGrowthHandler(services.Growth),
		Weather:     handlers.NewWeatherHandler(services.Weather),
		Overview:    handlers.NewOverviewHandler(services.Overview),
	}
}
