package app

import (
	"github.com/gin-gonic/gin"

	"github.com/florabyte/flowerbed-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:     m.Auth,
		PlantHandler:       h.Plant,
		MaintenanceHandler: h.Maintenance,
		GrowthHandler:      h.Growth,
		WeatherHandler:     h.Weather,
		OverviewHandler:    h.Overview,
		AllowOrigins:       cfg.AllowOrigins,
	})
}
