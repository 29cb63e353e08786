package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/florabyte/flowerbed-backend/internal/handlers"
	"github.com/florabyte/flowerbed-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware     *middleware.AuthMiddleware
	PlantHandler       *handlers.PlantHandler
	MaintenanceHandler *handlers.MaintenanceHandler
	GrowthHandler      *handlers.GrowthHandler
	WeatherHandler     *handlers.WeatherHandler
	OverviewHandler    *handlers.OverviewHandler
	AllowOrigins       []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Flowers
	protected.POST("/flowers", cfg.PlantHandler.Create)
	protected.GET("/flowers", cfg.PlantHandler.List)
	protected.GET("/flowers/:id", cfg.PlantHandler.Get)
	protected.PUT("/flowers/:id", cfg.PlantHandler.Update)
	protected.DELETE("/flowers/:id", cfg.PlantHandler.Delete)
	protected.GET("/flowers/:id/care-profile", cfg.PlantHandler.GetCareProfile)
	protected.PUT("/flowers/:id/care-profile", cfg.PlantHandler.UpdateCareProfile)
	protected.GET("/flowers/:id/status", cfg.PlantHandler.Status)

	// Maintenance
	protected.GET("/maintenance", cfg.MaintenanceHandler.ListAll)
	protected.POST("/maintenance", cfg.MaintenanceHandler.Create)
	protected.GET("/maintenance/flower/:id", cfg.MaintenanceHandler.ListByPlant)
	protected.PATCH("/maintenance/:id/complete", cfg.MaintenanceHandler.Complete)
	protected.DELETE("/maintenance/:id", cfg.MaintenanceHandler.Delete)

	// Growth
	protected.GET("/growth", cfg.GrowthHandler.ListAll)
	protected.GET("/growth/flower/:id", cfg.GrowthHandler.ListByPlant)
	protected.POST("/growth/flower/:id", cfg.GrowthHandler.Record)

	// Weather
	protected.GET("/api/weather/coordinates", cfg.WeatherHandler.ByCoordinates)

	// Overview
	protected.GET("/overview", cfg.OverviewHandler.Get)

	return router
}
