package app

import (
	"strings"
	"time"

	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
	"github.com/florabyte/flowerbed-backend/internal/utils"
)

type Config struct {
	JWTSecretKey      string
	WeatherCacheTTL   time.Duration
	ReconcileInterval time.Duration
	AllowOrigins      []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	weatherTTLMinutes := utils.GetEnvAsInt("WEATHER_CACHE_TTL_MINUTES", 150, log)
	reconcileSeconds := utils.GetEnvAsInt("RECONCILE_INTERVAL_SECONDS", 300, log)

	var origins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return Config{
		JWTSecretKey:      jwtSecretKey,
		WeatherCacheTTL:   time.Duration(weatherTTLMinutes) * time.Minute,
		ReconcileInterval: time.Duration(reconcileSeconds) * time.Second,
		AllowOrigins:      origins,
	}
}
