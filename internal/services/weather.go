package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/florabyte/flowerbed-backend/internal/clients/redis"
	"github.com/florabyte/flowerbed-backend/internal/clients/weather"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
	"github.com/florabyte/flowerbed-backend/internal/platform/apierr"
)

const DefaultWeatherTTL = 150 * time.Minute

type WeatherService interface {
	ByCoordinates(ctx context.Context, lat, lng float64) (*weather.Snapshot, error)
}

type weatherService struct {
	log      *logger.Logger
	provider weather.Client
	cache    redis.Cache
	ttl      time.Duration
}

// NewWeatherService builds the weather read path. cache may be nil; the
// service then always hits the provider.
func NewWeatherService(baseLog *logger.Logger, provider weather.Client, cache redis.Cache, ttl time.Duration) WeatherService {
	if ttl <= 0 {
		ttl = DefaultWeatherTTL
	}
	return &weatherService{
		log:      baseLog.With("service", "WeatherService"),
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

func cacheKey(lat, lng float64) string {
	// Two decimal places is roughly a 1km grid, plenty for weather.
	return fmt.Sprintf("weather:%.2f:%.2f", lat, lng)
}

func (s *weatherService) ByCoordinates(ctx context.Context, lat, lng float64) (*weather.Snapshot, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, validationErr("coordinates out of range")
	}

	if s.provider == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "dependency_unavailable",
			fmt.Errorf("weather provider not configured"))
	}

	key := cacheKey(lat, lng)
	if s.cache != nil {
		var cached weather.Snapshot
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log.Warn("Weather cache read failed", "key", key, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	snap, err := s.provider.Current(ctx, lat, lng)
	if err != nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "dependency_unavailable",
			fmt.Errorf("weather provider: %w", err))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, snap, s.ttl); err != nil {
			s.log.Warn("Weather cache write failed", "key", key, "error", err)
		}
	}
	return snap, nil
}
