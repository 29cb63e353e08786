package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/florabyte/flowerbed-backend/internal/clients/weather"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
	"github.com/florabyte/flowerbed-backend/internal/platform/apierr"
)

type fakeWeatherProvider struct {
	calls int
	snap  *weather.Snapshot
	err   error
}

func (f *fakeWeatherProvider) Current(ctx context.Context, lat, lng float64) (*weather.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCache) Close() error { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestWeatherServiceCachesSnapshots(t *testing.T) {
	provider := &fakeWeatherProvider{
		snap: &weather.Snapshot{Code: weather.CodeSunny, Condition: "Sunny", SunAvailable: true},
	}
	cache := newFakeCache()
	svc := NewWeatherService(testLogger(t), provider, cache, time.Hour)
	ctx := context.Background()

	first, err := svc.ByCoordinates(ctx, 14.5995, 120.9842)
	if err != nil {
		t.Fatalf("ByCoordinates: %v", err)
	}
	if first.Code != weather.CodeSunny {
		t.Fatalf("code = %s", first.Code)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}

	second, err := svc.ByCoordinates(ctx, 14.5995, 120.9842)
	if err != nil {
		t.Fatalf("ByCoordinates (cached): %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("cached read hit the provider (%d calls)", provider.calls)
	}
	if second.Code != first.Code {
		t.Fatalf("cached snapshot differs: %s vs %s", second.Code, first.Code)
	}

	// Nearby-but-distinct coordinates get their own key.
	if _, err := svc.ByCoordinates(ctx, 15.10, 120.98); err != nil {
		t.Fatalf("ByCoordinates (other): %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("provider calls = %d, want 2", provider.calls)
	}
}

func TestWeatherServiceProviderDown(t *testing.T) {
	provider := &fakeWeatherProvider{err: errors.New("connection refused")}
	svc := NewWeatherService(testLogger(t), provider, nil, 0)

	_, err := svc.ByCoordinates(context.Background(), 0, 0)
	if err == nil {
		t.Fatalf("expected error when provider is down")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}
	if ae.Status != 503 || ae.Code != "dependency_unavailable" {
		t.Fatalf("got status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestWeatherServiceRejectsBadCoordinates(t *testing.T) {
	provider := &fakeWeatherProvider{snap: &weather.Snapshot{Code: weather.CodeCloudy}}
	svc := NewWeatherService(testLogger(t), provider, nil, 0)

	if _, err := svc.ByCoordinates(context.Background(), 91, 0); err == nil {
		t.Fatalf("expected validation error for lat 91")
	}
	if _, err := svc.ByCoordinates(context.Background(), 0, -181); err == nil {
		t.Fatalf("expected validation error for lng -181")
	}
	if provider.calls != 0 {
		t.Fatalf("provider should not be called on invalid input")
	}
}
