package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/florabyte/flowerbed-backend/internal/pkg/httpx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
	"github.com/florabyte/flowerbed-backend/internal/utils"
)

// Condition codes mirror what the garden client renders.
const (
	CodeSunny        = "SUNNY"
	CodeSunnyClouds  = "SUNNY_CLOUDS"
	CodeSunnyRain    = "SUNNY_RAIN"
	CodeCloudy       = "CLOUDY"
	CodeRainy        = "RAINY"
	CodeThunder      = "THUNDER"
	CodeThunderstorm = "THUNDERSTORM"
)

type Snapshot struct {
	Code         string  `json:"code"`
	Condition    string  `json:"condition"`
	TemperatureC float64 `json:"temperatureC"`
	SunAvailable bool    `json:"sunAvailable"`
}

type Client interface {
	Current(ctx context.Context, lat, lng float64) (*Snapshot, error)
}

type openWeatherClient struct {
	log     *logger.Logger
	http    *http.Client
	baseURL string
	apiKey  string
	retries int
}

type statusError struct {
	status int
}

func (e *statusError) Error() string       { return fmt.Sprintf("weather provider status %d", e.status) }
func (e *statusError) HTTPStatusCode() int { return e.status }

func NewClient(baseLog *logger.Logger) (Client, error) {
	log := baseLog.With("service", "WeatherClient")
	apiKey := utils.GetEnv("WEATHER_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("missing WEATHER_API_KEY")
	}
	return &openWeatherClient{
		log:     log,
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: utils.GetEnv("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/weather", log),
		apiKey:  apiKey,
		retries: utils.GetEnvAsInt("WEATHER_MAX_RETRIES", 2, log),
	}, nil
}

type providerResponse struct {
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

func (c *openWeatherClient) Current(ctx context.Context, lat, lng float64) (*Snapshot, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', 4, 64))
	query.Set("units", "metric")
	query.Set("appid", c.apiKey)
	endpoint := c.baseURL + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(httpx.JitterSleep(500 * time.Millisecond)):
			}
		}
		snap, err := c.fetch(ctx, endpoint)
		if err == nil {
			return snap, nil
		}
		lastErr = err
		if !httpx.IsRetryableError(err) {
			break
		}
		c.log.Warn("Weather fetch failed, retrying", "attempt", attempt+1, "error", err)
	}
	return nil, lastErr
}

func (c *openWeatherClient) fetch(ctx context.Context, endpoint string) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode}
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if len(body.Weather) == 0 {
		return nil, fmt.Errorf("weather response missing conditions")
	}

	code, condition := classify(body.Weather[0].ID, body.Weather[0].Description)
	return &Snapshot{
		Code:         code,
		Condition:    condition,
		TemperatureC: body.Main.Temp,
		SunAvailable: SunAvailable(code),
	}, nil
}

// classify folds the provider's condition ids into the garden's seven codes.
// Groups follow the OpenWeatherMap id ranges: 2xx thunderstorms, 3xx/5xx rain,
// 800 clear, 801+ clouds.
func classify(id int, description string) (string, string) {
	var code string
	switch {
	case id >= 200 && id < 233:
		if id >= 210 && id <= 221 {
			code = CodeThunder
		} else {
			code = CodeThunderstorm
		}
	case id >= 300 && id < 400:
		code = CodeSunnyRain
	case id >= 500 && id < 505:
		code = CodeSunnyRain
	case id >= 505 && id < 600:
		code = CodeRainy
	case id >= 600 && id < 700:
		code = CodeRainy
	case id >= 700 && id < 800:
		code = CodeCloudy
	case id == 800:
		code = CodeSunny
	case id == 801 || id == 802:
		code = CodeSunnyClouds
	default:
		code = CodeCloudy
	}
	if description == "" {
		description = conditionLabel(code)
	}
	return code, description
}

func conditionLabel(code string) string {
	switch code {
	case CodeSunny:
		return "Sunny"
	case CodeSunnyClouds:
		return "Sunny with clouds"
	case CodeSunnyRain:
		return "Sun showers"
	case CodeRainy:
		return "Rainy"
	case CodeThunder:
		return "Thunder"
	case CodeThunderstorm:
		return "Thunderstorm"
	default:
		return "Cloudy"
	}
}

// SunAvailable reports whether plants get usable sunlight under a code.
func SunAvailable(code string) bool {
	switch code {
	case CodeSunny, CodeSunnyClouds, CodeSunnyRain:
		return true
	default:
		return false
	}
}
