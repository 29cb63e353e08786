package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/florabyte/flowerbed-backend/internal/services"
)

type WeatherHandler struct {
	weatherService services.WeatherService
}

func NewWeatherHandler(weatherService services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

func (h *WeatherHandler) ByCoordinates(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", fmt.Errorf("lat must be a number"))
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", fmt.Errorf("lng must be a number"))
		return
	}
	snap, err := h.weatherService.ByCoordinates(c.Request.Context(), lat, lng)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, snap)
}
