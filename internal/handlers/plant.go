package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/florabyte/flowerbed-backend/internal/middleware"
	"github.com/florabyte/flowerbed-backend/internal/services"
)

type PlantHandler struct {
	plantService services.PlantService
}

func NewPlantHandler(plantService services.PlantService) *PlantHandler {
	return &PlantHandler{plantService: plantService}
}

func plantID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", fmt.Errorf("invalid flower id"))
		return uuid.Nil, false
	}
	return id, true
}

func clientLocation(c *gin.Context) *time.Location {
	tz := c.Query("tz")
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (h *PlantHandler) Create(c *gin.Context) {
	var input services.CreatePlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	plant, err := h.plantService.Create(c.Request.Context(), middleware.OwnerID(c), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, plant)
}

func (h *PlantHandler) List(c *gin.Context) {
	plants, err := h.plantService.List(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plants)
}

func (h *PlantHandler) Get(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	plant, err := h.plantService.Get(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plant)
}

func (h *PlantHandler) Update(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	var input services.UpdatePlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	plant, err := h.plantService.Update(c.Request.Context(), middleware.OwnerID(c), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plant)
}

func (h *PlantHandler) Delete(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	if err := h.plantService.Delete(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlantHandler) UpdateCareProfile(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	var input services.CareProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	profile, err := h.plantService.UpdateCareProfile(c.Request.Context(), middleware.OwnerID(c), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (h *PlantHandler) GetCareProfile(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	profile, err := h.plantService.GetCareProfile(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (h *PlantHandler) Status(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	status, err := h.plantService.Status(c.Request.Context(), middleware.OwnerID(c), id, clientLocation(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, status)
}
