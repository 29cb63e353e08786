package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florabyte/flowerbed-backend/internal/middleware"
	"github.com/florabyte/flowerbed-backend/internal/services"
)

type GrowthHandler struct {
	growthService services.GrowthService
}

func NewGrowthHandler(growthService services.GrowthService) *GrowthHandler {
	return &GrowthHandler{growthService: growthService}
}

func (h *GrowthHandler) ListAll(c *gin.Context) {
	samples, err := h.growthService.ListAll(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, samples)
}

func (h *GrowthHandler) ListByPlant(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	samples, err := h.growthService.ListByPlant(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, samples)
}

func (h *GrowthHandler) Record(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	var input services.RecordGrowthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	sample, err := h.growthService.Record(c.Request.Context(), middleware.OwnerID(c), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, sample)
}
