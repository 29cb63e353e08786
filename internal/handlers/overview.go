package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/florabyte/flowerbed-backend/internal/middleware"
	"github.com/florabyte/flowerbed-backend/internal/services"
)

type OverviewHandler struct {
	overviewService services.OverviewService
}

func NewOverviewHandler(overviewService services.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

func (h *OverviewHandler) Get(c *gin.Context) {
	overview, err := h.overviewService.Overview(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, overview)
}
