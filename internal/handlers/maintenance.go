package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/florabyte/flowerbed-backend/internal/middleware"
	"github.com/florabyte/flowerbed-backend/internal/services"
)

type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", fmt.Errorf("invalid task id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *MaintenanceHandler) ListAll(c *gin.Context) {
	tasks, err := h.maintenanceService.ListAll(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (h *MaintenanceHandler) ListByPlant(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	tasks, err := h.maintenanceService.ListByPlant(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	var input services.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	task, err := h.maintenanceService.CreateManual(c.Request.Context(), middleware.OwnerID(c), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, task)
}

func (h *MaintenanceHandler) Complete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var body struct {
		PerformedBy string `json:"performedBy"`
	}
	// Body is optional; an empty performer is allowed.
	_ = c.ShouldBindJSON(&body)

	task, err := h.maintenanceService.Complete(c.Request.Context(), middleware.OwnerID(c), id, body.PerformedBy)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}

func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.maintenanceService.Delete(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
