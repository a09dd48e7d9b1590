package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
	"github.com/noah-isme/teaching-program-api/pkg/response"
)

type teachingScheduleService interface {
	List(ctx context.Context, userID string, dayOfWeek *int) ([]models.TeachingSchedule, error)
	Create(ctx context.Context, userID string, req dto.TeachingScheduleRequest) (*models.TeachingSchedule, error)
	Delete(ctx context.Context, userID, id string) error
}

// TeachingScheduleHandler manages a teacher's weekly slots.
type TeachingScheduleHandler struct {
	service teachingScheduleService
}

// NewTeachingScheduleHandler builds a new handler.
func NewTeachingScheduleHandler(service teachingScheduleService) *TeachingScheduleHandler {
	return &TeachingScheduleHandler{service: service}
}

// List godoc
// @Summary List weekly teaching slots
// @Tags Schedules
// @Produce json
// @Param day query int false "ISO day of week, 1 = Monday"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *TeachingScheduleHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var day *int
	if raw := c.Query("day"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 7 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day must be between 1 and 7"))
			return
		}
		day = &parsed
	}
	items, err := h.service.List(c.Request.Context(), claims.UserID, day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Add a weekly teaching slot
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.TeachingScheduleRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *TeachingScheduleHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.TeachingScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid schedule payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Remove a weekly teaching slot
// @Tags Schedules
// @Param id path string true "Slot ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *TeachingScheduleHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
