package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/pkg/response"
)

type holidayService interface {
	List(ctx context.Context, userID string, q dto.HolidayQuery) ([]models.Holiday, error)
	Create(ctx context.Context, claims *models.JWTClaims, req dto.HolidayRequest) (*models.Holiday, error)
	Update(ctx context.Context, claims *models.JWTClaims, id string, req dto.HolidayRequest) (*models.Holiday, error)
	Delete(ctx context.Context, userID, id string) error
}

// HolidayHandler manages manual and public holidays.
type HolidayHandler struct {
	service holidayService
}

// NewHolidayHandler builds a new handler.
func NewHolidayHandler(service holidayService) *HolidayHandler {
	return &HolidayHandler{service: service}
}

// List godoc
// @Summary List holidays visible to the current teacher
// @Tags Holidays
// @Produce json
// @Param type query string false "manual or public"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var q dto.HolidayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, bindError(err, "invalid query parameters"))
		return
	}
	items, err := h.service.List(c.Request.Context(), claims.UserID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Create a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body dto.HolidayRequest true "Holiday payload"
// @Success 201 {object} response.Envelope
// @Router /holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid holiday payload"))
		return
	}
	holiday, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, holiday)
}

// Update godoc
// @Summary Update a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param id path string true "Holiday ID"
// @Param payload body dto.HolidayRequest true "Holiday payload"
// @Success 200 {object} response.Envelope
// @Router /holidays/{id} [put]
func (h *HolidayHandler) Update(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid holiday payload"))
		return
	}
	holiday, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, holiday, nil)
}

// Delete godoc
// @Summary Delete a holiday
// @Tags Holidays
// @Param id path string true "Holiday ID"
// @Success 204
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
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
