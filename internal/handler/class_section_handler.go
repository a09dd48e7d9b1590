package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/pkg/response"
)

type classSectionService interface {
	List(ctx context.Context, userID string) ([]models.ClassSection, error)
	Replace(ctx context.Context, userID string, req dto.ReplaceRosterRequest) ([]models.ClassSection, error)
}

// ClassSectionHandler exposes the teacher's class roster.
type ClassSectionHandler struct {
	service classSectionService
}

// NewClassSectionHandler builds a new handler.
func NewClassSectionHandler(service classSectionService) *ClassSectionHandler {
	return &ClassSectionHandler{service: service}
}

// List godoc
// @Summary List class sections
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassSectionHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	items, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Replace godoc
// @Summary Replace the class roster
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceRosterRequest true "Roster payload"
// @Success 200 {object} response.Envelope
// @Router /classes [put]
func (h *ClassSectionHandler) Replace(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.ReplaceRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid roster payload"))
		return
	}
	items, err := h.service.Replace(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
