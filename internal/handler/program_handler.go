package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/pkg/response"
)

type programService interface {
	LoadCalendar(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.CalendarView, error)
	SaveCalendar(ctx context.Context, userID string, req dto.SaveCalendarRequest) (*dto.CalendarView, error)
	SyncBudget(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.SyncBudgetResult, error)
	LoadAllocation(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.AllocationView, error)
	SaveObjectives(ctx context.Context, userID string, req dto.SaveObjectivesRequest) (*dto.SaveObjectivesResult, error)
	AutoDistribute(ctx context.Context, userID string, req dto.AutoDistributeRequest) (*dto.AutoDistributeResult, error)
	ValidateAndSave(ctx context.Context, userID string, req dto.SaveAssignmentsRequest) (*dto.SaveAssignmentsResult, error)
	Reset(ctx context.Context, userID string, q dto.ProgramScopeQuery) error
	WeekStatuses(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.WeekGrid, error)
	LoadATP(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.ATPDocument, error)
	SaveATP(ctx context.Context, userID string, req dto.SaveATPRequest) (*dto.ATPDocument, error)
	ImportObjectivesFromATP(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.SaveObjectivesResult, error)
}

// ProgramHandler exposes the teaching program planner: calendar, objectives and weekly
// allocation.
type ProgramHandler struct {
	service programService
}

// NewProgramHandler builds a new handler.
func NewProgramHandler(service programService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

// scopeQuery binds the scope query string; ok is false once an error response was written.
func (h *ProgramHandler) scopeQuery(c *gin.Context) (string, dto.ProgramScopeQuery, bool) {
	claims := requireClaims(c)
	if claims == nil {
		return "", dto.ProgramScopeQuery{}, false
	}
	var q dto.ProgramScopeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, bindError(err, "invalid query parameters"))
		return "", dto.ProgramScopeQuery{}, false
	}
	return claims.UserID, q, true
}

// GetCalendar godoc
// @Summary Load the effective-week calendar
// @Description Falls back to the default template when nothing is stored.
// @Tags Programs
// @Produce json
// @Param grade query string true "Grade level"
// @Param year query string true "Academic year, e.g. 2025/2026"
// @Param semester query string true "Ganjil or Genap"
// @Param subject query string false "Subject, to include the weekly hour budget"
// @Success 200 {object} response.Envelope
// @Router /programs/calendar [get]
func (h *ProgramHandler) GetCalendar(c *gin.Context) {
	userID, q, ok := h.scopeQuery(c)
	if !ok {
		return
	}
	view, err := h.service.LoadCalendar(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SaveCalendar godoc
// @Summary Save the effective-week calendar
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.SaveCalendarRequest true "Calendar payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /programs/calendar [put]
func (h *ProgramHandler) SaveCalendar(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.SaveCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid calendar payload"))
		return
	}
	view, err := h.service.SaveCalendar(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SyncBudget godoc
// @Summary Derive the weekly hour budget from the teaching schedule
// @Tags Programs
// @Produce json
// @Param subject query string true "Subject"
// @Param grade query string true "Grade level"
// @Param year query string true "Academic year"
// @Param semester query string true "Ganjil or Genap"
// @Param subject_id query string false "Subject id"
// @Success 200 {object} response.Envelope
// @Router /programs/calendar/sync-budget [post]
func (h *ProgramHandler) SyncBudget(c *gin.Context) {
	userID, q, ok := h.scopeQuery(c)
	if !ok {
		return
	}
	result, err := h.service.SyncBudget(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetAllocation godoc
// @Summary Load objectives and weekly assignments
// @Tags Programs
// @Produce json
// @Param subject query string true "Subject"
// @Param grade query string true "Grade level"
// @Param year query string true "Academic year"
// @Param semester query string true "Ganjil or Genap"
// @Success 200 {object} response.Envelope
// @Router /programs/allocation [get]
func (h *ProgramHandler) GetAllocation(c *gin.Context) {
	userID, q, ok := h.scopeQuery(c)
	if !ok {
		return
	}
	view, err := h.service.LoadAllocation(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SaveObjectives godoc
// @Summary Replace the program objectives
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.SaveObjectivesRequest true "Objectives payload"
// @Success 200 {object} response.Envelope
// @Router /programs/allocation/objectives [put]
func (h *ProgramHandler) SaveObjectives(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.SaveObjectivesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid objectives payload"))
		return
	}
	result, err := h.service.SaveObjectives(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AutoDistribute godoc
// @Summary Propose a weekly assignment map
// @Description The proposal is not saved.
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.AutoDistributeRequest true "Distribution payload"
// @Success 200 {object} response.Envelope
// @Router /programs/allocation/auto-distribute [post]
func (h *ProgramHandler) AutoDistribute(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.AutoDistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid distribution payload"))
		return
	}
	result, err := h.service.AutoDistribute(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SaveAssignments godoc
// @Summary Validate and save the weekly assignments
// @Description Rejected with 422 and the full mismatch list when any objective does not reconcile.
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.SaveAssignmentsRequest true "Assignments payload"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /programs/allocation/assignments [put]
func (h *ProgramHandler) SaveAssignments(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.SaveAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid assignments payload"))
		return
	}
	result, err := h.service.ValidateAndSave(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reset godoc
// @Summary Delete the program objectives and assignments
// @Tags Programs
// @Param subject query string true "Subject"
// @Param grade query string true "Grade level"
// @Param year query string true "Academic year"
// @Param semester query string true "Ganjil or Genap"
// @Success 204
// @Router /programs/allocation [delete]
func (h *ProgramHandler) Reset(c *gin.Context) {
	userID, q, ok := h.scopeQuery(c)
	if !ok {
		return
	}
	if err := h.service.Reset(c.Request.Context(), userID, q); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// WeekStatuses godoc
// @Summary Per-week holiday grid
// @Tags Programs
// @Produce json
// @Param grade query string true "Grade level"
// @Param year query string true "Academic year"
// @Param semester query string true "Ganjil or Genap"
// @Success 200 {object} response.Envelope
// @Router /programs/allocation/weeks [get]
func (h *ProgramHandler) WeekStatuses(c *gin.Context) {
	userID, q, ok := h.scopeQuery(c)
	if !ok {
		return
	}
	grid, err := h.service.WeekStatuses(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// GetATP godoc
// @Summary Load the learning-objective flow
// @Tags Programs
// @Produce json
// @Param subject query string true "Subject"
// @Param grade query string true "Grade level"
// @Param year query string true "Academic year"
// @Param semester query string true "Ganjil or Genap"
// @Success 200 {object} response.Envelope
// @Router /programs/atp [get]
func (h *ProgramHandler) GetATP(c *gin.Context) {
	userID, q, ok := h.scopeQuery(c)
	if !ok {
		return
	}
	doc, err := h.service.LoadATP(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// SaveATP godoc
// @Summary Replace the learning-objective flow
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.SaveATPRequest true "ATP payload"
// @Success 200 {object} response.Envelope
// @Router /programs/atp [put]
func (h *ProgramHandler) SaveATP(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.SaveATPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid learning-objective flow payload"))
		return
	}
	doc, err := h.service.SaveATP(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// ImportATP godoc
// @Summary Replace the objectives with the learning-objective flow rows
// @Tags Programs
// @Produce json
// @Param subject query string true "Subject"
// @Param grade query string true "Grade level"
// @Param year query string true "Academic year"
// @Param semester query string true "Ganjil or Genap"
// @Success 200 {object} response.Envelope
// @Router /programs/allocation/import-atp [post]
func (h *ProgramHandler) ImportATP(c *gin.Context) {
	userID, q, ok := h.scopeQuery(c)
	if !ok {
		return
	}
	result, err := h.service.ImportObjectivesFromATP(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
