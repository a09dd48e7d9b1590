package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/middleware"
	"github.com/noah-isme/teaching-program-api/pkg/response"
)

type topicService interface {
	ResolveCurrentTopic(ctx context.Context, userID string, q dto.TopicQuery) (*dto.TopicView, bool, error)
	TopicsForDay(ctx context.Context, userID, rawDate string) (*dto.DayTopics, error)
}

// TopicHandler answers "what is scheduled to be taught" lookups.
type TopicHandler struct {
	service topicService
}

// NewTopicHandler builds a new handler.
func NewTopicHandler(service topicService) *TopicHandler {
	return &TopicHandler{service: service}
}

// Current godoc
// @Summary Resolve the planned topic for a class and date
// @Tags Topics
// @Produce json
// @Param class query string true "Class section, e.g. VII-A"
// @Param subject query string false "Subject"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /topics/current [get]
func (h *TopicHandler) Current(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var q dto.TopicQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, bindError(err, "invalid query parameters"))
		return
	}
	view, hit, err := h.service.ResolveCurrentTopic(c.Request.Context(), claims.UserID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	if view != nil && view.Topic.ProgramTier != "" {
		middleware.SetMeta(c, "program_tier", view.Topic.ProgramTier)
	}
	response.JSON(c, http.StatusOK, view, nil, middleware.ExtractMeta(c))
}

// Today godoc
// @Summary Planned topics for every teaching slot of a day
// @Tags Topics
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /topics/today [get]
func (h *TopicHandler) Today(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	day, err := h.service.TopicsForDay(c.Request.Context(), claims.UserID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, day, nil)
}
