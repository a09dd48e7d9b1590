package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/planner"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type topicServiceMock struct {
	lastQuery dto.TopicQuery
	lastDate  string
	hit       bool
	err       error
}

func (m *topicServiceMock) ResolveCurrentTopic(ctx context.Context, userID string, q dto.TopicQuery) (*dto.TopicView, bool, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, false, m.err
	}
	return &dto.TopicView{Class: q.Class, Subject: q.Subject, Date: q.Date, Topic: planner.TopicResult{Found: true, Label: "Aljabar"}}, m.hit, nil
}

func (m *topicServiceMock) TopicsForDay(ctx context.Context, userID, rawDate string) (*dto.DayTopics, error) {
	m.lastDate = rawDate
	if m.err != nil {
		return nil, m.err
	}
	return &dto.DayTopics{Date: rawDate, DayOfWeek: 1}, nil
}

func TestTopicHandlerCurrentReportsCacheHit(t *testing.T) {
	svc := &topicServiceMock{hit: true}
	handler := NewTopicHandler(svc)
	c, w := newTeacherContext(http.MethodGet, "/topics/current?class=VII-A&subject=Matematika&date=2025-08-11", nil)

	handler.Current(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "VII-A", svc.lastQuery.Class)
	assert.Equal(t, "2025-08-11", svc.lastQuery.Date)

	var envelope struct {
		Data struct {
			Topic planner.TopicResult `json:"topic"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Aljabar", envelope.Data.Topic.Label)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestTopicHandlerCurrentPropagatesValidation(t *testing.T) {
	svc := &topicServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "class is required")}
	handler := NewTopicHandler(svc)
	c, w := newTeacherContext(http.MethodGet, "/topics/current", nil)

	handler.Current(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTopicHandlerTodayPassesDate(t *testing.T) {
	svc := &topicServiceMock{}
	handler := NewTopicHandler(svc)
	c, w := newTeacherContext(http.MethodGet, "/topics/today?date=2025-08-11", nil)

	handler.Today(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-08-11", svc.lastDate)
}
