package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type teachingScheduleServiceMock struct {
	lastDay   *int
	deleteErr error
}

func (m *teachingScheduleServiceMock) List(ctx context.Context, userID string, dayOfWeek *int) ([]models.TeachingSchedule, error) {
	m.lastDay = dayOfWeek
	return []models.TeachingSchedule{}, nil
}

func (m *teachingScheduleServiceMock) Create(ctx context.Context, userID string, req dto.TeachingScheduleRequest) (*models.TeachingSchedule, error) {
	return &models.TeachingSchedule{ID: "s1", UserID: userID}, nil
}

func (m *teachingScheduleServiceMock) Delete(ctx context.Context, userID, id string) error {
	return m.deleteErr
}

func TestTeachingScheduleHandlerListDayFilter(t *testing.T) {
	svc := &teachingScheduleServiceMock{}
	handler := NewTeachingScheduleHandler(svc)
	c, w := newTeacherContext(http.MethodGet, "/schedules?day=3", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastDay)
	assert.Equal(t, 3, *svc.lastDay)
}

func TestTeachingScheduleHandlerListRejectsInvalidDay(t *testing.T) {
	for _, raw := range []string{"0", "8", "monday"} {
		handler := NewTeachingScheduleHandler(&teachingScheduleServiceMock{})
		c, w := newTeacherContext(http.MethodGet, "/schedules?day="+raw, nil)

		handler.List(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}
}

func TestTeachingScheduleHandlerDeleteNotFound(t *testing.T) {
	handler := NewTeachingScheduleHandler(&teachingScheduleServiceMock{deleteErr: appErrors.ErrNotFound})
	c, w := newTeacherContext(http.MethodDelete, "/schedules/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
