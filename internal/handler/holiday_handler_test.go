package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type holidayServiceMock struct {
	lastQuery dto.HolidayQuery
	lastID    string
	createErr error
}

func (m *holidayServiceMock) List(ctx context.Context, userID string, q dto.HolidayQuery) ([]models.Holiday, error) {
	m.lastQuery = q
	return []models.Holiday{{ID: "h1", Name: "HUT RI", Type: "public"}}, nil
}

func (m *holidayServiceMock) Create(ctx context.Context, claims *models.JWTClaims, req dto.HolidayRequest) (*models.Holiday, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Holiday{ID: "h2", Name: req.Name}, nil
}

func (m *holidayServiceMock) Update(ctx context.Context, claims *models.JWTClaims, id string, req dto.HolidayRequest) (*models.Holiday, error) {
	m.lastID = id
	return &models.Holiday{ID: id, Name: req.Name}, nil
}

func (m *holidayServiceMock) Delete(ctx context.Context, userID, id string) error {
	m.lastID = id
	return nil
}

func TestHolidayHandlerListBindsQuery(t *testing.T) {
	svc := &holidayServiceMock{}
	handler := NewHolidayHandler(svc)
	c, w := newTeacherContext(http.MethodGet, "/holidays?type=public&from=2025-07-01", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public", svc.lastQuery.Type)
	assert.Equal(t, "2025-07-01", svc.lastQuery.From)
}

func TestHolidayHandlerCreateForbidden(t *testing.T) {
	handler := NewHolidayHandler(&holidayServiceMock{createErr: appErrors.Clone(appErrors.ErrForbidden, "only administrators manage public holidays")})
	body, _ := json.Marshal(dto.HolidayRequest{Name: "Idul Adha", Type: "public", Date: "2025-06-06"})
	c, w := newTeacherContext(http.MethodPost, "/holidays", body)

	handler.Create(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHolidayHandlerCreated(t *testing.T) {
	handler := NewHolidayHandler(&holidayServiceMock{})
	body, _ := json.Marshal(dto.HolidayRequest{Name: "Studi tour", Type: "manual", StartDate: "2025-09-01", EndDate: "2025-09-04"})
	c, w := newTeacherContext(http.MethodPost, "/holidays", body)

	handler.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHolidayHandlerUpdateUsesPathID(t *testing.T) {
	svc := &holidayServiceMock{}
	handler := NewHolidayHandler(svc)
	body, _ := json.Marshal(dto.HolidayRequest{Name: "Rapat guru", Type: "manual", Date: "2025-08-20"})
	c, w := newTeacherContext(http.MethodPut, "/holidays/h9", body)
	c.Params = gin.Params{{Key: "id", Value: "h9"}}

	handler.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "h9", svc.lastID)
}
