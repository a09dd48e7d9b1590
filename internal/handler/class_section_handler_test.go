package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
)

type classSectionServiceMock struct {
	replaced dto.ReplaceRosterRequest
}

func (m *classSectionServiceMock) List(ctx context.Context, userID string) ([]models.ClassSection, error) {
	return []models.ClassSection{{Rombel: "VII-A", Level: "VII"}}, nil
}

func (m *classSectionServiceMock) Replace(ctx context.Context, userID string, req dto.ReplaceRosterRequest) ([]models.ClassSection, error) {
	m.replaced = req
	out := make([]models.ClassSection, 0, len(req.Sections))
	for _, item := range req.Sections {
		out = append(out, models.ClassSection{UserID: userID, Rombel: item.Rombel, Level: item.Level})
	}
	return out, nil
}

func TestClassSectionHandlerReplace(t *testing.T) {
	svc := &classSectionServiceMock{}
	handler := NewClassSectionHandler(svc)
	body, _ := json.Marshal(dto.ReplaceRosterRequest{Sections: []dto.ClassSectionItem{{Rombel: "Unggulan 1", Level: "8"}}})
	c, w := newTeacherContext(http.MethodPut, "/classes", body)

	handler.Replace(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.replaced.Sections, 1)
	assert.Equal(t, "Unggulan 1", svc.replaced.Sections[0].Rombel)
}

func TestClassSectionHandlerReplaceInvalidBody(t *testing.T) {
	handler := NewClassSectionHandler(&classSectionServiceMock{})
	c, w := newTeacherContext(http.MethodPut, "/classes", []byte(`{"sections":`))

	handler.Replace(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
