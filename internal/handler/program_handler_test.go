package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/middleware"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/internal/planner"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type programServiceMock struct {
	lastUser  string
	lastScope dto.ProgramScopeQuery
	saveErr   error
	resetErr  error
}

func (m *programServiceMock) LoadCalendar(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.CalendarView, error) {
	m.lastUser, m.lastScope = userID, q
	return &dto.CalendarView{Source: dto.CalendarSourceDefault, GradeLevel: q.GradeLevel}, nil
}

func (m *programServiceMock) SaveCalendar(ctx context.Context, userID string, req dto.SaveCalendarRequest) (*dto.CalendarView, error) {
	return &dto.CalendarView{Months: req.Months}, nil
}

func (m *programServiceMock) SyncBudget(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.SyncBudgetResult, error) {
	return &dto.SyncBudgetResult{WeeklyHourBudget: 4, ClassName: "VII-A"}, nil
}

func (m *programServiceMock) LoadAllocation(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.AllocationView, error) {
	m.lastUser, m.lastScope = userID, q
	return &dto.AllocationView{Exists: true}, nil
}

func (m *programServiceMock) SaveObjectives(ctx context.Context, userID string, req dto.SaveObjectivesRequest) (*dto.SaveObjectivesResult, error) {
	return &dto.SaveObjectivesResult{Objectives: req.Objectives}, nil
}

func (m *programServiceMock) AutoDistribute(ctx context.Context, userID string, req dto.AutoDistributeRequest) (*dto.AutoDistributeResult, error) {
	return &dto.AutoDistributeResult{WeeklyHourBudget: 4, BudgetSource: dto.BudgetSourceRequest}, nil
}

func (m *programServiceMock) ValidateAndSave(ctx context.Context, userID string, req dto.SaveAssignmentsRequest) (*dto.SaveAssignmentsResult, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return &dto.SaveAssignmentsResult{Cells: req.Cells}, nil
}

func (m *programServiceMock) Reset(ctx context.Context, userID string, q dto.ProgramScopeQuery) error {
	return m.resetErr
}

func (m *programServiceMock) WeekStatuses(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.WeekGrid, error) {
	return &dto.WeekGrid{ThresholdDays: 4}, nil
}

func (m *programServiceMock) LoadATP(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.ATPDocument, error) {
	return &dto.ATPDocument{}, nil
}

func (m *programServiceMock) SaveATP(ctx context.Context, userID string, req dto.SaveATPRequest) (*dto.ATPDocument, error) {
	return &dto.ATPDocument{Items: req.Items}, nil
}

func (m *programServiceMock) ImportObjectivesFromATP(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.SaveObjectivesResult, error) {
	return &dto.SaveObjectivesResult{}, nil
}

func newTeacherContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "teacher-1", Role: models.RoleTeacher})
	return c, w
}

func TestProgramHandlerGetCalendarBindsScope(t *testing.T) {
	svc := &programServiceMock{}
	handler := NewProgramHandler(svc)
	c, w := newTeacherContext(http.MethodGet, "/programs/calendar?grade=VII&year=2025/2026&semester=Ganjil", nil)

	handler.GetCalendar(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "teacher-1", svc.lastUser)
	assert.Equal(t, "VII", svc.lastScope.GradeLevel)
	assert.Equal(t, "2025/2026", svc.lastScope.AcademicYear)
	assert.Equal(t, "Ganjil", svc.lastScope.Semester)
}

func TestProgramHandlerRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProgramHandler(&programServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/programs/allocation?grade=VII", nil)

	handler.GetAllocation(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProgramHandlerSaveAssignmentsInvalidBody(t *testing.T) {
	handler := NewProgramHandler(&programServiceMock{})
	c, w := newTeacherContext(http.MethodPut, "/programs/allocation/assignments", []byte(`invalid`))

	handler.SaveAssignments(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgramHandlerSaveAssignmentsMismatch(t *testing.T) {
	mismatches := []planner.Mismatch{{ObjectiveID: 1, Label: "Bilangan", Target: 8, Actual: 6}}
	svc := &programServiceMock{saveErr: appErrors.WithDetails(appErrors.Clone(appErrors.ErrAllocationMismatch, "1 objective does not match"), mismatches)}
	handler := NewProgramHandler(svc)
	body, _ := json.Marshal(map[string]interface{}{
		"subject":  "Matematika",
		"grade":    "VII",
		"year":     "2025/2026",
		"semester": "Ganjil",
		"promes":   map[string]string{"1_1_1": "6"},
	})
	c, w := newTeacherContext(http.MethodPut, "/programs/allocation/assignments", body)

	handler.SaveAssignments(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var envelope struct {
		Error struct {
			Code    string             `json:"code"`
			Details []planner.Mismatch `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "ALLOCATION_MISMATCH", envelope.Error.Code)
	require.Len(t, envelope.Error.Details, 1)
	assert.Equal(t, 8, envelope.Error.Details[0].Target)
}

func TestProgramHandlerResetNoContent(t *testing.T) {
	handler := NewProgramHandler(&programServiceMock{})
	c, _ := newTeacherContext(http.MethodDelete, "/programs/allocation?subject=IPA&grade=7&year=2025/2026&semester=Genap", nil)

	handler.Reset(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}

func TestProgramHandlerResetStoreFailure(t *testing.T) {
	handler := NewProgramHandler(&programServiceMock{resetErr: appErrors.ErrStoreUnavailable})
	c, w := newTeacherContext(http.MethodDelete, "/programs/allocation?subject=IPA&grade=7&year=2025/2026&semester=Genap", nil)

	handler.Reset(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
