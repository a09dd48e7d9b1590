package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type stubScheduleRepo struct {
	stubScheduleReader
	created []models.TeachingSchedule
	exists  bool
}

func (s *stubScheduleRepo) Create(ctx context.Context, schedule *models.TeachingSchedule) error {
	schedule.ID = "s1"
	s.created = append(s.created, *schedule)
	return nil
}

func (s *stubScheduleRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	return s.exists, nil
}

func TestTeachingScheduleCreate(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := NewTeachingScheduleService(repo, nil, nil)
	blank := "  "

	schedule, err := svc.Create(context.Background(), "u1", dto.TeachingScheduleRequest{
		Class: " VII-A ", Subject: "Matematika", SubjectID: &blank, DayOfWeek: 1, StartPeriod: 1, EndPeriod: 3, StartTime: "07:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "VII-A", schedule.ClassName)
	assert.Nil(t, schedule.SubjectID)
	assert.Equal(t, 3, schedule.ToPlanner().Periods())

	_, err = svc.Create(context.Background(), "u1", dto.TeachingScheduleRequest{Class: "VII-A", Subject: "Matematika", DayOfWeek: 8, StartPeriod: 1, EndPeriod: 1})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))

	_, err = svc.Create(context.Background(), "u1", dto.TeachingScheduleRequest{Class: "VII-A", Subject: "Matematika", DayOfWeek: 1, StartPeriod: 4, EndPeriod: 2})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))
}

func TestTeachingScheduleListAndDelete(t *testing.T) {
	repo := &stubScheduleRepo{stubScheduleReader: stubScheduleReader{items: []models.TeachingSchedule{{ID: "s1", DayOfWeek: 1}, {ID: "s2", DayOfWeek: 3}}}}
	svc := NewTeachingScheduleService(repo, nil, nil)

	day := 3
	items, err := svc.List(context.Background(), "u1", &day)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "s2", items[0].ID)

	day = 0
	_, err = svc.List(context.Background(), "u1", &day)
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))

	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(svc.Delete(context.Background(), "u1", "missing")))
	repo.exists = true
	assert.NoError(t, svc.Delete(context.Background(), "u1", "s1"))
}
