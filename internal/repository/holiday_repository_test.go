package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/models"
)

var holidayRowColumns = []string{"id", "user_id", "name", "category", "type", "date", "start_date", "end_date", "created_at", "updated_at"}

func TestHolidayRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	start := time.Date(2025, time.July, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 12, 0, 0, 0, 0, time.UTC)
	from := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(holidayRowColumns).
		AddRow("h1", "u1", "Class trip", "event", "manual", nil, start, end, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, user_id, name, .* FROM holidays WHERE \\(user_id = \\$1 OR type = 'public'\\) AND COALESCE\\(end_date, start_date, date\\) >= \\$2").
		WithArgs("u1", from).
		WillReturnRows(rows)

	holidays, err := repo.List(context.Background(), models.HolidayFilter{UserID: "u1", From: &from})
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Nil(t, holidays[0].Date)
	assert.Equal(t, start, *holidays[0].StartDate)
}

func TestHolidayRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec("INSERT INTO holidays").
		WithArgs(sqlmock.AnyArg(), "u1", "Libur", "", "manual", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	holiday := &models.Holiday{UserID: "u1", Name: "Libur", Type: "manual"}
	require.NoError(t, repo.Create(context.Background(), holiday))
	assert.NotEmpty(t, holiday.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec("UPDATE holidays SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM holidays").
		WithArgs("u1", "h1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.Holiday{ID: "h1", UserID: "u1", Name: "Libur", Type: "manual"}))
	require.NoError(t, repo.Delete(context.Background(), "u1", "h1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
