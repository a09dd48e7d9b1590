package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/models"
)

func TestClassSectionRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSectionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "rombel", "level", "created_at", "updated_at"}).
		AddRow("c1", "u1", "VII-A", "VII", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, user_id, rombel, level").
		WithArgs("u1").
		WillReturnRows(rows)

	sections, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "VII", sections[0].Level)
}

func TestClassSectionRepositoryReplace(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSectionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM class_sections").WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO class_sections").
		WithArgs(sqlmock.AnyArg(), "u1", "VII-A", "VII", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO class_sections").
		WithArgs(sqlmock.AnyArg(), "u1", "VII-B", "VII", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	sections := []models.ClassSection{{Rombel: "VII-A", Level: "VII"}, {Rombel: "VII-B", Level: "VII"}}
	require.NoError(t, repo.Replace(context.Background(), "u1", sections))
	assert.NotEmpty(t, sections[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSectionRepositoryReplaceRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSectionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM class_sections").WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO class_sections").WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), "u1", []models.ClassSection{{Rombel: "VII-A", Level: "VII"}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
