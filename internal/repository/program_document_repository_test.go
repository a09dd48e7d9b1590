package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

var programDocumentRowColumns = []string{"id", "user_id", "type", "subject", "grade_level", "academic_year", "semester", "payload", "updated_at"}

func TestProgramDocumentRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgramDocumentRepository(db)

	rows := sqlmock.NewRows(programDocumentRowColumns).
		AddRow("calendar_u1_7_2025-2026_Ganjil", "u1", "calendar_structure", "", "7", "2025/2026", "Ganjil", []byte(`{"pekanEfektif":[]}`), time.Now())
	mock.ExpectQuery("SELECT id, user_id, type").
		WithArgs("u1", "calendar_u1_7_2025-2026_Ganjil").
		WillReturnRows(rows)

	doc, err := repo.Get(context.Background(), "u1", "calendar_u1_7_2025-2026_Ganjil")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentTypeCalendar, doc.Type)
	assert.JSONEq(t, `{"pekanEfektif":[]}`, doc.Payload.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramDocumentRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgramDocumentRepository(db)

	mock.ExpectQuery("SELECT id, user_id, type").
		WithArgs("u1", "missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u1", "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestProgramDocumentRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgramDocumentRepository(db)

	mock.ExpectExec("INSERT INTO program_documents").
		WithArgs("u1_Matematika_7_2025-2026_Ganjil", "u1", "program", "Matematika", "7", "2025/2026", "Ganjil", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	doc := &models.ProgramDocument{
		ID:           "u1_Matematika_7_2025-2026_Ganjil",
		UserID:       "u1",
		Type:         models.DocumentTypeProgram,
		Subject:      "Matematika",
		GradeLevel:   "7",
		AcademicYear: "2025/2026",
		Semester:     "Ganjil",
		Payload:      types.JSONText(`{"jpPerWeek":4}`),
	}
	require.NoError(t, repo.Upsert(context.Background(), doc))
	assert.False(t, doc.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramDocumentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgramDocumentRepository(db)

	rows := sqlmock.NewRows(programDocumentRowColumns).
		AddRow("a", "u1", "program", "Matematika", "VII-A", "2025/2026", "Ganjil", []byte(`{}`), time.Now()).
		AddRow("b", "u1", "program", "Matematika", "7", "2025/2026", "Ganjil", []byte(`{}`), time.Now().Add(-time.Hour))
	mock.ExpectQuery("SELECT id, user_id, type, .* FROM program_documents WHERE user_id = \\$1 AND type = ANY\\(\\$2\\) AND .*academic_year").
		WithArgs("u1", pq.Array([]string{"program", "calendar_structure"}), "2025-2026").
		WillReturnRows(rows)

	docs, err := repo.List(context.Background(), models.ProgramDocumentFilter{
		UserID:       "u1",
		Types:        []models.DocumentType{models.DocumentTypeProgram, models.DocumentTypeCalendar},
		AcademicYear: "2025 / 2026",
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "VII-A", docs[0].GradeLevel)
}

func TestProgramDocumentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgramDocumentRepository(db)

	mock.ExpectExec("DELETE FROM program_documents").
		WithArgs("u1", "doc").
		WillReturnError(errors.New("connection reset"))

	err := repo.Delete(context.Background(), "u1", "doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete program document")
}
