package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/teaching-program-api/internal/models"
)

const programDocumentColumns = `id, user_id, type, subject, grade_level, academic_year, semester, payload, updated_at`

// ProgramDocumentRepository stores planner documents as wholesale JSONB rows keyed by composite id.
type ProgramDocumentRepository struct {
	db *sqlx.DB
}

// NewProgramDocumentRepository constructs the repository.
func NewProgramDocumentRepository(db *sqlx.DB) *ProgramDocumentRepository {
	return &ProgramDocumentRepository{db: db}
}

// Get fetches a document by id. A missing document yields sql.ErrNoRows.
func (r *ProgramDocumentRepository) Get(ctx context.Context, userID, id string) (*models.ProgramDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM program_documents WHERE user_id = $1 AND id = $2`, programDocumentColumns)
	var doc models.ProgramDocument
	if err := r.db.GetContext(ctx, &doc, query, userID, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns the owner's documents, newest first.
func (r *ProgramDocumentRepository) List(ctx context.Context, filter models.ProgramDocumentFilter) ([]models.ProgramDocument, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		conditions = append(conditions, fmt.Sprintf("type = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(types))
	}
	if filter.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("REPLACE(REPLACE(academic_year, ' ', ''), '/', '-') = $%d", len(args)+1))
		args = append(args, strings.ReplaceAll(strings.ReplaceAll(filter.AcademicYear, " ", ""), "/", "-"))
	}

	query := fmt.Sprintf(`SELECT %s FROM program_documents WHERE %s ORDER BY updated_at DESC`,
		programDocumentColumns, strings.Join(conditions, " AND "))
	var docs []models.ProgramDocument
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("list program documents: %w", err)
	}
	return docs, nil
}

// Upsert writes the whole document, replacing any previous version.
func (r *ProgramDocumentRepository) Upsert(ctx context.Context, doc *models.ProgramDocument) error {
	const query = `INSERT INTO program_documents (id, user_id, type, subject, grade_level, academic_year, semester, payload, updated_at)
VALUES (:id, :user_id, :type, :subject, :grade_level, :academic_year, :semester, :payload, :updated_at)
ON CONFLICT (user_id, id)
DO UPDATE SET type = EXCLUDED.type, subject = EXCLUDED.subject, grade_level = EXCLUDED.grade_level,
              academic_year = EXCLUDED.academic_year, semester = EXCLUDED.semester,
              payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	doc.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("upsert program document: %w", err)
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (r *ProgramDocumentRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM program_documents WHERE user_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("delete program document: %w", err)
	}
	return nil
}
