package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teaching-program-api/internal/models"
)

// ClassSectionRepository persists the teacher's class roster.
type ClassSectionRepository struct {
	db *sqlx.DB
}

// NewClassSectionRepository constructs the repository.
func NewClassSectionRepository(db *sqlx.DB) *ClassSectionRepository {
	return &ClassSectionRepository{db: db}
}

// List returns the roster ordered by rombel.
func (r *ClassSectionRepository) List(ctx context.Context, userID string) ([]models.ClassSection, error) {
	const query = `SELECT id, user_id, rombel, level, created_at, updated_at FROM class_sections WHERE user_id = $1 ORDER BY rombel ASC`
	var sections []models.ClassSection
	if err := r.db.SelectContext(ctx, &sections, query, userID); err != nil {
		return nil, fmt.Errorf("list class sections: %w", err)
	}
	return sections, nil
}

// Replace swaps the whole roster inside one transaction.
func (r *ClassSectionRepository) Replace(ctx context.Context, userID string, sections []models.ClassSection) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin class section tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM class_sections WHERE user_id = $1`, userID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear class sections: %w", err)
	}
	const query = `INSERT INTO class_sections (id, user_id, rombel, level, created_at, updated_at)
VALUES (:id, :user_id, :rombel, :level, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range sections {
		if sections[i].ID == "" {
			sections[i].ID = uuid.NewString()
		}
		sections[i].UserID = userID
		sections[i].CreatedAt = now
		sections[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, sections[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert class section: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit class section tx: %w", err)
	}
	return nil
}
