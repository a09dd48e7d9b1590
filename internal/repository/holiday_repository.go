package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teaching-program-api/internal/models"
)

const holidayColumns = `id, user_id, name, category, type, date, start_date, end_date, created_at, updated_at`

// HolidayRepository persists manual and public holidays.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs the repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// List returns holidays visible to the user: their own manual entries plus every public holiday.
func (r *HolidayRepository) List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error) {
	conditions := []string{"(user_id = $1 OR type = 'public')"}
	args := []interface{}{filter.UserID}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("COALESCE(end_date, start_date, date) >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("COALESCE(start_date, date) <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}

	query := fmt.Sprintf(`SELECT %s FROM holidays WHERE %s ORDER BY COALESCE(start_date, date) ASC`,
		holidayColumns, strings.Join(conditions, " AND "))
	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, args...); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}

// FindByID loads one of the user's holidays.
func (r *HolidayRepository) FindByID(ctx context.Context, userID, id string) (*models.Holiday, error) {
	query := fmt.Sprintf(`SELECT %s FROM holidays WHERE user_id = $1 AND id = $2`, holidayColumns)
	var holiday models.Holiday
	if err := r.db.GetContext(ctx, &holiday, query, userID, id); err != nil {
		return nil, err
	}
	return &holiday, nil
}

// Create inserts a holiday, assigning an id when missing.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	holiday.CreatedAt = now
	holiday.UpdatedAt = now
	const query = `INSERT INTO holidays (id, user_id, name, category, type, date, start_date, end_date, created_at, updated_at)
VALUES (:id, :user_id, :name, :category, :type, :date, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

// Update replaces a holiday's fields.
func (r *HolidayRepository) Update(ctx context.Context, holiday *models.Holiday) error {
	holiday.UpdatedAt = time.Now().UTC()
	const query = `UPDATE holidays SET name = :name, category = :category, type = :type, date = :date,
start_date = :start_date, end_date = :end_date, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("update holiday: %w", err)
	}
	return nil
}

// Delete removes one of the user's holidays.
func (r *HolidayRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM holidays WHERE user_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return nil
}
