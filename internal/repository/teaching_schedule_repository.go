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

const teachingScheduleColumns = `id, user_id, class_name, subject, subject_id, day_of_week, start_period, end_period, start_time, end_time, created_at, updated_at`

// TeachingScheduleRepository persists a teacher's weekly timetable.
type TeachingScheduleRepository struct {
	db *sqlx.DB
}

// NewTeachingScheduleRepository constructs the repository.
func NewTeachingScheduleRepository(db *sqlx.DB) *TeachingScheduleRepository {
	return &TeachingScheduleRepository{db: db}
}

// List returns the teacher's slots ordered by day and period.
func (r *TeachingScheduleRepository) List(ctx context.Context, filter models.TeachingScheduleFilter) ([]models.TeachingSchedule, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if filter.DayOfWeek != nil {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, *filter.DayOfWeek)
	}
	if filter.ClassName != "" {
		conditions = append(conditions, fmt.Sprintf("UPPER(class_name) = UPPER($%d)", len(args)+1))
		args = append(args, filter.ClassName)
	}

	query := fmt.Sprintf(`SELECT %s FROM teaching_schedules WHERE %s ORDER BY day_of_week ASC, start_period ASC`,
		teachingScheduleColumns, strings.Join(conditions, " AND "))
	var schedules []models.TeachingSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("list teaching schedules: %w", err)
	}
	return schedules, nil
}

// Create inserts a slot, assigning an id when missing.
func (r *TeachingScheduleRepository) Create(ctx context.Context, schedule *models.TeachingSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	const query = `INSERT INTO teaching_schedules (id, user_id, class_name, subject, subject_id, day_of_week, start_period, end_period, start_time, end_time, created_at, updated_at)
VALUES (:id, :user_id, :class_name, :subject, :subject_id, :day_of_week, :start_period, :end_period, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create teaching schedule: %w", err)
	}
	return nil
}

// Delete removes one of the teacher's slots and reports whether it existed.
func (r *TeachingScheduleRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	const query = `DELETE FROM teaching_schedules WHERE user_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return false, fmt.Errorf("delete teaching schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete teaching schedule rows: %w", err)
	}
	return affected > 0, nil
}
