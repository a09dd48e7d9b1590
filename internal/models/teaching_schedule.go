package models

import (
	"time"

	"github.com/noah-isme/teaching-program-api/internal/planner"
)

// TeachingSchedule is one weekly slot of a teacher's timetable.
type TeachingSchedule struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	ClassName   string    `db:"class_name" json:"class"`
	Subject     string    `db:"subject" json:"subject"`
	SubjectID   *string   `db:"subject_id" json:"subject_id,omitempty"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartPeriod int       `db:"start_period" json:"start_period"`
	EndPeriod   int       `db:"end_period" json:"end_period"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TeachingScheduleFilter narrows schedule listings.
type TeachingScheduleFilter struct {
	UserID    string
	DayOfWeek *int
	ClassName string
}

// ToPlanner converts the slot into the planner's schedule entry.
func (s TeachingSchedule) ToPlanner() planner.ScheduleEntry {
	entry := planner.ScheduleEntry{
		Class:       s.ClassName,
		Subject:     s.Subject,
		DayOfWeek:   s.DayOfWeek,
		StartPeriod: s.StartPeriod,
		EndPeriod:   s.EndPeriod,
	}
	if s.SubjectID != nil {
		entry.SubjectID = *s.SubjectID
	}
	return entry
}
