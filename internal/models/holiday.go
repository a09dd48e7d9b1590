package models

import (
	"time"

	"github.com/noah-isme/teaching-program-api/internal/planner"
)

// Holiday is a stored holiday record. Either Date or StartDate/EndDate is set.
type Holiday struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Name      string     `db:"name" json:"name"`
	Category  string     `db:"category" json:"category"`
	Type      string     `db:"type" json:"type"`
	Date      *time.Time `db:"date" json:"date,omitempty"`
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// HolidayFilter narrows holiday listings.
type HolidayFilter struct {
	UserID string
	Type   string
	From   *time.Time
	To     *time.Time
}

// ToPlanner converts the record into the planner's holiday type.
func (h Holiday) ToPlanner() planner.Holiday {
	return planner.Holiday{
		ID:        h.ID,
		Name:      h.Name,
		Category:  h.Category,
		Scope:     planner.HolidayScope(h.Type),
		Date:      h.Date,
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
	}
}

// HolidaysToPlanner converts a slice of records.
func HolidaysToPlanner(items []Holiday) []planner.Holiday {
	out := make([]planner.Holiday, len(items))
	for i, h := range items {
		out[i] = h.ToPlanner()
	}
	return out
}
