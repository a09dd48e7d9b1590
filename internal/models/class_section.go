package models

import (
	"time"

	"github.com/noah-isme/teaching-program-api/internal/planner"
)

// ClassSection maps a class section (rombel) to its grade level for one teacher.
type ClassSection struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Rombel    string    `db:"rombel" json:"rombel"`
	Level     string    `db:"level" json:"level"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassSectionsToPlanner converts the roster for topic lookup.
func ClassSectionsToPlanner(items []ClassSection) []planner.ClassSection {
	out := make([]planner.ClassSection, len(items))
	for i, c := range items {
		out[i] = planner.ClassSection{Rombel: c.Rombel, Level: c.Level}
	}
	return out
}
