package planner

import (
	"fmt"
	"strings"
)

// Mismatch is one objective whose assigned hours disagree with its target.
type Mismatch struct {
	ObjectiveID int    `json:"objective"`
	Label       string `json:"label"`
	Target      int    `json:"target"`
	Actual      int    `json:"actual"`
}

// MismatchError rejects a save and carries every mismatching objective.
type MismatchError struct {
	Mismatches []Mismatch `json:"mismatches"`
}

func (e *MismatchError) Error() string {
	parts := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		parts = append(parts, fmt.Sprintf("objective %d: target %d, actual %d", m.ObjectiveID, m.Target, m.Actual))
	}
	return fmt.Sprintf("%d objective(s) do not reconcile: %s", len(e.Mismatches), strings.Join(parts, "; "))
}

// Validate checks every objective of the matrix and returns a *MismatchError listing all of
// them when at least one sum differs from its target. Blocked and out-of-range cells are
// ignored.
func Validate(m *Matrix) error {
	var mismatches []Mismatch
	for _, objective := range m.Objectives {
		target := objective.TargetHours.Int()
		actual := m.AssignedSum(objective.ID)
		if actual != target {
			mismatches = append(mismatches, Mismatch{
				ObjectiveID: objective.ID,
				Label:       objective.Label(),
				Target:      target,
				Actual:      actual,
			})
		}
	}
	if len(mismatches) > 0 {
		return &MismatchError{Mismatches: mismatches}
	}
	return nil
}

// StripUnsaveable drops every cell that cannot be stored: cells in blocked weeks, cells past
// the month's totalWeeks and cells of objectives not in the list. It returns the count removed.
func StripUnsaveable(cells AssignmentMap, objectives []Objective, calendar Calendar, blocked WeekSet) (AssignmentMap, int) {
	known := make(map[int]struct{}, len(objectives))
	for _, objective := range objectives {
		known[objective.ID] = struct{}{}
	}
	out, removed := StripBlocked(cells, blocked)
	for key := range out {
		_, ok := known[key.ObjectiveID]
		if !ok || !calendar.LegalWeek(key.Month, key.Week) {
			delete(out, key)
			removed++
		}
	}
	return out, removed
}

// StripBlocked returns a copy of cells without any cell sitting in a blocked week,
// plus the number of cells removed.
func StripBlocked(cells AssignmentMap, blocked WeekSet) (AssignmentMap, int) {
	out := make(AssignmentMap, len(cells))
	removed := 0
	for key, hours := range cells {
		if blocked.Has(key.Month, key.Week) {
			removed++
			continue
		}
		out[key] = hours
	}
	return out, removed
}

// ObjectivesReport is the recommended reconciliation shown while authoring objectives.
type ObjectivesReport struct {
	TotalTarget         int  `json:"totalTarget"`
	TotalEffectiveHours int  `json:"totalEffectiveHours"`
	Difference          int  `json:"difference"`
	Balanced            bool `json:"balanced"`
}

// ReconcileObjectives compares the objectives' total target with the calendar's effective hours.
// It never rejects anything.
func ReconcileObjectives(objectives []Objective, calendar Calendar, weeklyHourBudget int) ObjectivesReport {
	total := 0
	for _, objective := range objectives {
		total += objective.TargetHours.Int()
	}
	effective := calendar.TotalEffectiveHours(weeklyHourBudget)
	return ObjectivesReport{
		TotalTarget:         total,
		TotalEffectiveHours: effective,
		Difference:          total - effective,
		Balanced:            total == effective,
	}
}
