package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForSaveReportsEditedObjective(t *testing.T) {
	engine := NewEngine(Options{})
	cal := DefaultCalendar(oddPeriod)
	objectives := []Objective{{ID: 1, TopicLabel: "Bilangan", TargetHours: 20}, {ID: 2, TopicLabel: "Aljabar", TargetHours: 8}}
	cells := engine.AutoDistribute(objectives, cal, nil, 4).Assignments

	cells.SetCell(1, 1, 0, 2)

	_, err := engine.ValidateForSave(objectives, cells, cal, nil)
	require.Error(t, err)
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []Mismatch{{ObjectiveID: 1, Label: "Bilangan", Target: 20, Actual: 18}}, mismatch.Mismatches)
}

func TestValidateReportsEveryMismatch(t *testing.T) {
	cal := DefaultCalendar(oddPeriod)
	objectives := []Objective{{ID: 1, TargetHours: 4}, {ID: 2, TargetHours: 4}, {ID: 3, TargetHours: 4}}
	cells := AssignmentMap{}
	cells.SetCell(1, 0, 0, 3)
	cells.SetCell(2, 0, 1, 4)
	cells.SetCell(3, 0, 2, 5)

	err := Validate(NewMatrix(cal, objectives, cells, nil))
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Len(t, mismatch.Mismatches, 2)
	assert.Equal(t, 1, mismatch.Mismatches[0].ObjectiveID)
	assert.Equal(t, 3, mismatch.Mismatches[1].ObjectiveID)
	assert.Contains(t, err.Error(), "objective 3: target 4, actual 5")
}

func TestValidateIgnoresBlockedAndIllegalCells(t *testing.T) {
	cal := DefaultCalendar(oddPeriod)
	objectives := []Objective{{ID: 1, TargetHours: 4}}
	blocked := WeekSet{}
	blocked.Add(0, 1)

	cells := AssignmentMap{}
	cells.SetCell(1, 0, 0, 4)
	cells.SetCell(1, 0, 1, 4)
	cells.SetCell(1, 0, 4, 4)

	assert.NoError(t, Validate(NewMatrix(cal, objectives, cells, blocked)))
	assert.Error(t, Validate(NewMatrix(cal, objectives, cells, nil)))
}

func TestValidateForSaveStripsNewlyBlockedCells(t *testing.T) {
	engine := NewEngine(Options{})
	cal := DefaultCalendar(oddPeriod)
	objectives := []Objective{{ID: 1, TargetHours: 8}}
	cells := AssignmentMap{}
	cells.SetCell(1, 0, 0, 4)
	cells.SetCell(1, 0, 1, 2)
	cells.SetCell(1, 0, 2, 4)
	holidays := []Holiday{manualRange("flood", day(2025, time.July, 8), day(2025, time.July, 14))}

	check, err := engine.ValidateForSave(objectives, cells, cal, holidays)
	require.NoError(t, err)
	assert.Equal(t, 1, check.StrippedCells)
	assert.Equal(t, 0, check.Cells.Get(1, 0, 1))
	assert.Equal(t, 4, check.Cells.Get(1, 0, 2))
	assert.Equal(t, 2, cells.Get(1, 0, 1), "input map is not modified")
}

func TestValidateForSaveDropsOutOfRangeAndOrphanedCells(t *testing.T) {
	engine := NewEngine(Options{})
	cal := DefaultCalendar(oddPeriod)
	objectives := []Objective{{ID: 1, TargetHours: 4}}
	cells := AssignmentMap{}
	cells.SetCell(1, 0, 0, 4)
	cells.SetCell(1, 0, 7, 9)
	cells.SetCell(99, 2, 1, 5)

	check, err := engine.ValidateForSave(objectives, cells, cal, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, check.StrippedCells)
	assert.Equal(t, AssignmentMap{{ObjectiveID: 1, Month: 0, Week: 0}: 4}, check.Cells)

	// Widening the month later must not bring the dropped hours back.
	cal.Months[0].TotalWeeks = 5
	require.NoError(t, Validate(NewMatrix(cal, objectives, check.Cells, nil)))
}

// Validate fails exactly when some objective's counted sum differs from its target.
func TestValidateRejectsIffSomeSumDiffers(t *testing.T) {
	cal := DefaultCalendar(oddPeriod)
	for target := 0; target <= 6; target++ {
		for assigned := 0; assigned <= 6; assigned++ {
			objectives := []Objective{{ID: 1, TargetHours: 6}, {ID: 2, TargetHours: FlexInt(target)}}
			cells := AssignmentMap{}
			cells.SetCell(1, 2, 0, 6)
			cells.SetCell(2, 2, 1, assigned)

			err := Validate(NewMatrix(cal, objectives, cells, nil))
			if target == assigned {
				assert.NoError(t, err, "target=%d assigned=%d", target, assigned)
			} else {
				assert.Error(t, err, "target=%d assigned=%d", target, assigned)
			}
		}
	}
}

func TestReconcileObjectives(t *testing.T) {
	cal := DefaultCalendar(oddPeriod)

	report := ReconcileObjectives([]Objective{{ID: 1, TargetHours: 20}, {ID: 2, TargetHours: 76}}, cal, 4)
	assert.Equal(t, ObjectivesReport{TotalTarget: 96, TotalEffectiveHours: 96, Difference: 0, Balanced: true}, report)

	report = ReconcileObjectives([]Objective{{ID: 1, TargetHours: 20}}, cal, 4)
	assert.False(t, report.Balanced)
	assert.Equal(t, -76, report.Difference)
}
