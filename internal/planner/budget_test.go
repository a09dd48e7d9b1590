package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveWeeklyBudget(t *testing.T) {
	entries := []ScheduleEntry{
		{Class: "XI-A", Subject: "Matematika", StartPeriod: 1, EndPeriod: 2},
		{Class: "1-A", Subject: "Matematika", StartPeriod: 1, EndPeriod: 3},
		{Class: "1-A", Subject: " matematika ", StartPeriod: 5, EndPeriod: 6},
		{Class: "1-B", Subject: "Matematika", StartPeriod: 1, EndPeriod: 4},
		{Class: "1-A", Subject: "IPA", StartPeriod: 7, EndPeriod: 8},
	}

	budget, class, ok := DeriveWeeklyBudget(entries, BudgetQuery{Grade: "1", Subject: "Matematika"})
	assert.True(t, ok)
	assert.Equal(t, "1-A", class)
	assert.Equal(t, 5, budget)
}

func TestDeriveWeeklyBudgetRomanAndPrefix(t *testing.T) {
	entries := []ScheduleEntry{
		{Class: "VIII-A", Subject: "Bahasa Indonesia", StartPeriod: 1, EndPeriod: 2},
		{Class: "Kelas VII B", Subject: "Bahasa Indonesia", StartPeriod: 3, EndPeriod: 5},
	}

	budget, class, ok := DeriveWeeklyBudget(entries, BudgetQuery{Grade: "7", Subject: "bahasa indonesia"})
	assert.True(t, ok)
	assert.Equal(t, "Kelas VII B", class)
	assert.Equal(t, 3, budget)
}

func TestDeriveWeeklyBudgetPrefersSubjectID(t *testing.T) {
	entries := []ScheduleEntry{
		{Class: "10-1", Subject: "Matematika", SubjectID: "sub-2", StartPeriod: 1, EndPeriod: 2},
		{Class: "10-2", Subject: "Matematika Wajib", SubjectID: "sub-1", StartPeriod: 1, EndPeriod: 4},
	}

	budget, class, ok := DeriveWeeklyBudget(entries, BudgetQuery{Grade: "X", Subject: "Matematika", SubjectID: "sub-1"})
	assert.True(t, ok)
	assert.Equal(t, "10-2", class)
	assert.Equal(t, 4, budget)
}

func TestDeriveWeeklyBudgetNoMatch(t *testing.T) {
	_, _, ok := DeriveWeeklyBudget([]ScheduleEntry{{Class: "11-A", Subject: "Fisika", StartPeriod: 1, EndPeriod: 2}}, BudgetQuery{Grade: "1", Subject: "Fisika"})
	assert.False(t, ok)

	_, _, ok = DeriveWeeklyBudget(nil, BudgetQuery{Subject: "Fisika"})
	assert.False(t, ok)
}

func TestGradeHelpers(t *testing.T) {
	assert.Equal(t, "VII", AlternateGrade("7"))
	assert.Equal(t, "12", AlternateGrade("xii"))
	assert.Equal(t, "13", AlternateGrade("13"))

	assert.True(t, SameGrade("VII", "7"))
	assert.True(t, SameGrade("7", "vii"))
	assert.False(t, SameGrade("7", "VIII"))
	assert.False(t, SameGrade("", ""))

	assert.Equal(t, "7", GradeFromClassName("7A"))
	assert.Equal(t, "VII", GradeFromClassName("VII-A"))
	assert.Equal(t, "IX", GradeFromClassName("Kelas IX C"))
	assert.Equal(t, "", GradeFromClassName("Unggulan"))
}
