package dto

import (
	"time"

	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/internal/planner"
)

// ProgramScopeQuery identifies one subject/grade/semester dataset of the authenticated teacher.
// Subject is optional for calendar operations; SubjectID only sharpens schedule matching.
type ProgramScopeQuery struct {
	Subject      string `form:"subject" json:"subject"`
	SubjectID    string `form:"subject_id" json:"subjectId,omitempty"`
	GradeLevel   string `form:"grade" json:"grade" validate:"required"`
	AcademicYear string `form:"year" json:"year" validate:"required"`
	Semester     string `form:"semester" json:"semester" validate:"required"`
}

// CalendarSource tells where a loaded calendar came from.
type CalendarSource string

const (
	CalendarSourceGrade   CalendarSource = "grade"
	CalendarSourceLegacy  CalendarSource = "legacy"
	CalendarSourceProgram CalendarSource = "program"
	CalendarSourceDefault CalendarSource = "default"
)

// CalendarView is a loaded semester calendar with its derived totals.
type CalendarView struct {
	ID               string                        `json:"id"`
	Source           CalendarSource                `json:"source"`
	GradeLevel       string                        `json:"grade"`
	AcademicYear     string                        `json:"year"`
	Semester         planner.Semester              `json:"semester"`
	Months           []planner.CalendarMonth       `json:"pekanEfektif"`
	WeeklyHourBudget int                           `json:"jpPerWeek"`
	Summary          planner.EffectiveWeeksSummary `json:"summary"`
	UpdatedAt        *time.Time                    `json:"updatedAt,omitempty"`
}

// SaveCalendarRequest replaces a grade's calendar. When Subject and WeeklyHourBudget are both
// given the program header is updated too.
type SaveCalendarRequest struct {
	ProgramScopeQuery
	Months           []planner.CalendarMonth `json:"pekanEfektif" validate:"len=6,dive"`
	WeeklyHourBudget *int                    `json:"jpPerWeek" validate:"omitempty,min=0,max=60"`
}

// SyncBudgetResult reports a weekly budget derived from the teaching schedule.
type SyncBudgetResult struct {
	WeeklyHourBudget int    `json:"jpPerWeek"`
	ClassName        string `json:"class"`
	TotalEffective   int    `json:"totalEffectiveHours"`
}

// AllocationView is a loaded program: objectives, weekly assignments and the calendar they
// are planned against.
type AllocationView struct {
	ID                  string                   `json:"id"`
	Exists              bool                     `json:"exists"`
	WeeklyHourBudget    int                      `json:"jpPerWeek"`
	TotalEffectiveWeeks int                      `json:"totalEffectiveWeeks"`
	TotalEffectiveHours int                      `json:"totalEffectiveHours"`
	Objectives          []planner.Objective      `json:"prota"`
	Cells               planner.AssignmentMap    `json:"promes"`
	Report              planner.ObjectivesReport `json:"report"`
	Calendar            CalendarView             `json:"calendar"`
	UpdatedAt           *time.Time               `json:"updatedAt,omitempty"`
}

// SaveObjectivesRequest replaces the objective list of a program.
type SaveObjectivesRequest struct {
	ProgramScopeQuery
	Objectives       []planner.Objective `json:"prota" validate:"dive"`
	WeeklyHourBudget *int                `json:"jpPerWeek" validate:"omitempty,min=0,max=60"`
}

// SaveObjectivesResult carries the stored objectives and the reconciliation recommendation.
type SaveObjectivesResult struct {
	ID           string                   `json:"id"`
	Objectives   []planner.Objective      `json:"prota"`
	DroppedCells int                      `json:"droppedCells"`
	Report       planner.ObjectivesReport `json:"report"`
}

// AutoDistributeRequest asks for a proposed assignment map. Objectives and WeeklyHourBudget
// default to the stored program.
type AutoDistributeRequest struct {
	ProgramScopeQuery
	Objectives       []planner.Objective `json:"prota,omitempty" validate:"omitempty,dive"`
	WeeklyHourBudget *int                `json:"jpPerWeek" validate:"omitempty,min=0,max=60"`
}

// BudgetSource tells where the budget of an auto-distribution came from.
type BudgetSource string

const (
	BudgetSourceRequest  BudgetSource = "request"
	BudgetSourceProgram  BudgetSource = "program"
	BudgetSourceSchedule BudgetSource = "schedule"
)

// AutoDistributeResult is an unsaved proposal.
type AutoDistributeResult struct {
	WeeklyHourBudget int                  `json:"jpPerWeek"`
	BudgetSource     BudgetSource         `json:"budgetSource"`
	Distribution     planner.Distribution `json:"distribution"`
}

// SaveAssignmentsRequest persists an assignment map. Objectives default to the stored ones.
type SaveAssignmentsRequest struct {
	ProgramScopeQuery
	Objectives []planner.Objective   `json:"prota,omitempty" validate:"omitempty,dive"`
	Cells      planner.AssignmentMap `json:"promes" validate:"required"`
}

// SaveAssignmentsResult describes what was written.
type SaveAssignmentsResult struct {
	ID            string                `json:"id"`
	Cells         planner.AssignmentMap `json:"promes"`
	StrippedCells int                   `json:"strippedCells"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// WeekGrid is the per-week holiday status of a calendar.
type WeekGrid struct {
	ThresholdDays int                  `json:"thresholdDays"`
	Weeks         []planner.WeekStatus `json:"weeks"`
}

// ATPDocument is the stored learning-objective flow (ATP) of a program.
type ATPDocument struct {
	ID        string           `json:"id"`
	Items     []models.ATPItem `json:"atpItems"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

// SaveATPRequest replaces the learning-objective flow of a program.
type SaveATPRequest struct {
	ProgramScopeQuery
	Items []models.ATPItem `json:"atpItems" validate:"dive"`
}
