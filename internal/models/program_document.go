package models

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/teaching-program-api/internal/planner"
)

// DocumentType distinguishes the stored planner documents.
type DocumentType string

const (
	DocumentTypeCalendar DocumentType = "calendar_structure"
	DocumentTypeProgram  DocumentType = "program"
	DocumentTypeATP      DocumentType = "atp"
)

// ProgramDocument is one wholesale-written planner document keyed by a composite id.
type ProgramDocument struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"user_id"`
	Type         DocumentType   `db:"type" json:"type"`
	Subject      string         `db:"subject" json:"subject"`
	GradeLevel   string         `db:"grade_level" json:"grade_level"`
	AcademicYear string         `db:"academic_year" json:"academic_year"`
	Semester     string         `db:"semester" json:"semester"`
	Payload      types.JSONText `db:"payload" json:"payload"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ProgramDocumentFilter narrows document listings for one owner.
type ProgramDocumentFilter struct {
	UserID       string
	Types        []DocumentType
	AcademicYear string
}

// CalendarPayload is the stored body of a calendar_structure document.
type CalendarPayload struct {
	Months []planner.CalendarMonth `json:"pekanEfektif"`
}

// ProgramPayload is the stored body of a program document: budget header, objectives and the
// sparse weekly assignments.
type ProgramPayload struct {
	WeeklyHourBudget    planner.FlexInt         `json:"jpPerWeek"`
	TotalEffectiveWeeks int                     `json:"totalEffectiveWeeks"`
	TotalEffectiveHours int                     `json:"totalEffectiveHours"`
	Objectives          []planner.Objective     `json:"prota"`
	Cells               planner.AssignmentMap   `json:"promes"`
	Calendar            []planner.CalendarMonth `json:"pekanEfektif,omitempty"`
}

// ATPPayload is the stored body of a learning-objective flow (ATP) document.
type ATPPayload struct {
	Items []ATPItem `json:"atpItems"`
}

// ATPItem is one learning-objective flow row.
type ATPItem struct {
	Element string          `json:"elemen"`
	Topic   string          `json:"materi" validate:"required"`
	Goal    string          `json:"tp"`
	Hours   planner.FlexInt `json:"jp"`
}

// ProgramScope identifies one teacher's subject/grade/semester dataset.
type ProgramScope struct {
	UserID       string
	Subject      string
	GradeLevel   string
	AcademicYear string
	Semester     planner.Semester
}

// Period returns the academic period of the scope.
func (s ProgramScope) Period() planner.AcademicPeriod {
	return planner.AcademicPeriod{AcademicYear: s.AcademicYear, Semester: s.Semester}
}

// CalendarKey is calendar_{teacher}_{grade}_{year}_{semester}.
func (s ProgramScope) CalendarKey() string {
	return fmt.Sprintf("calendar_%s_%s_%s_%s", s.UserID, s.GradeLevel, keyYear(s.AcademicYear), s.Semester)
}

// LegacyCalendarKey is the grade-independent calendar key written by older clients.
func (s ProgramScope) LegacyCalendarKey() string {
	return fmt.Sprintf("calendar_%s_%s_%s", s.UserID, keyYear(s.AcademicYear), s.Semester)
}

// ProgramKey is {teacher}_{subject}_{grade}_{year}_{semester}.
func (s ProgramScope) ProgramKey() string {
	return fmt.Sprintf("%s_%s_%s_%s_%s", s.UserID, s.Subject, s.GradeLevel, keyYear(s.AcademicYear), s.Semester)
}

// ATPKey is the program key with an _ATP suffix.
func (s ProgramScope) ATPKey() string {
	return s.ProgramKey() + "_ATP"
}

func keyYear(year string) string {
	return planner.NormalizeAcademicYear(year)
}
