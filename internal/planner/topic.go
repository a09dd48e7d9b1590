package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ProgramRecord is a stored allocation document as seen by the topic lookup.
type ProgramRecord struct {
	ID           string          `json:"id"`
	Subject      string          `json:"subject"`
	GradeLevel   string          `json:"gradeLevel"`
	AcademicYear string          `json:"academicYear"`
	Semester     Semester        `json:"semester"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Objectives   []Objective     `json:"prota"`
	Cells        AssignmentMap   `json:"promes"`
	Calendar     []CalendarMonth `json:"pekanEfektif,omitempty"`
}

// CalendarRecord is a stored calendar document as seen by the topic lookup.
type CalendarRecord struct {
	ID           string          `json:"id"`
	GradeLevel   string          `json:"gradeLevel"`
	AcademicYear string          `json:"academicYear"`
	Semester     Semester        `json:"semester"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Months       []CalendarMonth `json:"pekanEfektif"`
}

// ClassSection maps a rombel to its grade level.
type ClassSection struct {
	Rombel string `json:"rombel"`
	Level  string `json:"level"`
}

// TopicQuery asks what a schedule entry is teaching on a date. A zero Period is derived from
// the date.
type TopicQuery struct {
	Class   string
	Subject string
	Date    time.Time
	Period  AcademicPeriod
}

// Match tiers.
const (
	TierClassSection = "class_section"
	TierGradeLevel   = "grade_level"
	TierAnyCalendar  = "any_calendar"
	TierEmbedded     = "program_embedded"
	TierDefault      = "default"
)

// TopicResult is the outcome of a topic lookup. Found is false for the "no topic" case.
type TopicResult struct {
	Found          bool           `json:"found"`
	Label          string         `json:"label,omitempty"`
	Topics         []string       `json:"topics,omitempty"`
	ProgramID      string         `json:"programId,omitempty"`
	ProgramTier    string         `json:"programTier,omitempty"`
	CalendarTier   string         `json:"calendarTier,omitempty"`
	MonthIndex     int            `json:"monthIndex"`
	WeekIndex      int            `json:"weekIndex"`
	ResolvedGrade  string         `json:"gradeLevel,omitempty"`
	AcademicPeriod AcademicPeriod `json:"period"`
}

// NoTopic is the lookup-miss result.
func NoTopic() TopicResult {
	return TopicResult{Found: false, MonthIndex: -1, WeekIndex: -1}
}

// PeriodForDate returns the academic period a date falls in: July onwards is the odd semester
// of year/year+1, earlier months the even semester of year-1/year.
func PeriodForDate(date time.Time) AcademicPeriod {
	y := date.Year()
	if date.Month() >= time.July {
		return AcademicPeriod{AcademicYear: yearLabel(y, y+1), Semester: SemesterOdd}
	}
	return AcademicPeriod{AcademicYear: yearLabel(y-1, y), Semester: SemesterEven}
}

func yearLabel(first, second int) string {
	return fmt.Sprintf("%d/%d", first, second)
}

// gradeMatcher is one tier of the lookup: it reports whether a stored grade-level field fits.
type gradeMatcher struct {
	tier  string
	match func(gradeLevel string) bool
}

func tierMatchers(rombel, grade string) []gradeMatcher {
	return []gradeMatcher{
		{tier: TierClassSection, match: func(g string) bool {
			return rombel != "" && upper(g) == rombel
		}},
		{tier: TierGradeLevel, match: func(g string) bool {
			return grade != "" && SameGrade(g, grade)
		}},
	}
}

// TopicResolver answers "what is being taught now" from stored programs and calendars.
type TopicResolver struct {
	roster map[string]string
}

// NewTopicResolver indexes the class roster by upper-cased rombel.
func NewTopicResolver(roster []ClassSection) *TopicResolver {
	index := make(map[string]string, len(roster))
	for _, section := range roster {
		key := upper(section.Rombel)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = upper(section.Level)
		}
	}
	return &TopicResolver{roster: index}
}

// GradeOf returns the grade level of a class section: roster first, then the class name itself.
func (r *TopicResolver) GradeOf(class string) string {
	rombel := upper(class)
	if level, ok := r.roster[rombel]; ok && level != "" {
		return level
	}
	return GradeFromClassName(rombel)
}

// Resolve runs the tiered lookup. It never fails: every miss yields NoTopic().
func (r *TopicResolver) Resolve(q TopicQuery, programs []ProgramRecord, calendars []CalendarRecord) TopicResult {
	period := q.Period
	if period.AcademicYear == "" || period.Semester == "" {
		derived := PeriodForDate(q.Date)
		if period.AcademicYear == "" {
			period.AcademicYear = derived.AcademicYear
		}
		if period.Semester == "" {
			period.Semester = derived.Semester
		}
	}

	rombel := upper(q.Class)
	grade := r.GradeOf(q.Class)
	matchers := tierMatchers(rombel, grade)

	candidates := filterPrograms(programs, q.Subject, period)
	program, programTier, ok := pickProgram(candidates, matchers)
	if !ok || len(program.Objectives) == 0 || len(program.Cells) == 0 {
		return NoTopic()
	}

	months, calendarTier := pickCalendar(filterCalendars(calendars, period), matchers, program)

	monthIndex, inSemester := period.MonthIndex(q.Date.Month())
	if !inSemester {
		return NoTopic()
	}
	weeks := DefaultWeeksPerMonth
	if monthIndex < len(months) && months[monthIndex].TotalWeeks.Int() > 0 {
		weeks = months[monthIndex].TotalWeeks.Int()
	}
	weekIndex := (q.Date.Day() - 1) / daysPerWeek
	if weekIndex > weeks-1 {
		weekIndex = weeks - 1
	}

	var topics []string
	for _, objective := range program.Objectives {
		if program.Cells.Get(objective.ID, monthIndex, weekIndex) > 0 {
			topics = append(topics, objective.Label())
		}
	}
	if len(topics) == 0 {
		return NoTopic()
	}

	return TopicResult{
		Found:          true,
		Label:          strings.Join(topics, ", "),
		Topics:         topics,
		ProgramID:      program.ID,
		ProgramTier:    programTier,
		CalendarTier:   calendarTier,
		MonthIndex:     monthIndex,
		WeekIndex:      weekIndex,
		ResolvedGrade:  grade,
		AcademicPeriod: period,
	}
}

func filterPrograms(programs []ProgramRecord, subject string, period AcademicPeriod) []ProgramRecord {
	want := strings.ToLower(strings.TrimSpace(subject))
	if want == "" {
		return nil
	}
	var out []ProgramRecord
	for _, p := range programs {
		have := strings.ToLower(strings.TrimSpace(p.Subject))
		if have == "" {
			continue
		}
		if have != want && !strings.Contains(have, want) && !strings.Contains(want, have) {
			continue
		}
		if !samePeriod(p.ID, p.AcademicYear, p.Semester, period) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func filterCalendars(calendars []CalendarRecord, period AcademicPeriod) []CalendarRecord {
	var out []CalendarRecord
	for _, c := range calendars {
		if samePeriod(c.ID, c.AcademicYear, c.Semester, period) {
			out = append(out, c)
		}
	}
	return out
}

func samePeriod(id, year string, semester Semester, period AcademicPeriod) bool {
	if NormalizeAcademicYear(year) != period.NormalizedYear() {
		return false
	}
	return semester == period.Semester || strings.HasSuffix(id, "_"+string(period.Semester))
}

func pickProgram(candidates []ProgramRecord, matchers []gradeMatcher) (ProgramRecord, string, bool) {
	for _, m := range matchers {
		var tier []ProgramRecord
		for _, p := range candidates {
			if m.match(p.GradeLevel) {
				tier = append(tier, p)
			}
		}
		if len(tier) == 0 {
			continue
		}
		sort.SliceStable(tier, func(i, j int) bool {
			return tier[i].UpdatedAt.After(tier[j].UpdatedAt)
		})
		return tier[0], m.tier, true
	}
	return ProgramRecord{}, "", false
}

func pickCalendar(candidates []CalendarRecord, matchers []gradeMatcher, program ProgramRecord) ([]CalendarMonth, string) {
	for _, m := range matchers {
		var tier []CalendarRecord
		for _, c := range candidates {
			if m.match(c.GradeLevel) {
				tier = append(tier, c)
			}
		}
		if len(tier) == 0 {
			continue
		}
		sort.SliceStable(tier, func(i, j int) bool {
			return tier[i].UpdatedAt.After(tier[j].UpdatedAt)
		})
		return tier[0].Months, m.tier
	}
	if len(candidates) > 0 {
		return candidates[0].Months, TierAnyCalendar
	}
	if len(program.Calendar) > 0 {
		return program.Calendar, TierEmbedded
	}
	return nil, TierDefault
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
