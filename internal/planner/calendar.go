// Package planner holds the academic calendar and teaching-hour allocation engine.
// Everything in this package is pure and synchronous; persistence lives in the service layer.
package planner

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Semester identifies one half of an academic year.
type Semester string

const (
	// SemesterOdd runs July through December.
	SemesterOdd Semester = "Ganjil"
	// SemesterEven runs January through June.
	SemesterEven Semester = "Genap"
)

// MonthsPerSemester is the fixed number of calendar months in a semester.
const MonthsPerSemester = 6

// MaxWeeksPerMonth caps totalWeeks; week 5 already starts on day 29.
const MaxWeeksPerMonth = 5

// DefaultWeeksPerMonth is used for the default calendar template and for months without a week count.
const DefaultWeeksPerMonth = 4

var monthNames = map[Semester][]string{
	SemesterOdd:  {"Juli", "Agustus", "September", "Oktober", "November", "Desember"},
	SemesterEven: {"Januari", "Februari", "Maret", "April", "Mei", "Juni"},
}

var monthByName = map[string]time.Month{
	"januari": time.January, "january": time.January,
	"februari": time.February, "february": time.February,
	"maret": time.March, "march": time.March,
	"april": time.April,
	"mei": time.May, "may": time.May,
	"juni": time.June, "june": time.June,
	"juli": time.July, "july": time.July,
	"agustus": time.August, "august": time.August,
	"september": time.September,
	"oktober": time.October, "october": time.October,
	"november": time.November,
	"desember": time.December, "december": time.December,
}

// ParseSemester accepts the stored Indonesian names as well as odd/even aliases.
func ParseSemester(raw string) (Semester, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ganjil", "odd", "1":
		return SemesterOdd, true
	case "genap", "even", "2":
		return SemesterEven, true
	default:
		return "", false
	}
}

// AcademicPeriod is an academic year ("2025/2026") plus a semester.
type AcademicPeriod struct {
	AcademicYear string   `json:"academicYear"`
	Semester     Semester `json:"semester"`
}

// StartMonth returns the first calendar month of the semester.
func (p AcademicPeriod) StartMonth() time.Month {
	if p.Semester == SemesterOdd {
		return time.July
	}
	return time.January
}

// MonthNames returns the six canonical month names of the semester.
func (p AcademicPeriod) MonthNames() []string {
	names := monthNames[p.Semester]
	if names == nil {
		names = monthNames[SemesterEven]
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// MonthAt returns the calendar month for a semester month index.
func (p AcademicPeriod) MonthAt(index int) time.Month {
	return time.Month((int(p.StartMonth())-1+index)%12 + 1)
}

// MonthIndex maps a calendar month to its semester index; ok is false outside the semester.
func (p AcademicPeriod) MonthIndex(month time.Month) (int, bool) {
	index := (int(month) - int(p.StartMonth()) + 12) % 12
	if index >= MonthsPerSemester {
		return index, false
	}
	return index, true
}

// CalendarYear resolves the calendar year of a month: July onwards uses the first half of the
// academic year, earlier months the second half.
func (p AcademicPeriod) CalendarYear(month time.Month) (int, bool) {
	first, second, ok := splitAcademicYear(p.AcademicYear)
	if !ok {
		return 0, false
	}
	if month >= time.July {
		return first, true
	}
	return second, true
}

// NormalizedYear strips whitespace and replaces "/" with "-" so it can be embedded in keys.
func (p AcademicPeriod) NormalizedYear() string {
	return NormalizeAcademicYear(p.AcademicYear)
}

// NormalizeAcademicYear strips whitespace and replaces "/" with "-".
func NormalizeAcademicYear(raw string) string {
	compact := strings.Join(strings.Fields(raw), "")
	return strings.ReplaceAll(compact, "/", "-")
}

func splitAcademicYear(raw string) (int, int, bool) {
	parts := strings.Split(NormalizeAcademicYear(raw), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	second, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return first, second, true
}

// CalendarMonth is one month row of the effective-week calendar.
type CalendarMonth struct {
	Name              string  `json:"name"`
	TotalWeeks        FlexInt `json:"totalWeeks" validate:"min=0,max=5"`
	NonEffectiveWeeks FlexInt `json:"nonEffectiveWeeks" validate:"min=0,max=5"`
	Note              string  `json:"keterangan"`
}

// EffectiveWeeks is max(0, totalWeeks - nonEffectiveWeeks).
func (m CalendarMonth) EffectiveWeeks() int {
	effective := m.TotalWeeks.Int() - m.NonEffectiveWeeks.Int()
	if effective < 0 {
		return 0
	}
	return effective
}

// IsNonEffective reports whether the week index sits in the month's trailing non-effective slots.
func (m CalendarMonth) IsNonEffective(weekIndex int) bool {
	return weekIndex >= m.TotalWeeks.Int()-m.NonEffectiveWeeks.Int()
}

// Calendar is the six-month effective-week structure of one semester.
type Calendar struct {
	Period AcademicPeriod  `json:"period"`
	Months []CalendarMonth `json:"pekanEfektif"`
}

// DefaultCalendar returns the template used when nothing has been saved yet.
func DefaultCalendar(period AcademicPeriod) Calendar {
	return DefaultCalendarWithWeeks(period, DefaultWeeksPerMonth)
}

// DefaultCalendarWithWeeks builds the template with a custom week count per month.
func DefaultCalendarWithWeeks(period AcademicPeriod, weeks int) Calendar {
	if weeks < 0 {
		weeks = 0
	}
	names := period.MonthNames()
	months := make([]CalendarMonth, len(names))
	for i, name := range names {
		months[i] = CalendarMonth{Name: name, TotalWeeks: FlexInt(weeks)}
	}
	return Calendar{Period: period, Months: months}
}

// EffectiveWeeks returns the effective week count of the month at index, zero when out of range.
func (c Calendar) EffectiveWeeks(monthIndex int) int {
	if monthIndex < 0 || monthIndex >= len(c.Months) {
		return 0
	}
	return c.Months[monthIndex].EffectiveWeeks()
}

// WeeksInMonth returns totalWeeks for the month at index, zero when out of range.
func (c Calendar) WeeksInMonth(monthIndex int) int {
	if monthIndex < 0 || monthIndex >= len(c.Months) {
		return 0
	}
	weeks := c.Months[monthIndex].TotalWeeks.Int()
	if weeks < 0 {
		return 0
	}
	return weeks
}

// TotalEffectiveWeeks sums effective weeks over every month.
func (c Calendar) TotalEffectiveWeeks() int {
	total := 0
	for i := range c.Months {
		total += c.EffectiveWeeks(i)
	}
	return total
}

// TotalEffectiveHours is TotalEffectiveWeeks × weeklyHourBudget.
func (c Calendar) TotalEffectiveHours(weeklyHourBudget int) int {
	if weeklyHourBudget < 0 {
		weeklyHourBudget = 0
	}
	return c.TotalEffectiveWeeks() * weeklyHourBudget
}

// MonthNumber resolves the calendar month of a row, by name first and by position otherwise.
func (c Calendar) MonthNumber(monthIndex int) time.Month {
	if monthIndex >= 0 && monthIndex < len(c.Months) {
		if month, ok := monthByName[strings.ToLower(strings.TrimSpace(c.Months[monthIndex].Name))]; ok {
			return month
		}
	}
	return c.Period.MonthAt(monthIndex)
}

// LegalWeek reports whether (monthIndex, weekIndex) addresses an existing week.
func (c Calendar) LegalWeek(monthIndex, weekIndex int) bool {
	return weekIndex >= 0 && weekIndex < c.WeeksInMonth(monthIndex)
}

// Validate checks the save-time calendar invariants.
func (c Calendar) Validate() error {
	if len(c.Months) != MonthsPerSemester {
		return fmt.Errorf("calendar must have %d months, got %d", MonthsPerSemester, len(c.Months))
	}
	for _, month := range c.Months {
		total := month.TotalWeeks.Int()
		nonEffective := month.NonEffectiveWeeks.Int()
		if total < 0 || nonEffective < 0 {
			return fmt.Errorf("month %s: week counts must not be negative", month.Name)
		}
		if total > MaxWeeksPerMonth {
			return fmt.Errorf("month %s: total weeks (%d) exceed %d", month.Name, total, MaxWeeksPerMonth)
		}
		if nonEffective > total {
			return fmt.Errorf("month %s: non-effective weeks (%d) exceed total weeks (%d)", month.Name, nonEffective, total)
		}
	}
	return nil
}

// EffectiveWeeksSummary is the result of ComputeEffectiveWeeks.
type EffectiveWeeksSummary struct {
	PerMonth         []int `json:"perMonth"`
	TotalWeeks       int   `json:"totalEffectiveWeeks"`
	WeeklyHourBudget int   `json:"weeklyHourBudget"`
	TotalHours       int   `json:"totalEffectiveHours"`
}

// ComputeEffectiveWeeks reports per-month and total effective weeks and hours.
func ComputeEffectiveWeeks(c Calendar, weeklyHourBudget int) EffectiveWeeksSummary {
	perMonth := make([]int, len(c.Months))
	for i := range c.Months {
		perMonth[i] = c.EffectiveWeeks(i)
	}
	if weeklyHourBudget < 0 {
		weeklyHourBudget = 0
	}
	return EffectiveWeeksSummary{
		PerMonth:         perMonth,
		TotalWeeks:       c.TotalEffectiveWeeks(),
		WeeklyHourBudget: weeklyHourBudget,
		TotalHours:       c.TotalEffectiveHours(weeklyHourBudget),
	}
}
