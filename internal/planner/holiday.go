package planner

import (
	"sort"
	"strings"
	"time"
)

// HolidayScope distinguishes holidays entered by the teacher from the public calendar.
type HolidayScope string

const (
	// HolidayManual holidays are entered by the teacher and can block allocation.
	HolidayManual HolidayScope = "manual"
	// HolidayPublic holidays come from the national calendar and are only shown as hints.
	HolidayPublic HolidayScope = "public"
)

// DefaultBlockingOverlapDays is the majority-of-week threshold.
const DefaultBlockingOverlapDays = 4

const daysPerWeek = 7

// Holiday is a single holiday record, either one date or an inclusive range.
type Holiday struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Category  string       `json:"category,omitempty"`
	Scope     HolidayScope `json:"type"`
	Date      *time.Time   `json:"date,omitempty"`
	StartDate *time.Time   `json:"startDate,omitempty"`
	EndDate   *time.Time   `json:"endDate,omitempty"`
}

// Range returns the holiday's inclusive day range. A missing end date means a one-day holiday.
func (h Holiday) Range() (DateRange, bool) {
	switch {
	case h.StartDate != nil:
		end := h.StartDate
		if h.EndDate != nil {
			end = h.EndDate
		}
		return NewDateRange(*h.StartDate, *end), true
	case h.Date != nil:
		return NewDateRange(*h.Date, *h.Date), true
	default:
		return DateRange{}, false
	}
}

// IsManual reports whether the holiday participates in blocking.
func (h Holiday) IsManual() bool {
	return HolidayScope(strings.ToLower(string(h.Scope))) == HolidayManual
}

// DateRange is an inclusive range of whole days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange truncates both ends to midnight UTC and orders them.
func NewDateRange(start, end time.Time) DateRange {
	s, e := dayOf(start), dayOf(end)
	if e.Before(s) {
		s, e = e, s
	}
	return DateRange{Start: s, End: e}
}

// Overlap returns the number of days shared by both ranges, ends included.
func (r DateRange) Overlap(other DateRange) int {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HolidayHint is a holiday overlapping a given week.
type HolidayHint struct {
	HolidayID   string       `json:"holidayId"`
	Name        string       `json:"name"`
	Scope       HolidayScope `json:"type"`
	OverlapDays int          `json:"overlapDays"`
	Blocking    bool         `json:"blocking"`
}

// WeekStatus summarizes one week of the semester for display.
type WeekStatus struct {
	MonthIndex   int           `json:"monthIndex"`
	WeekIndex    int           `json:"weekIndex"`
	Range        DateRange     `json:"range"`
	NonEffective bool          `json:"nonEffective"`
	Blocking     bool          `json:"blocking"`
	Holidays     []HolidayHint `json:"holidays"`
}

// HolidayResolver decides which weeks holidays take out of instruction.
type HolidayResolver struct {
	threshold int
}

// NewHolidayResolver builds a resolver; a non-positive threshold uses DefaultBlockingOverlapDays.
func NewHolidayResolver(thresholdDays int) *HolidayResolver {
	if thresholdDays <= 0 {
		thresholdDays = DefaultBlockingOverlapDays
	}
	return &HolidayResolver{threshold: thresholdDays}
}

// Threshold returns the minimum overlap in days that makes a week blocking.
func (r *HolidayResolver) Threshold() int {
	return r.threshold
}

// WeekDateRange approximates week weekIndex of month as days [weekIndex*7+1, weekIndex*7+7].
// Days past the end of the month roll into the next month. ok is false when the academic year
// cannot be parsed.
func WeekDateRange(period AcademicPeriod, month time.Month, weekIndex int) (DateRange, bool) {
	year, ok := period.CalendarYear(month)
	if !ok || weekIndex < 0 {
		return DateRange{}, false
	}
	startDay := weekIndex*daysPerWeek + 1
	start := time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month, startDay+daysPerWeek-1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: end}, true
}

// IsBlocking reports whether any manual holiday covers at least the threshold of the week.
func (r *HolidayResolver) IsBlocking(cal Calendar, monthIndex, weekIndex int, holidays []Holiday) bool {
	week, ok := WeekDateRange(cal.Period, cal.MonthNumber(monthIndex), weekIndex)
	if !ok {
		return false
	}
	for _, holiday := range holidays {
		if !holiday.IsManual() {
			continue
		}
		span, ok := holiday.Range()
		if !ok {
			continue
		}
		if week.Overlap(span) >= r.threshold {
			return true
		}
	}
	return false
}

// WeekHolidays lists every holiday overlapping the week, any scope, with its blocking flag.
func (r *HolidayResolver) WeekHolidays(cal Calendar, monthIndex, weekIndex int, holidays []Holiday) []HolidayHint {
	week, ok := WeekDateRange(cal.Period, cal.MonthNumber(monthIndex), weekIndex)
	if !ok {
		return nil
	}
	var hints []HolidayHint
	for _, holiday := range holidays {
		span, ok := holiday.Range()
		if !ok {
			continue
		}
		days := week.Overlap(span)
		if days == 0 {
			continue
		}
		hints = append(hints, HolidayHint{
			HolidayID:   holiday.ID,
			Name:        holiday.Name,
			Scope:       holiday.Scope,
			OverlapDays: days,
			Blocking:    holiday.IsManual() && days >= r.threshold,
		})
	}
	sort.SliceStable(hints, func(i, j int) bool {
		return hints[i].OverlapDays > hints[j].OverlapDays
	})
	return hints
}

// BlockedWeeks returns every legal week of the calendar that a manual holiday blocks.
func (r *HolidayResolver) BlockedWeeks(cal Calendar, holidays []Holiday) WeekSet {
	blocked := WeekSet{}
	for m := range cal.Months {
		for w := 0; w < cal.WeeksInMonth(m); w++ {
			if r.IsBlocking(cal, m, w, holidays) {
				blocked.Add(m, w)
			}
		}
	}
	return blocked
}

// WeekStatuses builds the per-week holiday grid of the whole calendar.
func (r *HolidayResolver) WeekStatuses(cal Calendar, holidays []Holiday) []WeekStatus {
	var statuses []WeekStatus
	for m, month := range cal.Months {
		for w := 0; w < cal.WeeksInMonth(m); w++ {
			week, _ := WeekDateRange(cal.Period, cal.MonthNumber(m), w)
			hints := r.WeekHolidays(cal, m, w, holidays)
			blocking := false
			for _, hint := range hints {
				if hint.Blocking {
					blocking = true
					break
				}
			}
			statuses = append(statuses, WeekStatus{
				MonthIndex:   m,
				WeekIndex:    w,
				Range:        week,
				NonEffective: month.IsNonEffective(w),
				Blocking:     blocking,
				Holidays:     hints,
			})
		}
	}
	return statuses
}
