package planner

// Options tunes the engine.
type Options struct {
	BlockingOverlapDays int
	WeeksPerMonth       int
}

// Engine bundles the planner operations behind one configured value.
type Engine struct {
	holidays      *HolidayResolver
	weeksPerMonth int
}

// NewEngine builds an engine; zero options fall back to the defaults.
func NewEngine(opts Options) *Engine {
	weeks := opts.WeeksPerMonth
	if weeks <= 0 {
		weeks = DefaultWeeksPerMonth
	}
	return &Engine{holidays: NewHolidayResolver(opts.BlockingOverlapDays), weeksPerMonth: weeks}
}

// Holidays exposes the configured holiday resolver.
func (e *Engine) Holidays() *HolidayResolver {
	return e.holidays
}

// DefaultCalendar returns the template for a period.
func (e *Engine) DefaultCalendar(period AcademicPeriod) Calendar {
	return DefaultCalendarWithWeeks(period, e.weeksPerMonth)
}

// AutoDistribute computes blocked weeks from holidays and distributes the objectives.
func (e *Engine) AutoDistribute(objectives []Objective, calendar Calendar, holidays []Holiday, weeklyHourBudget int) Distribution {
	blocked := e.holidays.BlockedWeeks(calendar, holidays)
	return AutoDistribute(objectives, calendar, blocked, weeklyHourBudget)
}

// SaveCheck is the outcome of a successful ValidateForSave.
type SaveCheck struct {
	Cells         AssignmentMap `json:"promes"`
	StrippedCells int           `json:"strippedCells"`
}

// ValidateForSave rejects the assignments with a *MismatchError when any objective does not
// reconcile, otherwise returns the cells with blocked, out-of-range and orphaned entries removed.
func (e *Engine) ValidateForSave(objectives []Objective, cells AssignmentMap, calendar Calendar, holidays []Holiday) (SaveCheck, error) {
	blocked := e.holidays.BlockedWeeks(calendar, holidays)
	if err := Validate(NewMatrix(calendar, objectives, cells, blocked)); err != nil {
		return SaveCheck{}, err
	}
	cleaned, removed := StripUnsaveable(cells, objectives, calendar, blocked)
	return SaveCheck{Cells: cleaned, StrippedCells: removed}, nil
}

// WeekStatuses returns the holiday grid for a calendar.
func (e *Engine) WeekStatuses(calendar Calendar, holidays []Holiday) []WeekStatus {
	return e.holidays.WeekStatuses(calendar, holidays)
}
