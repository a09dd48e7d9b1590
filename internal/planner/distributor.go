package planner

// CursorState is the phase of the distribution cursor.
type CursorState int

const (
	// CursorAdvancing means the cursor is looking for the next usable week.
	CursorAdvancing CursorState = iota
	// CursorAssigning means the cursor rests on a usable week.
	CursorAssigning
	// CursorExhausted means the cursor ran past the last month.
	CursorExhausted
)

func (s CursorState) String() string {
	switch s {
	case CursorAdvancing:
		return "advancing"
	case CursorAssigning:
		return "assigning"
	default:
		return "exhausted"
	}
}

// WeekCursor walks the semester's weeks forward only. It is shared by every objective of a
// distribution run so that objectives are filled strictly in order.
type WeekCursor struct {
	calendar Calendar
	blocked  WeekSet
	month    int
	week     int
	state    CursorState
}

// NewWeekCursor places a cursor at the first week of the calendar.
func NewWeekCursor(calendar Calendar, blocked WeekSet) *WeekCursor {
	return &WeekCursor{calendar: calendar, blocked: blocked, state: CursorAdvancing}
}

// State returns the current phase.
func (c *WeekCursor) State() CursorState {
	return c.state
}

// Position returns the week the cursor points at.
func (c *WeekCursor) Position() WeekRef {
	return WeekRef{Month: c.month, Week: c.week}
}

// Seek moves forward until the cursor rests on a usable week and reports whether one was found.
// A usable week is legal, not blocked and not one of its month's trailing non-effective weeks.
func (c *WeekCursor) Seek() bool {
	for c.state == CursorAdvancing {
		if c.month >= len(c.calendar.Months) {
			c.state = CursorExhausted
			break
		}
		if c.week >= c.calendar.WeeksInMonth(c.month) {
			c.month++
			c.week = 0
			continue
		}
		if c.usable() {
			c.state = CursorAssigning
			break
		}
		c.week++
	}
	return c.state == CursorAssigning
}

// Consume releases the current week and moves one step forward.
func (c *WeekCursor) Consume() {
	if c.state != CursorAssigning {
		return
	}
	c.week++
	c.state = CursorAdvancing
}

func (c *WeekCursor) usable() bool {
	if c.blocked.Has(c.month, c.week) {
		return false
	}
	return !c.calendar.Months[c.month].IsNonEffective(c.week)
}

// Shortfall records hours an objective could not receive because the weeks ran out.
type Shortfall struct {
	ObjectiveID int    `json:"objectiveId"`
	Label       string `json:"label"`
	Target      int    `json:"target"`
	Assigned    int    `json:"assigned"`
}

// Distribution is the outcome of AutoDistribute.
type Distribution struct {
	Assignments AssignmentMap `json:"promes"`
	Shortfalls  []Shortfall   `json:"shortfalls"`
	Exhausted   bool          `json:"exhausted"`
	WeeksUsed   int           `json:"weeksUsed"`
}

// AutoDistribute fills a fresh assignment map by walking objectives in declared order and giving
// each usable week at most weeklyHourBudget hours. It never revisits a passed week, so when the
// weeks run out the later objectives are the ones left short.
func AutoDistribute(objectives []Objective, calendar Calendar, blocked WeekSet, weeklyHourBudget int) Distribution {
	result := Distribution{Assignments: AssignmentMap{}}
	if weeklyHourBudget <= 0 {
		result.Shortfalls = shortfallsFrom(objectives, result.Assignments)
		return result
	}

	cursor := NewWeekCursor(calendar, blocked)
	for _, objective := range objectives {
		remaining := objective.TargetHours.Int()
		for remaining > 0 {
			if !cursor.Seek() {
				break
			}
			hours := remaining
			if hours > weeklyHourBudget {
				hours = weeklyHourBudget
			}
			at := cursor.Position()
			result.Assignments.SetCell(objective.ID, at.Month, at.Week, hours)
			result.WeeksUsed++
			remaining -= hours
			cursor.Consume()
		}
		if cursor.State() == CursorExhausted {
			break
		}
	}

	result.Exhausted = cursor.State() == CursorExhausted
	result.Shortfalls = shortfallsFrom(objectives, result.Assignments)
	return result
}

func shortfallsFrom(objectives []Objective, cells AssignmentMap) []Shortfall {
	assigned := make(map[int]int, len(objectives))
	for key, hours := range cells {
		assigned[key.ObjectiveID] += hours
	}
	var out []Shortfall
	for _, objective := range objectives {
		target := objective.TargetHours.Int()
		if got := assigned[objective.ID]; got < target {
			out = append(out, Shortfall{
				ObjectiveID: objective.ID,
				Label:       objective.Label(),
				Target:      target,
				Assigned:    got,
			})
		}
	}
	return out
}
