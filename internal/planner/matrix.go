package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FlexInt is an integer that may arrive as a JSON number or as text typed into a form field.
// Anything that does not parse becomes zero.
type FlexInt int

// Int returns the plain integer value.
func (f FlexInt) Int() int {
	return int(f)
}

// UnmarshalJSON accepts numbers, numeric strings, booleans and null.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(coerceInt(raw))
	return nil
}

// ParseHours coerces a cell value to an integer number of hours, treating anything
// non-numeric, empty or negative as zero.
func ParseHours(raw interface{}) int {
	value := coerceInt(raw)
	if value < 0 {
		return 0
	}
	return value
}

func coerceInt(raw interface{}) int {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case FlexInt:
		return int(v)
	case json.Number:
		return parseIntPrefix(v.String())
	case string:
		return parseIntPrefix(v)
	default:
		return 0
	}
}

// parseIntPrefix mirrors lenient form parsing: leading whitespace and sign, then digits.
func parseIntPrefix(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c == '-' || c == '+') && end == 0 {
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	value, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return value
}

// Objective is one annual teaching objective (a Prota row).
type Objective struct {
	ID           int     `json:"id"`
	Element      string  `json:"elemen"`
	TopicLabel   string  `json:"materi"`
	LearningGoal string  `json:"kd,omitempty"`
	TargetHours  FlexInt `json:"jp"`
}

// Label returns the text shown for the objective, with a placeholder when it is empty.
func (o Objective) Label() string {
	if strings.TrimSpace(o.TopicLabel) == "" {
		return "(Materi Kosong)"
	}
	return o.TopicLabel
}

// CellKey addresses one weekly assignment cell.
type CellKey struct {
	ObjectiveID int
	Month       int
	Week        int
}

// String renders the key in its stored "objective_month_week" form.
func (k CellKey) String() string {
	return fmt.Sprintf("%d_%d_%d", k.ObjectiveID, k.Month, k.Week)
}

// WeekRef returns the week part of the key.
func (k CellKey) WeekRef() WeekRef {
	return WeekRef{Month: k.Month, Week: k.Week}
}

// ParseCellKey parses the stored "objective_month_week" form.
func ParseCellKey(raw string) (CellKey, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "_")
	if len(parts) != 3 {
		return CellKey{}, false
	}
	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return CellKey{}, false
		}
		values[i] = v
	}
	if values[1] < 0 || values[1] >= MonthsPerSemester || values[2] < 0 {
		return CellKey{}, false
	}
	return CellKey{ObjectiveID: values[0], Month: values[1], Week: values[2]}, true
}

// WeekRef identifies a week inside the semester.
type WeekRef struct {
	Month int `json:"monthIndex"`
	Week  int `json:"weekIndex"`
}

// WeekSet is a set of weeks.
type WeekSet map[WeekRef]struct{}

// Has reports membership.
func (s WeekSet) Has(month, week int) bool {
	if s == nil {
		return false
	}
	_, ok := s[WeekRef{Month: month, Week: week}]
	return ok
}

// Add inserts a week.
func (s WeekSet) Add(month, week int) {
	s[WeekRef{Month: month, Week: week}] = struct{}{}
}

// AssignmentMap is the sparse weekly assignment: absent keys mean zero hours.
type AssignmentMap map[CellKey]int

// SetCell stores hours for a cell; zero or negative hours clear it.
func (m AssignmentMap) SetCell(objectiveID, monthIndex, weekIndex, hours int) {
	key := CellKey{ObjectiveID: objectiveID, Month: monthIndex, Week: weekIndex}
	if hours <= 0 {
		delete(m, key)
		return
	}
	m[key] = hours
}

// Get returns the hours stored in a cell.
func (m AssignmentMap) Get(objectiveID, monthIndex, weekIndex int) int {
	return m[CellKey{ObjectiveID: objectiveID, Month: monthIndex, Week: weekIndex}]
}

// Clone copies the map.
func (m AssignmentMap) Clone() AssignmentMap {
	out := make(AssignmentMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Keys returns the keys sorted by objective, month and week.
func (m AssignmentMap) Keys() []CellKey {
	keys := make([]CellKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ObjectiveID != keys[j].ObjectiveID {
			return keys[i].ObjectiveID < keys[j].ObjectiveID
		}
		if keys[i].Month != keys[j].Month {
			return keys[i].Month < keys[j].Month
		}
		return keys[i].Week < keys[j].Week
	})
	return keys
}

// MarshalJSON writes the stored string-keyed form.
func (m AssignmentMap) MarshalJSON() ([]byte, error) {
	wire := make(map[string]int, len(m))
	for k, v := range m {
		if v > 0 {
			wire[k.String()] = v
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON reads the stored string-keyed form. Unparseable keys and zero values are dropped.
func (m *AssignmentMap) UnmarshalJSON(data []byte) error {
	var wire map[string]interface{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(AssignmentMap, len(wire))
	for rawKey, rawValue := range wire {
		key, ok := ParseCellKey(rawKey)
		if !ok {
			continue
		}
		if hours := ParseHours(rawValue); hours > 0 {
			out[key] = hours
		}
	}
	*m = out
	return nil
}

// Matrix couples objectives, their weekly assignments and the calendar they are laid on.
type Matrix struct {
	Calendar   Calendar
	Objectives []Objective
	Cells      AssignmentMap
	Blocked    WeekSet
}

// NewMatrix builds a matrix; a nil cell map is replaced by an empty one.
func NewMatrix(calendar Calendar, objectives []Objective, cells AssignmentMap, blocked WeekSet) *Matrix {
	if cells == nil {
		cells = AssignmentMap{}
	}
	return &Matrix{Calendar: calendar, Objectives: objectives, Cells: cells, Blocked: blocked}
}

// SetCell stores hours for a cell.
func (m *Matrix) SetCell(objectiveID, monthIndex, weekIndex, hours int) {
	m.Cells.SetCell(objectiveID, monthIndex, weekIndex, hours)
}

// AssignedSum sums an objective's hours over legal, non-blocked weeks.
func (m *Matrix) AssignedSum(objectiveID int) int {
	sum := 0
	for key, hours := range m.Cells {
		if key.ObjectiveID != objectiveID || !m.counts(key) {
			continue
		}
		sum += hours
	}
	return sum
}

// TotalAssigned sums AssignedSum over every objective in the matrix.
func (m *Matrix) TotalAssigned() int {
	total := 0
	for _, objective := range m.Objectives {
		total += m.AssignedSum(objective.ID)
	}
	return total
}

// TotalTarget sums target hours over every objective.
func (m *Matrix) TotalTarget() int {
	total := 0
	for _, objective := range m.Objectives {
		total += objective.TargetHours.Int()
	}
	return total
}

func (m *Matrix) counts(key CellKey) bool {
	if !m.Calendar.LegalWeek(key.Month, key.Week) {
		return false
	}
	return !m.Blocked.Has(key.Month, key.Week)
}
