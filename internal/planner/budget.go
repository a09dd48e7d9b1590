package planner

import (
	"regexp"
	"strconv"
	"strings"
)

var arabicToRoman = map[int]string{
	1: "I", 2: "II", 3: "III", 4: "IV", 5: "V", 6: "VI",
	7: "VII", 8: "VIII", 9: "IX", 10: "X", 11: "XI", 12: "XII",
}

var romanToArabic = func() map[string]int {
	out := make(map[string]int, len(arabicToRoman))
	for n, r := range arabicToRoman {
		out[r] = n
	}
	return out
}()

// Longest numerals first so "VIII" is not read as "V".
var leadingRoman = regexp.MustCompile(`^(XII|XI|IX|X|VIII|VII|VI|IV|V|III|II|I)(?:[^A-Z]|$)`)

var leadingDigits = regexp.MustCompile(`\d+`)

// AlternateGrade maps "7" to "VII" and back; other values are returned unchanged.
func AlternateGrade(grade string) string {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if n, err := strconv.Atoi(g); err == nil {
		if r, ok := arabicToRoman[n]; ok {
			return r
		}
		return g
	}
	if n, ok := romanToArabic[g]; ok {
		return strconv.Itoa(n)
	}
	return g
}

// SameGrade compares two grade labels, treating Arabic and Roman forms as equal.
func SameGrade(a, b string) bool {
	x := strings.ToUpper(strings.TrimSpace(a))
	y := strings.ToUpper(strings.TrimSpace(b))
	if x == "" || y == "" {
		return false
	}
	return x == y || AlternateGrade(x) == y
}

// GradeFromClassName guesses a grade from a class-section name: the first digit run, otherwise
// a leading Roman numeral.
func GradeFromClassName(className string) string {
	name := strings.ToUpper(strings.TrimSpace(className))
	if digits := leadingDigits.FindString(name); digits != "" {
		return digits
	}
	name = strings.TrimSpace(strings.TrimPrefix(name, "KELAS"))
	if match := leadingRoman.FindStringSubmatch(name); match != nil {
		return match[1]
	}
	return ""
}

// gradePattern matches class names starting with the grade, optionally prefixed by "KELAS".
// An Arabic grade must not be followed by another digit and a Roman one not by another numeral
// letter, so grade 1 never matches class 11 and VII never matches VIII.
func gradePattern(grade string) *regexp.Regexp {
	g := strings.ToUpper(strings.TrimSpace(grade))
	alternatives := []string{gradeAlternative(g)}
	if alt := AlternateGrade(g); alt != g {
		alternatives = append(alternatives, gradeAlternative(alt))
	}
	return regexp.MustCompile(`(?i)^(?:KELAS\s+)?(?:` + strings.Join(alternatives, "|") + `)`)
}

func gradeAlternative(g string) string {
	if _, ok := romanToArabic[g]; ok {
		return regexp.QuoteMeta(g) + `(?:[^0-9IVX]|$)`
	}
	return regexp.QuoteMeta(g) + `(?:[^0-9]|$)`
}

// ScheduleEntry is one weekly teaching slot.
type ScheduleEntry struct {
	Class       string `json:"class"`
	Subject     string `json:"subject"`
	SubjectID   string `json:"subjectId,omitempty"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartPeriod int    `json:"startPeriod"`
	EndPeriod   int    `json:"endPeriod"`
}

// Periods returns the number of teaching periods the slot spans.
func (s ScheduleEntry) Periods() int {
	span := s.EndPeriod - s.StartPeriod + 1
	if span < 0 {
		return 0
	}
	return span
}

// BudgetQuery selects the schedule entries a weekly hour budget is derived from.
type BudgetQuery struct {
	Grade     string
	Subject   string
	SubjectID string
}

// DeriveWeeklyBudget sums the periods of the first matching class section. Entries match by
// subject id when both sides carry one, otherwise by trimmed case-insensitive subject name.
// ok is false when no entry matches.
func DeriveWeeklyBudget(entries []ScheduleEntry, q BudgetQuery) (budget int, className string, ok bool) {
	grade := strings.TrimSpace(q.Grade)
	if grade == "" {
		return 0, "", false
	}
	pattern := gradePattern(grade)
	subject := strings.ToLower(strings.TrimSpace(q.Subject))

	var matched []ScheduleEntry
	for _, entry := range entries {
		class := strings.TrimSpace(entry.Class)
		if class == "" || !pattern.MatchString(class) {
			continue
		}
		if q.SubjectID != "" && entry.SubjectID != "" {
			if entry.SubjectID != q.SubjectID {
				continue
			}
		} else if strings.ToLower(strings.TrimSpace(entry.Subject)) != subject {
			continue
		}
		matched = append(matched, entry)
	}
	if len(matched) == 0 {
		return 0, "", false
	}

	className = matched[0].Class
	for _, entry := range matched {
		if entry.Class == className {
			budget += entry.Periods()
		}
	}
	return budget, className, true
}
