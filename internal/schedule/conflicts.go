package schedule

import (
	"fmt"
	"strings"
)

// Report codes.
const (
	CodeNoConflicts = 0
	CodeConflicts   = 1
)

// NoConflictsMessage is the report message when nothing overlaps.
const NoConflictsMessage = "No conflicts found"

// Kind tells which schedule collection a conflict was found in.
type Kind string

const (
	KindDaily    Kind = "daily"
	KindCalendar Kind = "calendar"
)

// Conflict is a pair of schedules that would command two effects at once.
type Conflict struct {
	Kind   Kind `json:"kind"`
	First  int  `json:"first"`
	Second int  `json:"second"`
}

func (c Conflict) String() string {
	if c.Kind == KindCalendar {
		return fmt.Sprintf("Calendar schedules %d and %d have overlapping dates and times", c.First, c.Second)
	}
	return fmt.Sprintf("Daily schedules %d and %d have overlapping times", c.First, c.Second)
}

// Report is the outcome of a conflict check.
type Report struct {
	Code      int        `json:"code"`
	Conflicts []Conflict `json:"conflicts"`
}

// HasConflicts reports whether any pair overlaps.
func (r Report) HasConflicts() bool {
	return r.Code != CodeNoConflicts
}

// Message is NoConflictsMessage or the newline-joined conflict descriptions.
func (r Report) Message() string {
	if len(r.Conflicts) == 0 {
		return NoConflictsMessage
	}
	lines := make([]string, len(r.Conflicts))
	for i, c := range r.Conflicts {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// FindConflicts reports every overlapping pair of enabled daily schedules and every
// overlapping pair of calendar schedules. Daily pairs come first; within a pass pairs
// are ordered by index (i < j).
func FindConflicts(daily []Daily, calendar []Calendar) Report {
	var conflicts []Conflict

	for i := range daily {
		a := daily[i]
		if !a.Enable {
			continue
		}
		for j := i + 1; j < len(daily); j++ {
			b := daily[j]
			if !b.Enable {
				continue
			}
			if !daysOverlap(a.Repetition, b.Repetition) {
				continue
			}
			if overlaps(a.StartTime.MinutesOfDay(), a.EndTime.MinutesOfDay(), b.StartTime.MinutesOfDay(), b.EndTime.MinutesOfDay()) {
				conflicts = append(conflicts, Conflict{Kind: KindDaily, First: a.ID, Second: b.ID})
			}
		}
	}

	for i := range calendar {
		a := calendar[i]
		for j := i + 1; j < len(calendar); j++ {
			b := calendar[j]
			if !overlaps(a.StartDate.Ordinal(), a.EndDate.Ordinal(), b.StartDate.Ordinal(), b.EndDate.Ordinal()) {
				continue
			}
			if overlaps(a.StartTime.MinutesOfDay(), a.EndTime.MinutesOfDay(), b.StartTime.MinutesOfDay(), b.EndTime.MinutesOfDay()) {
				conflicts = append(conflicts, Conflict{Kind: KindCalendar, First: a.ID, Second: b.ID})
			}
		}
	}

	if len(conflicts) == 0 {
		return Report{Code: CodeNoConflicts}
	}
	return Report{Code: CodeConflicts, Conflicts: conflicts}
}

// daysOverlap decides whether two repetition kinds can land on the same day.
// TodayOnly never conflicts, even with Everyday.
func daysOverlap(a, b Repetition) bool {
	switch {
	case a == TodayOnly || b == TodayOnly:
		return false
	case a == Everyday || b == Everyday:
		return true
	case a == Weekdays && b == Weekdays:
		return true
	case a == Weekend && b == Weekend:
		return true
	default:
		return false
	}
}

// overlaps tests closed intervals [s1,e1] and [s2,e2] for intersection.
func overlaps(s1, e1, s2, e2 int) bool {
	return (s1 <= e2 && e1 >= s2) || (s2 <= e1 && e2 >= s1)
}
