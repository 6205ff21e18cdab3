// Package schedule holds the device schedule model, the HH:MM / MM-DD boundary parsers
// and the conflict checker. Nothing here performs I/O.
package schedule

import "fmt"

// Repetition selects the days a daily schedule is active on.
type Repetition int

const (
	TodayOnly Repetition = iota
	Everyday
	Weekdays
	Weekend
)

func (r Repetition) String() string {
	switch r {
	case TodayOnly:
		return "Today Only"
	case Everyday:
		return "Everyday"
	case Weekdays:
		return "Week Days"
	case Weekend:
		return "Weekend"
	default:
		return "Unknown"
	}
}

// Time is a wall-clock time of day without timezone.
type Time struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// MinutesOfDay returns the number of minutes since midnight.
func (t Time) MinutesOfDay() int {
	return t.Hours*60 + t.Minutes
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hours, t.Minutes)
}

// Date is a calendar day recurring every year.
type Date struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Ordinal is a coarse day-of-year (month*31+day). It is not a real day count
// and only serves range comparisons.
func (d Date) Ordinal() int {
	return d.Month*31 + d.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d", d.Month, d.Day)
}

// Daily is a recurring time-of-day window that activates an effect.
type Daily struct {
	ID         int        `json:"id"`
	Enable     bool       `json:"enable"`
	EffectID   int        `json:"effectId"`
	Repetition Repetition `json:"repetition"`
	StartTime  Time       `json:"startTime"`
	EndTime    Time       `json:"endTime"`
}

// Calendar is a date-range-bound time-of-day window that activates an effect.
type Calendar struct {
	ID        int  `json:"id"`
	EffectID  int  `json:"effectId"`
	StartDate Date `json:"startDate"`
	EndDate   Date `json:"endDate"`
	StartTime Time `json:"startTime"`
	EndTime   Time `json:"endTime"`
}

// Snapshot is the daily and calendar schedules read from one device details call.
type Snapshot struct {
	Daily    []Daily    `json:"daily"`
	Calendar []Calendar `json:"calendar"`
}

// FindDaily returns the daily schedule with the given id.
func (s Snapshot) FindDaily(id int) (Daily, bool) {
	for _, d := range s.Daily {
		if d.ID == id {
			return d, true
		}
	}
	return Daily{}, false
}

// FindCalendar returns the calendar schedule with the given id.
func (s Snapshot) FindCalendar(id int) (Calendar, bool) {
	for _, c := range s.Calendar {
		if c.ID == id {
			return c, true
		}
	}
	return Calendar{}, false
}
