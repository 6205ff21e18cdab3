package schedule

import (
	"strconv"
	"strings"

	"github.com/dokzlo13/trimlight/internal/errs"
)

// ParseTime parses "HH:MM" with hours 0-23 and minutes 0-59.
func ParseTime(s string) (Time, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Time{}, errs.Validation("Invalid time format. Use HH:MM")
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return Time{}, errs.Validation("Invalid hours")
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return Time{}, errs.Validation("Invalid minutes")
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return Time{}, errs.Validation("Invalid time values")
	}

	return Time{Hours: hours, Minutes: minutes}, nil
}

// ParseDate parses "MM-DD" with month 1-12 and day 1-31. The day is not checked
// against the length of the month.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Date{}, errs.Validation("Invalid date format. Use MM-DD")
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, errs.Validation("Invalid month")
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, errs.Validation("Invalid day")
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, errs.Validation("Invalid date values")
	}

	return Date{Month: month, Day: day}, nil
}

// ParseRepetition accepts the numeric form (0-3) or a name such as "everyday".
func ParseRepetition(s string) (Repetition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "today", "today-only", "todayonly":
		return TodayOnly, nil
	case "1", "everyday", "daily":
		return Everyday, nil
	case "2", "weekdays", "weekday":
		return Weekdays, nil
	case "3", "weekend", "weekends":
		return Weekend, nil
	}
	return 0, errs.Validation("Invalid repetition. Use 0=today, 1=everyday, 2=weekdays, 3=weekend")
}

// ParseKind accepts "daily" or "calendar" in any case.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindDaily:
		return KindDaily, nil
	case KindCalendar:
		return KindCalendar, nil
	}
	return "", errs.Validation("Invalid schedule type. Must be 'daily' or 'calendar'")
}
