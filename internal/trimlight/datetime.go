package trimlight

import "time"

// deviceDate converts t to the device clock representation.
// Weekday follows time.Weekday numbering (0 is Sunday).
func deviceDate(t time.Time) DeviceDateTime {
	return DeviceDateTime{
		Year:    t.Year() % 100,
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: int(t.Weekday()),
		Hours:   t.Hour(),
		Minutes: t.Minute(),
		Seconds: t.Second(),
	}
}

// Time returns the device clock as a time in loc, assuming the 21st century.
func (d DeviceDateTime) Time(loc *time.Location) time.Time {
	return time.Date(2000+d.Year, time.Month(d.Month), d.Day, d.Hours, d.Minutes, d.Seconds, 0, loc)
}
