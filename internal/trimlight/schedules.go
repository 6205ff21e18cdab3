package trimlight

import (
	"context"
	"fmt"

	"github.com/dokzlo13/trimlight/internal/errs"
	"github.com/dokzlo13/trimlight/internal/schedule"
)

// newDailyID asks the device to assign the id of a new daily schedule.
const newDailyID = -1

// ScheduleChange lists the fields to change on an existing schedule.
// Empty strings and nil pointers keep the stored value. Repetition applies to
// daily schedules only, dates to calendar schedules only.
type ScheduleChange struct {
	EffectID   *int
	Start      string
	End        string
	Repetition *schedule.Repetition
	StartDate  string
	EndDate    string
}

// AddDailySchedule creates an enabled daily schedule. Times are "HH:MM".
func (c *Client) AddDailySchedule(ctx context.Context, deviceID string, effectID int, start, end string, rep schedule.Repetition) (*Result, error) {
	startTime, err := schedule.ParseTime(start)
	if err != nil {
		return nil, err
	}
	endTime, err := schedule.ParseTime(end)
	if err != nil {
		return nil, err
	}

	return c.post(ctx, "/device/schedule/daily/add", deviceID, schedule.Daily{
		ID:         newDailyID,
		Enable:     true,
		EffectID:   effectID,
		Repetition: rep,
		StartTime:  startTime,
		EndTime:    endTime,
	})
}

// AddCalendarSchedule creates a calendar schedule. Dates are "MM-DD", times "HH:MM".
func (c *Client) AddCalendarSchedule(ctx context.Context, deviceID string, effectID int, startDate, endDate, startTime, endTime string) (*Result, error) {
	cal := schedule.Calendar{EffectID: effectID}
	var err error
	if cal.StartDate, err = schedule.ParseDate(startDate); err != nil {
		return nil, err
	}
	if cal.EndDate, err = schedule.ParseDate(endDate); err != nil {
		return nil, err
	}
	if cal.StartTime, err = schedule.ParseTime(startTime); err != nil {
		return nil, err
	}
	if cal.EndTime, err = schedule.ParseTime(endTime); err != nil {
		return nil, err
	}

	return c.post(ctx, "/device/schedule/calendar/add", deviceID, cal)
}

// DeleteSchedule removes a daily or calendar schedule. kind is case-insensitive.
func (c *Client) DeleteSchedule(ctx context.Context, deviceID string, scheduleID int, kind string) (*Result, error) {
	k, err := schedule.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, scheduleEndpoint(k, "delete"), deviceID, map[string]any{"id": scheduleID})
}

// ToggleSchedule enables or disables a daily schedule.
func (c *Client) ToggleSchedule(ctx context.Context, deviceID string, scheduleID int, enable bool) (*Result, error) {
	return c.post(ctx, scheduleEndpoint(schedule.KindDaily, "update"), deviceID, map[string]any{
		"id":     scheduleID,
		"enable": enable,
	})
}

// ModifySchedule reads the stored schedule, applies ch and writes it back.
// Daily schedules keep their enable flag.
func (c *Client) ModifySchedule(ctx context.Context, deviceID string, scheduleID int, kind string, ch ScheduleChange) (*Result, error) {
	k, err := schedule.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	snap, err := c.Schedules(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	var payload any
	switch k {
	case schedule.KindDaily:
		d, ok := snap.FindDaily(scheduleID)
		if !ok {
			return nil, scheduleNotFound(scheduleID)
		}
		if err := applyDaily(&d, ch); err != nil {
			return nil, err
		}
		payload = d
	case schedule.KindCalendar:
		cal, ok := snap.FindCalendar(scheduleID)
		if !ok {
			return nil, scheduleNotFound(scheduleID)
		}
		if err := applyCalendar(&cal, ch); err != nil {
			return nil, err
		}
		payload = cal
	}

	return c.post(ctx, scheduleEndpoint(k, "update"), deviceID, payload)
}

func applyDaily(d *schedule.Daily, ch ScheduleChange) error {
	if ch.EffectID != nil {
		d.EffectID = *ch.EffectID
	}
	if ch.Repetition != nil {
		d.Repetition = *ch.Repetition
	}
	return applyTimes(&d.StartTime, &d.EndTime, ch)
}

func applyCalendar(cal *schedule.Calendar, ch ScheduleChange) error {
	if ch.EffectID != nil {
		cal.EffectID = *ch.EffectID
	}
	if ch.StartDate != "" {
		date, err := schedule.ParseDate(ch.StartDate)
		if err != nil {
			return err
		}
		cal.StartDate = date
	}
	if ch.EndDate != "" {
		date, err := schedule.ParseDate(ch.EndDate)
		if err != nil {
			return err
		}
		cal.EndDate = date
	}
	return applyTimes(&cal.StartTime, &cal.EndTime, ch)
}

func applyTimes(start, end *schedule.Time, ch ScheduleChange) error {
	if ch.Start != "" {
		t, err := schedule.ParseTime(ch.Start)
		if err != nil {
			return err
		}
		*start = t
	}
	if ch.End != "" {
		t, err := schedule.ParseTime(ch.End)
		if err != nil {
			return err
		}
		*end = t
	}
	return nil
}

func scheduleEndpoint(k schedule.Kind, action string) string {
	return fmt.Sprintf("/device/schedule/%s/%s", k, action)
}

func scheduleNotFound(id int) error {
	return errs.NotFound(fmt.Sprintf("Schedule %d not found", id))
}
