package trimlight

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/trimlight/internal/errs"
	"github.com/dokzlo13/trimlight/internal/schedule"
)

// ListDevices returns a page of devices bound to the account. A nil page lets
// the server choose.
func (c *Client) ListDevices(ctx context.Context, page *int) (*DeviceList, error) {
	body := struct {
		Page *int `json:"page"`
	}{Page: page}

	var list DeviceList
	if _, err := c.do(ctx, http.MethodGet, "/devices", body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DefaultDevice returns the id of the first device on the account.
func (c *Client) DefaultDevice(ctx context.Context) (string, error) {
	list, err := c.ListDevices(ctx, nil)
	if err != nil {
		return "", err
	}
	if len(list.Data) == 0 {
		return "", errs.NotFound("No devices found")
	}
	return list.Data[0].DeviceID, nil
}

// DeviceDetails reads the full state of a device, sending the client clock as
// the current date.
func (c *Client) DeviceDetails(ctx context.Context, deviceID string) (*DeviceDetails, error) {
	body := struct {
		DeviceID    string         `json:"deviceId"`
		CurrentDate DeviceDateTime `json:"currentDate"`
	}{
		DeviceID:    deviceID,
		CurrentDate: deviceDate(c.now()),
	}

	var details DeviceDetails
	if _, err := c.do(ctx, http.MethodPost, "/device/get", body, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// SetSwitchState turns the device off or selects manual or timer mode.
func (c *Client) SetSwitchState(ctx context.Context, deviceID string, state SwitchState) (*Result, error) {
	if state < SwitchOff || state > SwitchTimer {
		return nil, errs.Validation("Invalid switch state. Use 0=off, 1=manual, 2=timer")
	}
	return c.post(ctx, "/device/update", deviceID, map[string]any{"switchState": int(state)})
}

// RenameDevice sets the display name of a device.
func (c *Client) RenameDevice(ctx context.Context, deviceID, name string) (*Result, error) {
	return c.post(ctx, "/device/update", deviceID, map[string]any{"name": name})
}

// Schedules returns the daily and calendar schedules from a single details read.
func (c *Client) Schedules(ctx context.Context, deviceID string) (schedule.Snapshot, error) {
	details, err := c.DeviceDetails(ctx, deviceID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	return details.Schedules(), nil
}

// CheckConflicts reads the schedules of a device and reports overlapping pairs.
func (c *Client) CheckConflicts(ctx context.Context, deviceID string) (schedule.Report, error) {
	snap, err := c.Schedules(ctx, deviceID)
	if err != nil {
		return schedule.Report{}, err
	}
	report := schedule.FindConflicts(snap.Daily, snap.Calendar)

	log.Debug().
		Str("device", deviceID).
		Int("daily", len(snap.Daily)).
		Int("calendar", len(snap.Calendar)).
		Int("conflicts", len(report.Conflicts)).
		Msg("Checked schedule conflicts")

	return report, nil
}
