package trimlight

import (
	"encoding/json"

	"github.com/dokzlo13/trimlight/internal/schedule"
)

// SwitchState is the device power mode.
type SwitchState int

const (
	SwitchOff SwitchState = iota
	SwitchManual
	SwitchTimer
)

func (s SwitchState) String() string {
	switch s {
	case SwitchOff:
		return "Off"
	case SwitchManual:
		return "Manual Mode"
	case SwitchTimer:
		return "Timer Mode"
	default:
		return "Unknown"
	}
}

// Connectivity is the cloud connection status of a device.
type Connectivity int

const (
	Offline Connectivity = iota
	Online
)

func (c Connectivity) String() string {
	switch c {
	case Offline:
		return "Offline"
	case Online:
		return "Online"
	default:
		return "Unknown"
	}
}

// Effect categories as sent in effect payloads.
const (
	CategoryBuiltIn = 0
	CategoryCustom  = 1
	CategorySaved   = 2
)

// envelope is the generic response wrapper of every endpoint.
type envelope struct {
	Code    *int            `json:"code"`
	Desc    string          `json:"desc"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Result is the status returned by mutating operations.
type Result struct {
	Code int    `json:"code"`
	Desc string `json:"desc"`
}

// Device is an entry of the device list.
type Device struct {
	DeviceID      string       `json:"deviceId"`
	Name          string       `json:"name"`
	SwitchState   SwitchState  `json:"switchState"`
	Connectivity  Connectivity `json:"connectivity"`
	State         int          `json:"state"`
	FwVersionName string       `json:"fwVersionName"`
}

// DeviceList is a page of devices.
type DeviceList struct {
	Total   int      `json:"total"`
	Current int      `json:"current"`
	Data    []Device `json:"data"`
}

// Port is a LED output port and its pixel range.
type Port struct {
	ID    int `json:"id"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// DeviceDateTime is the device clock. Year is two digits (24 means 2024).
type DeviceDateTime struct {
	Year    int `json:"year"`
	Month   int `json:"month"`
	Day     int `json:"day"`
	Weekday int `json:"weekday"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Pixel is a run of Count LEDs starting at Index painted with Color (0xRRGGBB).
type Pixel struct {
	Index   int  `json:"index"`
	Count   int  `json:"count"`
	Color   int  `json:"color"`
	Disable bool `json:"disable"`
}

// Effect is a stored or running lighting effect.
type Effect struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Category   int     `json:"category"`
	Mode       int     `json:"mode"`
	Speed      int     `json:"speed"`
	Brightness int     `json:"brightness"`
	PixelLen   *int    `json:"pixelLen"`
	Reverse    *bool   `json:"reverse"`
	Pixels     []Pixel `json:"pixels"`
}

// CombinedEffect plays EffectIDs in rotation, switching every Interval seconds.
type CombinedEffect struct {
	EffectIDs []int `json:"effectIds"`
	Interval  int   `json:"interval"`
}

// OverlayEffect layers a transient effect over TargetEffect.
type OverlayEffect struct {
	OverlayType  int `json:"overlayType"`
	TargetEffect int `json:"targetEffect"`
}

// DeviceDetails is the full device state returned by the details call.
type DeviceDetails struct {
	Name            string              `json:"name"`
	SwitchState     SwitchState         `json:"switchState"`
	Connectivity    Connectivity        `json:"connectivity"`
	State           int                 `json:"state"`
	ColorOrder      int                 `json:"colorOrder"`
	IC              int                 `json:"ic"`
	Ports           []Port              `json:"ports"`
	FwVersionName   string              `json:"fwVersionName"`
	Effects         []Effect            `json:"effects"`
	CombinedEffect  *CombinedEffect     `json:"combinedEffect,omitempty"`
	Daily           []schedule.Daily    `json:"daily"`
	Calendar        []schedule.Calendar `json:"calendar"`
	CurrentEffect   *Effect             `json:"currentEffect,omitempty"`
	OverlayEffects  []OverlayEffect     `json:"overlayEffects"`
	CurrentDatetime DeviceDateTime      `json:"currentDatetime"`
}

// FindEffect returns the stored effect with the given id.
func (d *DeviceDetails) FindEffect(id int) (Effect, bool) {
	for _, e := range d.Effects {
		if e.ID == id {
			return e, true
		}
	}
	return Effect{}, false
}

// Schedules returns the schedule snapshot contained in the details.
func (d *DeviceDetails) Schedules() schedule.Snapshot {
	return schedule.Snapshot{Daily: d.Daily, Calendar: d.Calendar}
}
