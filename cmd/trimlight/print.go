package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dokzlo13/trimlight/internal/modes"
	"github.com/dokzlo13/trimlight/internal/schedule"
	"github.com/dokzlo13/trimlight/internal/trimlight"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDevices(w io.Writer, list *trimlight.DeviceList) {
	fmt.Fprintf(w, "Found %d devices:\n", list.Total)
	for _, d := range list.Data {
		fmt.Fprintf(w, "- %s (ID: %s)\n", d.Name, d.DeviceID)
		fmt.Fprintf(w, "  Status: %s\n", d.Connectivity)
		fmt.Fprintf(w, "  State: %s\n", d.SwitchState)
		fmt.Fprintf(w, "  Firmware: %s\n", d.FwVersionName)
		fmt.Fprintln(w)
	}
}

func printDetails(w io.Writer, d *trimlight.DeviceDetails) {
	fmt.Fprintf(w, "Device Details for %s:\n", d.Name)
	fmt.Fprintf(w, "Status: %s\n", d.Connectivity)
	fmt.Fprintf(w, "State: %s\n", d.SwitchState)
	fmt.Fprintf(w, "Firmware: %s\n", d.FwVersionName)
	fmt.Fprintf(w, "Color Order: %d\n", d.ColorOrder)
	fmt.Fprintf(w, "IC Type: %d\n", d.IC)

	if len(d.Ports) > 0 {
		fmt.Fprintln(w, "\nPorts:")
		for _, p := range d.Ports {
			fmt.Fprintf(w, "  Port %d: %d to %d\n", p.ID, p.Start, p.End)
		}
	}

	if len(d.Effects) > 0 {
		fmt.Fprintln(w, "\nStored Effects:")
		for _, e := range d.Effects {
			fmt.Fprintf(w, "  %d: %s (Mode: %d)\n", e.ID, e.Name, e.Mode)
		}
	}

	if cur := d.CurrentEffect; cur != nil {
		fmt.Fprintln(w, "\nCurrent Effect:")
		fmt.Fprintf(w, "  Mode: %d\n", cur.Mode)
		fmt.Fprintf(w, "  Speed: %d\n", cur.Speed)
		fmt.Fprintf(w, "  Brightness: %d\n", cur.Brightness)
		printOptional(w, cur)
	}

	// Only enabled daily schedules are shown here; "schedule list" shows all.
	if len(d.Daily) > 0 {
		fmt.Fprintln(w, "\nDaily Schedules:")
		for _, s := range d.Daily {
			if s.Enable {
				fmt.Fprintf(w, "  Schedule %d: Effect %d from %s to %s\n", s.ID, s.EffectID, s.StartTime, s.EndTime)
			}
		}
	}

	if len(d.Calendar) > 0 {
		fmt.Fprintln(w, "\nCalendar Schedules:")
		for _, s := range d.Calendar {
			fmt.Fprintf(w, "  Schedule %d: Effect %d from %d/%d to %d/%d (%s to %s)\n",
				s.ID, s.EffectID,
				s.StartDate.Month, s.StartDate.Day,
				s.EndDate.Month, s.EndDate.Day,
				s.StartTime, s.EndTime)
		}
	}
}

func printOptional(w io.Writer, e *trimlight.Effect) {
	if e.PixelLen != nil {
		fmt.Fprintf(w, "  Pixel Length: %d\n", *e.PixelLen)
	}
	if e.Reverse != nil {
		fmt.Fprintf(w, "  Reverse: %t\n", *e.Reverse)
	}
}

func printEffects(w io.Writer, effects []trimlight.Effect) {
	if len(effects) == 0 {
		fmt.Fprintln(w, "No saved effects found")
		return
	}
	fmt.Fprintln(w, "Saved Effects:")
	for i := range effects {
		e := &effects[i]
		fmt.Fprintf(w, "- Effect %d (%s)\n", e.ID, e.Name)
		fmt.Fprintf(w, "  Mode: %d\n", e.Mode)
		fmt.Fprintf(w, "  Speed: %d\n", e.Speed)
		fmt.Fprintf(w, "  Brightness: %d\n", e.Brightness)
		printOptional(w, e)
		if e.Pixels != nil {
			fmt.Fprintf(w, "  Custom Pixels: %d defined\n", len(e.Pixels))
		}
		fmt.Fprintln(w)
	}
}

func printSchedules(w io.Writer, snap schedule.Snapshot) {
	fmt.Fprintln(w, "Daily Schedules:")
	for _, s := range snap.Daily {
		fmt.Fprintf(w, "- Schedule %d: Effect %d from %s to %s\n", s.ID, s.EffectID, s.StartTime, s.EndTime)
		fmt.Fprintf(w, "  Repetition: %s\n", s.Repetition)
		status := "Disabled"
		if s.Enable {
			status = "Enabled"
		}
		fmt.Fprintf(w, "  Status: %s\n", status)
	}

	fmt.Fprintln(w, "\nCalendar Schedules:")
	for _, s := range snap.Calendar {
		fmt.Fprintf(w, "- Schedule %d: Effect %d from %s to %s\n", s.ID, s.EffectID, s.StartDate, s.EndDate)
		fmt.Fprintf(w, "  Time: %s to %s\n", s.StartTime, s.EndTime)
	}
}

func printConflicts(w io.Writer, r schedule.Report) {
	if !r.HasConflicts() {
		fmt.Fprintln(w, "No schedule conflicts found")
		return
	}
	fmt.Fprintf(w, "Schedule conflicts found (code: %d):\n", r.Code)
	for _, c := range r.Conflicts {
		fmt.Fprintf(w, "- %s\n", c)
	}
}

func printModes(w io.Writer, found []modes.Mode) {
	if len(found) == 0 {
		fmt.Fprintln(w, "No modes found matching your criteria.")
		return
	}

	fmt.Fprintln(w, "Available Effect Modes:")
	var current modes.Category
	for _, m := range found {
		if m.Category != current {
			current = m.Category
			fmt.Fprintf(w, "\n%s:\n", current)
			if current == modes.Custom {
				fmt.Fprintln(w, "  (For pixel-by-pixel control)")
			}
		}
		fmt.Fprintf(w, "  %3d - %s\n", m.ID, m.Name)
	}
}
