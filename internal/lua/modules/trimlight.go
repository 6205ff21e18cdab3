package modules

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/trimlight/internal/modes"
	"github.com/dokzlo13/trimlight/internal/schedule"
	"github.com/dokzlo13/trimlight/internal/trimlight"
)

// TrimlightModule provides trimlight.* functions to Lua.
//
// ERROR HANDLING CONVENTION:
// All functions that talk to the device return two values: (result, error_string).
//   - On success: (result, nil)
//   - On error: (nil, "error message")
//
// Example Lua usage:
//
//	local trimlight = require("trimlight")
//	local res, err = trimlight.switch("manual")
//	if err then
//	    log.error("Failed: " .. err)
//	end
//	trimlight.preview({mode = 3, speed = 120, brightness = 200, pixel_len = 30})
//
// Calls act on the device chosen with trimlight.use(id); without one the first
// device of the account is used.
type TrimlightModule struct {
	client   *trimlight.Client
	deviceID string
}

// NewTrimlightModule creates a module bound to client and an optional device.
func NewTrimlightModule(client *trimlight.Client, deviceID string) *TrimlightModule {
	return &TrimlightModule{client: client, deviceID: deviceID}
}

// Loader is the module loader for Lua
func (m *TrimlightModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	// Devices
	L.SetField(mod, "use", L.NewFunction(m.use))
	L.SetField(mod, "device", L.NewFunction(m.device))
	L.SetField(mod, "devices", L.NewFunction(m.devices))
	L.SetField(mod, "details", L.NewFunction(m.details))
	L.SetField(mod, "switch", L.NewFunction(m.switchState))
	L.SetField(mod, "rename", L.NewFunction(m.rename))

	// Effects
	L.SetField(mod, "preview", L.NewFunction(m.preview))
	L.SetField(mod, "preview_custom", L.NewFunction(m.previewCustom))
	L.SetField(mod, "add_effect", L.NewFunction(m.addEffect))
	L.SetField(mod, "update_effect", L.NewFunction(m.updateEffect))
	L.SetField(mod, "delete_effect", L.NewFunction(m.deleteEffect))
	L.SetField(mod, "view_effect", L.NewFunction(m.viewEffect))
	L.SetField(mod, "set_combined", L.NewFunction(m.setCombined))
	L.SetField(mod, "clear_combined", L.NewFunction(m.clearCombined))
	L.SetField(mod, "add_overlay", L.NewFunction(m.addOverlay))
	L.SetField(mod, "clear_overlays", L.NewFunction(m.clearOverlays))

	// Schedules
	L.SetField(mod, "schedules", L.NewFunction(m.schedules))
	L.SetField(mod, "add_daily", L.NewFunction(m.addDaily))
	L.SetField(mod, "add_calendar", L.NewFunction(m.addCalendar))
	L.SetField(mod, "delete_schedule", L.NewFunction(m.deleteSchedule))
	L.SetField(mod, "toggle_schedule", L.NewFunction(m.toggleSchedule))
	L.SetField(mod, "modify_schedule", L.NewFunction(m.modifySchedule))
	L.SetField(mod, "check_conflicts", L.NewFunction(m.checkConflicts))

	// Catalog (no network)
	L.SetField(mod, "modes", L.NewFunction(m.searchModes))

	L.Push(mod)
	return 1
}

// resolve returns the selected device, falling back to the first listed one.
func (m *TrimlightModule) resolve(ctx context.Context) (string, error) {
	if m.deviceID != "" {
		return m.deviceID, nil
	}
	id, err := m.client.DefaultDevice(ctx)
	if err != nil {
		return "", err
	}
	log.Debug().Str("device", id).Msg("Using first listed device")
	m.deviceID = id
	return id, nil
}

// withDevice runs fn against the resolved device and pushes its result.
func (m *TrimlightModule) withDevice(L *lua.LState, fn func(ctx context.Context, deviceID string) (any, error)) int {
	ctx := luaContext(L)
	deviceID, err := m.resolve(ctx)
	if err != nil {
		return pushError(L, err)
	}
	res, err := fn(ctx, deviceID)
	return pushResult(L, res, err)
}

// use(id) selects the device for subsequent calls
func (m *TrimlightModule) use(L *lua.LState) int {
	m.deviceID = L.CheckString(1)
	return 0
}

// device() -> (id, err)
func (m *TrimlightModule) device(L *lua.LState) int {
	id, err := m.resolve(luaContext(L))
	if err != nil {
		return pushError(L, err)
	}
	L.Push(lua.LString(id))
	L.Push(lua.LNil)
	return 2
}

// devices([page]) -> (list, err)
func (m *TrimlightModule) devices(L *lua.LState) int {
	var page *int
	if L.GetTop() >= 1 && L.Get(1) != lua.LNil {
		p := L.CheckInt(1)
		page = &p
	}
	list, err := m.client.ListDevices(luaContext(L), page)
	return pushResult(L, list, err)
}

// details() -> (details, err)
func (m *TrimlightModule) details(L *lua.LState) int {
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.DeviceDetails(ctx, id)
	})
}

// switch(state) where state is "off", "manual", "timer" or 0-2
func (m *TrimlightModule) switchState(L *lua.LState) int {
	state, err := parseSwitchState(L.Get(1))
	if err != nil {
		return pushError(L, err)
	}
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.SetSwitchState(ctx, id, state)
	})
}

func parseSwitchState(v lua.LValue) (trimlight.SwitchState, error) {
	switch val := v.(type) {
	case lua.LNumber:
		return trimlight.SwitchState(int(val)), nil
	case lua.LString:
		switch strings.ToLower(string(val)) {
		case "off":
			return trimlight.SwitchOff, nil
		case "manual", "on":
			return trimlight.SwitchManual, nil
		case "timer":
			return trimlight.SwitchTimer, nil
		}
	}
	return 0, fmt.Errorf("invalid switch state %q: use off, manual or timer", v.String())
}

// rename(name) -> (result, err)
func (m *TrimlightModule) rename(L *lua.LState) int {
	name := L.CheckString(1)
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.RenameDevice(ctx, id, name)
	})
}

// preview({mode, speed, brightness, pixel_len, reverse}) -> (result, err)
func (m *TrimlightModule) preview(L *lua.LState) int {
	tbl := L.CheckTable(1)
	p := trimlight.BuiltinPreview{
		Mode:       intField(tbl, "mode", 0),
		Speed:      intField(tbl, "speed", 100),
		Brightness: intField(tbl, "brightness", 100),
		PixelLen:   intField(tbl, "pixel_len", 30),
		Reverse:    lua.LVAsBool(tbl.RawGetString("reverse")),
	}
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.PreviewBuiltinEffect(ctx, id, p)
	})
}

// preview_custom({mode, speed, brightness, pixels = {{index, count, color}, ...}})
func (m *TrimlightModule) previewCustom(L *lua.LState) int {
	tbl := L.CheckTable(1)
	pixels, err := pixelsField(tbl)
	if err != nil {
		return pushError(L, err)
	}
	p := trimlight.CustomPreview{
		Mode:       intField(tbl, "mode", 0),
		Speed:      intField(tbl, "speed", 100),
		Brightness: intField(tbl, "brightness", 100),
		Pixels:     pixels,
	}
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.PreviewCustomEffect(ctx, id, p)
	})
}

// add_effect({name, mode, speed, brightness, pixel_len?, reverse?, pixels?})
func (m *TrimlightModule) addEffect(L *lua.LState) int {
	tbl := L.CheckTable(1)
	pixels, err := pixelsField(tbl)
	if err != nil {
		return pushError(L, err)
	}
	e := trimlight.NewEffect{
		Name:       stringField(tbl, "name"),
		Mode:       intField(tbl, "mode", 0),
		Speed:      intField(tbl, "speed", 100),
		Brightness: intField(tbl, "brightness", 100),
		PixelLen:   optInt(tbl, "pixel_len"),
		Reverse:    optBool(tbl, "reverse"),
		Pixels:     pixels,
	}
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.AddEffect(ctx, id, e)
	})
}

// update_effect(id, {name?, mode?, speed?, brightness?, pixel_len?, reverse?, pixels?})
func (m *TrimlightModule) updateEffect(L *lua.LState) int {
	effectID := L.CheckInt(1)
	tbl := L.CheckTable(2)
	pixels, err := pixelsField(tbl)
	if err != nil {
		return pushError(L, err)
	}
	u := trimlight.EffectUpdate{
		Mode:       optInt(tbl, "mode"),
		Speed:      optInt(tbl, "speed"),
		Brightness: optInt(tbl, "brightness"),
		PixelLen:   optInt(tbl, "pixel_len"),
		Reverse:    optBool(tbl, "reverse"),
		Pixels:     pixels,
	}
	if s, ok := tbl.RawGetString("name").(lua.LString); ok {
		name := string(s)
		u.Name = &name
	}
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.UpdateEffect(ctx, id, effectID, u)
	})
}

// delete_effect(id) -> (result, err)
func (m *TrimlightModule) deleteEffect(L *lua.LState) int {
	effectID := L.CheckInt(1)
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.DeleteEffect(ctx, id, effectID)
	})
}

// view_effect(id) -> (result, err)
func (m *TrimlightModule) viewEffect(L *lua.LState) int {
	effectID := L.CheckInt(1)
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.ViewEffect(ctx, id, effectID)
	})
}

// set_combined({ids...}, interval_seconds) -> (result, err)
func (m *TrimlightModule) setCombined(L *lua.LState) int {
	ids, err := intList(L.CheckTable(1))
	if err != nil {
		return pushError(L, err)
	}
	interval := L.CheckInt(2)
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.SetCombinedEffect(ctx, id, ids, interval)
	})
}

// clear_combined() -> (result, err)
func (m *TrimlightModule) clearCombined(L *lua.LState) int {
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.ClearCombinedEffect(ctx, id)
	})
}

// add_overlay(overlay_type, target_effect) -> (result, err)
func (m *TrimlightModule) addOverlay(L *lua.LState) int {
	overlayType := L.CheckInt(1)
	target := L.CheckInt(2)
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.AddOverlayEffect(ctx, id, overlayType, target)
	})
}

// clear_overlays() -> (result, err)
func (m *TrimlightModule) clearOverlays(L *lua.LState) int {
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.ClearOverlayEffects(ctx, id)
	})
}

// schedules() -> ({daily = {...}, calendar = {...}}, err)
func (m *TrimlightModule) schedules(L *lua.LState) int {
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.Schedules(ctx, id)
	})
}

// add_daily({effect, start = "HH:MM", stop = "HH:MM", repetition = "everyday"})
func (m *TrimlightModule) addDaily(L *lua.LState) int {
	tbl := L.CheckTable(1)
	rep, err := schedule.ParseRepetition(stringFieldOr(tbl, "repetition", "everyday"))
	if err != nil {
		return pushError(L, err)
	}
	effectID := intField(tbl, "effect", 0)
	start, stop := stringField(tbl, "start"), stringField(tbl, "stop")
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.AddDailySchedule(ctx, id, effectID, start, stop, rep)
	})
}

// add_calendar({effect, start_date = "MM-DD", end_date = "MM-DD", start = "HH:MM", stop = "HH:MM"})
func (m *TrimlightModule) addCalendar(L *lua.LState) int {
	tbl := L.CheckTable(1)
	effectID := intField(tbl, "effect", 0)
	startDate, endDate := stringField(tbl, "start_date"), stringField(tbl, "end_date")
	start, stop := stringField(tbl, "start"), stringField(tbl, "stop")
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.AddCalendarSchedule(ctx, id, effectID, startDate, endDate, start, stop)
	})
}

// delete_schedule(id, kind) -> (result, err)
func (m *TrimlightModule) deleteSchedule(L *lua.LState) int {
	scheduleID := L.CheckInt(1)
	kind := L.CheckString(2)
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.DeleteSchedule(ctx, id, scheduleID, kind)
	})
}

// toggle_schedule(id, enable) -> (result, err)
func (m *TrimlightModule) toggleSchedule(L *lua.LState) int {
	scheduleID := L.CheckInt(1)
	enable := L.CheckBool(2)
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.ToggleSchedule(ctx, id, scheduleID, enable)
	})
}

// modify_schedule(id, kind, {effect?, start?, stop?, repetition?, start_date?, end_date?})
func (m *TrimlightModule) modifySchedule(L *lua.LState) int {
	scheduleID := L.CheckInt(1)
	kind := L.CheckString(2)
	tbl := L.CheckTable(3)

	ch := trimlight.ScheduleChange{
		EffectID:  optInt(tbl, "effect"),
		Start:     stringField(tbl, "start"),
		End:       stringField(tbl, "stop"),
		StartDate: stringField(tbl, "start_date"),
		EndDate:   stringField(tbl, "end_date"),
	}
	if s := stringField(tbl, "repetition"); s != "" {
		rep, err := schedule.ParseRepetition(s)
		if err != nil {
			return pushError(L, err)
		}
		ch.Repetition = &rep
	}
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		return m.client.ModifySchedule(ctx, id, scheduleID, kind, ch)
	})
}

// check_conflicts() -> ({code, message, conflicts}, err)
func (m *TrimlightModule) checkConflicts(L *lua.LState) int {
	return m.withDevice(L, func(ctx context.Context, id string) (any, error) {
		report, err := m.client.CheckConflicts(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"code":      report.Code,
			"message":   report.Message(),
			"conflicts": report.Conflicts,
		}, nil
	})
}

// modes([query]) -> list of {id, name, category}
func (m *TrimlightModule) searchModes(L *lua.LState) int {
	found := modes.Search(L.OptString(1, ""), false, false)
	lv, err := ToLuaValue(L, found)
	if err != nil {
		L.RaiseError("modes: %v", err)
		return 0
	}
	L.Push(lv)
	return 1
}

// =============================================================================
// Table field helpers
// =============================================================================

func intField(tbl *lua.LTable, name string, def int) int {
	if n, ok := tbl.RawGetString(name).(lua.LNumber); ok {
		return int(n)
	}
	return def
}

func optInt(tbl *lua.LTable, name string) *int {
	if n, ok := tbl.RawGetString(name).(lua.LNumber); ok {
		v := int(n)
		return &v
	}
	return nil
}

func optBool(tbl *lua.LTable, name string) *bool {
	if b, ok := tbl.RawGetString(name).(lua.LBool); ok {
		v := bool(b)
		return &v
	}
	return nil
}

func stringField(tbl *lua.LTable, name string) string {
	return stringFieldOr(tbl, name, "")
}

func stringFieldOr(tbl *lua.LTable, name, def string) string {
	switch v := tbl.RawGetString(name).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return v.String()
	}
	return def
}

func intList(tbl *lua.LTable) ([]int, error) {
	out := make([]int, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		n, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			return nil, fmt.Errorf("element %d is not a number", i)
		}
		out = append(out, int(n))
	}
	return out, nil
}

func pixelsField(tbl *lua.LTable) ([]trimlight.Pixel, error) {
	raw, ok := tbl.RawGetString("pixels").(*lua.LTable)
	if !ok {
		return nil, nil
	}
	if raw.Len() == 0 {
		return []trimlight.Pixel{}, nil
	}
	var pixels []trimlight.Pixel
	if err := FromLuaTable(raw, &pixels); err != nil {
		return nil, fmt.Errorf("invalid pixels: %w", err)
	}
	return pixels, nil
}
