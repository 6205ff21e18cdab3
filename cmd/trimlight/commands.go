package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dokzlo13/trimlight/internal/errs"
	"github.com/dokzlo13/trimlight/internal/lua"
	"github.com/dokzlo13/trimlight/internal/modes"
	"github.com/dokzlo13/trimlight/internal/schedule"
	"github.com/dokzlo13/trimlight/internal/trimlight"
)

// errConflicts makes "schedule check" exit non-zero once the report is printed.
var errConflicts = errors.New("schedule conflicts found")

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

type cli struct {
	client *trimlight.Client
	out    io.Writer
	errOut io.Writer
	json   bool
	device string
	script string
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return c.list(ctx, args)
	case "details":
		return c.details(ctx, args)
	case "switch":
		return c.switchState(ctx, args)
	case "rename":
		return c.rename(ctx, args)
	case "modes":
		return c.modes(args)
	case "effects":
		return c.sub(ctx, "effects", args, map[string]command{
			"list":    c.effectsList,
			"preview": c.effectsPreview,
			"add":     c.effectsAdd,
			"update":  c.effectsUpdate,
			"delete":  c.effectsDelete,
			"view":    c.effectsView,
		})
	case "schedule":
		return c.sub(ctx, "schedule", args, map[string]command{
			"list":     c.scheduleList,
			"daily":    c.scheduleDaily,
			"calendar": c.scheduleCalendar,
			"delete":   c.scheduleDelete,
			"toggle":   c.scheduleToggle,
			"modify":   c.scheduleModify,
			"check":    c.scheduleCheck,
		})
	case "combined":
		return c.sub(ctx, "combined", args, map[string]command{
			"set":   c.combinedSet,
			"clear": c.combinedClear,
		})
	case "overlay":
		return c.sub(ctx, "overlay", args, map[string]command{
			"add":   c.overlayAdd,
			"clear": c.overlayClear,
		})
	case "script":
		return c.runScript(ctx, args)
	default:
		return usagef("unknown command %q", cmd)
	}
}

type command func(ctx context.Context, args []string) error

func (c *cli) sub(ctx context.Context, group string, args []string, cmds map[string]command) error {
	if len(args) < 1 {
		return usagef("%s: missing subcommand", group)
	}
	fn, ok := cmds[args[0]]
	if !ok {
		return usagef("%s: unknown subcommand %q", group, args[0])
	}
	return fn(ctx, args[1:])
}

// ---- flag helpers ----

// flags creates a subcommand flag set with the per-command -device override.
func (c *cli) flags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	device := fs.String("device", "", "Device ID")
	return fs, device
}

func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: fmt.Sprintf("%s: %v", fs.Name(), err)}
	}
	for _, name := range required {
		if !isSet(fs, name) {
			return usagef("%s: missing required flag -%s", fs.Name(), name)
		}
	}
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func optInt(fs *flag.FlagSet, name string, v int) *int {
	if !isSet(fs, name) {
		return nil
	}
	return &v
}

func optBool(fs *flag.FlagSet, name string, v bool) *bool {
	if !isSet(fs, name) {
		return nil
	}
	return &v
}

// resolveDevice picks the -device flag of the subcommand, then the global
// device, then the first device of the account.
func (c *cli) resolveDevice(ctx context.Context, override string) (string, error) {
	if id := firstNonEmpty(override, c.device); id != "" {
		return id, nil
	}
	id, err := c.client.DefaultDevice(ctx)
	if errors.Is(err, errs.ErrNotFound) {
		return "", errs.NotFound("No devices found. Please specify a device ID using -device")
	}
	return id, err
}

// done prints the outcome of a mutation.
func (c *cli) done(res *trimlight.Result, err error, success string) error {
	if err != nil {
		return err
	}
	if c.json {
		return printJSON(c.out, res)
	}
	fmt.Fprintln(c.out, success)
	return nil
}

// ---- devices ----

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	page := fs.Int("page", 0, "Page number")
	if err := parse(fs, args); err != nil {
		return err
	}

	list, err := c.client.ListDevices(ctx, optInt(fs, "page", *page))
	if err != nil {
		return err
	}
	if c.json {
		return printJSON(c.out, list)
	}
	printDevices(c.out, list)
	return nil
}

func (c *cli) details(ctx context.Context, args []string) error {
	fs, device := c.flags("details")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}

	details, err := c.client.DeviceDetails(ctx, id)
	if err != nil {
		return err
	}
	if c.json {
		return printJSON(c.out, details)
	}
	printDetails(c.out, details)
	return nil
}

func (c *cli) switchState(ctx context.Context, args []string) error {
	fs, device := c.flags("switch")
	off := fs.Bool("off", false, "Turn device off")
	manual := fs.Bool("manual", false, "Turn on manual mode")
	timer := fs.Bool("timer", false, "Turn on timer mode")
	if err := parse(fs, args); err != nil {
		return err
	}

	state, err := switchFromFlags(*off, *manual, *timer)
	if err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.SetSwitchState(ctx, id, state)
	return c.done(res, err, "Device state updated successfully")
}

// switchFromFlags requires exactly one of the three state flags.
func switchFromFlags(off, manual, timer bool) (trimlight.SwitchState, error) {
	count := 0
	for _, f := range []bool{off, manual, timer} {
		if f {
			count++
		}
	}
	if count != 1 {
		return 0, errs.Validation("Exactly one state flag (-off, -manual, or -timer) must be provided")
	}
	switch {
	case off:
		return trimlight.SwitchOff, nil
	case manual:
		return trimlight.SwitchManual, nil
	default:
		return trimlight.SwitchTimer, nil
	}
}

func (c *cli) rename(ctx context.Context, args []string) error {
	fs, device := c.flags("rename")
	name := fs.String("name", "", "New name")
	if err := parse(fs, args, "name"); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.RenameDevice(ctx, id, *name)
	return c.done(res, err, "Device renamed successfully")
}

func (c *cli) modes(args []string) error {
	fs := flag.NewFlagSet("modes", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	search := fs.String("search", "", "Only modes whose name contains this text")
	builtIn := fs.Bool("built-in", false, "Only built-in modes")
	custom := fs.Bool("custom", false, "Only custom modes")
	if err := parse(fs, args); err != nil {
		return err
	}

	found := modes.Search(*search, *builtIn, *custom)
	if c.json {
		if found == nil {
			found = []modes.Mode{}
		}
		return printJSON(c.out, found)
	}
	printModes(c.out, found)
	return nil
}

// ---- effects ----

func (c *cli) effectsList(ctx context.Context, args []string) error {
	fs, device := c.flags("effects list")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	details, err := c.client.DeviceDetails(ctx, id)
	if err != nil {
		return err
	}
	if c.json {
		effects := details.Effects
		if effects == nil {
			effects = []trimlight.Effect{}
		}
		return printJSON(c.out, effects)
	}
	printEffects(c.out, details.Effects)
	return nil
}

func (c *cli) effectsPreview(ctx context.Context, args []string) error {
	fs, device := c.flags("effects preview")
	mode := fs.Int("mode", 0, "Effect mode (0-179 built-in, 0-16 custom)")
	speed := fs.Int("speed", 100, "Speed (0-255)")
	brightness := fs.Int("brightness", 100, "Brightness (0-255)")
	pixelLen := fs.Int("pixel-len", 30, "Number of LEDs used by the effect (1-90)")
	reverse := fs.Bool("reverse", false, "Reverse direction")
	custom := fs.Bool("custom", false, "Preview a custom mode")
	pixels := fs.String("pixels", "", "Custom pixels as index:count:color,... (color as #RRGGBB)")
	if err := parse(fs, args, "mode"); err != nil {
		return err
	}

	// Validate before resolving the device so bad input never hits the network.
	var preview func(id string) (*trimlight.Result, error)
	if *custom {
		px, err := parsePixels(*pixels)
		if err != nil {
			return err
		}
		p := trimlight.CustomPreview{Mode: *mode, Speed: *speed, Brightness: *brightness, Pixels: px}
		if err := p.Validate(); err != nil {
			return err
		}
		preview = func(id string) (*trimlight.Result, error) { return c.client.PreviewCustomEffect(ctx, id, p) }
	} else {
		p := trimlight.BuiltinPreview{Mode: *mode, Speed: *speed, Brightness: *brightness, PixelLen: *pixelLen, Reverse: *reverse}
		if err := p.Validate(); err != nil {
			return err
		}
		preview = func(id string) (*trimlight.Result, error) { return c.client.PreviewBuiltinEffect(ctx, id, p) }
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := preview(id)
	return c.done(res, err, "Effect preview started successfully")
}

func (c *cli) effectsAdd(ctx context.Context, args []string) error {
	fs, device := c.flags("effects add")
	name := fs.String("name", "", "Effect name")
	mode := fs.Int("mode", 0, "Effect mode")
	speed := fs.Int("speed", 100, "Speed (0-255)")
	brightness := fs.Int("brightness", 100, "Brightness (0-255)")
	pixelLen := fs.Int("pixel-len", 0, "Number of LEDs used by the effect (1-90)")
	reverse := fs.Bool("reverse", false, "Reverse direction")
	pixels := fs.String("pixels", "", "Custom pixels as index:count:color,...")
	if err := parse(fs, args, "name", "mode"); err != nil {
		return err
	}
	px, err := parsePixels(*pixels)
	if err != nil {
		return err
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.AddEffect(ctx, id, trimlight.NewEffect{
		Name:       *name,
		Mode:       *mode,
		Speed:      *speed,
		Brightness: *brightness,
		PixelLen:   optInt(fs, "pixel-len", *pixelLen),
		Reverse:    optBool(fs, "reverse", *reverse),
		Pixels:     px,
	})
	return c.done(res, err, "Effect added successfully")
}

func (c *cli) effectsUpdate(ctx context.Context, args []string) error {
	fs, device := c.flags("effects update")
	effectID := fs.Int("id", 0, "Effect ID")
	name := fs.String("name", "", "New name")
	mode := fs.Int("mode", 0, "New mode")
	speed := fs.Int("speed", 0, "New speed")
	brightness := fs.Int("brightness", 0, "New brightness")
	pixelLen := fs.Int("pixel-len", 0, "New pixel length")
	reverse := fs.Bool("reverse", false, "New direction")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}

	u := trimlight.EffectUpdate{
		Mode:       optInt(fs, "mode", *mode),
		Speed:      optInt(fs, "speed", *speed),
		Brightness: optInt(fs, "brightness", *brightness),
		PixelLen:   optInt(fs, "pixel-len", *pixelLen),
		Reverse:    optBool(fs, "reverse", *reverse),
	}
	if isSet(fs, "name") {
		u.Name = name
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.UpdateEffect(ctx, id, *effectID, u)
	return c.done(res, err, "Effect updated successfully")
}

func (c *cli) effectsDelete(ctx context.Context, args []string) error {
	fs, device := c.flags("effects delete")
	effectID := fs.Int("id", 0, "Effect ID")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.DeleteEffect(ctx, id, *effectID)
	return c.done(res, err, "Effect deleted successfully")
}

func (c *cli) effectsView(ctx context.Context, args []string) error {
	fs, device := c.flags("effects view")
	effectID := fs.Int("id", 0, "Effect ID")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.ViewEffect(ctx, id, *effectID)
	return c.done(res, err, "Effect preview started successfully")
}

// ---- schedules ----

func (c *cli) scheduleList(ctx context.Context, args []string) error {
	fs, device := c.flags("schedule list")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	snap, err := c.client.Schedules(ctx, id)
	if err != nil {
		return err
	}
	if c.json {
		return printJSON(c.out, snap)
	}
	printSchedules(c.out, snap)
	return nil
}

func (c *cli) scheduleDaily(ctx context.Context, args []string) error {
	fs, device := c.flags("schedule daily")
	effectID := fs.Int("effect", 0, "Effect ID")
	start := fs.String("start", "", "Start time HH:MM")
	end := fs.String("end", "", "End time HH:MM")
	repeat := fs.String("repeat", "1", "Repetition: 0=today, 1=everyday, 2=weekdays, 3=weekend")
	if err := parse(fs, args, "effect", "start", "end"); err != nil {
		return err
	}
	rep, err := schedule.ParseRepetition(*repeat)
	if err != nil {
		return err
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.AddDailySchedule(ctx, id, *effectID, *start, *end, rep)
	return c.done(res, err, "Daily schedule added successfully")
}

func (c *cli) scheduleCalendar(ctx context.Context, args []string) error {
	fs, device := c.flags("schedule calendar")
	effectID := fs.Int("effect", 0, "Effect ID")
	startDate := fs.String("start-date", "", "Start date MM-DD")
	endDate := fs.String("end-date", "", "End date MM-DD")
	startTime := fs.String("start-time", "", "Start time HH:MM")
	endTime := fs.String("end-time", "", "End time HH:MM")
	if err := parse(fs, args, "effect", "start-date", "end-date", "start-time", "end-time"); err != nil {
		return err
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.AddCalendarSchedule(ctx, id, *effectID, *startDate, *endDate, *startTime, *endTime)
	return c.done(res, err, "Calendar schedule added successfully")
}

func (c *cli) scheduleDelete(ctx context.Context, args []string) error {
	fs, device := c.flags("schedule delete")
	scheduleID := fs.Int("id", 0, "Schedule ID")
	kind := fs.String("type", "", "Schedule type: daily or calendar")
	if err := parse(fs, args, "id", "type"); err != nil {
		return err
	}
	if _, err := schedule.ParseKind(*kind); err != nil {
		return err
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.DeleteSchedule(ctx, id, *scheduleID, *kind)
	return c.done(res, err, "Schedule deleted successfully")
}

func (c *cli) scheduleToggle(ctx context.Context, args []string) error {
	fs, device := c.flags("schedule toggle")
	scheduleID := fs.Int("id", 0, "Schedule ID")
	enable := fs.Bool("enable", false, "Enable (true) or disable (false)")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.ToggleSchedule(ctx, id, *scheduleID, *enable)
	return c.done(res, err, "Schedule toggled successfully")
}

func (c *cli) scheduleModify(ctx context.Context, args []string) error {
	fs, device := c.flags("schedule modify")
	scheduleID := fs.Int("id", 0, "Schedule ID")
	kind := fs.String("type", "", "Schedule type: daily or calendar")
	effectID := fs.Int("effect", 0, "New effect ID")
	start := fs.String("start", "", "New start time HH:MM")
	end := fs.String("end", "", "New end time HH:MM")
	repeat := fs.String("repeat", "", "New repetition (daily only)")
	startDate := fs.String("start-date", "", "New start date MM-DD (calendar only)")
	endDate := fs.String("end-date", "", "New end date MM-DD (calendar only)")
	if err := parse(fs, args, "id", "type"); err != nil {
		return err
	}
	if _, err := schedule.ParseKind(*kind); err != nil {
		return err
	}

	ch := trimlight.ScheduleChange{
		EffectID:  optInt(fs, "effect", *effectID),
		Start:     *start,
		End:       *end,
		StartDate: *startDate,
		EndDate:   *endDate,
	}
	if *repeat != "" {
		rep, err := schedule.ParseRepetition(*repeat)
		if err != nil {
			return err
		}
		ch.Repetition = &rep
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.ModifySchedule(ctx, id, *scheduleID, *kind, ch)
	return c.done(res, err, "Schedule modified successfully")
}

func (c *cli) scheduleCheck(ctx context.Context, args []string) error {
	fs, device := c.flags("schedule check")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	report, err := c.client.CheckConflicts(ctx, id)
	if err != nil {
		return err
	}

	if c.json {
		conflicts := report.Conflicts
		if conflicts == nil {
			conflicts = []schedule.Conflict{}
		}
		if err := printJSON(c.out, map[string]any{
			"code":      report.Code,
			"desc":      report.Message(),
			"conflicts": conflicts,
		}); err != nil {
			return err
		}
	} else {
		printConflicts(c.out, report)
	}

	if report.HasConflicts() {
		return errConflicts
	}
	return nil
}

// ---- combined and overlay ----

func (c *cli) combinedSet(ctx context.Context, args []string) error {
	fs, device := c.flags("combined set")
	effects := fs.String("effects", "", "Comma-separated effect IDs")
	interval := fs.Int("interval", 60, "Seconds between effects (1-3600)")
	if err := parse(fs, args, "effects"); err != nil {
		return err
	}
	ids, err := parseEffectIDs(*effects)
	if err != nil {
		return err
	}
	if err := trimlight.ValidateCombined(ids, *interval); err != nil {
		return err
	}

	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.SetCombinedEffect(ctx, id, ids, *interval)
	return c.done(res, err, "Combined effect sequence set successfully")
}

func (c *cli) combinedClear(ctx context.Context, args []string) error {
	fs, device := c.flags("combined clear")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.ClearCombinedEffect(ctx, id)
	return c.done(res, err, "Combined effect sequence cleared successfully")
}

func (c *cli) overlayAdd(ctx context.Context, args []string) error {
	fs, device := c.flags("overlay add")
	overlayType := fs.Int("type", 0, "Overlay type")
	target := fs.Int("target", 0, "Target effect ID")
	if err := parse(fs, args, "type", "target"); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.AddOverlayEffect(ctx, id, *overlayType, *target)
	return c.done(res, err, "Overlay effect added successfully")
}

func (c *cli) overlayClear(ctx context.Context, args []string) error {
	fs, device := c.flags("overlay clear")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := c.resolveDevice(ctx, *device)
	if err != nil {
		return err
	}
	res, err := c.client.ClearOverlayEffects(ctx, id)
	return c.done(res, err, "Overlay effects cleared successfully")
}

// ---- script ----

func (c *cli) runScript(ctx context.Context, args []string) error {
	fs, device := c.flags("script")
	if err := parse(fs, args); err != nil {
		return err
	}
	path := c.script
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	rt := lua.NewRuntime(c.client, firstNonEmpty(*device, c.device))
	defer rt.Close()
	return rt.Run(ctx, path)
}

// ---- argument parsers ----

// parseEffectIDs parses "1, 2,3".
func parseEffectIDs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errs.Validation("Invalid effect ID format. Use comma-separated numbers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parsePixels parses "index:count:color,..." where color is #RRGGBB, 0xRRGGBB
// or a decimal number. An empty string yields nil.
func parsePixels(s string) ([]trimlight.Pixel, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var pixels []trimlight.Pixel
	for _, item := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(item), ":")
		if len(fields) != 3 {
			return nil, errs.Validation("Invalid pixel format. Use index:count:color")
		}
		index, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errs.Validation("Invalid pixel index")
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errs.Validation("Invalid pixel count")
		}
		color, err := parseColor(fields[2])
		if err != nil {
			return nil, err
		}
		pixels = append(pixels, trimlight.Pixel{Index: index, Count: count, Color: color})
	}
	return pixels, nil
}

func parseColor(s string) (int, error) {
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil || v < 0 || v > 0xFFFFFF {
		return 0, errs.Validation("Invalid pixel color. Use #RRGGBB")
	}
	return int(v), nil
}
