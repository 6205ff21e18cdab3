// Command trimlight controls Trimlight LED controllers through the cloud API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/trimlight/internal/auth"
	"github.com/dokzlo13/trimlight/internal/config"
	"github.com/dokzlo13/trimlight/internal/errs"
	"github.com/dokzlo13/trimlight/internal/trimlight"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signalContext()
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run parses global flags, builds the client and dispatches the command.
// It returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trimlight", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to configuration file (environment only when empty)")
	jsonOut := fs.Bool("json", false, "Print results as JSON")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	device := fs.String("device", "", "Device ID (defaults to the configured or first device)")
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		usage(stderr)
		return 2
	}
	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]

	if cmd == "version" {
		fmt.Fprintf(stdout, "trimlight %s (%s)\n", version, buildDate)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	setupLogging(stderr, cfg.Log.Level, cfg.Log.JSON, cfg.Log.Colors)

	c := &cli{
		out:    stdout,
		errOut: stderr,
		json:   *jsonOut,
		device: firstNonEmpty(*device, cfg.Device),
		script: cfg.Script,
	}

	// The mode catalog is local; everything else needs credentials.
	if cmd != "modes" {
		if err := cfg.Validate(); err != nil {
			return c.fail(err)
		}
		c.client = trimlight.NewClient(
			auth.Credentials{ClientID: cfg.API.ClientID, Secret: []byte(cfg.API.ClientSecret)},
			trimlight.WithBaseURL(cfg.API.BaseURL),
			trimlight.WithTimeout(cfg.API.Timeout.Duration()),
		)
		defer c.client.Close()
	}

	log.Debug().Str("command", cmd).Str("base_url", cfg.API.BaseURL).Msg("Dispatching command")

	if err := c.dispatch(ctx, cmd, cmdArgs); err != nil {
		return c.fail(err)
	}
	return 0
}

// fail prints err and returns the exit status for it.
func (c *cli) fail(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintf(c.errOut, "Error: %s\n", ue.msg)
		return 2
	case errors.Is(err, errConflicts):
		return 1
	}

	var e *errs.Error
	if errors.As(err, &e) {
		fmt.Fprintf(c.errOut, "Error: %s (code: %d)\n", e.Message, e.Code)
		return 1
	}
	fmt.Fprintf(c.errOut, "Error: %v\n", err)
	return 1
}

func setupLogging(w io.Writer, level string, useJSON bool, colors bool) {
	// ISO 8601 format with timezone
	zerolog.TimeFieldFormat = time.RFC3339

	if useJSON {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			NoColor:    !colors,
		})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func usage(w io.Writer) {
	fmt.Fprint(w, `trimlight CLI
Usage:
  trimlight [-config file] [-json] [-log-level level] [-device id] <cmd> [args]

Credentials come from TRIMLIGHT_CLIENT_ID and TRIMLIGHT_CLIENT_SECRET or the config file.

Commands:
  version
  list       [-page n]
  details
  switch     -off | -manual | -timer
  rename     -name <name>
  modes      [-search text] [-built-in] [-custom]
  effects    list
  effects    preview -mode n [-speed n] [-brightness n] [-pixel-len n] [-reverse]
  effects    preview -custom -mode n [-speed n] [-brightness n] [-pixels idx:count:color,...]
  effects    add     -name <name> -mode n [-speed n] [-brightness n] [-pixel-len n] [-reverse]
  effects    update  -id n [-name s] [-mode n] [-speed n] [-brightness n] [-pixel-len n] [-reverse=bool]
  effects    delete  -id n
  effects    view    -id n
  schedule   list
  schedule   daily    -effect n -start HH:MM -end HH:MM [-repeat 0-3|name]
  schedule   calendar -effect n -start-date MM-DD -end-date MM-DD -start-time HH:MM -end-time HH:MM
  schedule   delete   -id n -type daily|calendar
  schedule   toggle   -id n -enable=bool
  schedule   modify   -id n -type daily|calendar [-effect n] [-start HH:MM] [-end HH:MM]
                      [-repeat 0-3|name] [-start-date MM-DD] [-end-date MM-DD]
  schedule   check
  combined   set   -effects 1,2,3 [-interval seconds]
  combined   clear
  overlay    add   -type n -target n
  overlay    clear
  script     [file.lua]
`)
}
