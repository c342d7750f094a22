// Package main is the entry point for the dose-timeline command
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/mrcode/dose-timeline/internal/app"
	"github.com/mrcode/dose-timeline/internal/models"
)

// Version information, set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags accepted before the command name
type globalOptions struct {
	configPath string
	catalog    string
	apiURL     string
	verbose    bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("dose-timeline", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts globalOptions
	flags.StringVar(&opts.configPath, "config", "", "Path to settings file")
	flags.StringVar(&opts.catalog, "catalog", "", "Offline substance catalog (YAML or JSON)")
	flags.StringVar(&opts.apiURL, "api", "", "Substance API endpoint")
	flags.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	showVersion := flags.Bool("version", false, "Show version")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return nil
		}
		printUsage(stderr)
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "dose-timeline version %s\n", Version)
		return nil
	}

	rest := flags.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return errors.New("no command given")
	}

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, settings, opts.verbose)

	command, cmdArgs := rest[0], rest[1:]
	if command == "config" {
		return runConfig(ctx, cmdArgs, stdout, settings, opts, logger)
	}

	svc, err := app.NewService(settings, logger)
	if err != nil {
		return err
	}

	switch command {
	case "info":
		return runInfo(ctx, cmdArgs, stdout, svc)
	case "status":
		return runStatus(ctx, cmdArgs, stdout, svc, opts)
	case "chart":
		return runChart(ctx, cmdArgs, stdout, svc)
	case "help":
		printUsage(stdout)
		return nil
	}

	printUsage(stderr)
	return fmt.Errorf("unknown command %q", command)
}

// loadSettings reads the settings file and applies flag overrides
func loadSettings(opts globalOptions) (*models.Settings, error) {
	settings := models.DefaultSettings()

	var err error
	if opts.configPath != "" {
		err = settings.LoadFile(opts.configPath)
	} else {
		err = settings.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if opts.catalog != "" {
		settings.CatalogPath = opts.catalog
	}
	if opts.apiURL != "" {
		settings.APIURL = opts.apiURL
	}
	settings.Validate()
	return settings, nil
}

// alertStatePath puts alert history beside the settings file in use
func alertStatePath(opts globalOptions) (string, error) {
	if opts.configPath != "" {
		return filepath.Join(filepath.Dir(opts.configPath), "alerts.json"), nil
	}
	return models.GetAlertStatePath()
}

// newLogger builds a tint handler on w. Colour is used only on terminals.
func newLogger(w io.Writer, settings *models.Settings, verbose bool) *slog.Logger {
	level := parseLevel(settings.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}

	noColor := !settings.LogColor
	if f, ok := w.(*os.File); !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		noColor = true
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// doseFlags registers the flags shared by status and chart
func doseFlags(flags *flag.FlagSet, req *app.DoseRequest, at *string) {
	flags.StringVar(&req.Substance, "substance", "", "Substance name")
	flags.Float64Var(&req.Amount, "dose", 0, "Dose amount")
	flags.StringVar(&req.Unit, "unit", "", "Dose unit (mg, µg, g, ml); defaults to settings")
	flags.StringVar(&req.Route, "route", "", "Route of administration; defaults to settings")
	flags.StringVar(at, "at", "", "Ingestion time, e.g. \"2024-05-01 20:00\" (default now)")
}

// parseDoseRequest parses dose flags; a leading positional argument is
// taken as the substance name
func parseDoseRequest(flags *flag.FlagSet, args []string, req *app.DoseRequest, at *string) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		req.Substance = args[0]
		args = args[1:]
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *at != "" {
		t, err := dateparse.ParseLocal(*at)
		if err != nil {
			return fmt.Errorf("parsing -at: %w", err)
		}
		req.At = t
	}
	if req.Substance == "" {
		return errors.New("a substance is required")
	}
	return nil
}

func runInfo(ctx context.Context, args []string, stdout io.Writer, svc *app.Service) error {
	if len(args) == 0 {
		return errors.New("usage: dose-timeline info <substance>")
	}

	substance, err := svc.Lookup(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return app.WriteInfo(stdout, substance)
}

func runStatus(ctx context.Context, args []string, stdout io.Writer, svc *app.Service, opts globalOptions) error {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		req app.DoseRequest
		at  string
	)
	doseFlags(flags, &req, &at)
	notify := flags.Bool("notify", false, "Send a desktop notification for the current phase")
	asJSON := flags.Bool("json", false, "Print the report as JSON")

	if err := parseDoseRequest(flags, args, &req, &at); err != nil {
		return err
	}

	if *notify {
		statePath, err := alertStatePath(opts)
		if err != nil {
			return err
		}
		svc.SetAlertStatePath(statePath)
	}

	report, err := svc.Status(ctx, req, *notify)
	if err != nil {
		return err
	}
	if *asJSON {
		return app.WriteStatusJSON(stdout, report)
	}
	return app.WriteStatus(stdout, report)
}

func runChart(ctx context.Context, args []string, stdout io.Writer, svc *app.Service) error {
	flags := flag.NewFlagSet("chart", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		req app.DoseRequest
		at  string
	)
	doseFlags(flags, &req, &at)
	output := flags.String("o", "", "Output PNG path (default <substance>-timeline.png)")

	if err := parseDoseRequest(flags, args, &req, &at); err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = strings.ToLower(strings.ReplaceAll(req.Substance, " ", "-")) + "-timeline.png"
	}

	if err := svc.ExportChart(ctx, req, path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Chart written to %s\n", path)
	return nil
}

func runConfig(ctx context.Context, args []string, stdout io.Writer, settings *models.Settings, opts globalOptions, logger *slog.Logger) error {
	flags := flag.NewFlagSet("config", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	testNotify := flags.Bool("test-notify", false, "Send a test notification")
	check := flags.Bool("check", false, "Check that the substance source answers")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *check {
		svc, err := app.NewService(settings, logger)
		if err != nil {
			return err
		}
		if err := svc.CheckSource(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Substance source OK")
		return nil
	}

	svc := app.NewServiceWithSource(settings, nil, logger)
	if *testNotify {
		return svc.SendTestNotification()
	}

	path := opts.configPath
	if path == "" {
		var err error
		if path, err = models.GetConfigPath(); err != nil {
			return err
		}
	}

	if err := svc.SaveSettings(settings.Clone(), path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Settings written to %s\n", path)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: dose-timeline [flags] <command> [args]

Commands:
  info <substance>          Show dose bands, phases and interactions
  status <substance> -dose  Show the current phase and intensity of a dose
  chart <substance> -dose   Render the effect timeline to a PNG file
  config [-check]           Write the settings file and print its path,
                            or check the substance source

Dose flags (status, chart):
  -dose N       Dose amount
  -unit U       Dose unit (mg, µg, g, ml)
  -route R      Route of administration
  -at TIME      Ingestion time (default now)
  -notify       Send a desktop notification (status)
  -json         Print the report as JSON (status)
  -o FILE       Output path (chart)

Flags:
  -config FILE  Settings file
  -catalog FILE Offline substance catalog
  -api URL      Substance API endpoint
  -v            Verbose logging
  -version      Show version
`)
}
