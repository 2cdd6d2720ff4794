package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/motorlab/pdcalc/internal/config"
	"github.com/motorlab/pdcalc/internal/dispatcher"
	"github.com/motorlab/pdcalc/internal/engine"
	"github.com/motorlab/pdcalc/internal/handlers"
	"github.com/motorlab/pdcalc/internal/limits"
	"github.com/motorlab/pdcalc/internal/logging"
	intOtel "github.com/motorlab/pdcalc/internal/otel"
	"github.com/motorlab/pdcalc/internal/parser"
	"github.com/motorlab/pdcalc/internal/report"
)

// module defs - Version and BuildDate can be set at build time via ldflags
var (
	Version   string = "0.1.0"
	BuildDate string = "unknown"

	AppName string = "pdcalc"
)

// flagKeys maps flags onto config keys.
var flagKeys = map[string]string{
	"format":    "calculator.format",
	"clamp":     "calculator.clamp",
	"log-level": "logLevel",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.SetOutput(stderr)

	configDir := fs.String("config-dir", ".", "directory containing "+config.FileName)
	interactive := fs.BoolP("interactive", "i", false, "read commands from stdin")
	showLimits := fs.Bool("limits", false, "print the input ranges and exit")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.String("format", "text", "report format: text or json")
	fs.Bool("clamp", true, "clamp inputs into the form ranges")
	fs.String("log-level", "info", "debug, info, warn or error")

	params := limits.Defaults()
	fs.Float64Var(&params.Runtime, "runtime", params.Runtime, "runtime in hours")
	fs.Float64Var(&params.PWMFrequency, "pwm-frequency", params.PWMFrequency, "PWM frequency in kHz")
	fs.Float64Var(&params.Mileage, "mileage", params.Mileage, "mileage in km")
	fs.Float64Var(&params.TyreDiameter, "tyre-diameter", params.TyreDiameter, "tyre diameter in m")
	fs.Float64Var(&params.AxleTransmissionRatio, "axle-ratio", params.AxleTransmissionRatio, "axle transmission ratio")
	fs.IntVar(&params.PolePairs, "pole-pairs", params.PolePairs, "motor pole pairs")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s (built %s)\n", AppName, Version, BuildDate)
		return 0
	}

	cfgErr := config.Load(*configDir)
	if err := config.BindFlags(fs, flagKeys); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	app, err := newApp(stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer app.close()

	if cfgErr != nil {
		app.logger.Debug("No config file, using defaults", "dir", *configDir, "error", cfgErr)
	}

	if *showLimits {
		if err := app.render(limits.Fields()); err != nil {
			app.logger.Error("Failed to write limits", "error", err)
			return 1
		}
		return 0
	}

	if *interactive {
		if err := app.interactive(stdin); err != nil {
			app.logger.Error("Interactive session failed", "error", err)
			return 1
		}
		return 0
	}

	result, err := app.dispatcher.Dispatch(dispatcher.Event{
		Command: handlers.CmdCalculate,
		Args:    positionalArgs(params),
	})
	if err != nil {
		app.logger.Error("Calculation failed", "error", err)
		return 1
	}
	if err := app.render(result); err != nil {
		app.logger.Error("Failed to write report", "error", err)
		return 1
	}
	return 0
}

// positionalArgs renders params in :CALCULATE: argument order.
func positionalArgs(p engine.MotorParameters) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{
		f(p.Runtime),
		f(p.PWMFrequency),
		f(p.Mileage),
		f(p.TyreDiameter),
		f(p.AxleTransmissionRatio),
		strconv.Itoa(p.PolePairs),
	}
}

// app holds the wired services for one process.
type app struct {
	stdout     io.Writer
	format     report.Format
	logger     *slog.Logger
	logs       *logging.SlogManager
	telemetry  *intOtel.Provider
	dispatcher *dispatcher.Dispatcher
	closers    []io.Closer
}

func newApp(stdout, stderr io.Writer) (*app, error) {
	a := &app{stdout: stdout}

	format, err := report.ParseFormat(config.GetCalculatorConfig().Format)
	if err != nil {
		return nil, err
	}
	a.format = format

	level := config.GetString("logLevel")
	opts := logging.Options{Console: stderr, Level: level}

	if config.GetBool("logToFile") {
		f, err := openLogFile(config.GetString("logsDir"))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		opts.File = f
	}

	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGraylogWriter(gl.Address)
		if err != nil {
			fmt.Fprintf(stderr, "graylog disabled: %v\n", err)
		} else {
			a.closers = append(a.closers, w)
			opts.Graylog = w
		}
	}

	oc := config.GetOTelConfig()
	a.telemetry, err = intOtel.New(context.Background(), intOtel.Config{
		Enabled:      oc.Enabled,
		ServiceName:  oc.ServiceName,
		BatchTimeout: oc.BatchTimeout,
		LogWriter:    opts.File,
		Endpoint:     oc.Endpoint,
		Insecure:     oc.Insecure,
		Headers:      intOtel.ParseHeaders(oc.Headers),
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}
	opts.Provider = a.telemetry.LoggerProvider()

	a.logs = logging.NewSlogManager()
	a.logs.Setup(opts)
	a.logger = a.logs.Logger()

	var zw io.Writer = zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: time.RFC3339}
	if opts.File != nil {
		zw = zerolog.MultiLevelWriter(zw, opts.File)
	}
	a.dispatcher, err = dispatcher.New(logging.NewDispatcherLogger(logging.NewZerolog(zw, level)))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	handlers.NewService(handlers.Dependencies{
		Logger:  a.logger,
		Parser:  parser.NewParser(a.logger),
		Version: Version,
		Clamp:   config.GetCalculatorConfig().Clamp,
	}).Register(a.dispatcher)

	a.logger.Debug("Calculator ready", "version", Version, "format", a.format, "commands", a.dispatcher.Commands())
	return a, nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}
	path := logging.LogFilePath(dir, AppName, time.Now())
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.logs != nil {
		_ = a.logs.Flush(ctx)
	}
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(ctx); err != nil && a.logger != nil {
			a.logger.Warn("Telemetry shutdown failed", "error", err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}
