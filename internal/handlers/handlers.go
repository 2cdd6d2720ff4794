// Package handlers binds front end commands to the calculation engine.
package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/motorlab/pdcalc/internal/dispatcher"
	"github.com/motorlab/pdcalc/internal/engine"
	"github.com/motorlab/pdcalc/internal/limits"
	"github.com/motorlab/pdcalc/internal/parser"
	"github.com/motorlab/pdcalc/internal/pdconfig"
)

// Commands understood by the calculator.
const (
	CmdCalculate  = ":CALCULATE:"
	CmdLimits     = ":LIMITS:"
	CmdThresholds = ":THRESHOLDS:"
	CmdVersion    = ":VERSION:"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger  *slog.Logger
	Parser  *parser.Parser
	Version string
	// Clamp pulls inputs into the form ranges before calculating.
	Clamp bool
}

// Service provides handler methods for calculator commands.
type Service struct {
	deps Dependencies
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Parser == nil {
		deps.Parser = parser.NewParser(deps.Logger)
	}
	return &Service{deps: deps}
}

// Register adds every command handler to d.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	d.Register(CmdCalculate, s.handleCalculate, dispatcher.Logged())
	d.Register(CmdLimits, s.handleLimits)
	d.Register(CmdThresholds, s.handleThresholds)
	d.Register(CmdVersion, s.handleVersion)
}

// Calculate runs one calculation on already parsed parameters.
func (s *Service) Calculate(params engine.MotorParameters) (engine.Result, error) {
	if s.deps.Clamp {
		var changed []string
		params, changed = limits.Clamp(params)
		if len(changed) > 0 {
			s.deps.Logger.Warn("Parameters clamped to form limits", "fields", changed)
		}
	}

	result, err := engine.Calculate(params)
	if err != nil {
		s.deps.Logger.Error("Calculation rejected", "error", err)
		return engine.Result{}, err
	}

	s.deps.Logger.Info("Calculation complete",
		"pwmPulses", result.PWMPulses,
		"wheelRevolutions", result.WheelRevolutions,
		"motorRevolutions", result.MotorRevolutions,
		"phaseChanges", result.PhaseChanges,
	)
	return result, nil
}

// handleCalculate accepts either the six positional values or any number of
// name=value overrides applied to the form defaults.
func (s *Service) handleCalculate(e dispatcher.Event) (any, error) {
	var (
		params engine.MotorParameters
		err    error
	)
	if len(e.Args) == len(parser.ArgOrder()) && !hasAssignment(e.Args) {
		params, err = s.deps.Parser.ParseMotorParameters(e.Args)
	} else {
		params, err = s.deps.Parser.ParseKeyValues(e.Args, limits.Defaults())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", CmdCalculate, err)
	}

	return s.Calculate(params)
}

func (s *Service) handleLimits(dispatcher.Event) (any, error) {
	return limits.Fields(), nil
}

func (s *Service) handleThresholds(dispatcher.Event) (any, error) {
	out := make([]pdconfig.Threshold, len(pdconfig.SeverityThresholds))
	copy(out, pdconfig.SeverityThresholds)
	return out, nil
}

func (s *Service) handleVersion(dispatcher.Event) (any, error) {
	return s.deps.Version, nil
}

func hasAssignment(args []string) bool {
	for _, a := range args {
		if strings.Contains(a, "=") {
			return true
		}
	}
	return false
}
