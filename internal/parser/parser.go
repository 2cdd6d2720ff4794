// Package parser converts the raw string arguments sent by the calculator
// front end into typed engine inputs.
package parser

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/motorlab/pdcalc/internal/engine"
)

// argOrder is the positional layout of a :CALCULATE: command.
var argOrder = []string{
	engine.FieldRuntime,
	engine.FieldPWMFrequency,
	engine.FieldMileage,
	engine.FieldTyreDiameter,
	engine.FieldAxleTransmissionRatio,
	engine.FieldPolePairs,
}

// ArgOrder returns the positional argument names.
func ArgOrder() []string {
	out := make([]string, len(argOrder))
	copy(out, argOrder)
	return out
}

// trimQuotes removes surrounding double quotes and collapses escaped quotes.
func trimQuotes(s string) string {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}

// parseFloat parses a decimal number. Infinities are rejected; NaN is left to
// the caller's clamping.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("parseFloat: %q is not finite", s)
	}
	return f, nil
}

// parseIntFromFloat parses a string that may be an integer ("4") or a whole
// float ("4.00") into an int.
func parseIntFromFloat(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid integer", s)
	}
	return int(f), nil
}

// Parser turns command arguments into motor parameters.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseMotorParameters parses the six positional arguments in ArgOrder.
func (p *Parser) ParseMotorParameters(args []string) (engine.MotorParameters, error) {
	var params engine.MotorParameters

	if len(args) != len(argOrder) {
		return params, fmt.Errorf("expected %d arguments (%s), got %d",
			len(argOrder), strings.Join(argOrder, ", "), len(args))
	}

	for i, name := range argOrder {
		if err := set(&params, name, trimQuotes(args[i])); err != nil {
			return params, err
		}
	}

	p.logger.Debug("parsed motor parameters", "params", params)
	return params, nil
}

// ParseKeyValues applies name=value arguments on top of base. Names are matched
// case-insensitively against ArgOrder.
func (p *Parser) ParseKeyValues(args []string, base engine.MotorParameters) (engine.MotorParameters, error) {
	params := base
	for _, arg := range args {
		key, value, ok := strings.Cut(trimQuotes(arg), "=")
		if !ok {
			return base, fmt.Errorf("argument %q is not name=value", arg)
		}
		name, ok := canonicalName(strings.TrimSpace(key))
		if !ok {
			return base, fmt.Errorf("unknown parameter %q", key)
		}
		if err := set(&params, name, strings.TrimSpace(value)); err != nil {
			return base, err
		}
	}

	p.logger.Debug("parsed motor parameters", "params", params, "overrides", len(args))
	return params, nil
}

func canonicalName(key string) (string, bool) {
	for _, name := range argOrder {
		if strings.EqualFold(name, key) {
			return name, true
		}
	}
	return "", false
}

func set(params *engine.MotorParameters, name, raw string) error {
	if name == engine.FieldPolePairs {
		v, err := parseIntFromFloat(raw)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", name, err)
		}
		params.PolePairs = v
		return nil
	}

	v, err := parseFloat(raw)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", name, err)
	}

	switch name {
	case engine.FieldRuntime:
		params.Runtime = v
	case engine.FieldPWMFrequency:
		params.PWMFrequency = v
	case engine.FieldMileage:
		params.Mileage = v
	case engine.FieldTyreDiameter:
		params.TyreDiameter = v
	case engine.FieldAxleTransmissionRatio:
		params.AxleTransmissionRatio = v
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}
