// Package pdconfig holds the static partial discharge tables shipped with the
// calculator: default insulation parameters, severity thresholds in pC and
// presentation constants. Nothing in the calculation path reads them.
package pdconfig

import "math"

// Severity is a partial discharge severity class.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Threshold is the inclusive upper discharge magnitude of a severity class.
type Threshold struct {
	Severity Severity `json:"severity"`
	MaxPC    float64  `json:"maxPC"`
}

// SeverityThresholds lists classes in ascending order. The last bound is +Inf.
var SeverityThresholds = []Threshold{
	{Severity: SeverityLow, MaxPC: 100},
	{Severity: SeverityMedium, MaxPC: 500},
	{Severity: SeverityHigh, MaxPC: 1000},
	{Severity: SeverityCritical, MaxPC: math.Inf(1)},
}

// Classify returns the first class whose bound is not below pc.
func Classify(pc float64) Severity {
	for _, t := range SeverityThresholds {
		if pc <= t.MaxPC {
			return t.Severity
		}
	}
	return SeverityCritical
}

// DefaultParameters are the initial insulation model inputs.
var DefaultParameters = map[string]float64{
	"voltage":        400.0,
	"frequency":      50.0,
	"capacitance":    10.0,
	"temperature":    25.0,
	"humidity":       50.0,
	"insulation_age": 5.0,
}

// ParameterRange bounds an insulation model input.
type ParameterRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// ParameterRanges bounds each key of DefaultParameters.
var ParameterRanges = map[string]ParameterRange{
	"voltage":        {Min: 100.0, Max: 10000.0, Step: 50.0},
	"frequency":      {Min: 25.0, Max: 100.0, Step: 1.0},
	"capacitance":    {Min: 0.1, Max: 100.0, Step: 0.1},
	"temperature":    {Min: 0.0, Max: 100.0, Step: 1.0},
	"humidity":       {Min: 0.0, Max: 100.0, Step: 1.0},
	"insulation_age": {Min: 0.1, Max: 30.0, Step: 0.5},
}

// FactorCoefficients weight the environmental factors of the insulation model.
var FactorCoefficients = struct {
	TemperatureBase   float64
	TemperatureFactor float64
	HumidityBase      float64
	HumidityFactor    float64
	AgeBase           float64
	AgeFactor         float64
	BaseMultiplier    float64
}{
	TemperatureBase:   25.0,
	TemperatureFactor: 0.02,
	HumidityBase:      50.0,
	HumidityFactor:    0.01,
	AgeBase:           1.0,
	AgeFactor:         0.1,
	BaseMultiplier:    1e-6,
}

// UIConfig describes the calculator page.
type UIConfig struct {
	PageTitle           string
	PageIcon            string
	Layout              string
	InitialSidebarState string
}

// UI is the page configuration.
var UI = UIConfig{
	PageTitle:           "Electric Motor Partial Discharge Calculator",
	PageIcon:            "⚡",
	Layout:              "wide",
	InitialSidebarState: "expanded",
}

// ChartConfig describes the severity gauge.
type ChartConfig struct {
	GaugeHeight   int
	GaugeMaxValue float64
	Colors        map[Severity]string
}

// Chart is the gauge configuration.
var Chart = ChartConfig{
	GaugeHeight:   400,
	GaugeMaxValue: 1500,
	Colors: map[Severity]string{
		SeverityLow:      "lightgreen",
		SeverityMedium:   "yellow",
		SeverityHigh:     "orange",
		SeverityCritical: "red",
	},
}
