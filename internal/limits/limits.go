// Package limits holds the input ranges the calculator form enforces before a
// calculation reaches the engine.
package limits

import (
	"math"

	"github.com/motorlab/pdcalc/internal/engine"
)

// Range is the accepted interval, input step and default of one field.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Contains reports whether v lies inside the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp pulls v into the interval. NaN becomes the default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Field describes one input of the form.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Unit  string `json:"unit,omitempty"`
	Help  string `json:"help"`
	Range Range  `json:"range"`
}

var fields = []Field{
	{
		Name:  engine.FieldRuntime,
		Label: "Runtime",
		Unit:  "hours",
		Help:  "Total runtime of the motor in hours",
		Range: Range{Min: 0.1, Max: 10000, Step: 1, Default: 100},
	},
	{
		Name:  engine.FieldPWMFrequency,
		Label: "PWM Frequency",
		Unit:  "kHz",
		Help:  "PWM frequency in kilohertz",
		Range: Range{Min: 1, Max: 100, Step: 0.1, Default: 20},
	},
	{
		Name:  engine.FieldMileage,
		Label: "Mileage",
		Unit:  "km",
		Help:  "Total distance traveled in kilometers",
		Range: Range{Min: 0.1, Max: 1_000_000, Step: 10, Default: 5000},
	},
	{
		Name:  engine.FieldTyreDiameter,
		Label: "Tyre Diameter",
		Unit:  "m",
		Help:  "Diameter of the tyre in meters",
		Range: Range{Min: 0.1, Max: 2, Step: 0.01, Default: 0.6},
	},
	{
		Name:  engine.FieldAxleTransmissionRatio,
		Label: "Axle Transmission Ratio",
		Help:  "Transmission ratio between axle and motor",
		Range: Range{Min: 0.1, Max: 100, Step: 0.1, Default: 10},
	},
	{
		Name:  engine.FieldPolePairs,
		Label: "Pole Pairs",
		Help:  "Number of pole pairs in the motor",
		Range: Range{Min: 1, Max: 20, Step: 1, Default: 4},
	},
}

// Fields returns the form fields in input order. The slice is a copy.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Lookup returns the field with the given name.
func Lookup(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults returns the form's initial values.
func Defaults() engine.MotorParameters {
	return engine.MotorParameters{
		Runtime:               fields[0].Range.Default,
		PWMFrequency:          fields[1].Range.Default,
		Mileage:               fields[2].Range.Default,
		TyreDiameter:          fields[3].Range.Default,
		AxleTransmissionRatio: fields[4].Range.Default,
		PolePairs:             int(fields[5].Range.Default),
	}
}

// Clamp pulls every field of p into its range and returns the names of the
// fields it changed, in input order.
func Clamp(p engine.MotorParameters) (engine.MotorParameters, []string) {
	var changed []string

	clamp := func(i int, v *float64) {
		c := fields[i].Range.Clamp(*v)
		if c != *v {
			changed = append(changed, fields[i].Name)
			*v = c
		}
	}

	clamp(0, &p.Runtime)
	clamp(1, &p.PWMFrequency)
	clamp(2, &p.Mileage)
	clamp(3, &p.TyreDiameter)
	clamp(4, &p.AxleTransmissionRatio)

	poles := float64(p.PolePairs)
	clamp(5, &poles)
	p.PolePairs = int(poles)

	return p, changed
}
