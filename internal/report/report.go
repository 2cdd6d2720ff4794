// Package report renders calculation results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/motorlab/pdcalc/internal/engine"
	"github.com/motorlab/pdcalc/internal/limits"
	"github.com/motorlab/pdcalc/internal/pdconfig"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Formulas lists the calculation rules as shown to users.
var Formulas = []string{
	"PWM Pulses = Runtime (seconds) × PWM Frequency (Hz)",
	"Wheel Revolutions = Mileage (meters) ÷ (Tyre Diameter × 2 × π)",
	"Motor Revolutions = Wheel Revolutions × Axle Transmission Ratio",
	"Phase Changes = Pole Pairs × 2 × Motor Revolutions",
}

// Count formats v rounded to a whole number with thousands separators.
func Count(v float64) string {
	r := math.Round(v)
	if math.IsNaN(r) || math.IsInf(r, 0) || math.Abs(r) >= 1<<62 {
		return humanize.CommafWithDigits(r, 0)
	}
	return humanize.Comma(int64(r))
}

// Write renders r in the given format.
func Write(w io.Writer, f Format, r engine.Result) error {
	if f == FormatJSON {
		return WriteJSON(w, r)
	}
	return WriteText(w, r)
}

// WriteText writes the counters, the unit breakdown and the formulas.
func WriteText(w io.Writer, r engine.Result) error {
	p := r.Parameters
	b := r.Breakdown

	var sb strings.Builder
	sb.WriteString(pdconfig.UI.PageTitle + "\n\n")

	sb.WriteString("Calculation Results\n")
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  PWM Pulses\t%s\t\n", Count(r.PWMPulses))
	fmt.Fprintf(tw, "  Wheel Revolutions\t%s\t\n", Count(r.WheelRevolutions))
	fmt.Fprintf(tw, "  Motor Revolutions\t%s\t\n", Count(r.MotorRevolutions))
	fmt.Fprintf(tw, "  Phase Changes\t%s\t\n", Count(r.PhaseChanges))
	if err := tw.Flush(); err != nil {
		return err
	}

	sb.WriteString("\nCalculation Breakdown\n")
	fmt.Fprintf(&sb, "  Runtime: %.1f hours = %s seconds\n", p.Runtime, Count(b.RuntimeSeconds))
	fmt.Fprintf(&sb, "  PWM Frequency: %.1f kHz = %s Hz\n", p.PWMFrequency, Count(b.PWMFrequencyHz))
	fmt.Fprintf(&sb, "  Mileage: %.1f km = %s meters\n", p.Mileage, Count(b.MileageMeters))
	fmt.Fprintf(&sb, "  Circumference: %.2f × 2 × π = %.2f meters\n", p.TyreDiameter, b.Circumference)
	fmt.Fprintf(&sb, "  Axle Ratio: %.1f\n", p.AxleTransmissionRatio)
	fmt.Fprintf(&sb, "  Pole Pairs: %d\n", p.PolePairs)

	sb.WriteString("\nFormulas\n")
	for i, f := range Formulas {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, f)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteLimits writes the input form table.
func WriteLimits(w io.Writer, fields []limits.Field) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUNIT\tMIN\tMAX\tSTEP\tDEFAULT")
	for _, f := range fields {
		unit := f.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\n",
			f.Name, unit, f.Range.Min, f.Range.Max, f.Range.Step, f.Range.Default)
	}
	return tw.Flush()
}

// WriteThresholds writes the partial discharge severity table.
func WriteThresholds(w io.Writer, thresholds []pdconfig.Threshold) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tMAX pC\tCOLOR")
	for _, t := range thresholds {
		bound := "∞"
		if !math.IsInf(t.MaxPC, 1) {
			bound = humanize.Ftoa(t.MaxPC)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Severity, bound, pdconfig.Chart.Colors[t.Severity])
	}
	return tw.Flush()
}
