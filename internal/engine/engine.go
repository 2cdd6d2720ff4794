// Package engine converts motor operating parameters into the derived
// counters used for partial discharge lifetime estimates.
//
// All functions are pure: they read only their arguments and keep no state,
// so they are safe to call from any number of goroutines.
package engine

import "math"

const (
	secondsPerHour = 3600
	hzPerKHz       = 1000
	metersPerKm    = 1000
)

// MotorParameters holds the six inputs of a calculation.
type MotorParameters struct {
	Runtime               float64 `json:"runtime"`               // hours
	PWMFrequency          float64 `json:"pwmFrequency"`          // kHz
	Mileage               float64 `json:"mileage"`               // km
	TyreDiameter          float64 `json:"tyreDiameter"`          // m
	AxleTransmissionRatio float64 `json:"axleTransmissionRatio"` // motor turns per wheel turn
	PolePairs             int     `json:"polePairs"`
}

// Breakdown holds the unit conversions that feed the counters.
type Breakdown struct {
	RuntimeSeconds float64 `json:"runtimeSeconds"`
	PWMFrequencyHz float64 `json:"pwmFrequencyHz"`
	MileageMeters  float64 `json:"mileageMeters"`
	// Circumference is the divisor used for wheel revolutions: diameter * 2 * pi.
	Circumference float64 `json:"circumference"`
	// NominalCircumference is diameter * pi.
	NominalCircumference float64 `json:"nominalCircumference"`
}

// Result is the outcome of a single calculation.
type Result struct {
	Parameters       MotorParameters `json:"parameters"`
	PWMPulses        float64         `json:"pwmPulses"`
	WheelRevolutions float64         `json:"wheelRevolutions"`
	MotorRevolutions float64         `json:"motorRevolutions"`
	PhaseChanges     float64         `json:"phaseChanges"`
	Breakdown        Breakdown       `json:"breakdown"`
}

// Validate reports whether p can be evaluated. Only a zero tyre diameter and a
// pole pair count below one are rejected; other non-positive values produce
// well-defined (if meaningless) numbers.
func Validate(p MotorParameters) error {
	if err := checkTyreDiameter(p); err != nil {
		return err
	}
	if p.PolePairs < 1 {
		return &InvalidParameterError{Field: FieldPolePairs, Value: float64(p.PolePairs), Reason: "must be at least 1"}
	}
	return nil
}

// PWMPulses returns the number of PWM pulses over the runtime.
func PWMPulses(p MotorParameters) float64 {
	return runtimeSeconds(p) * pwmFrequencyHz(p)
}

// WheelRevolutions returns the number of wheel turns over the mileage.
func WheelRevolutions(p MotorParameters) (float64, error) {
	if err := checkTyreDiameter(p); err != nil {
		return 0, err
	}
	return wheelRevolutions(p), nil
}

// MotorRevolutions returns the number of motor shaft turns over the mileage.
func MotorRevolutions(p MotorParameters) (float64, error) {
	wheel, err := WheelRevolutions(p)
	if err != nil {
		return 0, err
	}
	return wheel * p.AxleTransmissionRatio, nil
}

// PhaseChanges returns the number of electrical phase changes over the mileage.
func PhaseChanges(p MotorParameters) (float64, error) {
	if err := Validate(p); err != nil {
		return 0, err
	}
	return phaseChanges(p, wheelRevolutions(p)*p.AxleTransmissionRatio), nil
}

// Calculate evaluates every counter and the intermediate conversions in one
// pass. Wheel revolutions are computed once and reused for the dependent values.
func Calculate(p MotorParameters) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}

	wheel := wheelRevolutions(p)
	motor := wheel * p.AxleTransmissionRatio

	return Result{
		Parameters:       p,
		PWMPulses:        PWMPulses(p),
		WheelRevolutions: wheel,
		MotorRevolutions: motor,
		PhaseChanges:     phaseChanges(p, motor),
		Breakdown: Breakdown{
			RuntimeSeconds:       runtimeSeconds(p),
			PWMFrequencyHz:       pwmFrequencyHz(p),
			MileageMeters:        mileageMeters(p),
			Circumference:        circumference(p),
			NominalCircumference: p.TyreDiameter * math.Pi,
		},
	}, nil
}

func checkTyreDiameter(p MotorParameters) error {
	if p.TyreDiameter == 0 || math.IsNaN(p.TyreDiameter) {
		return &InvalidParameterError{Field: FieldTyreDiameter, Value: p.TyreDiameter, Reason: "wheel circumference would be zero"}
	}
	return nil
}

func runtimeSeconds(p MotorParameters) float64 { return p.Runtime * secondsPerHour }

func pwmFrequencyHz(p MotorParameters) float64 { return p.PWMFrequency * hzPerKHz }

func mileageMeters(p MotorParameters) float64 { return p.Mileage * metersPerKm }

// circumference is diameter * 2 * pi, not diameter * pi. Published revolution
// figures depend on the doubled form.
func circumference(p MotorParameters) float64 { return p.TyreDiameter * 2 * math.Pi }

func wheelRevolutions(p MotorParameters) float64 {
	return mileageMeters(p) / circumference(p)
}

func phaseChanges(p MotorParameters, motorRevolutions float64) float64 {
	return float64(p.PolePairs) * 2 * motorRevolutions
}
