package engine

import (
	"errors"
	"fmt"
)

// Field names used in errors and by the presentation layer.
const (
	FieldRuntime               = "runtime"
	FieldPWMFrequency          = "pwmFrequency"
	FieldMileage               = "mileage"
	FieldTyreDiameter          = "tyreDiameter"
	FieldAxleTransmissionRatio = "axleTransmissionRatio"
	FieldPolePairs             = "polePairs"
)

// ErrInvalidParameter is matched by every *InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError is returned when an input makes a counter undefined.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidParameter) succeed.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
