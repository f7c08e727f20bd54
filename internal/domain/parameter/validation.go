package parameter

import (
	"fmt"
	"strconv"

	"github.com/phillarmonic/psparam/internal/types"
)

// Validator checks caller-supplied arguments against a declaration
type Validator struct {
	// No state needed
}

// NewValidator creates a new parameter validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that raw can be bound to the parameter
func (v *Validator) Validate(param Parameter, raw string) error {
	if raw == "" {
		if param.Mandatory {
			return &ValidationError{
				Parameter: param.Name,
				Message:   "is mandatory",
				Value:     raw,
			}
		}
		return nil
	}

	return v.validateDataType(param, raw)
}

// validateDataType validates the raw value against the declared data type
func (v *Validator) validateDataType(param Parameter, raw string) error {
	var err error
	switch param.DataType {
	case types.None, types.String, types.Credential:
		return nil // No conversion needed
	case types.Bool, types.Switch:
		_, err = types.ParseBool(raw)
	case types.I32:
		_, err = strconv.ParseInt(raw, 10, 32)
	case types.I64:
		_, err = strconv.ParseInt(raw, 10, 64)
	case types.UI32:
		_, err = strconv.ParseUint(raw, 10, 32)
	case types.UI64:
		_, err = strconv.ParseUint(raw, 10, 64)
	case types.F32:
		_, err = strconv.ParseFloat(raw, 32)
	case types.F64:
		_, err = strconv.ParseFloat(raw, 64)
	default:
		return &ValidationError{
			Parameter: param.Name,
			Message:   fmt.Sprintf("unknown data type: %s", param.DataType),
			Value:     raw,
		}
	}

	if err != nil {
		return &ValidationError{
			Parameter: param.Name,
			Message:   fmt.Sprintf("must be a valid %s", param.DataType),
			Value:     raw,
		}
	}
	return nil
}

// ValidationError represents a parameter validation error
type ValidationError struct {
	Parameter string
	Message   string
	Value     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter '%s' validation failed: %s (value: '%s')", e.Parameter, e.Message, e.Value)
}
