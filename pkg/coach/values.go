package coach

import (
	"fmt"
	"math"
)

// Value is one named quantity handed to Track. The order of values in a
// call is the order in which new variables are registered.
type Value struct {
	Name   string
	Number any
}

// V builds a Value.
func V(name string, number any) Value {
	return Value{Name: name, Number: number}
}

// toFloat converts any Go numeric kind to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// validateStep turns a Track call into samples, rejecting the whole step on the first problem.
func validateStep(values []Value) ([]Sample, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("track: %w", ErrEmptyStep)
	}

	samples := make([]Sample, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, v := range values {
		if v.Name == "" {
			return nil, &VariableError{Op: "track", Name: v.Name, Err: ErrInvalidName}
		}
		if _, dup := seen[v.Name]; dup {
			return nil, &VariableError{
				Op:   "track",
				Name: v.Name,
				Err:  fmt.Errorf("%w: variable given twice in one step", ErrInvalidValue),
			}
		}
		seen[v.Name] = struct{}{}

		f, ok := toFloat(v.Number)
		if !ok {
			return nil, &VariableError{Op: "track", Name: v.Name, Value: v.Number, Err: ErrInvalidValue}
		}
		if math.IsNaN(f) {
			return nil, &VariableError{
				Op:    "track",
				Name:  v.Name,
				Value: v.Number,
				Err:   fmt.Errorf("%w: NaN marks missing samples", ErrInvalidValue),
			}
		}

		samples = append(samples, Sample{Name: v.Name, Value: f})
	}

	return samples, nil
}
