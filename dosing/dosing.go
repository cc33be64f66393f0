// Package dosing turns a glucose prediction and the current therapy settings
// into temp basal, bolus and microbolus recommendations.
//
// Every function in the package is a pure computation over an input
// snapshot. Callers must serialise evaluations against a changing pump state.
package dosing

import (
	"math"
	"time"

	"github.com/tidepool-org/dosing/glucose"
)

// epsilon is the difference between 1 and the next representable float64.
var epsilon = math.Nextafter(1, 2) - 1

// RangeSchedule resolves the correction range in effect at a time.
type RangeSchedule interface {
	RangeAt(t time.Time) glucose.Range
}

// SensitivitySchedule resolves the insulin sensitivity in effect at a time.
type SensitivitySchedule interface {
	QuantityAt(t time.Time) glucose.Quantity
}

// ValueSchedule resolves a scalar therapy setting (basal rate, carb ratio)
// in effect at a time.
type ValueSchedule interface {
	ValueAt(t time.Time) float64
}

// Rounder rounds a dose to a value the delivery device supports. A nil
// Rounder leaves values unchanged.
type Rounder func(float64) float64

func (r Rounder) Round(value float64) float64 {
	if r == nil {
		return value
	}
	return r(value)
}

// FloorToIncrement rounds down to a multiple of increment.
func FloorToIncrement(increment float64) Rounder {
	if increment <= 0 {
		return nil
	}
	return func(value float64) float64 {
		// Tolerate representation error so that e.g. 0.3 / 0.1 stays 3.
		steps := math.Floor(value/increment + 1e-9)
		return math.Round(steps*increment*1e9) / 1e9
	}
}

// FloorToSupported rounds down to the largest supported value not above
// value, or 0 when none is. supported must be sorted ascending.
func FloorToSupported(supported []float64) Rounder {
	if len(supported) == 0 {
		return nil
	}
	return func(value float64) float64 {
		result := 0.0
		for _, s := range supported {
			if s > value+1e-9 {
				break
			}
			result = s
		}
		return result
	}
}

func clamp(value, lower, upper float64) float64 {
	return math.Min(upper, math.Max(lower, value))
}
