package dosing

import (
	"math"
	"time"

	"github.com/tidepool-org/dosing/glucose"
	"github.com/tidepool-org/dosing/insulin"
)

// useMinTargetUntilPercent is the fraction of the insulin effect duration
// during which predictions are corrected toward the suspend threshold.
const useMinTargetUntilPercent = 0.5

type CorrectionKind string

const (
	CorrectionInRange            CorrectionKind = "inRange"
	CorrectionAboveRange         CorrectionKind = "aboveRange"
	CorrectionEntirelyBelowRange CorrectionKind = "entirelyBelowRange"
	CorrectionSuspend            CorrectionKind = "suspend"
)

// Correction is the outcome of classifying a glucose prediction against the
// correction range. Only the fields relevant to Kind are set.
type Correction struct {
	Kind CorrectionKind `json:"kind"`

	// Min is the lowest in-window prediction for aboveRange, and the first
	// prediction under the suspend threshold for suspend.
	Min *glucose.Value `json:"min,omitempty"`
	// Correcting is the prediction the units were computed from.
	Correcting *glucose.Value `json:"correcting,omitempty"`
	// MinTarget is the lower bound of the correction range the units aim for.
	MinTarget *glucose.Quantity `json:"minTarget,omitempty"`
	// Units is never negative. For entirelyBelowRange it is the insulin to withhold.
	Units float64 `json:"units"`
}

func InRange() Correction {
	return Correction{Kind: CorrectionInRange}
}

func AboveRange(min, correcting glucose.Value, minTarget glucose.Quantity, units float64) Correction {
	return Correction{Kind: CorrectionAboveRange, Min: &min, Correcting: &correcting, MinTarget: &minTarget, Units: units}
}

func EntirelyBelowRange(correcting glucose.Value, minTarget glucose.Quantity, units float64) Correction {
	return Correction{Kind: CorrectionEntirelyBelowRange, Correcting: &correcting, MinTarget: &minTarget, Units: units}
}

func Suspend(min glucose.Value) Correction {
	return Correction{Kind: CorrectionSuspend, Min: &min}
}

// Delta is the signed insulin change the correction calls for: positive to
// add insulin, negative to withhold it.
func (c Correction) Delta() float64 {
	switch c.Kind {
	case CorrectionAboveRange:
		return c.Units
	case CorrectionEntirelyBelowRange:
		return -c.Units
	default:
		return 0
	}
}

// Target is the glucose the correction aims for, if any.
func (c Correction) Target() *glucose.Quantity {
	switch c.Kind {
	case CorrectionAboveRange, CorrectionEntirelyBelowRange:
		return c.MinTarget
	default:
		return nil
	}
}

// minBelowTarget reports whether an aboveRange correction still dips under
// its lower target before rising.
func (c Correction) minBelowTarget() bool {
	return c.Kind == CorrectionAboveRange && c.Min != nil && c.MinTarget != nil && c.Min.Quantity.Less(*c.MinTarget)
}

// InsulinCorrectionUnits returns the insulin needed to move glucose from
// fromValue to toValue. It reports false when the sensitivity is not positive.
func InsulinCorrectionUnits(fromValue, toValue, effectedSensitivity float64) (float64, bool) {
	if effectedSensitivity <= 0 {
		return 0, false
	}
	return (fromValue - toValue) / effectedSensitivity, true
}

// TargetGlucoseValue blends from minValue to maxValue over the second half of
// the insulin effect duration.
func TargetGlucoseValue(percentEffectDuration, minValue, maxValue float64) float64 {
	if percentEffectDuration <= useMinTargetUntilPercent {
		return minValue
	}
	if percentEffectDuration >= 1 {
		return maxValue
	}

	slope := (maxValue - minValue) / (1 - useMinTargetUntilPercent)
	return minValue + slope*(percentEffectDuration-useMinTargetUntilPercent)
}

// Classify determines the least insulin, delivered at date, that brings the
// predictions toward the correction range. It returns nil when no prediction
// falls within [date, date + model.EffectDuration()).
func Classify(
	predictions []glucose.Value,
	correctionRange RangeSchedule,
	date time.Time,
	suspendThreshold glucose.Quantity,
	sensitivity glucose.Quantity,
	model insulin.Model,
) *Correction {
	var (
		minGlucose         *glucose.Value
		eventualGlucose    *glucose.Value
		correctingGlucose  *glucose.Value
		minCorrectionUnits *float64
	)

	effectDuration := model.EffectDuration()
	end := date.Add(effectDuration)

	unit := correctionRange.RangeAt(date).Lower.Unit
	sensitivityValue := sensitivity.In(unit)
	suspendThresholdValue := suspendThreshold.In(unit)

	for i := range predictions {
		prediction := predictions[i]
		if prediction.Timestamp.Before(date) || !prediction.Timestamp.Before(end) {
			continue
		}

		if prediction.Quantity.Less(suspendThreshold) {
			correction := Suspend(prediction)
			return &correction
		}

		if minGlucose == nil || prediction.Quantity.Less(minGlucose.Quantity) {
			minGlucose = &prediction
		}
		eventualGlucose = &prediction

		elapsed := prediction.Timestamp.Sub(date)
		targetValue := TargetGlucoseValue(
			elapsed.Seconds()/effectDuration.Seconds(),
			suspendThresholdValue,
			correctionRange.RangeAt(prediction.Timestamp).Average().In(unit),
		)

		// dose = glucose delta / (percent effected * sensitivity)
		percentEffected := 1 - model.PercentEffectRemaining(elapsed)
		units, ok := InsulinCorrectionUnits(prediction.Quantity.In(unit), targetValue, percentEffected*sensitivityValue)
		if !ok || units <= 0 {
			continue
		}

		if minCorrectionUnits == nil || units < *minCorrectionUnits {
			correctingGlucose = &prediction
			minCorrectionUnits = &units
		}
	}

	if minGlucose == nil || eventualGlucose == nil {
		return nil
	}

	minTargets := correctionRange.RangeAt(minGlucose.Timestamp)
	eventualTargets := correctionRange.RangeAt(eventualGlucose.Timestamp)

	switch {
	case minGlucose.Quantity.Less(minTargets.Lower) && eventualGlucose.Quantity.Less(eventualTargets.Lower):
		elapsed := minGlucose.Timestamp.Sub(date)
		// At elapsed = 0 nothing has acted yet; assume a sliver so the
		// withheld amount is large rather than undefined.
		percentEffected := math.Max(epsilon, 1-model.PercentEffectRemaining(elapsed))
		units, ok := InsulinCorrectionUnits(minTargets.Lower.In(unit), minGlucose.Quantity.In(unit), sensitivityValue*percentEffected)
		if !ok {
			return nil
		}
		correction := EntirelyBelowRange(*minGlucose, minTargets.Lower, units)
		return &correction
	case eventualGlucose.Quantity.Greater(eventualTargets.Upper) && minCorrectionUnits != nil && correctingGlucose != nil:
		correction := AboveRange(*minGlucose, *correctingGlucose, eventualTargets.Lower, *minCorrectionUnits)
		return &correction
	default:
		correction := InRange()
		return &correction
	}
}
