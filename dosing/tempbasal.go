package dosing

import (
	"math"
	"time"
)

// TempBasalRecommendation is a temporary basal rate to set on the pump.
type TempBasalRecommendation struct {
	UnitsPerHour float64       `json:"unitsPerHour" bson:"unitsPerHour"`
	Duration     time.Duration `json:"duration" bson:"duration"`
}

// CancelTempBasal cancels any running temp basal.
var CancelTempBasal = TempBasalRecommendation{UnitsPerHour: 0, Duration: 0}

func (t TempBasalRecommendation) IsCancel() bool {
	return t == CancelTempBasal
}

func (t TempBasalRecommendation) matchesRate(unitsPerHour float64) bool {
	return math.Abs(t.UnitsPerHour-unitsPerHour) < epsilon
}

// AsTempBasal spreads the correction over duration on top of the scheduled
// rate. The rate is clamped to [0, maxBasalRate] before rounding.
func (c Correction) AsTempBasal(scheduledBasalRate, maxBasalRate float64, duration time.Duration, rateRounder Rounder) TempBasalRecommendation {
	rate := 0.0
	if duration > 0 {
		rate = c.Delta() / duration.Hours()
	}
	if c.Kind != CorrectionSuspend {
		rate += scheduledBasalRate
	}

	rate = clamp(rate, 0, maxBasalRate)
	rate = rateRounder.Round(rate)

	return TempBasalRecommendation{
		UnitsPerHour: rate,
		Duration:     duration,
	}
}
