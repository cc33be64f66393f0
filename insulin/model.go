// Package insulin describes how much of an insulin dose is still to act on
// glucose at a given time after delivery.
package insulin

import "time"

// Model is an insulin action curve.
//
// PercentEffectRemaining returns 1 at delivery, decreases monotonically and
// reaches 0 once EffectDuration has elapsed.
type Model interface {
	Delay() time.Duration
	EffectDuration() time.Duration
	PercentEffectRemaining(t time.Duration) float64
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
