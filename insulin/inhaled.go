package insulin

import "time"

const (
	inhaledActionDuration = 180 * time.Minute
	inhaledPeakActivity   = 20 * time.Minute
)

// NewInhaled returns the action curve used for inhaled insulin: an
// exponential curve with a short peak and no onset delay.
func NewInhaled() Exponential {
	return NewExponential(inhaledActionDuration, inhaledPeakActivity, 0)
}
