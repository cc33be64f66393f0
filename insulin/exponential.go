package insulin

import (
	"math"
	"time"
)

// Exponential is the exponential insulin activity curve, parameterised by the
// total action duration and the time of peak activity.
type Exponential struct {
	actionDuration time.Duration
	peakActivity   time.Duration
	delay          time.Duration

	tau float64
	a   float64
	s   float64
}

var _ Model = Exponential{}

// NewExponential panics when peakActivity is not shorter than half the action
// duration since the curve is undefined there.
func NewExponential(actionDuration, peakActivity, delay time.Duration) Exponential {
	if peakActivity <= 0 || 2*peakActivity >= actionDuration {
		panic("insulin: peak activity must be positive and less than half the action duration")
	}

	td := actionDuration.Minutes()
	tp := peakActivity.Minutes()
	tau := tp * (1 - tp/td) / (1 - 2*tp/td)
	a := 2 * tau / td
	s := 1 / (1 - a + (1+a)*math.Exp(-td/tau))

	return Exponential{
		actionDuration: actionDuration,
		peakActivity:   peakActivity,
		delay:          delay,
		tau:            tau,
		a:              a,
		s:              s,
	}
}

func (e Exponential) ActionDuration() time.Duration {
	return e.actionDuration
}

func (e Exponential) PeakActivity() time.Duration {
	return e.peakActivity
}

func (e Exponential) Delay() time.Duration {
	return e.delay
}

func (e Exponential) EffectDuration() time.Duration {
	return e.actionDuration + e.delay
}

func (e Exponential) PercentEffectRemaining(t time.Duration) float64 {
	afterDelay := t - e.delay
	switch {
	case afterDelay <= 0:
		return 1
	case afterDelay >= e.actionDuration:
		return 0
	}

	m := afterDelay.Minutes()
	td := e.actionDuration.Minutes()
	remaining := 1 - e.s*(1-e.a)*((m*m/(e.tau*td*(1-e.a))-m/e.tau-1)*math.Exp(-m/e.tau)+1)
	return clampUnit(remaining)
}
