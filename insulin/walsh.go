package insulin

import (
	"math"
	"time"
)

// Walsh is the legacy polynomial action curve. Curves exist for 3, 4, 5 and 6
// hour durations; other durations are scaled onto the nearest one.
type Walsh struct {
	actionDuration time.Duration
}

var _ Model = Walsh{}

func NewWalsh(actionDuration time.Duration) Walsh {
	return Walsh{actionDuration: actionDuration}
}

func (w Walsh) ActionDuration() time.Duration {
	return w.actionDuration
}

func (w Walsh) Delay() time.Duration {
	return 0
}

func (w Walsh) EffectDuration() time.Duration {
	return w.actionDuration
}

func (w Walsh) PercentEffectRemaining(t time.Duration) float64 {
	switch {
	case t <= 0:
		return 1
	case t >= w.actionDuration:
		return 0
	}

	hours := math.Round(w.actionDuration.Hours())
	hours = math.Max(3, math.Min(6, hours))
	m := t.Minutes() * hours / w.actionDuration.Hours()

	var remaining float64
	switch hours {
	case 3:
		remaining = -3.2030e-9*math.Pow(m, 4) + 1.354e-6*math.Pow(m, 3) - 1.759e-4*math.Pow(m, 2) + 9.255e-4*m + 0.99951
	case 4:
		remaining = -3.310e-10*math.Pow(m, 4) + 2.530e-7*math.Pow(m, 3) - 5.510e-5*math.Pow(m, 2) - 9.086e-4*m + 0.99950
	case 5:
		remaining = -2.950e-10*math.Pow(m, 4) + 2.320e-7*math.Pow(m, 3) - 5.550e-5*math.Pow(m, 2) + 4.490e-4*m + 0.99300
	default:
		remaining = -1.493e-10*math.Pow(m, 4) + 1.413e-7*math.Pow(m, 3) - 4.095e-5*math.Pow(m, 2) + 6.365e-4*m + 0.99700
	}
	return clampUnit(remaining)
}
