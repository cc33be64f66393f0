package dosing

import (
	"math"
	"time"

	"github.com/tidepool-org/dosing/glucose"
)

// MicrobolusDecision tells the caller what to do with a microbolus evaluation.
type MicrobolusDecision string

const (
	// MicrobolusRecommend carries a low temp and microbolus pair.
	MicrobolusRecommend MicrobolusDecision = "recommend"
	// MicrobolusContinue means a bolus was delivered too recently; keep the
	// running command unchanged.
	MicrobolusContinue MicrobolusDecision = "continue"
	// MicrobolusFallback means no microbolus applies; compute a regular temp
	// basal or bolus instead.
	MicrobolusFallback MicrobolusDecision = "fallback"
)

// MicrobolusRecommendation is the result of a super-microbolus evaluation.
// TempBasal and Bolus are only set when Decision is MicrobolusRecommend;
// TempBasal may still be nil when the pump is already running that temp.
type MicrobolusRecommendation struct {
	Decision  MicrobolusDecision       `json:"decision" bson:"decision"`
	TempBasal *TempBasalRecommendation `json:"tempBasal,omitempty" bson:"tempBasal,omitempty"`
	Bolus     *BolusRecommendation     `json:"bolus,omitempty" bson:"bolus,omitempty"`
}

func microbolusFallback() MicrobolusRecommendation {
	return MicrobolusRecommendation{Decision: MicrobolusFallback}
}

// MicrobolusLimits are the tunables of the microbolus composition.
type MicrobolusLimits struct {
	// MaxSMBMinutes caps a microbolus at this many minutes of scheduled basal
	// when the insulin on board exceeds the mealtime requirement, a sign of an
	// acknowledged meal.
	MaxSMBMinutes float64
	// MaxUAMSMBMinutes is the cap in every other case, when an unannounced
	// meal may be absorbing.
	MaxUAMSMBMinutes float64
	// RecentBolusInterval suppresses a microbolus this soon after the last bolus.
	RecentBolusInterval time.Duration
	// Increment is the bolus granularity; microboluses are floored to it.
	Increment float64
	// MaxLowTempDuration caps the duration of the paired low temp.
	MaxLowTempDuration time.Duration
	// MinLowTempDuration is the shortest paired low temp; shorter requirements
	// are issued as a reduced rate over this window.
	MinLowTempDuration time.Duration
}

type MicrobolusInput struct {
	Date           time.Time
	PendingInsulin float64
	// NaiveEventualBG is the current glucose minus the full effect of the
	// insulin on board.
	NaiveEventualBG glucose.Quantity
	// MinIOBPredBG is the lowest glucose a momentum and insulin aware
	// prediction reaches after insulin peaks.
	MinIOBPredBG       glucose.Quantity
	LastBolusTime      *time.Time
	MaxBasalRate       float64
	MaxBolus           float64
	IOB                float64
	COB                float64
	Sensitivity        glucose.Quantity
	CarbRatio          float64
	ScheduledBasalRate float64
	RateRounder        Rounder
	Limits             MicrobolusLimits
}

// microbolusCap is the largest microbolus allowed for the input.
func (in MicrobolusInput) microbolusCap() float64 {
	mealtimeInsulinReq := 0.0
	if in.CarbRatio > 0 {
		mealtimeInsulinReq = in.COB / in.CarbRatio
	}

	minutes := in.Limits.MaxUAMSMBMinutes
	if in.IOB > mealtimeInsulinReq {
		minutes = in.Limits.MaxSMBMinutes
	}
	return math.Min(in.MaxBolus, in.ScheduledBasalRate*minutes/60)
}

// AsMicrobolus pairs a fraction of an aboveRange correction, given now as a
// bolus, with a low temp that limits the downside should glucose fall.
func (c Correction) AsMicrobolus(in MicrobolusInput) MicrobolusRecommendation {
	if c.Kind != CorrectionAboveRange {
		return microbolusFallback()
	}

	insulinReq := c.Units - in.PendingInsulin
	increment := in.Limits.Increment
	if increment <= 0 {
		increment = defaultMicrobolusIncrement
	}

	// Half the requirement per cycle, floored to the device increment.
	steps := 1 / increment
	microbolus := math.Floor(math.Min(insulinReq/2, in.microbolusCap())*steps+1e-9) / steps
	microbolus = math.Max(0, microbolus)
	if insulinReq > 0 && microbolus < increment {
		return microbolusFallback()
	}

	target := c.Target()
	unit := target.Unit
	sensitivity := in.Sensitivity.In(unit)
	if sensitivity <= 0 {
		return microbolusFallback()
	}

	averagePredictedBG := (math.Max(0, in.NaiveEventualBG.In(unit)) + math.Max(0, in.MinIOBPredBG.In(unit))) / 2
	worstCaseRequiredInsulin := (target.In(unit) - averagePredictedBG) / sensitivity

	maxDuration := in.Limits.MaxLowTempDuration.Minutes()
	var requiredMinutes float64
	if in.ScheduledBasalRate > 0 {
		requiredMinutes = clamp(math.Round(60*worstCaseRequiredInsulin/in.ScheduledBasalRate), 0, maxDuration)
	} else if worstCaseRequiredInsulin > 0 {
		requiredMinutes = maxDuration
	}

	if in.LastBolusTime != nil && in.Date.Sub(*in.LastBolusTime) <= in.Limits.RecentBolusInterval {
		return MicrobolusRecommendation{Decision: MicrobolusContinue}
	}

	if requiredMinutes <= 0 {
		return microbolusFallback()
	}

	lowTemp := 0.0
	duration := time.Duration(requiredMinutes) * time.Minute
	if minDuration := in.Limits.MinLowTempDuration; duration < minDuration {
		lowTemp = math.Min(in.MaxBasalRate, in.ScheduledBasalRate*requiredMinutes/minDuration.Minutes())
		duration = minDuration
	}
	lowTemp = in.RateRounder.Round(clamp(lowTemp, 0, in.MaxBasalRate))

	return MicrobolusRecommendation{
		Decision: MicrobolusRecommend,
		TempBasal: &TempBasalRecommendation{
			UnitsPerHour: lowTemp,
			Duration:     duration,
		},
		Bolus: &BolusRecommendation{
			Amount:         microbolus,
			PendingInsulin: in.PendingInsulin,
			Notice:         c.bolusNotice(),
		},
	}
}
