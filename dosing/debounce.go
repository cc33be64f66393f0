package dosing

import "time"

type DoseType string

const (
	DoseTypeBasal     DoseType = "basal"
	DoseTypeBolus     DoseType = "bolus"
	DoseTypeSuspend   DoseType = "suspend"
	DoseTypeTempBasal DoseType = "tempBasal"
)

// DoseEntry is a dose the pump reported as delivered or in progress.
type DoseEntry struct {
	Type         DoseType  `json:"type" bson:"type"`
	StartDate    time.Time `json:"startDate" bson:"startDate"`
	EndDate      time.Time `json:"endDate" bson:"endDate"`
	UnitsPerHour float64   `json:"unitsPerHour" bson:"unitsPerHour"`
}

// IfNecessary returns the command to send to the pump for this
// recommendation, or nil when the pump is already doing the right thing.
//
// scheduledBasalRateMatchesPump is false while a basal schedule override is
// active; a recommendation at the scheduled rate is then issued as a temp
// instead of cancelling.
func (t TempBasalRecommendation) IfNecessary(
	date time.Time,
	scheduledBasalRate float64,
	lastTempBasal *DoseEntry,
	continuationInterval time.Duration,
	scheduledBasalRateMatchesPump bool,
) *TempBasalRecommendation {
	if lastTempBasal != nil && lastTempBasal.Type == DoseTypeTempBasal && lastTempBasal.EndDate.After(date) {
		if t.matchesRate(lastTempBasal.UnitsPerHour) && lastTempBasal.EndDate.Sub(date) > continuationInterval {
			return nil
		} else if t.matchesRate(scheduledBasalRate) && scheduledBasalRateMatchesPump {
			cancel := CancelTempBasal
			return &cancel
		}
	} else if t.matchesRate(scheduledBasalRate) && scheduledBasalRateMatchesPump {
		return nil
	}

	recommendation := t
	return &recommendation
}
