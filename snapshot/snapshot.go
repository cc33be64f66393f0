// Package snapshot defines the wire format of a dosing evaluation request
// and converts it into calculator inputs.
package snapshot

import (
	"time"

	"github.com/tidepool-org/dosing/dosing"
	"github.com/tidepool-org/dosing/insulin"
)

type Kind string

const (
	KindTempBasal  Kind = "temp_basal"
	KindBolus      Kind = "bolus"
	KindMicrobolus Kind = "microbolus"
)

// Snapshot is every input of a single evaluation.
type Snapshot struct {
	Date         time.Time `json:"date"`
	TimeZone     string    `json:"timeZone,omitempty"`
	GlucoseUnits string    `json:"glucoseUnits"`

	Predictions []Prediction `json:"predictions"`

	CorrectionRange         []RangeItem      `json:"correctionRange"`
	CorrectionRangeOverride *RangeOverride   `json:"correctionRangeOverride,omitempty"`
	InsulinSensitivity      []ScheduleItem   `json:"insulinSensitivity"`
	BasalRates              []ScheduleItem   `json:"basalRates,omitempty"`
	CarbRatios              []ScheduleItem   `json:"carbRatios,omitempty"`
	InsulinModel            insulin.Settings `json:"insulinModel"`

	Limits     Limits      `json:"limits"`
	Pump       Pump        `json:"pump"`
	Rounding   *Rounding   `json:"rounding,omitempty"`
	Microbolus *Microbolus `json:"microbolus,omitempty"`

	TempBasalDurationMinutes    *float64 `json:"tempBasalDurationMinutes,omitempty"`
	ContinuationIntervalMinutes *float64 `json:"continuationIntervalMinutes,omitempty"`
}

type Prediction struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// ScheduleItem starts Start milliseconds after local midnight.
type ScheduleItem struct {
	Start int64   `json:"start"`
	Value float64 `json:"value"`
}

type RangeItem struct {
	Start int64   `json:"start"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

type RangeOverride struct {
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Limits struct {
	MaxBasalRate     *float64 `json:"maxBasalRate,omitempty"`
	MaxBolus         *float64 `json:"maxBolus,omitempty"`
	SuspendThreshold *float64 `json:"suspendThreshold,omitempty"`
}

type Pump struct {
	LastTempBasal                   *dosing.DoseEntry `json:"lastTempBasal,omitempty"`
	LastBolusTime                   *time.Time        `json:"lastBolusTime,omitempty"`
	PendingInsulin                  float64           `json:"pendingInsulin"`
	BasalRateScheduleOverrideActive bool              `json:"basalRateScheduleOverrideActive"`
}

// Rounding describes the delivery granularity of the pump. Supported value
// tables take precedence over increments.
type Rounding struct {
	BasalRateIncrement    float64   `json:"basalRateIncrement,omitempty"`
	SupportedBasalRates   []float64 `json:"supportedBasalRates,omitempty"`
	BolusVolumeIncrement  float64   `json:"bolusVolumeIncrement,omitempty"`
	SupportedBolusVolumes []float64 `json:"supportedBolusVolumes,omitempty"`
}

type Microbolus struct {
	IOB                    float64  `json:"iob"`
	COB                    float64  `json:"cob"`
	MinIOBPredictedGlucose float64  `json:"minIOBPredictedGlucose"`
	MaxSMBMinutes          *float64 `json:"maxSMBMinutes,omitempty"`
	MaxUAMSMBMinutes       *float64 `json:"maxUAMSMBMinutes,omitempty"`
}
