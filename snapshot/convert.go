package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidepool-org/dosing/dosing"
	"github.com/tidepool-org/dosing/glucose"
	"github.com/tidepool-org/dosing/pointer"
	"github.com/tidepool-org/dosing/schedule"
)

// The conversions below expect a snapshot that passed Validate.

func (s Snapshot) Location() (*time.Location, error) {
	if s.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("unable to load time zone %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

func (s Snapshot) unit() glucose.Unit {
	return glucose.Unit(s.GlucoseUnits)
}

func (s Snapshot) Evaluation() (dosing.Evaluation, error) {
	loc, err := s.Location()
	if err != nil {
		return dosing.Evaluation{}, err
	}
	return s.evaluation(loc), nil
}

func (s Snapshot) evaluation(loc *time.Location) dosing.Evaluation {
	evaluation := dosing.Evaluation{
		Predictions:     s.predictions(),
		CorrectionRange: s.correctionRange(loc),
		Date:            s.Date,
		Sensitivity:     s.sensitivity(loc),
		Model:           s.InsulinModel.Model(),
	}
	if s.Limits.SuspendThreshold != nil {
		threshold := glucose.NewQuantity(*s.Limits.SuspendThreshold, s.unit())
		evaluation.SuspendThreshold = &threshold
	}
	return evaluation
}

func (s Snapshot) TempBasalInput() (dosing.TempBasalInput, error) {
	loc, err := s.Location()
	if err != nil {
		return dosing.TempBasalInput{}, err
	}
	return dosing.TempBasalInput{
		Evaluation:                      s.evaluation(loc),
		BasalRates:                      s.basalRates(loc),
		MaxBasalRate:                    pointer.Default(s.Limits.MaxBasalRate, 0),
		LastTempBasal:                   s.Pump.LastTempBasal,
		RateRounder:                     s.rateRounder(),
		BasalRateScheduleOverrideActive: s.Pump.BasalRateScheduleOverrideActive,
		Duration:                        minutes(s.TempBasalDurationMinutes),
		ContinuationInterval:            minutes(s.ContinuationIntervalMinutes),
	}, nil
}

func (s Snapshot) BolusInput() (dosing.BolusInput, error) {
	evaluation, err := s.Evaluation()
	if err != nil {
		return dosing.BolusInput{}, err
	}
	return dosing.BolusInput{
		Evaluation:     evaluation,
		PendingInsulin: s.Pump.PendingInsulin,
		MaxBolus:       pointer.Default(s.Limits.MaxBolus, 0),
		VolumeRounder:  s.volumeRounder(),
	}, nil
}

func (s Snapshot) MicrobolusRequest() (dosing.MicrobolusRequest, error) {
	if s.Microbolus == nil {
		return dosing.MicrobolusRequest{}, errors.New("snapshot has no microbolus section")
	}
	loc, err := s.Location()
	if err != nil {
		return dosing.MicrobolusRequest{}, err
	}
	return dosing.MicrobolusRequest{
		Evaluation:                      s.evaluation(loc),
		MinIOBPredBG:                    glucose.NewQuantity(s.Microbolus.MinIOBPredictedGlucose, s.unit()),
		PendingInsulin:                  s.Pump.PendingInsulin,
		CarbRatios:                      s.carbRatios(loc),
		BasalRates:                      s.basalRates(loc),
		IOB:                             s.Microbolus.IOB,
		COB:                             s.Microbolus.COB,
		MaxBasalRate:                    pointer.Default(s.Limits.MaxBasalRate, 0),
		MaxBolus:                        pointer.Default(s.Limits.MaxBolus, 0),
		LastBolusTime:                   s.Pump.LastBolusTime,
		LastTempBasal:                   s.Pump.LastTempBasal,
		RateRounder:                     s.rateRounder(),
		BasalRateScheduleOverrideActive: s.Pump.BasalRateScheduleOverrideActive,
		MaxSMBMinutes:                   s.Microbolus.MaxSMBMinutes,
		MaxUAMSMBMinutes:                s.Microbolus.MaxUAMSMBMinutes,
		ContinuationInterval:            minutes(s.ContinuationIntervalMinutes),
	}, nil
}

func (s Snapshot) predictions() []glucose.Value {
	predictions := make([]glucose.Value, 0, len(s.Predictions))
	for _, p := range s.Predictions {
		predictions = append(predictions, glucose.NewValue(p.Timestamp, glucose.NewQuantity(p.Value, s.unit())))
	}
	return predictions
}

func (s Snapshot) sensitivity(loc *time.Location) schedule.InsulinSensitivitySchedule {
	return schedule.NewInsulinSensitivitySchedule(s.unit(), loc, items(s.InsulinSensitivity)...)
}

func (s Snapshot) basalRates(loc *time.Location) schedule.BasalRateSchedule {
	return schedule.NewBasalRateSchedule(loc, items(s.BasalRates)...)
}

func (s Snapshot) carbRatios(loc *time.Location) schedule.CarbRatioSchedule {
	return schedule.NewCarbRatioSchedule(loc, items(s.CarbRatios)...)
}

func (s Snapshot) correctionRange(loc *time.Location) schedule.GlucoseRangeSchedule {
	rangeItems := make([]schedule.Item[schedule.RangeValue], 0, len(s.CorrectionRange))
	for _, item := range s.CorrectionRange {
		rangeItems = append(rangeItems, schedule.Item[schedule.RangeValue]{
			Start: time.Duration(item.Start) * time.Millisecond,
			Value: schedule.RangeValue{Lower: item.Lower, Upper: item.Upper},
		})
	}
	result := schedule.NewGlucoseRangeSchedule(s.unit(), loc, rangeItems...)
	if o := s.CorrectionRangeOverride; o != nil {
		result.Override = &schedule.Override{
			Range: schedule.RangeValue{Lower: o.Lower, Upper: o.Upper},
			Start: o.Start,
			End:   o.End,
		}
	}
	return result
}

func (s Snapshot) rateRounder() dosing.Rounder {
	if s.Rounding == nil {
		return nil
	}
	if len(s.Rounding.SupportedBasalRates) > 0 {
		return dosing.FloorToSupported(s.Rounding.SupportedBasalRates)
	}
	return dosing.FloorToIncrement(s.Rounding.BasalRateIncrement)
}

func (s Snapshot) volumeRounder() dosing.Rounder {
	if s.Rounding == nil {
		return nil
	}
	if len(s.Rounding.SupportedBolusVolumes) > 0 {
		return dosing.FloorToSupported(s.Rounding.SupportedBolusVolumes)
	}
	return dosing.FloorToIncrement(s.Rounding.BolusVolumeIncrement)
}

func items(values []ScheduleItem) []schedule.Item[float64] {
	result := make([]schedule.Item[float64], 0, len(values))
	for _, v := range values {
		result = append(result, schedule.Item[float64]{
			Start: time.Duration(v.Start) * time.Millisecond,
			Value: v.Value,
		})
	}
	return result
}

func minutes(value *float64) time.Duration {
	return time.Duration(pointer.Default(value, 0) * float64(time.Minute))
}
