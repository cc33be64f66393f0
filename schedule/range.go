package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidepool-org/dosing/glucose"
)

var (
	ErrInvertedRange  = errors.New("range lower bound is above its upper bound")
	ErrOverrideWindow = errors.New("override must end after it starts")
)

// RangeValue is a correction range expressed in the schedule unit.
type RangeValue struct {
	Lower float64 `json:"lower" bson:"lower"`
	Upper float64 `json:"upper" bson:"upper"`
}

// Override temporarily replaces the scheduled range between Start and End.
type Override struct {
	Range RangeValue `json:"range"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

func (o Override) ActiveAt(t time.Time) bool {
	return !t.Before(o.Start) && t.Before(o.End)
}

// GlucoseRangeSchedule is the time-varying correction range.
type GlucoseRangeSchedule struct {
	DailyValueSchedule[RangeValue]
	Unit     glucose.Unit
	Override *Override
}

func NewGlucoseRangeSchedule(unit glucose.Unit, location *time.Location, items ...Item[RangeValue]) GlucoseRangeSchedule {
	return GlucoseRangeSchedule{DailyValueSchedule: NewDailyValueSchedule(location, items...), Unit: unit}
}

func (s GlucoseRangeSchedule) Validate() error {
	if err := s.DailyValueSchedule.Validate(); err != nil {
		return err
	}
	for i, item := range s.Items {
		if item.Value.Lower > item.Value.Upper {
			return fmt.Errorf("item %d: %w", i, ErrInvertedRange)
		}
	}
	if s.Override != nil {
		if s.Override.Range.Lower > s.Override.Range.Upper {
			return fmt.Errorf("override: %w", ErrInvertedRange)
		}
		if !s.Override.End.After(s.Override.Start) {
			return ErrOverrideWindow
		}
	}
	return nil
}

// RangeAt returns the correction range in effect at t.
func (s GlucoseRangeSchedule) RangeAt(t time.Time) glucose.Range {
	value := s.At(t)
	if s.Override != nil && s.Override.ActiveAt(t) {
		value = s.Override.Range
	}
	return glucose.NewRange(value.Lower, value.Upper, s.Unit)
}
