package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidepool-org/dosing/glucose"
)

const day = 24 * time.Hour

var (
	ErrEmpty          = errors.New("schedule has no items")
	ErrFirstItemStart = errors.New("first schedule item must start at midnight")
	ErrItemOrder      = errors.New("schedule items must be strictly ascending")
	ErrItemOutOfDay   = errors.New("schedule item starts after the end of the day")
)

// Item is a value that takes effect Start after local midnight.
type Item[T any] struct {
	Start time.Duration `json:"start" bson:"start"`
	Value T             `json:"value" bson:"value"`
}

// DailyValueSchedule repeats the same items every day in its time zone.
type DailyValueSchedule[T any] struct {
	Items    []Item[T]
	Location *time.Location
}

func NewDailyValueSchedule[T any](location *time.Location, items ...Item[T]) DailyValueSchedule[T] {
	if location == nil {
		location = time.UTC
	}
	return DailyValueSchedule[T]{Items: items, Location: location}
}

func (s DailyValueSchedule[T]) Validate() error {
	if len(s.Items) == 0 {
		return ErrEmpty
	}
	if s.Items[0].Start != 0 {
		return ErrFirstItemStart
	}
	for i, item := range s.Items {
		if item.Start < 0 || item.Start >= day {
			return fmt.Errorf("item %d: %w", i, ErrItemOutOfDay)
		}
		if i > 0 && item.Start <= s.Items[i-1].Start {
			return fmt.Errorf("item %d: %w", i, ErrItemOrder)
		}
	}
	return nil
}

// At returns the value in effect at t. An empty schedule yields the zero value.
func (s DailyValueSchedule[T]) At(t time.Time) T {
	var value T
	if len(s.Items) == 0 {
		return value
	}

	offset := s.offset(t)
	value = s.Items[0].Value
	for _, item := range s.Items {
		if item.Start > offset {
			break
		}
		value = item.Value
	}
	return value
}

func (s DailyValueSchedule[T]) offset(t time.Time) time.Duration {
	location := s.Location
	if location == nil {
		location = time.UTC
	}
	local := t.In(location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	return local.Sub(midnight)
}

// BasalRateSchedule holds scheduled basal rates in U/h.
type BasalRateSchedule struct {
	DailyValueSchedule[float64]
}

func NewBasalRateSchedule(location *time.Location, items ...Item[float64]) BasalRateSchedule {
	return BasalRateSchedule{NewDailyValueSchedule(location, items...)}
}

func (s BasalRateSchedule) ValueAt(t time.Time) float64 {
	return s.At(t)
}

// CarbRatioSchedule holds carb ratios in g/U.
type CarbRatioSchedule struct {
	DailyValueSchedule[float64]
}

func NewCarbRatioSchedule(location *time.Location, items ...Item[float64]) CarbRatioSchedule {
	return CarbRatioSchedule{NewDailyValueSchedule(location, items...)}
}

func (s CarbRatioSchedule) ValueAt(t time.Time) float64 {
	return s.At(t)
}

// InsulinSensitivitySchedule holds the glucose drop per unit of insulin.
type InsulinSensitivitySchedule struct {
	DailyValueSchedule[float64]
	Unit glucose.Unit
}

func NewInsulinSensitivitySchedule(unit glucose.Unit, location *time.Location, items ...Item[float64]) InsulinSensitivitySchedule {
	return InsulinSensitivitySchedule{DailyValueSchedule: NewDailyValueSchedule(location, items...), Unit: unit}
}

func (s InsulinSensitivitySchedule) QuantityAt(t time.Time) glucose.Quantity {
	return glucose.NewQuantity(s.At(t), s.Unit)
}
