package glucose

import (
	"fmt"
	"time"
)

// MgdLPerMmolL is the number of mg/dL in one mmol/L of glucose.
const MgdLPerMmolL = 18.01559

type Unit string

const (
	MgdL  Unit = "mg/dL"
	MmolL Unit = "mmol/L"
)

func (u Unit) Valid() bool {
	return u == MgdL || u == MmolL
}

// Quantity is a glucose concentration tagged with its unit.
type Quantity struct {
	Value float64 `json:"value" bson:"value"`
	Unit  Unit    `json:"units" bson:"units"`
}

func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func MgdLQuantity(value float64) Quantity {
	return Quantity{Value: value, Unit: MgdL}
}

// In returns the numeric value of q expressed in unit.
func (q Quantity) In(unit Unit) float64 {
	if q.Unit == unit || q.Unit == "" {
		return q.Value
	}
	switch unit {
	case MmolL:
		return q.Value / MgdLPerMmolL
	case MgdL:
		return q.Value * MgdLPerMmolL
	}
	return q.Value
}

func (q Quantity) Less(other Quantity) bool {
	return q.In(MgdL) < other.In(MgdL)
}

func (q Quantity) Greater(other Quantity) bool {
	return q.In(MgdL) > other.In(MgdL)
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// Value is a single glucose reading or prediction.
type Value struct {
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Quantity  Quantity  `json:"quantity" bson:"quantity"`
}

func NewValue(timestamp time.Time, quantity Quantity) Value {
	return Value{Timestamp: timestamp, Quantity: quantity}
}

// Range is a closed glucose interval.
type Range struct {
	Lower Quantity `json:"lower" bson:"lower"`
	Upper Quantity `json:"upper" bson:"upper"`
}

func NewRange(lower, upper float64, unit Unit) Range {
	return Range{Lower: NewQuantity(lower, unit), Upper: NewQuantity(upper, unit)}
}

// Average returns the midpoint of the range in the unit of its lower bound.
func (r Range) Average() Quantity {
	unit := r.Lower.Unit
	return NewQuantity((r.Lower.In(unit)+r.Upper.In(unit))/2, unit)
}

// IsAscending reports whether values are strictly ordered by timestamp.
func IsAscending(values []Value) bool {
	for i := 1; i < len(values); i++ {
		if !values[i].Timestamp.After(values[i-1].Timestamp) {
			return false
		}
	}
	return true
}
