package snapshot

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	errs "github.com/tidepool-org/dosing/errors"
	"github.com/tidepool-org/dosing/glucose"
)

var (
	supportedKinds = mapset.NewSet[Kind](KindTempBasal, KindBolus, KindMicrobolus)
	basalKinds     = mapset.NewSet[Kind](KindTempBasal, KindMicrobolus)
)

// Validate applies the checks that span several fields. The snapshot is
// expected to match the request schema of kind already.
func (s Snapshot) Validate(kind Kind) error {
	if !supportedKinds.Contains(kind) {
		return errs.Invalid("kind", "unsupported recommendation kind %q", kind)
	}
	loc, err := s.Location()
	if err != nil {
		return errs.Invalid("timeZone", "%v", err)
	}

	if !glucose.IsAscending(s.predictions()) {
		return errs.Invalid("predictions", "must be strictly ascending by timestamp")
	}
	if err := s.correctionRange(loc).Validate(); err != nil {
		return errs.Invalid("correctionRange", "%v", err)
	}
	if err := s.sensitivity(loc).Validate(); err != nil {
		return errs.Invalid("insulinSensitivity", "%v", err)
	}
	if err := s.InsulinModel.Validate(); err != nil {
		return errs.Invalid("insulinModel", "%v", err)
	}
	if err := s.validateRounding(); err != nil {
		return err
	}

	if basalKinds.Contains(kind) {
		if err := s.basalRates(loc).Validate(); err != nil {
			return errs.Invalid("basalRates", "%v", err)
		}
		if p := s.Pump.LastTempBasal; p != nil && p.EndDate.Before(p.StartDate) {
			return errs.Invalid("pump.lastTempBasal", "must not end before it starts")
		}
	}
	if kind == KindMicrobolus {
		if err := s.carbRatios(loc).Validate(); err != nil {
			return errs.Invalid("carbRatios", "%v", err)
		}
	}
	return nil
}

func (s Snapshot) validateRounding() error {
	if s.Rounding == nil {
		return nil
	}
	if !sort.Float64sAreSorted(s.Rounding.SupportedBasalRates) {
		return errs.Invalid("rounding.supportedBasalRates", "must be sorted ascending")
	}
	if !sort.Float64sAreSorted(s.Rounding.SupportedBolusVolumes) {
		return errs.Invalid("rounding.supportedBolusVolumes", "must be sorted ascending")
	}
	return nil
}
