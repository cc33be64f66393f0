package dosing

// BolusRecommendation is a one-off insulin dose. Amount may be zero.
type BolusRecommendation struct {
	Amount         float64 `json:"amount" bson:"amount"`
	PendingInsulin float64 `json:"pendingInsulin" bson:"pendingInsulin"`
	Notice         *Notice `json:"notice,omitempty" bson:"notice,omitempty"`
}

func (c Correction) bolusNotice() *Notice {
	switch c.Kind {
	case CorrectionSuspend:
		return &Notice{Kind: NoticeGlucoseBelowSuspendThreshold, Glucose: *c.Min}
	case CorrectionAboveRange:
		if c.Units > 0 && c.minBelowTarget() {
			return &Notice{Kind: NoticePredictedGlucoseBelowTarget, Glucose: *c.Min}
		}
	}
	return nil
}

// AsBolus returns the correction less pendingInsulin, clamped to
// [0, maxBolus] before rounding.
func (c Correction) AsBolus(pendingInsulin, maxBolus float64, volumeRounder Rounder) BolusRecommendation {
	units := c.Delta() - pendingInsulin
	units = clamp(units, 0, maxBolus)
	units = volumeRounder.Round(units)

	return BolusRecommendation{
		Amount:         units,
		PendingInsulin: pendingInsulin,
		Notice:         c.bolusNotice(),
	}
}
