package dosing

import (
	"time"

	"go.uber.org/zap"

	"github.com/tidepool-org/dosing/glucose"
	"github.com/tidepool-org/dosing/insulin"
)

// Evaluation is the part of the input shared by all recommendations.
type Evaluation struct {
	// Predictions must be ascending by timestamp; the first is the current glucose.
	Predictions     []glucose.Value
	CorrectionRange RangeSchedule
	Date            time.Time
	// SuspendThreshold defaults to the lower bound of the correction range at Date.
	SuspendThreshold *glucose.Quantity
	Sensitivity      SensitivitySchedule
	Model            insulin.Model
}

func (e Evaluation) suspendThreshold() glucose.Quantity {
	if e.SuspendThreshold != nil {
		return *e.SuspendThreshold
	}
	return e.CorrectionRange.RangeAt(e.Date).Lower
}

func (e Evaluation) classify() *Correction {
	return Classify(
		e.Predictions,
		e.CorrectionRange,
		e.Date,
		e.suspendThreshold(),
		e.Sensitivity.QuantityAt(e.Date),
		e.Model,
	)
}

type TempBasalInput struct {
	Evaluation

	BasalRates    ValueSchedule
	MaxBasalRate  float64
	LastTempBasal *DoseEntry
	RateRounder   Rounder
	// BasalRateScheduleOverrideActive is set while the pump runs a basal
	// schedule other than BasalRates.
	BasalRateScheduleOverrideActive bool
	// Duration and ContinuationInterval fall back to the Config when zero.
	Duration             time.Duration
	ContinuationInterval time.Duration
}

type BolusInput struct {
	Evaluation

	PendingInsulin float64
	MaxBolus       float64
	VolumeRounder  Rounder
}

type MicrobolusRequest struct {
	Evaluation

	MinIOBPredBG   glucose.Quantity
	PendingInsulin float64
	CarbRatios     ValueSchedule
	BasalRates     ValueSchedule
	IOB            float64
	COB            float64
	MaxBasalRate   float64
	MaxBolus       float64
	LastBolusTime  *time.Time
	LastTempBasal  *DoseEntry
	RateRounder    Rounder

	BasalRateScheduleOverrideActive bool
	// MaxSMBMinutes and MaxUAMSMBMinutes fall back to the Config when nil.
	MaxSMBMinutes        *float64
	MaxUAMSMBMinutes     *float64
	ContinuationInterval time.Duration
}

// Calculator runs the recommendation pipelines with a fixed Config.
type Calculator struct {
	config Config
	logger *zap.SugaredLogger
}

func NewCalculator(config Config, logger *zap.SugaredLogger) *Calculator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Calculator{
		config: config,
		logger: logger,
	}
}

func (c *Calculator) durationOrDefault(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

// RecommendedTempBasal returns the temp basal that conforms the prediction
// to the correction range, or nil when the running basal is sufficient.
func (c *Calculator) RecommendedTempBasal(in TempBasalInput) *TempBasalRecommendation {
	correction := in.classify()
	if correction == nil {
		c.logger.Debugw("no predictions within the insulin effect window", "date", in.Date)
		return nil
	}

	scheduledBasalRate := in.BasalRates.ValueAt(in.Date)
	maxBasalRate := in.MaxBasalRate

	// Glucose is eventually high but dips below target first: no high temp.
	if correction.minBelowTarget() {
		maxBasalRate = scheduledBasalRate
	}

	duration := c.durationOrDefault(in.Duration, c.config.TempBasalDuration)
	temp := correction.AsTempBasal(scheduledBasalRate, maxBasalRate, duration, in.RateRounder)

	recommendation := temp.IfNecessary(
		in.Date,
		scheduledBasalRate,
		in.LastTempBasal,
		c.durationOrDefault(in.ContinuationInterval, c.config.ContinuationInterval),
		!in.BasalRateScheduleOverrideActive,
	)

	c.logger.Debugw("evaluated temp basal",
		"correction", correction.Kind,
		"units", correction.Units,
		"scheduledBasalRate", scheduledBasalRate,
		"proposedRate", temp.UnitsPerHour,
		"issued", recommendation != nil,
	)
	return recommendation
}

// RecommendedBolus returns the bolus that conforms the prediction to the
// correction range. The amount is zero when no correction applies.
func (c *Calculator) RecommendedBolus(in BolusInput) BolusRecommendation {
	correction := in.classify()
	if correction == nil {
		c.logger.Debugw("no predictions within the insulin effect window", "date", in.Date)
		return BolusRecommendation{Amount: 0, PendingInsulin: in.PendingInsulin}
	}

	bolus := correction.AsBolus(in.PendingInsulin, in.MaxBolus, in.VolumeRounder)

	// The current glucose takes precedence over the predicted one for notices.
	// The first prediction is assumed to be the current glucose.
	if bolus.Notice != nil && bolus.Notice.Kind == NoticePredictedGlucoseBelowTarget && len(in.Predictions) > 0 {
		first := in.Predictions[0]
		if first.Quantity.Less(in.CorrectionRange.RangeAt(first.Timestamp).Lower) {
			bolus.Notice = &Notice{Kind: NoticeCurrentGlucoseBelowTarget, Glucose: first}
		}
	}

	c.logger.Debugw("evaluated bolus",
		"correction", correction.Kind,
		"units", correction.Units,
		"amount", bolus.Amount,
		"pendingInsulin", in.PendingInsulin,
	)
	return bolus
}

// RecommendedSuperMicrobolus returns a microbolus paired with a low temp.
// Decision is MicrobolusFallback when the caller should compute a regular
// temp basal or bolus instead.
func (c *Calculator) RecommendedSuperMicrobolus(in MicrobolusRequest) MicrobolusRecommendation {
	if len(in.Predictions) == 0 {
		return microbolusFallback()
	}

	sensitivity := in.Sensitivity.QuantityAt(in.Date)
	correction := in.classify()
	if correction == nil {
		c.logger.Debugw("no predictions within the insulin effect window", "date", in.Date)
		return microbolusFallback()
	}

	scheduledBasalRate := in.BasalRates.ValueAt(in.Date)
	unit := in.CorrectionRange.RangeAt(in.Date).Lower.Unit
	naiveEventualBG := glucose.NewQuantity(in.Predictions[0].Quantity.In(unit)-in.IOB*sensitivity.In(unit), unit)

	limits := c.config.MicrobolusLimits()
	if in.MaxSMBMinutes != nil {
		limits.MaxSMBMinutes = *in.MaxSMBMinutes
	}
	if in.MaxUAMSMBMinutes != nil {
		limits.MaxUAMSMBMinutes = *in.MaxUAMSMBMinutes
	}

	recommendation := correction.AsMicrobolus(MicrobolusInput{
		Date:               in.Date,
		PendingInsulin:     in.PendingInsulin,
		NaiveEventualBG:    naiveEventualBG,
		MinIOBPredBG:       in.MinIOBPredBG,
		LastBolusTime:      in.LastBolusTime,
		MaxBasalRate:       in.MaxBasalRate,
		MaxBolus:           in.MaxBolus,
		IOB:                in.IOB,
		COB:                in.COB,
		Sensitivity:        sensitivity,
		CarbRatio:          in.CarbRatios.ValueAt(in.Date),
		ScheduledBasalRate: scheduledBasalRate,
		RateRounder:        in.RateRounder,
		Limits:             limits,
	})

	if recommendation.Decision == MicrobolusRecommend && recommendation.TempBasal != nil {
		recommendation.TempBasal = recommendation.TempBasal.IfNecessary(
			in.Date,
			scheduledBasalRate,
			in.LastTempBasal,
			c.durationOrDefault(in.ContinuationInterval, c.config.ContinuationInterval),
			!in.BasalRateScheduleOverrideActive,
		)
	}

	c.logger.Debugw("evaluated microbolus",
		"correction", correction.Kind,
		"units", correction.Units,
		"decision", recommendation.Decision,
	)
	return recommendation
}
