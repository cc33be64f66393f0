package dosing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidepool-org/dosing/dosing"
	"github.com/tidepool-org/dosing/glucose"
	"github.com/tidepool-org/dosing/test"
)

var _ = Describe("TargetGlucoseValue", func() {
	It("uses the minimum value during the first half", func() {
		Expect(dosing.TargetGlucoseValue(0, 70, 110)).To(Equal(70.0))
		Expect(dosing.TargetGlucoseValue(0.5, 70, 110)).To(Equal(70.0))
	})

	It("blends linearly during the second half", func() {
		Expect(dosing.TargetGlucoseValue(0.75, 70, 110)).To(BeNumerically("~", 90, 1e-9))
	})

	It("uses the maximum value once the effect duration elapsed", func() {
		Expect(dosing.TargetGlucoseValue(1, 70, 110)).To(Equal(110.0))
		Expect(dosing.TargetGlucoseValue(1.4, 70, 110)).To(Equal(110.0))
	})
})

var _ = Describe("InsulinCorrectionUnits", func() {
	It("divides the glucose delta by the sensitivity", func() {
		units, ok := dosing.InsulinCorrectionUnits(200, 100, 50)
		Expect(ok).To(BeTrue())
		Expect(units).To(Equal(2.0))
	})

	It("rejects non positive sensitivities", func() {
		_, ok := dosing.InsulinCorrectionUnits(200, 100, 0)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Classify", func() {
	classify := func(predictions []glucose.Value, suspendThreshold float64) *dosing.Correction {
		return dosing.Classify(predictions, correctionRange(100, 120), now, glucose.MgdLQuantity(suspendThreshold), glucose.MgdLQuantity(50), model)
	}

	It("returns nil without predictions", func() {
		Expect(classify(nil, 70)).To(BeNil())
	})

	It("returns nil when every prediction is outside the effect window", func() {
		predictions := predictionsAt([]int{-10, -5, 370, 400}, []float64{200, 210, 220, 230})
		Expect(classify(predictions, 70)).To(BeNil())
	})

	It("suspends on the first prediction below the suspend threshold", func() {
		predictions := predictionsAt([]int{0, 30, 60, 90}, []float64{120, 65, 60, 250})
		correction := classify(predictions, 70)
		Expect(correction).ToNot(BeNil())
		Expect(correction.Kind).To(Equal(dosing.CorrectionSuspend))
		Expect(*correction.Min).To(Equal(predictions[1]))
		Expect(correction.Delta()).To(BeZero())
	})

	It("always suspends when any in-window prediction is below the threshold", func() {
		for i := 0; i < 20; i++ {
			predictions := test.RandomPredictions(now, 72, 80, 400)
			low := test.Faker.IntBetween(0, len(predictions)-1)
			predictions[low].Quantity = glucose.MgdLQuantity(60)

			correction := classify(predictions, 70)
			Expect(correction).ToNot(BeNil())
			Expect(correction.Kind).To(Equal(dosing.CorrectionSuspend))
		}
	})

	It("ignores low predictions outside the effect window", func() {
		predictions := predictionsAt([]int{0, 60, 380}, []float64{110, 115, 40})
		Expect(classify(predictions, 70).Kind).To(Equal(dosing.CorrectionInRange))
	})

	It("classifies predictions entirely below range", func() {
		predictions := predictionsAt([]int{0, 5, 10}, []float64{70, 65, 60})
		correction := classify(predictions, 55)
		Expect(correction).ToNot(BeNil())
		Expect(correction.Kind).To(Equal(dosing.CorrectionEntirelyBelowRange))
		Expect(correction.Units).To(BeNumerically(">", 0))
		Expect(correction.Delta()).To(BeNumerically("<", 0))
		Expect(*correction.Correcting).To(Equal(predictions[2]))
		Expect(*correction.MinTarget).To(Equal(glucose.MgdLQuantity(100)))
	})

	It("computes below range units toward the lower bound", func() {
		predictions := predictionsAt([]int{0, 120, 240}, []float64{90, 80, 85})
		correction := classify(predictions, 70)
		Expect(correction.Kind).To(Equal(dosing.CorrectionEntirelyBelowRange))

		percentEffected := 1 - model.PercentEffectRemaining(120*time.Minute)
		Expect(correction.Units).To(BeNumerically("~", (100-80)/(50*percentEffected), 1e-9))
	})

	It("classifies a rising prediction as above range", func() {
		predictions := linearPredictions(140, 220, 3*time.Hour)
		correction := classify(predictions, 70)
		Expect(correction).ToNot(BeNil())
		Expect(correction.Kind).To(Equal(dosing.CorrectionAboveRange))
		Expect(correction.Units).To(BeNumerically(">", 0))
		Expect(*correction.Min).To(Equal(predictions[0]))
		Expect(*correction.MinTarget).To(Equal(glucose.MgdLQuantity(100)))
	})

	It("keeps the smallest positive correction", func() {
		predictions := linearPredictions(140, 220, 3*time.Hour)
		correction := classify(predictions, 70)

		for _, p := range predictions {
			elapsed := p.Timestamp.Sub(now)
			effected := (1 - model.PercentEffectRemaining(elapsed)) * 50
			if effected <= 0 {
				continue
			}
			target := dosing.TargetGlucoseValue(elapsed.Seconds()/model.EffectDuration().Seconds(), 70, 110)
			units := (p.Quantity.Value - target) / effected
			if units > 0 {
				Expect(correction.Units).To(BeNumerically("<=", units))
			}
		}
	})

	It("classifies predictions within range", func() {
		correction := classify(flatPredictions(110), 70)
		Expect(correction.Kind).To(Equal(dosing.CorrectionInRange))
		Expect(correction.Target()).To(BeNil())
	})

	It("classifies an eventual high reached after a dip as above range", func() {
		correction := classify(dippingPredictions(110), 70)
		Expect(correction.Kind).To(Equal(dosing.CorrectionAboveRange))
		Expect(correction.Min.Quantity).To(Equal(glucose.MgdLQuantity(90)))
	})

	It("converts between units", func() {
		predictions := linearPredictions(140, 220, 3*time.Hour)
		mmol := make([]glucose.Value, len(predictions))
		for i, p := range predictions {
			mmol[i] = glucose.NewValue(p.Timestamp, glucose.NewQuantity(p.Quantity.In(glucose.MmolL), glucose.MmolL))
		}
		expected := classify(predictions, 70)
		actual := classify(mmol, 70)
		Expect(actual.Kind).To(Equal(expected.Kind))
		Expect(actual.Units).To(BeNumerically("~", expected.Units, 1e-9))
	})
})
