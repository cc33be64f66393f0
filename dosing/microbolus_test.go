package dosing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidepool-org/dosing/dosing"
	"github.com/tidepool-org/dosing/glucose"
	"github.com/tidepool-org/dosing/test"
)

var _ = Describe("AsMicrobolus", func() {
	high := glucose.NewValue(now, glucose.MgdLQuantity(200))
	target := glucose.MgdLQuantity(100)

	var input dosing.MicrobolusInput

	BeforeEach(func() {
		input = dosing.MicrobolusInput{
			Date:               now,
			NaiveEventualBG:    glucose.MgdLQuantity(60),
			MinIOBPredBG:       glucose.MgdLQuantity(80),
			MaxBasalRate:       3,
			MaxBolus:           5,
			Sensitivity:        glucose.MgdLQuantity(50),
			CarbRatio:          10,
			ScheduledBasalRate: 1,
			Limits:             dosing.DefaultConfig().MicrobolusLimits(),
		}
	})

	It("delivers half the requirement rounded down to 0.1 U", func() {
		input.Limits.MaxSMBMinutes = 300
		input.Limits.MaxUAMSMBMinutes = 300
		result := dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input)
		Expect(result.Decision).To(Equal(dosing.MicrobolusRecommend))
		Expect(result.Bolus.Amount).To(BeNumerically("~", 0.6, 1e-9))
		Expect(result.Bolus.Amount).To(BeNumerically("<=", 0.6))
	})

	It("pairs a zero temp when a long low temp is required", func() {
		// worst case: (100 - (60 + 80) / 2) / 50 = 0.6 U = 36 minutes of basal
		result := dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input)
		Expect(result.Decision).To(Equal(dosing.MicrobolusRecommend))
		Expect(*result.TempBasal).To(Equal(dosing.TempBasalRecommendation{UnitsPerHour: 0, Duration: 36 * time.Minute}))
	})

	It("pairs a reduced temp over 30 minutes when a short low temp is required", func() {
		// worst case: (100 - (80 + 80) / 2) / 50 = 0.4 U = 24 minutes of basal
		input.NaiveEventualBG = glucose.MgdLQuantity(80)
		result := dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input)
		Expect(result.Decision).To(Equal(dosing.MicrobolusRecommend))
		Expect(result.TempBasal.UnitsPerHour).To(BeNumerically("~", 0.8, 1e-9))
		Expect(result.TempBasal.Duration).To(Equal(30 * time.Minute))
	})

	It("caps the low temp duration", func() {
		input.NaiveEventualBG = glucose.MgdLQuantity(0)
		input.MinIOBPredBG = glucose.MgdLQuantity(0)
		result := dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input)
		Expect(result.TempBasal.Duration).To(Equal(60 * time.Minute))
	})

	It("falls back when no low temp is required", func() {
		input.NaiveEventualBG = glucose.MgdLQuantity(150)
		input.MinIOBPredBG = glucose.MgdLQuantity(130)
		result := dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input)
		Expect(result.Decision).To(Equal(dosing.MicrobolusFallback))
		Expect(result.TempBasal).To(BeNil())
		Expect(result.Bolus).To(BeNil())
	})

	It("falls back when the microbolus is too small to deliver", func() {
		result := dosing.AboveRange(high, high, target, 0.15).AsMicrobolus(input)
		Expect(result.Decision).To(Equal(dosing.MicrobolusFallback))
	})

	It("falls back unless glucose is above range", func() {
		Expect(dosing.InRange().AsMicrobolus(input).Decision).To(Equal(dosing.MicrobolusFallback))
		Expect(dosing.Suspend(high).AsMicrobolus(input).Decision).To(Equal(dosing.MicrobolusFallback))
		Expect(dosing.EntirelyBelowRange(high, target, 1).AsMicrobolus(input).Decision).To(Equal(dosing.MicrobolusFallback))
	})

	It("continues the running command shortly after a bolus", func() {
		lastBolus := now.Add(-2 * time.Minute)
		input.LastBolusTime = &lastBolus
		result := dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input)
		Expect(result.Decision).To(Equal(dosing.MicrobolusContinue))
		Expect(result.TempBasal).To(BeNil())
	})

	It("uses the configured recent bolus interval", func() {
		lastBolus := now.Add(-4 * time.Minute)
		input.LastBolusTime = &lastBolus
		Expect(dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input).Decision).To(Equal(dosing.MicrobolusRecommend))

		input.Limits.RecentBolusInterval = 5 * time.Minute
		Expect(dosing.AboveRange(high, high, target, 1.37).AsMicrobolus(input).Decision).To(Equal(dosing.MicrobolusContinue))
	})

	Describe("bolus cap", func() {
		BeforeEach(func() {
			input.MaxBolus = 10
			input.Limits.MaxSMBMinutes = 30
			input.Limits.MaxUAMSMBMinutes = 60
		})

		It("uses the UAM window when carbs cover the insulin on board", func() {
			input.IOB = 1
			input.COB = 20
			result := dosing.AboveRange(high, high, target, 4).AsMicrobolus(input)
			Expect(result.Bolus.Amount).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("uses the SMB window when insulin on board exceeds the mealtime requirement", func() {
			input.IOB = 3
			input.COB = 20
			result := dosing.AboveRange(high, high, target, 4).AsMicrobolus(input)
			Expect(result.Bolus.Amount).To(BeNumerically("~", 0.5, 1e-9))
		})

		It("uses the UAM window without insulin on board", func() {
			result := dosing.AboveRange(high, high, target, 4).AsMicrobolus(input)
			Expect(result.Bolus.Amount).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("never exceeds the maximum bolus", func() {
			input.MaxBolus = 0.3
			result := dosing.AboveRange(high, high, target, 4).AsMicrobolus(input)
			Expect(result.Bolus.Amount).To(BeNumerically("<=", 0.3))
		})
	})
})

var _ = Describe("RecommendedSuperMicrobolus limits", func() {
	calculator := dosing.NewCalculator(dosing.DefaultConfig(), nil)

	It("never leaves the allowed rate and bolus ranges", func() {
		for i := 0; i < 100; i++ {
			request := dosing.MicrobolusRequest{
				Evaluation: dosing.Evaluation{
					Predictions:      test.RandomPredictions(now, 72, 40, 400),
					CorrectionRange:  correctionRange(100, 120),
					Date:             now,
					SuspendThreshold: mgdl(70),
					Sensitivity:      sensitivity(test.RandomRate(20, 80)),
					Model:            model,
				},
				MinIOBPredBG:   glucose.MgdLQuantity(test.RandomRate(0, 300)),
				PendingInsulin: test.RandomRate(0, 1),
				CarbRatios:     carbRatios(test.RandomRate(5, 20)),
				BasalRates:     basalRates(test.RandomRate(0, 3)),
				IOB:            test.RandomRate(0, 5),
				COB:            test.RandomRate(0, 80),
				MaxBasalRate:   test.RandomRate(0, 5),
				MaxBolus:       test.RandomRate(0, 3),
				RateRounder:    dosing.FloorToIncrement(0.05),
			}

			result := calculator.RecommendedSuperMicrobolus(request)
			if result.TempBasal != nil {
				Expect(result.TempBasal.UnitsPerHour).To(BeNumerically(">=", 0))
				Expect(result.TempBasal.UnitsPerHour).To(BeNumerically("<=", request.MaxBasalRate))
			}
			if result.Bolus != nil {
				Expect(result.Bolus.Amount).To(BeNumerically(">=", 0))
				Expect(result.Bolus.Amount).To(BeNumerically("<=", request.MaxBolus))
			}
		}
	})
})
