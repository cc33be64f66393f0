package dosing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidepool-org/dosing/dosing"
)

var _ = Describe("Config", func() {
	It("loads the documented defaults from an empty environment", func() {
		cfg, err := dosing.NewConfig()
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg).To(Equal(dosing.DefaultConfig()))
	})

	It("overrides defaults from the environment", func() {
		GinkgoT().Setenv("TIDEPOOL_DOSING_RECENT_BOLUS_INTERVAL", "5m")
		GinkgoT().Setenv("TIDEPOOL_DOSING_MAX_UAM_SMB_MINUTES", "90")

		cfg, err := dosing.NewConfig()
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.RecentBolusInterval).To(Equal(5 * time.Minute))
		Expect(cfg.MaxUAMSMBMinutes).To(Equal(90.0))
		Expect(cfg.MicrobolusLimits().MaxUAMSMBMinutes).To(Equal(90.0))
	})

	It("rejects malformed durations", func() {
		GinkgoT().Setenv("TIDEPOOL_DOSING_TEMP_BASAL_DURATION", "half an hour")

		_, err := dosing.NewConfig()
		Expect(err).To(HaveOccurred())
	})
})

