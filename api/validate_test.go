package api_test

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidepool-org/dosing/api"
	errs "github.com/tidepool-org/dosing/errors"
	"github.com/tidepool-org/dosing/snapshot"
)

var _ = Describe("DecodeSnapshot", func() {
	var body map[string]any

	BeforeEach(func() {
		body = loadSnapshot()
	})

	decode := func(kind snapshot.Kind) (snapshot.Snapshot, error) {
		data, err := json.Marshal(body)
		Expect(err).ToNot(HaveOccurred())
		return api.DecodeSnapshot(kind, data)
	}

	DescribeTable("decodes the fixture",
		func(kind snapshot.Kind) {
			s, err := decode(kind)
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Predictions).To(HaveLen(5))
		},
		Entry("for temp basal", snapshot.KindTempBasal),
		Entry("for bolus", snapshot.KindBolus),
		Entry("for microbolus", snapshot.KindMicrobolus),
	)

	It("applies the schema of the kind", func() {
		delete(body["limits"].(map[string]any), "maxBasalRate")

		_, err := decode(snapshot.KindBolus)
		Expect(err).ToNot(HaveOccurred())

		_, err = decode(snapshot.KindTempBasal)
		Expect(errors.Is(err, errs.BadRequest)).To(BeTrue())
	})

	It("rejects a zero sensitivity", func() {
		sensitivity := body["insulinSensitivity"].([]any)
		sensitivity[1].(map[string]any)["value"] = 0
		_, err := decode(snapshot.KindBolus)
		Expect(errors.Is(err, errs.BadRequest)).To(BeTrue())
	})

	It("rejects an unknown insulin model", func() {
		body["insulinModel"] = map[string]any{"kind": "afrezza"}
		_, err := decode(snapshot.KindBolus)
		Expect(errors.Is(err, errs.BadRequest)).To(BeTrue())
	})

	It("reports the same field on every attempt", func() {
		microbolus := body["microbolus"].(map[string]any)
		microbolus["maxSMBMinutes"] = -1
		microbolus["maxUAMSMBMinutes"] = -1

		_, first := decode(snapshot.KindMicrobolus)
		Expect(errors.Is(first, errs.BadRequest)).To(BeTrue())
		for i := 0; i < 20; i++ {
			_, err := decode(snapshot.KindMicrobolus)
			Expect(err).To(MatchError(first.Error()))
		}
	})

	It("applies the checks the schema cannot express", func() {
		body["timeZone"] = "Mars/Olympus_Mons"
		_, err := decode(snapshot.KindBolus)
		Expect(errors.Is(err, errs.ConstraintViolation)).To(BeTrue())
	})

	It("rejects unsupported kinds", func() {
		_, err := decode(snapshot.Kind("extended_bolus"))
		Expect(errors.Is(err, errs.BadRequest)).To(BeTrue())
	})
})
