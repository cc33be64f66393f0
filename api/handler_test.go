package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/tidepool-org/dosing/api"
	"github.com/tidepool-org/dosing/audit"
	auditTest "github.com/tidepool-org/dosing/audit/test"
	"github.com/tidepool-org/dosing/dosing"
	errs "github.com/tidepool-org/dosing/errors"
	"github.com/tidepool-org/dosing/test"
)

func loadSnapshot() map[string]any {
	data, err := test.LoadFixture("test/fixtures/high_glucose.json")
	Expect(err).ToNot(HaveOccurred())

	var s map[string]any
	Expect(json.Unmarshal(data, &s)).To(Succeed())
	return s
}

func evaluationOfKind(kind string) gomock.Matcher {
	return test.Match(func(e audit.Evaluation) bool {
		return e.Kind == kind && e.Id != "" && len(e.Result) > 0 && len(e.Snapshot) > 0
	})
}

var _ = Describe("Handler", func() {
	var ctrl *gomock.Controller
	var recorder *auditTest.MockRecorder
	var healthCheck *api.HealthCheck
	var server *echo.Echo
	var body map[string]any

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		recorder = auditTest.NewMockRecorder(ctrl)
		healthCheck = api.NewHealthCheck()
		handler := api.NewHandler(api.Params{
			Calculator: dosing.NewCalculator(dosing.DefaultConfig(), zap.NewNop().Sugar()),
			Recorder:   recorder,
			Logger:     zap.NewNop().Sugar(),
		})
		var err error
		server, err = api.NewServer(handler, healthCheck, zap.NewNop())
		Expect(err).ToNot(HaveOccurred())
		body = loadSnapshot()
	})

	post := func(path string, payload any) *httptest.ResponseRecorder {
		data, err := json.Marshal(payload)
		Expect(err).ToNot(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec
	}

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec
	}

	Describe("Ready", func() {
		It("is unavailable until the service started", func() {
			Expect(get("/ready").Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("is ready once the lifecycle started", func() {
			lifecycle := fxtest.NewLifecycle(GinkgoT())
			api.SetReady(healthCheck, recorder, lifecycle)
			lifecycle.RequireStart()
			Expect(get("/ready").Code).To(Equal(http.StatusOK))

			lifecycle.RequireStop()
			Expect(get("/ready").Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("RecommendTempBasal", func() {
		It("returns a high temp clamped to the max basal rate", func() {
			recorder.EXPECT().Record(gomock.Any(), evaluationOfKind("temp_basal")).Return(nil)

			rec := post("/v1/recommendations/temp_basal", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var response api.TempBasalResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &response)).To(Succeed())
			Expect(response.EvaluationId).ToNot(BeNil())
			Expect(response.Recommendation).ToNot(BeNil())
			Expect(response.Recommendation.UnitsPerHour).To(BeNumerically("~", 3.0, 1e-9))
			Expect(response.Recommendation.DurationMinutes).To(Equal(30.0))
			Expect(response.Recommendation.Cancel).To(BeFalse())
		})

		It("rejects a snapshot without a max basal rate", func() {
			delete(body["limits"].(map[string]any), "maxBasalRate")

			rec := post("/v1/recommendations/temp_basal", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a negative basal rate", func() {
			basalRates := body["basalRates"].([]any)
			basalRates[0].(map[string]any)["value"] = -0.1
			Expect(post("/v1/recommendations/temp_basal", body).Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects unsupported glucose units", func() {
			body["glucoseUnits"] = "mg"
			Expect(post("/v1/recommendations/temp_basal", body).Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects predictions out of order", func() {
			predictions := body["predictions"].([]any)
			predictions[0], predictions[1] = predictions[1], predictions[0]
			Expect(post("/v1/recommendations/temp_basal", body).Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("rejects a basal schedule that does not start at midnight", func() {
			basalRates := body["basalRates"].([]any)
			basalRates[0].(map[string]any)["start"] = 1000
			Expect(post("/v1/recommendations/temp_basal", body).Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("rejects malformed json", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/recommendations/temp_basal", bytes.NewBufferString("{"))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown insulin model", func() {
			body["insulinModel"] = map[string]any{"kind": "afrezza"}
			Expect(post("/v1/recommendations/temp_basal", body).Code).To(Equal(http.StatusBadRequest))
		})

		It("still responds when the evaluation cannot be recorded", func() {
			recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("database unavailable"))

			rec := post("/v1/recommendations/temp_basal", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var response api.TempBasalResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &response)).To(Succeed())
			Expect(response.EvaluationId).To(BeNil())
			Expect(response.Recommendation).ToNot(BeNil())
		})
	})

	Describe("RecommendBolus", func() {
		It("floors the correction to a supported volume", func() {
			recorder.EXPECT().Record(gomock.Any(), evaluationOfKind("bolus")).Return(nil)

			rec := post("/v1/recommendations/bolus", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var response api.BolusResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Recommendation.Amount).To(Equal(1.0))
			Expect(response.Recommendation.Notice).To(BeNil())
		})

		It("explains a withheld bolus below the suspend threshold", func() {
			recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			predictions := body["predictions"].([]any)
			predictions[2].(map[string]any)["value"] = 60.0

			rec := post("/v1/recommendations/bolus", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var response api.BolusResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Recommendation.Amount).To(BeZero())
			Expect(response.Recommendation.Notice).ToNot(BeNil())
			Expect(response.Recommendation.Notice.Kind).To(Equal(dosing.NoticeGlucoseBelowSuspendThreshold))
			Expect(response.Recommendation.Notice.GlucoseValue).To(Equal(60.0))
			Expect(response.Recommendation.Notice.Message).To(ContainSubstring("suspend threshold"))
		})
	})

	Describe("RecommendMicrobolus", func() {
		It("pairs a microbolus with a low temp", func() {
			recorder.EXPECT().Record(gomock.Any(), evaluationOfKind("microbolus")).Return(nil)

			rec := post("/v1/recommendations/microbolus", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var response api.MicrobolusResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Decision).To(Equal(dosing.MicrobolusRecommend))
			Expect(response.Bolus).ToNot(BeNil())
			Expect(response.Bolus.Amount).To(BeNumerically("~", 0.5, 1e-9))
			Expect(response.TempBasal).ToNot(BeNil())
			Expect(response.TempBasal.UnitsPerHour).To(BeNumerically("~", 0.1, 1e-9))
			Expect(response.TempBasal.DurationMinutes).To(Equal(30.0))
		})

		It("continues the running command after a recent bolus", func() {
			recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			body["pump"].(map[string]any)["lastBolusTime"] = "2024-01-01T19:58:00Z"

			rec := post("/v1/recommendations/microbolus", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var response api.MicrobolusResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Decision).To(Equal(dosing.MicrobolusContinue))
			Expect(response.Bolus).To(BeNil())
			Expect(response.TempBasal).To(BeNil())
		})

		It("requires the microbolus section", func() {
			delete(body, "microbolus")
			Expect(post("/v1/recommendations/microbolus", body).Code).To(Equal(http.StatusBadRequest))
		})

		It("requires at least one prediction", func() {
			body["predictions"] = []any{}
			Expect(post("/v1/recommendations/microbolus", body).Code).To(Equal(http.StatusBadRequest))
		})

		It("does not require the microbolus section for boluses", func() {
			recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			delete(body, "microbolus")
			Expect(post("/v1/recommendations/bolus", body).Code).To(Equal(http.StatusOK))
		})
	})

	Describe("GetEvaluation", func() {
		It("returns a recorded evaluation", func() {
			date := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
			evaluation, err := audit.NewEvaluation("bolus", date, body, api.BolusResponse{Recommendation: api.Bolus{Amount: 1.5}})
			Expect(err).ToNot(HaveOccurred())
			recorder.EXPECT().Get(gomock.Any(), evaluation.Id).Return(&evaluation, nil)

			rec := get("/v1/evaluations/" + evaluation.Id)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var response map[string]any
			Expect(json.Unmarshal(rec.Body.Bytes(), &response)).To(Succeed())
			Expect(response["kind"]).To(Equal("bolus"))
			Expect(response["result"]).To(HaveKeyWithValue("recommendation", HaveKeyWithValue("amount", 1.5)))
		})

		It("returns not found for unknown evaluations", func() {
			id := uuid.NewString()
			recorder.EXPECT().Get(gomock.Any(), id).Return(nil, errs.NotFound)
			Expect(get("/v1/evaluations/" + id).Code).To(Equal(http.StatusNotFound))
		})

		It("rejects ids that are not uuids", func() {
			Expect(get("/v1/evaluations/missing").Code).To(Equal(http.StatusBadRequest))
		})
	})
})

var _ = Describe("NegotiateLanguage", func() {
	It("falls back to english", func() {
		base, _ := api.NegotiateLanguage("fr-CA").Base()
		Expect(base.String()).To(Equal("en"))
	})
})

var _ = Describe("ListInsulinModels", func() {
	It("lists presets with their display strings", func() {
		handler := api.NewHandler(api.Params{
			Calculator: dosing.NewCalculator(dosing.DefaultConfig(), nil),
			Logger:     zap.NewNop().Sugar(),
		})
		server, err := api.NewServer(handler, api.NewHealthCheck(), zap.NewNop())
		Expect(err).ToNot(HaveOccurred())

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/insulin_models", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))

		var models []map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &models)).To(Succeed())
		Expect(models).To(HaveLen(5))
		Expect(models[0]).To(HaveKeyWithValue("title", "Rapid-Acting – Adults"))
		Expect(models[0]).To(HaveKeyWithValue("effectDurationMinutes", 370.0))
		Expect(models[0]["settings"]).To(HaveKeyWithValue("preset", "humalogNovologAdult"))
		Expect(models[3]["settings"]).To(HaveKeyWithValue("actionDurationMinutes", 360.0))
		Expect(models[4]).To(HaveKeyWithValue("delayMinutes", 0.0))
	})
})
