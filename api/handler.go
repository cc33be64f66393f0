package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tidepool-org/dosing/audit"
	"github.com/tidepool-org/dosing/dosing"
	errs "github.com/tidepool-org/dosing/errors"
	"github.com/tidepool-org/dosing/pointer"
	"github.com/tidepool-org/dosing/snapshot"
)

type Handler struct {
	calculator *dosing.Calculator
	recorder   audit.Recorder
	logger     *zap.SugaredLogger
}

var _ ServerInterface = &Handler{}

type Params struct {
	fx.In

	Calculator *dosing.Calculator
	Recorder   audit.Recorder
	Logger     *zap.SugaredLogger
}

func NewHandler(p Params) *Handler {
	return &Handler{
		calculator: p.Calculator,
		recorder:   p.Recorder,
		logger:     p.Logger,
	}
}

func (h *Handler) RecommendTempBasal(ec echo.Context) error {
	s, err := bindSnapshot(ec, snapshot.KindTempBasal)
	if err != nil {
		return err
	}
	in, err := s.TempBasalInput()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.BadRequest, err)
	}

	response := TempBasalResponse{
		Recommendation: NewTempBasal(h.calculator.RecommendedTempBasal(in)),
	}
	response.EvaluationId = h.record(ec.Request().Context(), snapshot.KindTempBasal, s, response)
	return ec.JSON(http.StatusOK, response)
}

func (h *Handler) RecommendBolus(ec echo.Context, params RecommendBolusParams) error {
	s, err := bindSnapshot(ec, snapshot.KindBolus)
	if err != nil {
		return err
	}
	in, err := s.BolusInput()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.BadRequest, err)
	}

	tag := NegotiateLanguage(pointer.Default(params.AcceptLanguage, ""))
	response := BolusResponse{
		Recommendation: NewBolus(h.calculator.RecommendedBolus(in), tag),
	}
	response.EvaluationId = h.record(ec.Request().Context(), snapshot.KindBolus, s, response)
	return ec.JSON(http.StatusOK, response)
}

func (h *Handler) RecommendMicrobolus(ec echo.Context, params RecommendMicrobolusParams) error {
	s, err := bindSnapshot(ec, snapshot.KindMicrobolus)
	if err != nil {
		return err
	}
	in, err := s.MicrobolusRequest()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.BadRequest, err)
	}

	tag := NegotiateLanguage(pointer.Default(params.AcceptLanguage, ""))
	response := NewMicrobolusResponse(h.calculator.RecommendedSuperMicrobolus(in), tag)
	response.EvaluationId = h.record(ec.Request().Context(), snapshot.KindMicrobolus, s, response)
	return ec.JSON(http.StatusOK, response)
}

func (h *Handler) GetEvaluation(ec echo.Context, evaluationId openapi_types.UUID) error {
	evaluation, err := h.recorder.Get(ec.Request().Context(), evaluationId.String())
	if err != nil {
		return err
	}

	var result bson.M
	if err := bson.Unmarshal(evaluation.Result, &result); err != nil {
		return fmt.Errorf("%w: unable to decode evaluation result: %v", errs.InternalServerError, err)
	}

	return ec.JSON(http.StatusOK, EvaluationResponse{
		Id:          evaluation.Id,
		Kind:        snapshot.Kind(evaluation.Kind),
		CreatedTime: evaluation.CreatedTime,
		Date:        evaluation.Date,
		Result:      result,
	})
}

func (h *Handler) ListInsulinModels(ec echo.Context) error {
	return ec.JSON(http.StatusOK, NewInsulinModels())
}

// bindSnapshot decodes a body the request validator already checked against
// the schema of kind, then applies the checks the schema cannot express.
func bindSnapshot(ec echo.Context, kind snapshot.Kind) (snapshot.Snapshot, error) {
	var s snapshot.Snapshot
	if err := ec.Bind(&s); err != nil {
		return s, fmt.Errorf("%w: %v", errs.BadRequest, err)
	}
	if err := s.Validate(kind); err != nil {
		return s, err
	}
	return s, nil
}

// record stores the evaluation and returns its id, or nil when it could not
// be recorded. Failures never change the response.
func (h *Handler) record(ctx context.Context, kind snapshot.Kind, s snapshot.Snapshot, result any) *string {
	evaluation, err := audit.NewEvaluation(string(kind), s.Date, s, result)
	if err != nil {
		h.logger.Errorw("unable to create evaluation record", "kind", kind, zap.Error(err))
		return nil
	}
	if err := h.recorder.Record(ctx, evaluation); err != nil {
		h.logger.Errorw("unable to record evaluation", "kind", kind, "evaluationId", evaluation.Id, zap.Error(err))
		return nil
	}
	return &evaluation.Id
}
