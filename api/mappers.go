package api

import (
	"golang.org/x/text/language"

	"github.com/tidepool-org/dosing/dosing"
	"github.com/tidepool-org/dosing/insulin"
)

var supportedLanguages = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.English,
})

func NewTempBasal(recommendation *dosing.TempBasalRecommendation) *TempBasal {
	if recommendation == nil {
		return nil
	}
	return &TempBasal{
		UnitsPerHour:    recommendation.UnitsPerHour,
		DurationMinutes: recommendation.Duration.Minutes(),
		Cancel:          recommendation.IsCancel(),
	}
}

func NewBolus(recommendation dosing.BolusRecommendation, tag language.Tag) Bolus {
	return Bolus{
		Amount:         recommendation.Amount,
		PendingInsulin: recommendation.PendingInsulin,
		Notice:         NewNotice(recommendation.Notice, tag),
	}
}

func NewNotice(notice *dosing.Notice, tag language.Tag) *Notice {
	if notice == nil {
		return nil
	}
	return &Notice{
		Kind:             notice.Kind,
		Message:          notice.Message(tag),
		GlucoseValue:     notice.Glucose.Quantity.Value,
		GlucoseUnits:     string(notice.Glucose.Quantity.Unit),
		GlucoseTimestamp: notice.Glucose.Timestamp,
	}
}

func NewMicrobolusResponse(recommendation dosing.MicrobolusRecommendation, tag language.Tag) MicrobolusResponse {
	response := MicrobolusResponse{
		Decision:  recommendation.Decision,
		TempBasal: NewTempBasal(recommendation.TempBasal),
	}
	if recommendation.Bolus != nil {
		bolus := NewBolus(*recommendation.Bolus, tag)
		response.Bolus = &bolus
	}
	return response
}

// NegotiateLanguage picks the notice language from an Accept-Language header.
func NegotiateLanguage(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(supportedLanguages, acceptLanguage)
	return tag
}

// NewInsulinModels lists the selectable models. Walsh is listed with its
// default duration.
func NewInsulinModels() []InsulinModel {
	settings := make([]insulin.Settings, 0, len(insulin.Presets)+2)
	for _, preset := range insulin.Presets {
		settings = append(settings, insulin.ExponentialPresetSettings(preset))
	}
	settings = append(settings, insulin.WalshSettings(insulin.DefaultWalshActionDuration), insulin.InhaledSettings())

	models := make([]InsulinModel, 0, len(settings))
	for _, s := range settings {
		model := s.Model()
		models = append(models, InsulinModel{
			Settings:              s,
			Title:                 s.Title(),
			Subtitle:              s.Subtitle(),
			DelayMinutes:          model.Delay().Minutes(),
			EffectDurationMinutes: model.EffectDuration().Minutes(),
		})
	}
	return models
}
