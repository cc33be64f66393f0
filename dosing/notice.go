package dosing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tidepool-org/dosing/glucose"
)

type NoticeKind string

const (
	NoticeGlucoseBelowSuspendThreshold NoticeKind = "glucoseBelowSuspendThreshold"
	NoticePredictedGlucoseBelowTarget  NoticeKind = "predictedGlucoseBelowTarget"
	NoticeCurrentGlucoseBelowTarget    NoticeKind = "currentGlucoseBelowTarget"
)

// Notice explains to the user why a bolus recommendation may be unexpected.
type Notice struct {
	Kind    NoticeKind    `json:"kind" bson:"kind"`
	Glucose glucose.Value `json:"glucose" bson:"glucose"`
}

// Message renders the notice for display in the given language.
func (n Notice) Message(tag language.Tag) string {
	p := message.NewPrinter(tag)
	value := n.Glucose.Quantity.Value
	unit := string(n.Glucose.Quantity.Unit)
	switch n.Kind {
	case NoticeGlucoseBelowSuspendThreshold:
		return p.Sprintf("Predicted glucose of %.0f %s is below your suspend threshold setting.", value, unit)
	case NoticePredictedGlucoseBelowTarget:
		return p.Sprintf("Predicted glucose of %.0f %s is below your correction range.", value, unit)
	case NoticeCurrentGlucoseBelowTarget:
		return p.Sprintf("Current glucose of %.0f %s is below your correction range.", value, unit)
	}
	return ""
}
