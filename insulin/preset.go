package insulin

import (
	"fmt"
	"time"
)

type Preset string

const (
	PresetRapidActingAdult Preset = "humalogNovologAdult"
	PresetRapidActingChild Preset = "humalogNovologChild"
	PresetFiasp            Preset = "fiasp"
)

var Presets = []Preset{PresetRapidActingAdult, PresetRapidActingChild, PresetFiasp}

const (
	presetActionDuration = 360 * time.Minute
	presetEffectDelay    = 10 * time.Minute
)

func ParsePreset(value string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown insulin model preset %q", value)
}

func (p Preset) ActionDuration() time.Duration {
	return presetActionDuration
}

func (p Preset) PeakActivity() time.Duration {
	switch p {
	case PresetRapidActingChild:
		return 65 * time.Minute
	case PresetFiasp:
		return 55 * time.Minute
	default:
		return 75 * time.Minute
	}
}

func (p Preset) EffectDelay() time.Duration {
	return presetEffectDelay
}

func (p Preset) Model() Exponential {
	return NewExponential(p.ActionDuration(), p.PeakActivity(), p.EffectDelay())
}

func (p Preset) Title() string {
	switch p {
	case PresetRapidActingChild:
		return "Rapid-Acting – Children"
	case PresetFiasp:
		return "Fiasp"
	default:
		return "Rapid-Acting – Adults"
	}
}

func (p Preset) Subtitle() string {
	switch p {
	case PresetRapidActingChild:
		return "An adjustment to the adult model based on empirical effects in children."
	case PresetFiasp:
		return "A model based on the published absorption of Fiasp ultra-rapid-acting insulin."
	default:
		return "A model based on the published absorption of Humalog, Novolog, and Apidra insulin in adults."
	}
}
