package dosing

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const defaultMicrobolusIncrement = 0.1

// Config holds the algorithm defaults. Per-call inputs override the
// durations when they are set.
type Config struct {
	// TempBasalDuration is the duration of recommended temp basals.
	TempBasalDuration time.Duration `envconfig:"TIDEPOOL_DOSING_TEMP_BASAL_DURATION" default:"30m"`
	// ContinuationInterval is how much time a running temp basal must have
	// left for an identical recommendation to be skipped.
	ContinuationInterval time.Duration `envconfig:"TIDEPOOL_DOSING_CONTINUATION_INTERVAL" default:"11m"`

	MaxSMBMinutes       float64       `envconfig:"TIDEPOOL_DOSING_MAX_SMB_MINUTES" default:"30"`
	MaxUAMSMBMinutes    float64       `envconfig:"TIDEPOOL_DOSING_MAX_UAM_SMB_MINUTES" default:"30"`
	RecentBolusInterval time.Duration `envconfig:"TIDEPOOL_DOSING_RECENT_BOLUS_INTERVAL" default:"3m"`
	MicrobolusIncrement float64       `envconfig:"TIDEPOOL_DOSING_MICROBOLUS_INCREMENT" default:"0.1"`
	MaxLowTempDuration  time.Duration `envconfig:"TIDEPOOL_DOSING_MAX_LOW_TEMP_DURATION" default:"60m"`
	MinLowTempDuration  time.Duration `envconfig:"TIDEPOOL_DOSING_MIN_LOW_TEMP_DURATION" default:"30m"`
}

func DefaultConfig() Config {
	return Config{
		TempBasalDuration:    30 * time.Minute,
		ContinuationInterval: 11 * time.Minute,
		MaxSMBMinutes:        30,
		MaxUAMSMBMinutes:     30,
		RecentBolusInterval:  3 * time.Minute,
		MicrobolusIncrement:  defaultMicrobolusIncrement,
		MaxLowTempDuration:   60 * time.Minute,
		MinLowTempDuration:   30 * time.Minute,
	}
}

func NewConfig() (Config, error) {
	cfg := Config{}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) MicrobolusLimits() MicrobolusLimits {
	return MicrobolusLimits{
		MaxSMBMinutes:       c.MaxSMBMinutes,
		MaxUAMSMBMinutes:    c.MaxUAMSMBMinutes,
		RecentBolusInterval: c.RecentBolusInterval,
		Increment:           c.MicrobolusIncrement,
		MaxLowTempDuration:  c.MaxLowTempDuration,
		MinLowTempDuration:  c.MinLowTempDuration,
	}
}
