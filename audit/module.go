package audit

import (
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"

	"github.com/tidepool-org/dosing/store"
)

type ModuleConfig struct {
	Enabled bool `envconfig:"TIDEPOOL_DOSING_AUDIT_ENABLED"`
}

// Module provides the Recorder. The database is only connected to when the
// audit trail is enabled.
func Module() fx.Option {
	cfg := ModuleConfig{}
	if err := envconfig.Process("", &cfg); err != nil {
		return fx.Error(err)
	}

	if !cfg.Enabled {
		return fx.Provide(NewDisabledRecorder)
	}

	return fx.Provide(
		store.NewConfig,
		store.NewLifecycleClient,
		store.NewDatabase,
		NewRepository,
	)
}
