package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	oapiMiddleware "github.com/oapi-codegen/echo-middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tidepool-org/dosing/audit"
	"github.com/tidepool-org/dosing/config"
	"github.com/tidepool-org/dosing/dosing"
	errs "github.com/tidepool-org/dosing/errors"
	"github.com/tidepool-org/dosing/logger"
)

func Start(e *echo.Echo, cfg *config.Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	address := fmt.Sprintf(":%d", cfg.HttpPort)
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorw("http server stopped unexpectedly", "address", address, zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, recorder audit.Recorder, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Lifecycle hooks run in topological order, so the recorder (and
			// its database, when enabled) is initialized at this point.
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			healthCheck.SetReady(false)
			return nil
		},
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	// Do not validate servers in the open api spec
	swagger.Servers = nil

	// Skip validation and logging for the readiness route
	skipper := RouteSkipper([]string{"/ready"})
	requestValidator := oapiMiddleware.OapiRequestValidatorWithOptions(swagger, &oapiMiddleware.Options{
		Skipper: skipper,
	})

	e.Use(middleware.Recover())
	e.Use(WithSkipper(skipper, echozap.ZapLogger(logger)))
	e.Use(requestValidator)

	e.HTTPErrorHandler = errs.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}

// Dependencies returns the service's dependency graph. Commands add their
// own options on top of it.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			config.NewFromEnv,
			dosing.NewConfig,
			dosing.NewCalculator,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
		audit.Module(),
	}
}

func MainLoop() {
	fx.New(
		append(Dependencies(),
			fx.Invoke(SetReady),
			fx.Invoke(Start),
		)...,
	).Run()
}
