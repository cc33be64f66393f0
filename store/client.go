package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewClient(ctx context.Context, host string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(host))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}
	return client, nil
}

// NewLifecycleClient connects with the configured connection string and
// disconnects when the application stops.
func NewLifecycleClient(cfg *Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (*mongo.Client, error) {
	cs, err := cfg.GetConnectionString()
	if err != nil {
		return nil, err
	}

	ctx, cancel := NewDbContext()
	defer cancel()

	client, err := NewClient(ctx, cs)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Infow("pinging database", "database", cfg.DatabaseName)
			return client.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

func NewDatabase(client *mongo.Client, cfg *Config) *mongo.Database {
	return client.Database(cfg.DatabaseName)
}
