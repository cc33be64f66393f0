package audit

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	errs "github.com/tidepool-org/dosing/errors"
)

type repository struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (Recorder, error) {
	repo := &repository{
		collection: db.Collection(CollectionName),
		logger:     logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdTime", Value: 1}},
			Options: options.Index().SetName("CreatedTime"),
		},
		{
			Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("KindDate"),
		},
	})
	return err
}

func (r *repository) Record(ctx context.Context, evaluation Evaluation) error {
	if _, err := r.collection.InsertOne(ctx, evaluation); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: evaluation %s was already recorded", errs.ConstraintViolation, evaluation.Id)
		}
		return fmt.Errorf("error inserting evaluation: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Evaluation, error) {
	var evaluation Evaluation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&evaluation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound
	} else if err != nil {
		return nil, fmt.Errorf("error finding evaluation: %w", err)
	}
	return &evaluation, nil
}
