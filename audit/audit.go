// Package audit keeps a trail of every recommendation the service returned,
// together with the snapshot it was computed from.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const CollectionName = "evaluations"

// Evaluation is a single recorded recommendation.
type Evaluation struct {
	Id          string    `bson:"_id" json:"id"`
	Kind        string    `bson:"kind" json:"kind"`
	CreatedTime time.Time `bson:"createdTime" json:"createdTime"`
	Date        time.Time `bson:"date" json:"date"`
	Snapshot    bson.Raw  `bson:"snapshot" json:"-"`
	Result      bson.Raw  `bson:"result" json:"-"`
}

//go:generate go tool mockgen -source=./audit.go -destination=./test/mock_audit.go -package test

type Recorder interface {
	Record(ctx context.Context, evaluation Evaluation) error
	Get(ctx context.Context, id string) (*Evaluation, error)
	Initialize(ctx context.Context) error
}

// NewEvaluation creates an Evaluation from the request snapshot and the
// returned result. Both are stored with their JSON field names.
func NewEvaluation(kind string, date time.Time, snapshot interface{}, result interface{}) (Evaluation, error) {
	rawSnapshot, err := toDocument(snapshot)
	if err != nil {
		return Evaluation{}, fmt.Errorf("error marshaling evaluation snapshot: %w", err)
	}
	rawResult, err := toDocument(result)
	if err != nil {
		return Evaluation{}, fmt.Errorf("error marshaling evaluation result: %w", err)
	}

	return Evaluation{
		Id:          uuid.NewString(),
		Kind:        kind,
		CreatedTime: time.Now(),
		Date:        date,
		Snapshot:    rawSnapshot,
		Result:      rawResult,
	}, nil
}

func toDocument(v interface{}) (bson.Raw, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var document bson.D
	if err := bson.UnmarshalExtJSON(data, false, &document); err != nil {
		return nil, err
	}
	return bson.Marshal(document)
}
