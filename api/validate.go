package api

import (
	"encoding/json"
	"fmt"

	errs "github.com/tidepool-org/dosing/errors"
	"github.com/tidepool-org/dosing/snapshot"
)

var snapshotSchemas = map[snapshot.Kind]string{
	snapshot.KindTempBasal:  "TempBasalSnapshot",
	snapshot.KindBolus:      "BolusSnapshot",
	snapshot.KindMicrobolus: "MicrobolusSnapshot",
}

// DecodeSnapshot checks a raw snapshot against the request schema of kind
// and decodes it. It serves callers that bypass the request validator.
func DecodeSnapshot(kind snapshot.Kind, data []byte) (snapshot.Snapshot, error) {
	var s snapshot.Snapshot

	name, ok := snapshotSchemas[kind]
	if !ok {
		return s, fmt.Errorf("%w: unsupported recommendation kind %q", errs.BadRequest, kind)
	}
	swagger, err := GetSwagger()
	if err != nil {
		return s, err
	}
	schema, ok := swagger.Components.Schemas[name]
	if !ok || schema.Value == nil {
		return s, fmt.Errorf("schema %s is not defined", name)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return s, fmt.Errorf("%w: %v", errs.BadRequest, err)
	}
	if err := schema.Value.VisitJSON(value); err != nil {
		return s, fmt.Errorf("%w: %v", errs.BadRequest, err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %v", errs.BadRequest, err)
	}
	if err := s.Validate(kind); err != nil {
		return s, err
	}
	return s, nil
}
