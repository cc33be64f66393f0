package api

// Routes and wire types are generated from the OpenAPI document.
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config codegen.yaml ../spec/dosing.v1.yaml
