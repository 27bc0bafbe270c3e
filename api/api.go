// Package api embeds the OpenAPI 3 document of the HTTP interface.
//
// The document drives request validation in the HTTP adapter and is published through
// the swag registry, so /swagger/doc.json serves exactly what the server enforces.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var source []byte

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(source)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

type document struct {
	once sync.Once
	json string
}

// ReadDoc renders the document as JSON for the swagger UI.
func (d *document) ReadDoc() string {
	d.once.Do(func() {
		doc, err := Load(context.Background())
		if err != nil {
			return
		}
		if raw, marshalErr := json.Marshal(doc); marshalErr == nil {
			d.json = string(raw)
		}
	})
	return d.json
}

func init() {
	swag.Register(swag.Name, &document{})
}
