package model

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

// ErrInvalidDocument is returned when a document fails the ingest schema.
var ErrInvalidDocument = errors.New("invalid resume document")

var schema = mustSchema()

func mustSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(errors.Wrap(err, "compile resume schema"))
	}
	return s
}

// ValidateMap validates a generic map against the embedded resume schema.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

func validate(loader gojsonschema.JSONLoader) error {
	res, err := schema.Validate(loader)
	if err != nil {
		return errors.Wrap(ErrInvalidDocument, err.Error())
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.Wrap(ErrInvalidDocument, strings.Join(msgs, "; "))
}

// Decode validates raw JSON against the schema and decodes it. Unknown keys
// at any level are rejected.
func Decode(raw []byte) (Document, error) {
	var doc Document
	if err := validate(gojsonschema.NewBytesLoader(raw)); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, errors.Wrap(ErrInvalidDocument, err.Error())
	}
	doc.Normalize()
	return doc, nil
}

// Encode renders the document with the two-space indentation used by
// snapshots and backups.
func Encode(doc Document) ([]byte, error) {
	doc.Normalize()
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode resume document")
	}
	return out, nil
}
