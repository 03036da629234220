// Package schema checks JSON request bodies against JSON Schema documents.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalid = errors.New("body does not match schema")

type Validator struct {
	schema *gojsonschema.Schema
}

// MustCompile panics on a malformed schema; schemas are package constants.
func MustCompile(doc string) *Validator {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return &Validator{schema: s}
}

func (v *Validator) Validate(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
