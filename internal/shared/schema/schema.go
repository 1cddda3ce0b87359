// Package schema decodes wire payloads into typed models, failing closed and
// reporting every offending field path at once.
//
// Models declare their wire names with json tags. A field may be absent or
// null only when it is tagged `schema:"optional"`; a pointer field may be null
// but must be present. Unknown keys are ignored. After the structural pass the
// decoded value is checked against `validate` tags and registered struct rules.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructRule registers a cross-field check for the given model types.
type StructRule struct {
	Fn    validator.StructLevelFunc
	Types []any
}

// Codec decodes and validates one model family.
type Codec struct {
	model    string
	validate *validator.Validate
}

// NewCodec builds a codec; model names the payload in error messages.
func NewCodec(model string, rules ...StructRule) *Codec {
	v := validator.New()
	v.RegisterTagNameFunc(tagName)
	for _, rule := range rules {
		v.RegisterStructValidation(rule.Fn, rule.Types...)
	}
	return &Codec{model: model, validate: v}
}

// Model returns the payload name used in errors.
func (c *Codec) Model() string { return c.model }

// Decode checks raw against the shape of dst, then unmarshals and validates it.
// dst must be a non-nil pointer to a struct.
func (c *Codec) Decode(raw []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: destination must be a non-nil struct pointer, got %T", dst)
	}

	doc, err := readDocument(raw)
	if err != nil {
		return c.fail(Fault{Path: "$", Expected: "JSON document", Actual: err.Error()})
	}
	var w walker
	w.walk("", rv.Elem().Type(), doc)
	if len(w.faults) > 0 {
		return &ValidationError{Model: c.model, Faults: w.faults}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return c.fail(Fault{Path: "$", Expected: c.model, Actual: err.Error()})
	}
	return c.Validate(dst)
}

// Validate runs the semantic rules on an already populated model.
func (c *Codec) Validate(model any) error {
	err := c.validate.Struct(model)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	faults := make([]Fault, 0, len(verrs))
	for _, fe := range verrs {
		faults = append(faults, Fault{
			Path:     trimRoot(fe.Namespace()),
			Expected: rule(fe),
			Actual:   fmt.Sprintf("%v", fe.Value()),
		})
	}
	return &ValidationError{Model: c.model, Faults: faults}
}

func (c *Codec) fail(faults ...Fault) error {
	return &ValidationError{Model: c.model, Faults: faults}
}

func readDocument(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}

func tagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// trimRoot drops the Go type name validator puts in front of the namespace.
func trimRoot(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func rule(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}
