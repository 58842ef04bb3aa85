package seo

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// SchemaError lists every violation found in one JSON-LD document.
type SchemaError struct {
	Type   string
	Errors []string
}

func (e *SchemaError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %s", e.Type, e.Errors[0])
	}
	return fmt.Sprintf("%s: %s", e.Type, strings.Join(e.Errors, "; "))
}

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		entries, err := schemaFS.ReadDir("schemas")
		if err != nil {
			schemasErr = err
			return
		}
		compiled := make(map[string]*jsonschema.Schema, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			raw, err := schemaFS.ReadFile(path.Join("schemas", name))
			if err != nil {
				schemasErr = err
				return
			}
			schema, err := jsonschema.CompileString(name, string(raw))
			if err != nil {
				schemasErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[strings.TrimSuffix(name, ".json")] = schema
		}
		schemas = compiled
	})
	return schemas, schemasErr
}

// Validate checks that doc round-trips through JSON and matches the schema
// registered for its @type.
func Validate(doc Document) error {
	compiled, err := loadSchemas()
	if err != nil {
		return err
	}
	typ := doc.Type()
	schema, ok := compiled[strings.ToLower(typ)]
	if !ok {
		return fmt.Errorf("no schema for @type %q", typ)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", typ, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("%s: decode: %w", typ, err)
	}

	if err := schema.Validate(value); err != nil {
		var messages []string
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			for _, leaf := range leafErrors(verr) {
				messages = append(messages, fmt.Sprintf("%s: %s", leaf.InstanceLocation, leaf.Message))
			}
		}
		if len(messages) == 0 {
			messages = append(messages, err.Error())
		}
		return &SchemaError{Type: typ, Errors: messages}
	}
	return nil
}

func leafErrors(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		out = append(out, leafErrors(cause)...)
	}
	return out
}

// ValidateAll validates every document and joins the failures.
func ValidateAll(docs []Document) error {
	var errs []string
	for _, doc := range docs {
		if err := Validate(doc); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid structured data: %s", strings.Join(errs, "; "))
}
