package prosemirror

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("prosemirror.schema.json", strings.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile("prosemirror.schema.json")
	})
	return schema, schemaErr
}

// ValidateDoc checks a doc node against the embedded wire schema. It catches
// converter bugs (bad node types, missing heading levels, local image URLs
// that slipped through) before the payload reaches the API.
func ValidateDoc(doc *Node) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if doc.Type != TypeDoc {
		return fmt.Errorf("root node must be %q, got %q", TypeDoc, doc.Type)
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile document schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document for validation: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize document for validation: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("document schema validation failed: %w", err)
	}
	return nil
}
