package dashboard

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var embeddedSchemas embed.FS

// SettingsKind names the shape of a settings blob.
type SettingsKind string

const (
	WidgetSettingsKind SettingsKind = "widget_settings"
	ColumnSettingsKind SettingsKind = "column_settings"
)

// SettingsValidator validates settings blobs before they are persisted.
type SettingsValidator interface {
	Validate(kind SettingsKind, blob SettingsBlob) error
}

// JSONSchemaValidator compiles the embedded settings schemas and validates blobs.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[SettingsKind]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[SettingsKind]*jsonschema.Schema),
	}
}

// Validate ensures the blob satisfies the schema registered for kind.
func (v *JSONSchemaValidator) Validate(kind SettingsKind, blob SettingsBlob) error {
	schema, err := v.schemaFor(kind)
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(blob, &payload); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSettings, kind, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSettings, kind, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(kind SettingsKind) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[kind]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	name := string(kind) + ".json"
	data, err := embeddedSchemas.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: unknown settings kind %q", kind)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", kind, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", kind, err)
	}
	v.mu.Lock()
	v.compiled[kind] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopSettingsValidator struct{}

func (noopSettingsValidator) Validate(SettingsKind, SettingsBlob) error { return nil }
