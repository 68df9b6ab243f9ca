package dashboard

import (
	"errors"
	"testing"
)

func TestJSONSchemaValidatorWidgetSettings(t *testing.T) {
	validator := NewJSONSchemaValidator()
	valid := SettingsBlob(`[{"id":"stats-overview","visible":true,"order":0,"size":"full"}]`)
	if err := validator.Validate(WidgetSettingsKind, valid); err != nil {
		t.Fatalf("expected valid widget settings, got %v", err)
	}
	cases := map[string]string{
		"missing id":   `[{"visible":true}]`,
		"bad size":     `[{"id":"w","size":"huge"}]`,
		"unknown prop": `[{"id":"w","title":"nope"}]`,
		"not an array": `{"id":"w"}`,
		"float order":  `[{"id":"w","order":1.5}]`,
	}
	for name, blob := range cases {
		err := validator.Validate(WidgetSettingsKind, SettingsBlob(blob))
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		if !errors.Is(err, ErrInvalidSettings) {
			t.Fatalf("%s: expected ErrInvalidSettings, got %v", name, err)
		}
	}
}

func TestJSONSchemaValidatorColumnSettings(t *testing.T) {
	validator := NewJSONSchemaValidator()
	valid := SettingsBlob(`[{"key":"name","label":"Name","visible":true,"order":0,"width":20}]`)
	if err := validator.Validate(ColumnSettingsKind, valid); err != nil {
		t.Fatalf("expected valid column settings, got %v", err)
	}
	if err := validator.Validate(ColumnSettingsKind, SettingsBlob(`[{"key":""}]`)); err == nil {
		t.Fatalf("expected validation error for empty key")
	}
	if err := validator.Validate(ColumnSettingsKind, SettingsBlob(`not json`)); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings for malformed payload, got %v", err)
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	if err := validator.Validate(WidgetSettingsKind, SettingsBlob(`[]`)); err != nil {
		t.Fatalf("unexpected error validating settings: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(WidgetSettingsKind, SettingsBlob(`[]`)); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to remain 1 entry, got %d", len(validator.compiled))
	}
}

func TestJSONSchemaValidatorUnknownKind(t *testing.T) {
	validator := NewJSONSchemaValidator()
	if err := validator.Validate(SettingsKind("charts"), SettingsBlob(`[]`)); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
