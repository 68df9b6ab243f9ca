package dashboard

import (
	"context"
	"encoding/json"
)

// SettingsStore persists per-viewer layout customization. Implementations hold at
// most one record per SettingsKey; Upsert inserts on first write and updates after.
type SettingsStore interface {
	Get(ctx context.Context, key SettingsKey) (SettingsBlob, bool, error)
	Upsert(ctx context.Context, key SettingsKey, blob SettingsBlob) error
}

// RefreshHook notifies transports (REST/WebSocket) about layout changes.
type RefreshHook interface {
	LayoutUpdated(ctx context.Context, event LayoutEvent) error
}

// SettingsKey identifies a persisted settings record.
type SettingsKey struct {
	OwnerID string
	Scope   string
}

// SettingsBlob is the serialized list of item settings stored for a key.
type SettingsBlob = json.RawMessage

// WidgetScope is the scope used for the dashboard widget layout.
const WidgetScope = ""

// ColumnScope returns the scope used for a table's column settings.
func ColumnScope(table string) string {
	return "columns:" + table
}

// WidgetSize controls how much horizontal room a widget takes.
type WidgetSize string

const (
	WidgetSizeMedium WidgetSize = "medium"
	WidgetSizeFull   WidgetSize = "full"
)

// Valid reports whether the size is one of the supported values.
func (s WidgetSize) Valid() bool {
	return s == WidgetSizeMedium || s == WidgetSizeFull
}

// MinColumnWidth is the smallest width, in pixels, a column can be resized to.
const MinColumnWidth = 80

// Widget is a dashboard widget as rendered for a viewer.
type Widget struct {
	ID      string     `json:"id" yaml:"id"`
	Type    string     `json:"type" yaml:"type"`
	Title   string     `json:"title" yaml:"title"`
	Visible bool       `json:"visible" yaml:"visible"`
	Order   int        `json:"order" yaml:"order"`
	Size    WidgetSize `json:"size" yaml:"size"`
}

// WidgetSetting is the persisted customization of a widget. Nil fields keep the
// default value when reconciled.
type WidgetSetting struct {
	ID      string     `json:"id"`
	Visible *bool      `json:"visible,omitempty"`
	Order   *int       `json:"order,omitempty"`
	Size    WidgetSize `json:"size,omitempty"`
}

// Column is a table column as rendered for a viewer.
type Column struct {
	Key     string `json:"key" yaml:"key"`
	Label   string `json:"label" yaml:"label"`
	Visible bool   `json:"visible" yaml:"visible"`
	Order   int    `json:"order" yaml:"order"`
	Width   int    `json:"width" yaml:"width"`
}

// ColumnSetting is the persisted customization of a column. Label is carried so
// columns without a default can still be rendered.
type ColumnSetting struct {
	Key     string `json:"key"`
	Label   string `json:"label,omitempty"`
	Visible *bool  `json:"visible,omitempty"`
	Order   *int   `json:"order,omitempty"`
	Width   *int   `json:"width,omitempty"`
}

// ViewerContext captures the active user information needed to resolve layouts.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// LayoutEvent describes layout changes that transports might care about.
type LayoutEvent struct {
	OwnerID string `json:"owner_id"`
	Scope   string `json:"scope"`
	ItemID  string `json:"item_id,omitempty"`
	Reason  string `json:"reason"`
}

// Layout is the resolved layout payload served to the UI.
type Layout struct {
	Widgets []Widget            `json:"widgets"`
	Columns map[string][]Column `json:"columns,omitempty"`
}
