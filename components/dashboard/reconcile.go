package dashboard

import (
	"encoding/json"
	"fmt"
)

// Variant adapts an item type T and its persisted form S to the reconciliation
// algorithm. Widgets and columns each provide one.
type Variant[T any, S any] interface {
	ItemKey(item T) string
	SettingKey(setting S) string
	ItemOrder(item T) int
	WithOrder(item T, order int) T
	// Merge overrides def with the non-nil fields of setting.
	Merge(def T, setting S) T
	// Extra converts a persisted setting without a default into an item. It
	// returns false when such settings must be dropped.
	Extra(setting S) (T, bool)
	Setting(item T) S
}

// Reconcile merges persisted settings into the defaults. When found is false the
// defaults are returned in their declared order. The defaults slice is never
// modified.
func Reconcile[T any, S any](v Variant[T, S], defaults []T, persisted []S, found bool) []T {
	if !found {
		return append([]T(nil), defaults...)
	}

	index := make(map[string]S, len(persisted))
	for _, setting := range persisted {
		key := v.SettingKey(setting)
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = setting
	}

	merged := make([]T, 0, len(defaults)+len(persisted))
	var added []T
	maxOrder := -1
	used := make(map[string]struct{}, len(defaults))
	for _, def := range defaults {
		key := v.ItemKey(def)
		used[key] = struct{}{}
		if order := v.ItemOrder(def); order > maxOrder {
			maxOrder = order
		}
		setting, ok := index[key]
		if !ok {
			added = append(added, def)
			continue
		}
		item := v.Merge(def, setting)
		if order := v.ItemOrder(item); order > maxOrder {
			maxOrder = order
		}
		merged = append(merged, item)
	}

	next := maxOrder + 1
	for _, def := range added {
		merged = append(merged, v.WithOrder(def, next))
		next++
	}

	seen := make(map[string]struct{}, len(persisted))
	for _, setting := range persisted {
		key := v.SettingKey(setting)
		if _, ok := used[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		item, keep := v.Extra(setting)
		if !keep {
			continue
		}
		merged = append(merged, v.WithOrder(item, next))
		next++
	}

	sortByOrder(v, merged)
	return merged
}

// Settings converts items into their persisted form.
func Settings[T any, S any](v Variant[T, S], items []T) []S {
	out := make([]S, len(items))
	for i, item := range items {
		out[i] = v.Setting(item)
	}
	return out
}

// EncodeSettings serializes items into a settings blob.
func EncodeSettings[T any, S any](v Variant[T, S], items []T) (SettingsBlob, error) {
	data, err := json.Marshal(Settings(v, items))
	if err != nil {
		return nil, fmt.Errorf("dashboard: encode settings: %w", err)
	}
	return data, nil
}

// DecodeSettings parses a settings blob. An empty blob decodes to no settings.
func DecodeSettings[S any](blob SettingsBlob) ([]S, error) {
	if len(blob) == 0 || string(blob) == "null" {
		return nil, nil
	}
	var out []S
	if err := json.Unmarshal(blob, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSettings, err)
	}
	return out, nil
}
