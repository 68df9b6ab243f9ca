package dashboard

import (
	"context"
	"strings"
)

// TranslationService resolves display strings for a locale. Implementations
// may be backed by a CMS or i18n bundle; the controller only needs this.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// Translations maps a translation key to its values per locale, e.g.
// {"widgets.stats-overview.title": {"es": "Resumen"}}. A "default" entry is
// used when no locale matches.
type Translations map[string]map[string]string

// Translate implements TranslationService. Unknown keys return an empty string.
func (t Translations) Translate(_ context.Context, key, locale string, _ map[string]any) (string, error) {
	return ResolveLocalizedValue(t[key], locale, ""), nil
}

// WidgetTitleKey is the translation key for a widget's title.
func WidgetTitleKey(id string) string {
	return "widgets." + id + ".title"
}

// ColumnLabelKey is the translation key for a column's label.
func ColumnLabelKey(table, key string) string {
	return "tables." + table + "." + key + ".label"
}

// ResolveLocalizedValue selects the best translation for the provided locale and falls back to the supplied value.
// Keys are matched case-insensitively, and language-region pairs (`es-mx`) fall back to their
// base language (`es`) when present.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

// localizeLayout returns a copy of layout with titles and labels translated.
// Entries without a translation keep their stored text.
func localizeLayout(ctx context.Context, svc TranslationService, layout Layout, locale string) Layout {
	if svc == nil {
		return layout
	}
	out := Layout{Widgets: make([]Widget, len(layout.Widgets))}
	for i, w := range layout.Widgets {
		w.Title = translateOrFallback(ctx, svc, WidgetTitleKey(w.ID), locale, w.Title, nil)
		out.Widgets[i] = w
	}
	if layout.Columns != nil {
		out.Columns = make(map[string][]Column, len(layout.Columns))
		for table, cols := range layout.Columns {
			translated := make([]Column, len(cols))
			for i, col := range cols {
				col.Label = translateOrFallback(ctx, svc, ColumnLabelKey(table, col.Key), locale, col.Label, nil)
				translated[i] = col
			}
			out.Columns[table] = translated
		}
	}
	return out
}

func normalizeTranslations(t Translations) Translations {
	if len(t) == 0 {
		return nil
	}
	out := make(Translations, len(t))
	for key, values := range t {
		if norm := normalizeLocaleMap(values); norm != nil {
			out[key] = norm
		}
	}
	return out
}

func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key = normalizeLocale(key)
		if key == "" || value == "" {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(locale)), "_", "-")
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
