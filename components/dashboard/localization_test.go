package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubTranslationService struct {
	value string
	err   error
}

func (s stubTranslationService) Translate(ctx context.Context, key, locale string, args map[string]any) (string, error) {
	return s.value, s.err
}

func TestResolveLocalizedValue(t *testing.T) {
	values := map[string]string{
		"en":    "Dashboard",
		"es":    "Tablero",
		"es-mx": "Panel",
	}
	if got := ResolveLocalizedValue(values, "es-mx", "fallback"); got != "Panel" {
		t.Fatalf("expected region-specific match, got %q", got)
	}
	if got := ResolveLocalizedValue(values, "es_AR", "fallback"); got != "Tablero" {
		t.Fatalf("expected base locale fallback, got %q", got)
	}
	if got := ResolveLocalizedValue(values, "fr", "Dashboard"); got != "Dashboard" {
		t.Fatalf("expected fallback when locale missing, got %q", got)
	}
	if got := ResolveLocalizedValue(nil, "es", "Dashboard"); got != "Dashboard" {
		t.Fatalf("expected fallback when no localized map, got %q", got)
	}
}

func TestTranslateOrFallback(t *testing.T) {
	svc := stubTranslationService{value: "Tablero"}
	out := translateOrFallback(context.Background(), svc, "dashboard.title", "es", "Dashboard", nil)
	if out != "Tablero" {
		t.Fatalf("expected translator value, got %q", out)
	}
	svc = stubTranslationService{err: errors.New("boom")}
	out = translateOrFallback(context.Background(), svc, "dashboard.title", "es", "Dashboard", nil)
	if out != "Dashboard" {
		t.Fatalf("expected fallback on error, got %q", out)
	}
}

func TestControllerLocalizesLayout(t *testing.T) {
	translations := Translations{
		WidgetTitleKey("stats-overview"):     {"es": "Resumen", "default": "Overview"},
		ColumnLabelKey("products", "name"):   {"ES": "Nombre"},
		ColumnLabelKey("customers", "email"): {"fr": "Courriel"},
	}
	layout := Layout{
		Widgets: []Widget{{ID: "stats-overview", Title: "Stats"}, {ID: "customers-top", Title: "Top Customers"}},
		Columns: map[string][]Column{"products": {{Key: "name", Label: "Name"}, {Key: "sku", Label: "SKU"}}},
	}
	controller := NewController(&stubLayoutResolver{layout: layout}, WithTranslations(translations))

	got, err := controller.Render(context.Background(), ViewerContext{UserID: "u", Locale: "es-MX"})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got.Widgets[0].Title != "Resumen" || got.Widgets[1].Title != "Top Customers" {
		t.Fatalf("unexpected widget titles %+v", got.Widgets)
	}
	if cols := got.Columns["products"]; cols[0].Label != "Nombre" || cols[1].Label != "SKU" {
		t.Fatalf("unexpected column labels %+v", cols)
	}
	if layout.Widgets[0].Title != "Stats" {
		t.Fatalf("source layout mutated: %+v", layout.Widgets[0])
	}

	got, _ = controller.Render(context.Background(), ViewerContext{UserID: "u", Locale: "de"})
	if got.Widgets[0].Title != "Overview" {
		t.Fatalf("expected default translation, got %q", got.Widgets[0].Title)
	}
}

func TestManifestTranslationsRegisterOnCatalog(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(`version: "1"
translations:
  widgets.stats-overview.title:
    ES: Resumen
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cat := DefaultCatalog()
	if err := cat.LoadManifest(doc); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cat.Translations()[WidgetTitleKey("stats-overview")]["es"]; got != "Resumen" {
		t.Fatalf("expected normalized locale key, got %q", got)
	}
}
