package gorouter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-workboard/components/dashboard"
)

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	if err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Dedupe: "/dedupe"})
	if routes.Dedupe != "/dedupe" {
		t.Fatalf("expected override to be kept, got %q", routes.Dedupe)
	}
	if routes.ColumnToggle != "/dashboard/tables/:table/columns/:key/toggle" {
		t.Fatalf("unexpected column toggle route %q", routes.ColumnToggle)
	}
	if routes.WebSocket == "" || routes.Layout == "" {
		t.Fatalf("expected defaults to be filled: %+v", routes)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := []struct{ header, want string }{
		{header: "", want: ""},
		{header: "en-US", want: "en-us"},
		{header: "fr;q=0.5, de-DE;q=0.9, *;q=1", want: "de-de"},
		{header: "es, en;q=0.8", want: "es"},
		{header: "pt-BR;q=0.7, pt;q=0.7", want: "pt-br"},
	}
	for _, tc := range cases {
		if got := parseAcceptLanguage(tc.header); got != tc.want {
			t.Fatalf("parseAcceptLanguage(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(badRequest{err: errors.New("bad json")}); got != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
	if got := statusFor(dashboard.ErrUnknownTable); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
}
