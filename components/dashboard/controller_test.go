package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type stubLayoutResolver struct {
	layout Layout
	err    error
}

func (s *stubLayoutResolver) Layout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	return s.layout, s.err
}

func TestControllerRenderJSON(t *testing.T) {
	service := &stubLayoutResolver{
		layout: Layout{
			Widgets: []Widget{{ID: "stats-overview", Visible: true, Size: WidgetSizeFull}},
			Columns: map[string][]Column{"products": {{Key: "name", Width: 200}}},
		},
	}
	controller := NewController(service)

	var buf bytes.Buffer
	if err := controller.RenderJSON(context.Background(), ViewerContext{UserID: "user"}, &buf); err != nil {
		t.Fatalf("RenderJSON returned error: %v", err)
	}
	var decoded Layout
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Widgets) != 1 || decoded.Widgets[0].ID != "stats-overview" {
		t.Fatalf("unexpected widgets %+v", decoded.Widgets)
	}
	if cols := decoded.Columns["products"]; len(cols) != 1 || cols[0].Width != 200 {
		t.Fatalf("unexpected columns %+v", decoded.Columns)
	}
}

func TestControllerRenderPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	controller := NewController(&stubLayoutResolver{err: boom})
	var buf bytes.Buffer
	if err := controller.RenderJSON(context.Background(), ViewerContext{UserID: "user"}, &buf); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output on error")
	}
}

func TestControllerWithoutService(t *testing.T) {
	layout, err := NewController(nil).Render(context.Background(), ViewerContext{})
	if err != nil || len(layout.Widgets) != 0 {
		t.Fatalf("expected empty layout, got %+v %v", layout, err)
	}
}
