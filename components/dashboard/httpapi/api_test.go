package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dashboard/commands"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

func newServiceHandlers(t *testing.T) *Handlers {
	t.Helper()
	service := dashboard.NewService(dashboard.Options{})
	return NewHandlers(service, nil, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type widgetsResponse struct {
	Widgets []dashboard.Widget `json:"widgets"`
}

type columnsResponse struct {
	Table   string             `json:"table"`
	Columns []dashboard.Column `json:"columns"`
}

func TestHandleWidgetLayout(t *testing.T) {
	mux := newServiceHandlers(t).Mux()
	rec := do(t, mux, http.MethodGet, "/widgets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp widgetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dashboard.DefaultWidgets(), resp.Widgets)
}

func TestHandleToggleAndResizeWidget(t *testing.T) {
	mux := newServiceHandlers(t).Mux()

	rec := do(t, mux, http.MethodPost, "/widgets/stats-overview/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp widgetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Widgets[0].Visible)

	rec = do(t, mux, http.MethodPost, "/widgets/stats-overview/resize", `{"size":"medium"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dashboard.WidgetSizeMedium, resp.Widgets[0].Size)

	rec = do(t, mux, http.MethodPost, "/widgets/stats-overview/resize", `{"size":"gigantic"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReorderWidgets(t *testing.T) {
	mux := newServiceHandlers(t).Mux()
	rec := do(t, mux, http.MethodPost, "/widgets/reorder", `{"from":0,"to":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp widgetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stats-overview", resp.Widgets[1].ID)

	rec = do(t, mux, http.MethodPost, "/widgets/reorder", `{"from":0,"to":50}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPost, "/widgets/reorder", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleColumns(t *testing.T) {
	mux := newServiceHandlers(t).Mux()

	rec := do(t, mux, http.MethodPost, "/tables/products/columns/sku/resize", `{"width":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp columnsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "products", resp.Table)
	for _, col := range resp.Columns {
		if col.Key == "sku" {
			assert.Equal(t, dashboard.MinColumnWidth, col.Width)
		}
	}

	rec = do(t, mux, http.MethodPost, "/tables/products/columns/reorder", `{"keys":["price"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "price", resp.Columns[0].Key)

	rec = do(t, mux, http.MethodDelete, "/tables/products/columns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "name", resp.Columns[0].Key)

	rec = do(t, mux, http.MethodGet, "/tables/invoices/columns", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSaveWidgetsRejectsInvalid(t *testing.T) {
	mux := newServiceHandlers(t).Mux()
	rec := do(t, mux, http.MethodPut, "/widgets", `{"widgets":[{"id":"","size":"full"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlersRequireViewer(t *testing.T) {
	mux := newServiceHandlers(t).Mux()
	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlersUseExecutor(t *testing.T) {
	toggle := &stubCommander[commands.ToggleColumnInput]{}
	service := dashboard.NewService(dashboard.Options{})
	handlers := NewHandlers(service, nil, func(*http.Request) dashboard.ViewerContext {
		return dashboard.ViewerContext{UserID: "resolved"}
	})
	handlers.API = &CommandExecutor{ToggleColumnCommander: toggle}

	rec := do(t, handlers.Mux(), http.MethodPost, "/tables/customers/columns/email/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, toggle.calls)
	assert.Equal(t, "resolved", toggle.last.Viewer.UserID)
	assert.Equal(t, "customers", toggle.last.Table)
	assert.Equal(t, "email", toggle.last.Key)

	rec = do(t, handlers.Mux(), http.MethodPost, "/widgets/stats-overview/toggle", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestHandlersIgnoreActorInBody(t *testing.T) {
	reorder := &stubCommander[commands.ReorderWidgetsInput]{}
	save := &stubCommander[commands.SaveColumnsInput]{}
	handlers := NewHandlers(dashboard.NewService(dashboard.Options{}), nil, nil)
	handlers.API = &CommandExecutor{ReorderWidgetsCommander: reorder, SaveColumnsCommander: save}

	rec := do(t, handlers.Mux(), http.MethodPost, "/widgets/reorder", `{"from":0,"to":1,"actor_id":"admin","tenant_id":"acme"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, reorder.calls)
	assert.Equal(t, commands.Actor{}, reorder.last.Actor)
	assert.Equal(t, "user-1", reorder.last.Viewer.UserID)

	rec = do(t, handlers.Mux(), http.MethodPut, "/tables/products/columns", `{"columns":[],"actor_id":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, commands.Actor{}, save.last.Actor)
}

func TestHandleRefresh(t *testing.T) {
	refresh := &stubCommander[commands.RefreshLayoutInput]{}
	handlers := &Handlers{API: &CommandExecutor{RefreshCommander: refresh}}
	buf, _ := json.Marshal(dashboard.LayoutEvent{Scope: dashboard.WidgetScope})
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(buf))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	handlers.Mux().ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "user-1", refresh.last.Event.OwnerID)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(dashboard.ErrMissingViewer))
	assert.Equal(t, http.StatusNotFound, StatusFor(dashboard.ErrUnknownTable))
	assert.Equal(t, http.StatusBadRequest, StatusFor(dashboard.ErrIndexOutOfRange))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.Join(dashboard.ErrStore, errors.New("disk full"))))
}
