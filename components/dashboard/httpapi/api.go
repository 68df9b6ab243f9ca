package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dashboard/commands"
	"github.com/goliatone/go-workboard/components/dashboard/queries"
)

// ViewerFunc extracts the viewer from a request.
type ViewerFunc func(*http.Request) dashboard.ViewerContext

// Handlers exposes layout endpoints backed by shared commands and queries.
// Mutations answer with the layout as it stands after the write.
type Handlers struct {
	API     Executor
	Widgets gocommand.Querier[dashboard.ViewerContext, []dashboard.Widget]
	Columns gocommand.Querier[queries.ColumnLayoutInput, []dashboard.Column]
	Viewer  ViewerFunc
}

// NewHandlers wires handlers directly against service.
func NewHandlers(service *dashboard.Service, telemetry commands.Telemetry, viewer ViewerFunc) *Handlers {
	return &Handlers{
		API:     NewCommandExecutor(service, telemetry),
		Widgets: queries.NewWidgetLayoutQuery(service),
		Columns: queries.NewColumnLayoutQuery(service),
		Viewer:  viewer,
	}
}

// Mux routes the handlers under Go 1.22 patterns.
func (h *Handlers) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /widgets", h.HandleWidgetLayout)
	mux.HandleFunc("PUT /widgets", h.HandleSaveWidgets)
	mux.HandleFunc("DELETE /widgets", h.HandleReset)
	mux.HandleFunc("POST /widgets/reorder", h.HandleReorderWidgets)
	mux.HandleFunc("POST /widgets/{id}/toggle", h.HandleToggleWidget)
	mux.HandleFunc("POST /widgets/{id}/resize", h.HandleResizeWidget)
	mux.HandleFunc("GET /tables/{table}/columns", h.HandleColumnLayout)
	mux.HandleFunc("PUT /tables/{table}/columns", h.HandleSaveColumns)
	mux.HandleFunc("DELETE /tables/{table}/columns", h.HandleReset)
	mux.HandleFunc("POST /tables/{table}/columns/reorder", h.HandleReorderColumns)
	mux.HandleFunc("POST /tables/{table}/columns/{key}/toggle", h.HandleToggleColumn)
	mux.HandleFunc("POST /tables/{table}/columns/{key}/resize", h.HandleResizeColumn)
	mux.HandleFunc("POST /refresh", h.HandleRefresh)
	return mux
}

func (h *Handlers) viewer(r *http.Request) dashboard.ViewerContext {
	if h.Viewer == nil {
		return dashboard.ViewerContext{UserID: r.Header.Get("X-User-ID")}
	}
	return h.Viewer(r)
}

func (h *Handlers) HandleWidgetLayout(w http.ResponseWriter, r *http.Request) {
	h.respondWidgets(w, r, h.viewer(r))
}

func (h *Handlers) HandleColumnLayout(w http.ResponseWriter, r *http.Request) {
	h.respondColumns(w, r, h.viewer(r), r.PathValue("table"))
}

func (h *Handlers) HandleToggleWidget(w http.ResponseWriter, r *http.Request) {
	viewer := h.viewer(r)
	input := commands.ToggleWidgetInput{Viewer: viewer, WidgetID: r.PathValue("id")}
	if err := h.API.ToggleWidget(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	h.respondWidgets(w, r, viewer)
}

type resizeWidgetPayload struct {
	Size dashboard.WidgetSize `json:"size"`
}

func (h *Handlers) HandleResizeWidget(w http.ResponseWriter, r *http.Request) {
	var payload resizeWidgetPayload
	if !decode(w, r, &payload) {
		return
	}
	viewer := h.viewer(r)
	input := commands.ResizeWidgetInput{Viewer: viewer, WidgetID: r.PathValue("id"), Size: payload.Size}
	if err := h.API.ResizeWidget(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	h.respondWidgets(w, r, viewer)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	payload.Actor = commands.Actor{}
	if err := h.API.ReorderWidgets(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.respondWidgets(w, r, payload.Viewer)
}

func (h *Handlers) HandleSaveWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveWidgetsInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	payload.Actor = commands.Actor{}
	if err := h.API.SaveWidgets(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.respondWidgets(w, r, payload.Viewer)
}

func (h *Handlers) HandleToggleColumn(w http.ResponseWriter, r *http.Request) {
	viewer := h.viewer(r)
	table := r.PathValue("table")
	input := commands.ToggleColumnInput{Viewer: viewer, Table: table, Key: r.PathValue("key")}
	if err := h.API.ToggleColumn(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	h.respondColumns(w, r, viewer, table)
}

type resizeColumnPayload struct {
	Width int `json:"width"`
}

func (h *Handlers) HandleResizeColumn(w http.ResponseWriter, r *http.Request) {
	var payload resizeColumnPayload
	if !decode(w, r, &payload) {
		return
	}
	viewer := h.viewer(r)
	table := r.PathValue("table")
	input := commands.ResizeColumnInput{Viewer: viewer, Table: table, Key: r.PathValue("key"), Width: payload.Width}
	if err := h.API.ResizeColumn(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	h.respondColumns(w, r, viewer, table)
}

func (h *Handlers) HandleReorderColumns(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderColumnsInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	payload.Actor = commands.Actor{}
	payload.Table = r.PathValue("table")
	if err := h.API.ReorderColumns(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.respondColumns(w, r, payload.Viewer, payload.Table)
}

func (h *Handlers) HandleSaveColumns(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveColumnsInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	payload.Actor = commands.Actor{}
	payload.Table = r.PathValue("table")
	if err := h.API.SaveColumns(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.respondColumns(w, r, payload.Viewer, payload.Table)
}

// HandleReset restores defaults for widgets, or for the table in the path.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	input := commands.ResetLayoutInput{Viewer: h.viewer(r), Table: r.PathValue("table")}
	if err := h.API.Reset(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	if input.Table == "" {
		h.respondWidgets(w, r, input.Viewer)
		return
	}
	h.respondColumns(w, r, input.Viewer, input.Table)
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.LayoutEvent
	if !decode(w, r, &payload) {
		return
	}
	if payload.OwnerID == "" {
		payload.OwnerID = h.viewer(r).UserID
	}
	if err := h.API.Refresh(r.Context(), commands.RefreshLayoutInput{Event: payload}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) respondWidgets(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext) {
	if h.Widgets == nil {
		writeError(w, ErrNotConfigured)
		return
	}
	widgets, err := h.Widgets.Query(r.Context(), viewer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"widgets": widgets})
}

func (h *Handlers) respondColumns(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext, table string) {
	if h.Columns == nil {
		writeError(w, ErrNotConfigured)
		return
	}
	cols, err := h.Columns.Query(r.Context(), queries.ColumnLayoutInput{Viewer: viewer, Table: table})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"table": table, "columns": cols})
}

func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
