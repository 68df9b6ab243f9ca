package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dashboard/commands"
	"github.com/goliatone/go-workboard/components/dashboard/httpapi"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the layout controller, mutation API, dedupe
// function and refresh stream.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Dedupe         *httpapi.DedupeHandler
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for layout endpoints.
type RouteConfig struct {
	Layout        string
	Widgets       string
	WidgetToggle  string
	WidgetResize  string
	WidgetReorder string
	Columns       string
	ColumnToggle  string
	ColumnResize  string
	ColumnReorder string
	Refresh       string
	Dedupe        string
	WebSocket     string
}

// Register mounts layout routes (JSON, REST, dedupe, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		layout, err := cfg.Controller.Render(ctx.Context(), viewerResolver(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, layout)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, cfg.Controller, viewerResolver, routes)
	}
	if cfg.Dedupe != nil {
		registerDedupe(group, cfg.Dedupe, routes.Dedupe)
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, viewerResolver, routes.WebSocket)
	}
	return nil
}

// mutation runs fn and answers with the viewer's full layout.
func mutation(controller *dashboard.Controller, resolver ViewerResolver, fn func(ctx router.Context, viewer dashboard.ViewerContext) error) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		viewer := resolver(ctx)
		if err := fn(ctx, viewer); err != nil {
			return respondError(ctx, err)
		}
		layout, err := controller.Render(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, layout)
	})
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, controller *dashboard.Controller, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.WidgetToggle, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		return api.ToggleWidget(ctx.Context(), commands.ToggleWidgetInput{Viewer: viewer, WidgetID: ctx.Param("id")})
	}))

	r.Post(routes.WidgetResize, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		var payload struct {
			Size dashboard.WidgetSize `json:"size"`
		}
		if err := decode(ctx, &payload); err != nil {
			return err
		}
		return api.ResizeWidget(ctx.Context(), commands.ResizeWidgetInput{Viewer: viewer, WidgetID: ctx.Param("id"), Size: payload.Size})
	}))

	r.Post(routes.WidgetReorder, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		var payload commands.ReorderWidgetsInput
		if err := decode(ctx, &payload); err != nil {
			return err
		}
		payload.Viewer = viewer
		payload.Actor = commands.Actor{}
		return api.ReorderWidgets(ctx.Context(), payload)
	}))

	r.Post(routes.Widgets, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		var payload commands.SaveWidgetsInput
		if err := decode(ctx, &payload); err != nil {
			return err
		}
		payload.Viewer = viewer
		payload.Actor = commands.Actor{}
		return api.SaveWidgets(ctx.Context(), payload)
	}))

	r.Delete(routes.Widgets, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		return api.Reset(ctx.Context(), commands.ResetLayoutInput{Viewer: viewer})
	}))

	r.Post(routes.ColumnToggle, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		return api.ToggleColumn(ctx.Context(), commands.ToggleColumnInput{Viewer: viewer, Table: ctx.Param("table"), Key: ctx.Param("key")})
	}))

	r.Post(routes.ColumnResize, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		var payload struct {
			Width int `json:"width"`
		}
		if err := decode(ctx, &payload); err != nil {
			return err
		}
		return api.ResizeColumn(ctx.Context(), commands.ResizeColumnInput{
			Viewer: viewer,
			Table:  ctx.Param("table"),
			Key:    ctx.Param("key"),
			Width:  payload.Width,
		})
	}))

	r.Post(routes.ColumnReorder, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		var payload commands.ReorderColumnsInput
		if err := decode(ctx, &payload); err != nil {
			return err
		}
		payload.Viewer = viewer
		payload.Actor = commands.Actor{}
		payload.Table = ctx.Param("table")
		return api.ReorderColumns(ctx.Context(), payload)
	}))

	r.Post(routes.Columns, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		var payload commands.SaveColumnsInput
		if err := decode(ctx, &payload); err != nil {
			return err
		}
		payload.Viewer = viewer
		payload.Actor = commands.Actor{}
		payload.Table = ctx.Param("table")
		return api.SaveColumns(ctx.Context(), payload)
	}))

	r.Delete(routes.Columns, mutation(controller, resolver, func(ctx router.Context, viewer dashboard.ViewerContext) error {
		return api.Reset(ctx.Context(), commands.ResetLayoutInput{Viewer: viewer, Table: ctx.Param("table")})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var event dashboard.LayoutEvent
		if err := decode(ctx, &event); err != nil {
			return respondError(ctx, err)
		}
		if event.OwnerID == "" {
			event.OwnerID = resolver(ctx).UserID
		}
		if err := api.Refresh(ctx.Context(), commands.RefreshLayoutInput{Event: event}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))
}

func registerDedupe[T any](r router.Router[T], handler *httpapi.DedupeHandler, path string) {
	r.Post(path, dedupeRoute(handler, http.MethodPost))
	r.Handle(router.HTTPMethod(http.MethodOptions), path, dedupeRoute(handler, http.MethodOptions))
}

// dedupeRoute answers with the CORS headers on every response, preflight included.
func dedupeRoute(handler *httpapi.DedupeHandler, method string) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		for k, v := range httpapi.CORSHeaders() {
			ctx.SetHeader(k, v)
		}
		status, body := handler.Respond(ctx.Context(), method, ctx.Header("Authorization"))
		if body == nil {
			return ctx.Send(nil)
		}
		return ctx.JSON(status, body)
	})
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, resolver ViewerResolver, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		viewer := resolver(ws)
		if viewer.UserID == "" {
			return ws.Close()
		}
		events, cancel := hook.Subscribe(viewer.UserID)
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// badRequest marks decode failures so they map to 400.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

func decode(ctx router.Context, target any) error {
	body := ctx.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return badRequest{err: err}
	}
	return nil
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return parseAcceptLanguage(ctx.Header("Accept-Language"))
}

// parseAcceptLanguage returns the highest weighted tag of an Accept-Language
// header. Ties keep header order.
func parseAcceptLanguage(header string) string {
	best, bestQ := "", -1.0
	for _, token := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(token), ";")
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "*" {
			continue
		}
		q := 1.0
		if value, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				q = parsed
			}
		}
		if q > bestQ {
			best, bestQ = strings.ToLower(tag), q
		}
	}
	return best
}

func statusFor(err error) int {
	var bad badRequest
	if errors.As(err, &bad) {
		return http.StatusBadRequest
	}
	return httpapi.StatusFor(err)
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(statusFor(err), map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Layout == "" {
		routes.Layout = "/dashboard/_layout"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/dashboard/widgets"
	}
	if routes.WidgetToggle == "" {
		routes.WidgetToggle = "/dashboard/widgets/:id/toggle"
	}
	if routes.WidgetResize == "" {
		routes.WidgetResize = "/dashboard/widgets/:id/resize"
	}
	if routes.WidgetReorder == "" {
		routes.WidgetReorder = "/dashboard/widgets/reorder"
	}
	if routes.Columns == "" {
		routes.Columns = "/dashboard/tables/:table/columns"
	}
	if routes.ColumnToggle == "" {
		routes.ColumnToggle = "/dashboard/tables/:table/columns/:key/toggle"
	}
	if routes.ColumnResize == "" {
		routes.ColumnResize = "/dashboard/tables/:table/columns/:key/resize"
	}
	if routes.ColumnReorder == "" {
		routes.ColumnReorder = "/dashboard/tables/:table/columns/reorder"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dashboard/refresh"
	}
	if routes.Dedupe == "" {
		routes.Dedupe = "/functions/remove-duplicates"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}

// TokenViewerResolver resolves the viewer from the bearer token on the
// request. Requests without a valid token get an empty viewer, which the
// service rejects.
func TokenViewerResolver(tokens httpapi.TokenResolver) ViewerResolver {
	return func(ctx router.Context) dashboard.ViewerContext {
		viewer := dashboard.ViewerContext{Locale: inferLocale(ctx)}
		token := httpapi.BearerToken(ctx.Header("Authorization"))
		if token == "" || tokens == nil {
			return viewer
		}
		owner, err := tokens.ResolveToken(ctx.Context(), token)
		if err == nil {
			viewer.UserID = owner
		}
		return viewer
	}
}
