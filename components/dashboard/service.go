package dashboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-workboard/pkg/activity"
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations without importing internal
// packages.
type Options struct {
	SettingsStore  SettingsStore
	Cache          *SettingsCache
	Catalog        *Catalog
	Validator      SettingsValidator
	RefreshHook    RefreshHook
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	Logger         *zerolog.Logger
}

// Service resolves and mutates per-viewer widget and column layouts.
type Service struct {
	opts     Options
	activity *activity.Emitter
	logger   zerolog.Logger
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.SettingsStore == nil {
		opts.SettingsStore = NewInMemorySettingsStore()
	}
	if opts.Cache == nil {
		opts.Cache = NewSettingsCache(DefaultCacheTTL)
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
		logger:   logger.With().Str("component", "dashboard").Logger(),
	}
}

// Catalog exposes the default sets the service reconciles against.
func (s *Service) Catalog() *Catalog {
	return s.opts.Catalog
}

// Widgets loads the viewer's widget session. Mutations on the session apply
// locally at once and persist in the background.
func (s *Service) Widgets(ctx context.Context, viewer ViewerContext) (*WidgetSession, error) {
	if viewer.UserID == "" {
		return nil, ErrMissingViewer
	}
	session := NewWidgetSession(viewer.UserID, s.opts.Catalog.Widgets(), s.opts.SettingsStore, s.opts.Cache)
	if _, err := session.Load(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// Columns loads the viewer's column session for table.
func (s *Service) Columns(ctx context.Context, viewer ViewerContext, table string) (*ColumnSession, error) {
	if viewer.UserID == "" {
		return nil, ErrMissingViewer
	}
	defaults, ok := s.opts.Catalog.Columns(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	session := NewColumnSession(viewer.UserID, table, defaults, s.opts.SettingsStore, s.opts.Cache)
	if _, err := session.Load(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// WidgetLayout returns the reconciled widget list for the viewer.
func (s *Service) WidgetLayout(ctx context.Context, viewer ViewerContext) ([]Widget, error) {
	session, err := s.Widgets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
		"scope":  WidgetScope,
	})
	return session.Items(), nil
}

// ColumnLayout returns the reconciled column list for the viewer and table.
func (s *Service) ColumnLayout(ctx context.Context, viewer ViewerContext, table string) ([]Column, error) {
	session, err := s.Columns(ctx, viewer, table)
	if err != nil {
		return nil, err
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
		"scope":  session.Key().Scope,
	})
	return session.Items(), nil
}

// Layout resolves widgets and every registered table for the viewer.
func (s *Service) Layout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	widgets, err := s.WidgetLayout(ctx, viewer)
	if err != nil {
		return Layout{}, err
	}
	layout := Layout{Widgets: widgets, Columns: map[string][]Column{}}
	for _, table := range s.opts.Catalog.Tables() {
		cols, err := s.ColumnLayout(ctx, viewer, table)
		if err != nil {
			return Layout{}, err
		}
		layout.Columns[table] = cols
	}
	return layout, nil
}

// ToggleWidget flips a widget's visibility. Unknown ids change nothing.
func (s *Service) ToggleWidget(ctx context.Context, viewer ViewerContext, id string) ([]Widget, error) {
	session, err := s.Widgets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "toggle", id, nil, func() (*Pending, error) {
		return session.Toggle(ctx, id), nil
	})
}

// ResizeWidget sets a widget's size.
func (s *Service) ResizeWidget(ctx context.Context, viewer ViewerContext, id string, size WidgetSize) ([]Widget, error) {
	session, err := s.Widgets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "resize", id, map[string]any{"size": string(size)}, func() (*Pending, error) {
		return session.Resize(ctx, id, size), nil
	})
}

// ReorderWidgets moves the widget at from to to.
func (s *Service) ReorderWidgets(ctx context.Context, viewer ViewerContext, from, to int) ([]Widget, error) {
	session, err := s.Widgets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "reorder", "", map[string]any{"from": from, "to": to}, func() (*Pending, error) {
		return session.Reorder(ctx, from, to)
	})
}

// ArrangeWidgets orders widgets by id; unlisted widgets follow in their
// current order.
func (s *Service) ArrangeWidgets(ctx context.Context, viewer ViewerContext, ids []string) ([]Widget, error) {
	session, err := s.Widgets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "reorder", "", map[string]any{"count": len(ids)}, func() (*Pending, error) {
		return session.ReorderKeys(ctx, ids), nil
	})
}

// ResetWidgets restores the default widget layout.
func (s *Service) ResetWidgets(ctx context.Context, viewer ViewerContext) ([]Widget, error) {
	session, err := s.Widgets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "reset", "", nil, func() (*Pending, error) {
		return session.Reset(ctx), nil
	})
}

// SaveWidgets validates and persists a full widget list.
func (s *Service) SaveWidgets(ctx context.Context, viewer ViewerContext, widgets []Widget) ([]Widget, error) {
	if err := validateItems[Widget, WidgetSetting](s, WidgetSettingsKind, WidgetVariant{}, widgets); err != nil {
		return nil, err
	}
	session, err := s.Widgets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "save", "", map[string]any{"count": len(widgets)}, func() (*Pending, error) {
		return session.Replace(ctx, widgets), nil
	})
}

// ToggleColumn flips a column's visibility. Unknown keys change nothing.
func (s *Service) ToggleColumn(ctx context.Context, viewer ViewerContext, table, key string) ([]Column, error) {
	session, err := s.Columns(ctx, viewer, table)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "toggle", key, nil, func() (*Pending, error) {
		return session.Toggle(ctx, key), nil
	})
}

// ResizeColumn sets a column's width. Widths below MinColumnWidth are raised.
func (s *Service) ResizeColumn(ctx context.Context, viewer ViewerContext, table, key string, width int) ([]Column, error) {
	session, err := s.Columns(ctx, viewer, table)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "resize", key, map[string]any{"width": ClampWidth(width)}, func() (*Pending, error) {
		return session.Resize(ctx, key, width), nil
	})
}

// ReorderColumns moves the column at from to to.
func (s *Service) ReorderColumns(ctx context.Context, viewer ViewerContext, table string, from, to int) ([]Column, error) {
	session, err := s.Columns(ctx, viewer, table)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "reorder", "", map[string]any{"from": from, "to": to}, func() (*Pending, error) {
		return session.Reorder(ctx, from, to)
	})
}

// ArrangeColumns orders columns by key.
func (s *Service) ArrangeColumns(ctx context.Context, viewer ViewerContext, table string, keys []string) ([]Column, error) {
	session, err := s.Columns(ctx, viewer, table)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "reorder", "", map[string]any{"count": len(keys)}, func() (*Pending, error) {
		return session.ReorderKeys(ctx, keys), nil
	})
}

// ResetColumns restores the default columns for table.
func (s *Service) ResetColumns(ctx context.Context, viewer ViewerContext, table string) ([]Column, error) {
	session, err := s.Columns(ctx, viewer, table)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "reset", "", nil, func() (*Pending, error) {
		return session.Reset(ctx), nil
	})
}

// SaveColumns validates and persists a full column list for table.
func (s *Service) SaveColumns(ctx context.Context, viewer ViewerContext, table string, cols []Column) ([]Column, error) {
	if err := validateItems[Column, ColumnSetting](s, ColumnSettingsKind, ColumnVariant{}, cols); err != nil {
		return nil, err
	}
	session, err := s.Columns(ctx, viewer, table)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s, viewer, session.Reconciler, "save", "", map[string]any{"count": len(cols)}, func() (*Pending, error) {
		return session.Replace(ctx, cols), nil
	})
}

// NotifyLayoutUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyLayoutUpdated(ctx context.Context, event LayoutEvent) error {
	if err := s.opts.RefreshHook.LayoutUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.layout.event", map[string]any{
		"owner_id": event.OwnerID,
		"scope":    event.Scope,
		"reason":   event.Reason,
	})
	return nil
}

// mutate runs op, waits for its persist and then publishes the change. The
// returned list is the session's state after the mutation.
func mutate[T any, S any](ctx context.Context, s *Service, viewer ViewerContext, r *Reconciler[T, S], reason, itemID string, meta map[string]any, op func() (*Pending, error)) ([]T, error) {
	key := r.Key()
	log := s.logger.With().
		Str("owner_id", key.OwnerID).
		Str("scope", key.Scope).
		Str("reason", reason).
		Logger()

	pending, err := op()
	if err != nil {
		return nil, err
	}
	if err := pending.Wait(ctx); err != nil {
		log.Error().Err(err).Msg("layout persist failed")
		return nil, err
	}
	if pending.Skipped() {
		log.Debug().Str("item_id", itemID).Msg("layout mutation matched no item")
		return r.Items(), nil
	}

	event := LayoutEvent{OwnerID: key.OwnerID, Scope: key.Scope, ItemID: itemID, Reason: reason}
	if err := s.opts.RefreshHook.LayoutUpdated(ctx, event); err != nil {
		log.Warn().Err(err).Msg("refresh hook failed")
	}
	payload := map[string]any{
		"viewer": viewer.UserID,
		"scope":  key.Scope,
	}
	if itemID != "" {
		payload["item_id"] = itemID
	}
	for k, v := range meta {
		payload[k] = v
	}
	s.recordTelemetry(ctx, "dashboard.layout."+reason, payload)
	if err := s.activity.Emit(ctx, layoutActivity(ctx, viewer, event, meta)); err != nil {
		log.Warn().Err(err).Msg("activity emit failed")
	}
	log.Debug().Str("item_id", itemID).Msg("layout updated")
	return r.Items(), nil
}

// validateItems checks items in their persisted form against the schema for kind.
func validateItems[T any, S any](s *Service, kind SettingsKind, v Variant[T, S], items []T) error {
	blob, err := EncodeSettings(v, items)
	if err != nil {
		return err
	}
	return s.opts.Validator.Validate(kind, blob)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopRefreshHook struct{}

func (noopRefreshHook) LayoutUpdated(context.Context, LayoutEvent) error {
	return nil
}
