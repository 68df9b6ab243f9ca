package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

// ReorderWidgetsInput moves a widget by index, or arranges widgets by id when
// WidgetIDs is set.
type ReorderWidgetsInput struct {
	Viewer    dashboard.ViewerContext `json:"viewer"`
	From      int                     `json:"from"`
	To        int                     `json:"to"`
	WidgetIDs []string                `json:"widget_ids,omitempty"`
	Actor
}

// ReorderColumnsInput moves a column by index, or arranges columns by key when
// Keys is set.
type ReorderColumnsInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Table  string                  `json:"table"`
	From   int                     `json:"from"`
	To     int                     `json:"to"`
	Keys   []string                `json:"keys,omitempty"`
	Actor
}

type reorderService interface {
	ReorderWidgets(ctx context.Context, viewer dashboard.ViewerContext, from, to int) ([]dashboard.Widget, error)
	ArrangeWidgets(ctx context.Context, viewer dashboard.ViewerContext, ids []string) ([]dashboard.Widget, error)
	ReorderColumns(ctx context.Context, viewer dashboard.ViewerContext, table string, from, to int) ([]dashboard.Column, error)
	ArrangeColumns(ctx context.Context, viewer dashboard.ViewerContext, table string, keys []string) ([]dashboard.Column, error)
}

// ReorderWidgetsCommand wraps Service.ReorderWidgets and Service.ArrangeWidgets.
type ReorderWidgetsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderWidgetsCommand builds the command.
func NewReorderWidgetsCommand(service reorderService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

// Execute reorders the viewer's widgets.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.service == nil {
		return errors.New("reorder widgets command requires service")
	}
	actx := withActor(ctx, msg.Viewer, msg.Actor)
	var err error
	if len(msg.WidgetIDs) > 0 {
		_, err = c.service.ArrangeWidgets(actx, msg.Viewer, msg.WidgetIDs)
	} else {
		_, err = c.service.ReorderWidgets(actx, msg.Viewer, msg.From, msg.To)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reorder_widgets", map[string]any{
		"from":    msg.From,
		"to":      msg.To,
		"arrange": len(msg.WidgetIDs),
	})
	return nil
}

// ReorderColumnsCommand wraps Service.ReorderColumns and Service.ArrangeColumns.
type ReorderColumnsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderColumnsCommand builds the command.
func NewReorderColumnsCommand(service reorderService, telemetry Telemetry) *ReorderColumnsCommand {
	return &ReorderColumnsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderColumnsInput] = (*ReorderColumnsCommand)(nil)

// Execute reorders a table's columns for the viewer.
func (c *ReorderColumnsCommand) Execute(ctx context.Context, msg ReorderColumnsInput) error {
	if c.service == nil {
		return errors.New("reorder columns command requires service")
	}
	actx := withActor(ctx, msg.Viewer, msg.Actor)
	var err error
	if len(msg.Keys) > 0 {
		_, err = c.service.ArrangeColumns(actx, msg.Viewer, msg.Table, msg.Keys)
	} else {
		_, err = c.service.ReorderColumns(actx, msg.Viewer, msg.Table, msg.From, msg.To)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reorder_columns", map[string]any{
		"table":   msg.Table,
		"from":    msg.From,
		"to":      msg.To,
		"arrange": len(msg.Keys),
	})
	return nil
}
