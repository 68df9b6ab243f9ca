package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

// ToggleWidgetInput flips a widget's visibility.
type ToggleWidgetInput struct {
	Viewer   dashboard.ViewerContext `json:"viewer"`
	WidgetID string                  `json:"widget_id"`
	Actor
}

// ResizeWidgetInput sets a widget's size.
type ResizeWidgetInput struct {
	Viewer   dashboard.ViewerContext `json:"viewer"`
	WidgetID string                  `json:"widget_id"`
	Size     dashboard.WidgetSize    `json:"size"`
	Actor
}

// ToggleColumnInput flips a column's visibility.
type ToggleColumnInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Table  string                  `json:"table"`
	Key    string                  `json:"key"`
	Actor
}

// ResizeColumnInput sets a column's width. Widths below the minimum are clamped.
type ResizeColumnInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Table  string                  `json:"table"`
	Key    string                  `json:"key"`
	Width  int                     `json:"width"`
	Actor
}

type updateService interface {
	ToggleWidget(ctx context.Context, viewer dashboard.ViewerContext, id string) ([]dashboard.Widget, error)
	ResizeWidget(ctx context.Context, viewer dashboard.ViewerContext, id string, size dashboard.WidgetSize) ([]dashboard.Widget, error)
	ToggleColumn(ctx context.Context, viewer dashboard.ViewerContext, table, key string) ([]dashboard.Column, error)
	ResizeColumn(ctx context.Context, viewer dashboard.ViewerContext, table, key string, width int) ([]dashboard.Column, error)
}

// ToggleWidgetCommand wraps Service.ToggleWidget.
type ToggleWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewToggleWidgetCommand creates the command.
func NewToggleWidgetCommand(service updateService, telemetry Telemetry) *ToggleWidgetCommand {
	return &ToggleWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleWidgetInput] = (*ToggleWidgetCommand)(nil)

func (c *ToggleWidgetCommand) Execute(ctx context.Context, msg ToggleWidgetInput) error {
	if c.service == nil {
		return errors.New("toggle widget command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("toggle widget command requires widget id")
	}
	if _, err := c.service.ToggleWidget(withActor(ctx, msg.Viewer, msg.Actor), msg.Viewer, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.toggle_widget", map[string]any{"widget_id": msg.WidgetID})
	return nil
}

// ResizeWidgetCommand wraps Service.ResizeWidget.
type ResizeWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewResizeWidgetCommand creates the command.
func NewResizeWidgetCommand(service updateService, telemetry Telemetry) *ResizeWidgetCommand {
	return &ResizeWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeWidgetInput] = (*ResizeWidgetCommand)(nil)

func (c *ResizeWidgetCommand) Execute(ctx context.Context, msg ResizeWidgetInput) error {
	if c.service == nil {
		return errors.New("resize widget command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("resize widget command requires widget id")
	}
	if _, err := c.service.ResizeWidget(withActor(ctx, msg.Viewer, msg.Actor), msg.Viewer, msg.WidgetID, msg.Size); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.resize_widget", map[string]any{
		"widget_id": msg.WidgetID,
		"size":      string(msg.Size),
	})
	return nil
}

// ToggleColumnCommand wraps Service.ToggleColumn.
type ToggleColumnCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewToggleColumnCommand creates the command.
func NewToggleColumnCommand(service updateService, telemetry Telemetry) *ToggleColumnCommand {
	return &ToggleColumnCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleColumnInput] = (*ToggleColumnCommand)(nil)

func (c *ToggleColumnCommand) Execute(ctx context.Context, msg ToggleColumnInput) error {
	if c.service == nil {
		return errors.New("toggle column command requires service")
	}
	if msg.Key == "" {
		return errors.New("toggle column command requires column key")
	}
	if _, err := c.service.ToggleColumn(withActor(ctx, msg.Viewer, msg.Actor), msg.Viewer, msg.Table, msg.Key); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.toggle_column", map[string]any{"table": msg.Table, "key": msg.Key})
	return nil
}

// ResizeColumnCommand wraps Service.ResizeColumn.
type ResizeColumnCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewResizeColumnCommand creates the command.
func NewResizeColumnCommand(service updateService, telemetry Telemetry) *ResizeColumnCommand {
	return &ResizeColumnCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeColumnInput] = (*ResizeColumnCommand)(nil)

func (c *ResizeColumnCommand) Execute(ctx context.Context, msg ResizeColumnInput) error {
	if c.service == nil {
		return errors.New("resize column command requires service")
	}
	if msg.Key == "" {
		return errors.New("resize column command requires column key")
	}
	if _, err := c.service.ResizeColumn(withActor(ctx, msg.Viewer, msg.Actor), msg.Viewer, msg.Table, msg.Key, msg.Width); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.resize_column", map[string]any{
		"table": msg.Table,
		"key":   msg.Key,
		"width": msg.Width,
	})
	return nil
}
