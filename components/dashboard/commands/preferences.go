package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

// ResetLayoutInput restores defaults. An empty Table resets the widget layout.
type ResetLayoutInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Table  string                  `json:"table,omitempty"`
	Actor
}

// SaveWidgetsInput replaces the viewer's widget settings in bulk.
type SaveWidgetsInput struct {
	Viewer  dashboard.ViewerContext `json:"viewer"`
	Widgets []dashboard.Widget      `json:"widgets"`
	Actor
}

// SaveColumnsInput replaces the viewer's column settings for a table in bulk.
type SaveColumnsInput struct {
	Viewer  dashboard.ViewerContext `json:"viewer"`
	Table   string                  `json:"table"`
	Columns []dashboard.Column      `json:"columns"`
	Actor
}

type preferenceService interface {
	ResetWidgets(ctx context.Context, viewer dashboard.ViewerContext) ([]dashboard.Widget, error)
	ResetColumns(ctx context.Context, viewer dashboard.ViewerContext, table string) ([]dashboard.Column, error)
	SaveWidgets(ctx context.Context, viewer dashboard.ViewerContext, widgets []dashboard.Widget) ([]dashboard.Widget, error)
	SaveColumns(ctx context.Context, viewer dashboard.ViewerContext, table string, cols []dashboard.Column) ([]dashboard.Column, error)
}

// ResetLayoutCommand restores the default layout for widgets or one table.
type ResetLayoutCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewResetLayoutCommand creates the command.
func NewResetLayoutCommand(service preferenceService, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutInput] = (*ResetLayoutCommand)(nil)

func (c *ResetLayoutCommand) Execute(ctx context.Context, msg ResetLayoutInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	actx := withActor(ctx, msg.Viewer, msg.Actor)
	var err error
	if msg.Table == "" {
		_, err = c.service.ResetWidgets(actx, msg.Viewer)
	} else {
		_, err = c.service.ResetColumns(actx, msg.Viewer, msg.Table)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reset", map[string]any{
		"user_id": msg.Viewer.UserID,
		"table":   msg.Table,
	})
	return nil
}

// SaveWidgetsCommand persists a full widget settings list.
type SaveWidgetsCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSaveWidgetsCommand creates the command.
func NewSaveWidgetsCommand(service preferenceService, telemetry Telemetry) *SaveWidgetsCommand {
	return &SaveWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveWidgetsInput] = (*SaveWidgetsCommand)(nil)

// Execute stores the provided widgets for the viewer. Unknown ids are dropped
// on merge.
func (c *SaveWidgetsCommand) Execute(ctx context.Context, msg SaveWidgetsInput) error {
	if c.service == nil {
		return errors.New("save widgets command requires service")
	}
	if _, err := c.service.SaveWidgets(withActor(ctx, msg.Viewer, msg.Actor), msg.Viewer, msg.Widgets); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.save_widgets", map[string]any{
		"user_id": msg.Viewer.UserID,
		"count":   len(msg.Widgets),
	})
	return nil
}

// SaveColumnsCommand persists a full column settings list for a table.
type SaveColumnsCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSaveColumnsCommand creates the command.
func NewSaveColumnsCommand(service preferenceService, telemetry Telemetry) *SaveColumnsCommand {
	return &SaveColumnsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveColumnsInput] = (*SaveColumnsCommand)(nil)

func (c *SaveColumnsCommand) Execute(ctx context.Context, msg SaveColumnsInput) error {
	if c.service == nil {
		return errors.New("save columns command requires service")
	}
	if _, err := c.service.SaveColumns(withActor(ctx, msg.Viewer, msg.Actor), msg.Viewer, msg.Table, msg.Columns); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.save_columns", map[string]any{
		"user_id": msg.Viewer.UserID,
		"table":   msg.Table,
		"count":   len(msg.Columns),
	})
	return nil
}
