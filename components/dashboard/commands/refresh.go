package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

// RefreshLayoutInput emits a layout event without mutating anything.
type RefreshLayoutInput struct {
	Event dashboard.LayoutEvent
}

type refreshNotifier interface {
	NotifyLayoutUpdated(ctx context.Context, event dashboard.LayoutEvent) error
}

// RefreshLayoutCommand triggers refresh hooks so open views reload.
type RefreshLayoutCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshLayoutCommand creates the command.
func NewRefreshLayoutCommand(service refreshNotifier, telemetry Telemetry) *RefreshLayoutCommand {
	return &RefreshLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshLayoutInput] = (*RefreshLayoutCommand)(nil)

func (c *RefreshLayoutCommand) Execute(ctx context.Context, msg RefreshLayoutInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if msg.Event.Reason == "" {
		msg.Event.Reason = "refresh"
	}
	if err := c.service.NotifyLayoutUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.refresh", map[string]any{
		"owner_id": msg.Event.OwnerID,
		"scope":    msg.Event.Scope,
	})
	return nil
}
