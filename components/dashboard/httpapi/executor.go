package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dashboard/commands"
)

// Executor is the mutation surface transports call into.
type Executor interface {
	ToggleWidget(ctx context.Context, input commands.ToggleWidgetInput) error
	ResizeWidget(ctx context.Context, input commands.ResizeWidgetInput) error
	ReorderWidgets(ctx context.Context, input commands.ReorderWidgetsInput) error
	SaveWidgets(ctx context.Context, input commands.SaveWidgetsInput) error
	ToggleColumn(ctx context.Context, input commands.ToggleColumnInput) error
	ResizeColumn(ctx context.Context, input commands.ResizeColumnInput) error
	ReorderColumns(ctx context.Context, input commands.ReorderColumnsInput) error
	SaveColumns(ctx context.Context, input commands.SaveColumnsInput) error
	Reset(ctx context.Context, input commands.ResetLayoutInput) error
	Refresh(ctx context.Context, input commands.RefreshLayoutInput) error
}

// CommandExecutor dispatches to go-command commanders. Nil commanders report
// ErrNotConfigured.
type CommandExecutor struct {
	ToggleWidgetCommander   gocommand.Commander[commands.ToggleWidgetInput]
	ResizeWidgetCommander   gocommand.Commander[commands.ResizeWidgetInput]
	ReorderWidgetsCommander gocommand.Commander[commands.ReorderWidgetsInput]
	SaveWidgetsCommander    gocommand.Commander[commands.SaveWidgetsInput]
	ToggleColumnCommander   gocommand.Commander[commands.ToggleColumnInput]
	ResizeColumnCommander   gocommand.Commander[commands.ResizeColumnInput]
	ReorderColumnsCommander gocommand.Commander[commands.ReorderColumnsInput]
	SaveColumnsCommander    gocommand.Commander[commands.SaveColumnsInput]
	ResetCommander          gocommand.Commander[commands.ResetLayoutInput]
	RefreshCommander        gocommand.Commander[commands.RefreshLayoutInput]
}

// ErrNotConfigured is returned when an operation has no commander.
var ErrNotConfigured = errors.New("httpapi: commander not configured")

// NewCommandExecutor wires every commander against service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		ToggleWidgetCommander:   commands.NewToggleWidgetCommand(service, telemetry),
		ResizeWidgetCommander:   commands.NewResizeWidgetCommand(service, telemetry),
		ReorderWidgetsCommander: commands.NewReorderWidgetsCommand(service, telemetry),
		SaveWidgetsCommander:    commands.NewSaveWidgetsCommand(service, telemetry),
		ToggleColumnCommander:   commands.NewToggleColumnCommand(service, telemetry),
		ResizeColumnCommander:   commands.NewResizeColumnCommand(service, telemetry),
		ReorderColumnsCommander: commands.NewReorderColumnsCommand(service, telemetry),
		SaveColumnsCommander:    commands.NewSaveColumnsCommand(service, telemetry),
		ResetCommander:          commands.NewResetLayoutCommand(service, telemetry),
		RefreshCommander:        commands.NewRefreshLayoutCommand(service, telemetry),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func execute[T any](ctx context.Context, c gocommand.Commander[T], msg T) error {
	if c == nil {
		return ErrNotConfigured
	}
	return c.Execute(ctx, msg)
}

func (e *CommandExecutor) ToggleWidget(ctx context.Context, input commands.ToggleWidgetInput) error {
	return execute(ctx, e.ToggleWidgetCommander, input)
}

func (e *CommandExecutor) ResizeWidget(ctx context.Context, input commands.ResizeWidgetInput) error {
	return execute(ctx, e.ResizeWidgetCommander, input)
}

func (e *CommandExecutor) ReorderWidgets(ctx context.Context, input commands.ReorderWidgetsInput) error {
	return execute(ctx, e.ReorderWidgetsCommander, input)
}

func (e *CommandExecutor) SaveWidgets(ctx context.Context, input commands.SaveWidgetsInput) error {
	return execute(ctx, e.SaveWidgetsCommander, input)
}

func (e *CommandExecutor) ToggleColumn(ctx context.Context, input commands.ToggleColumnInput) error {
	return execute(ctx, e.ToggleColumnCommander, input)
}

func (e *CommandExecutor) ResizeColumn(ctx context.Context, input commands.ResizeColumnInput) error {
	return execute(ctx, e.ResizeColumnCommander, input)
}

func (e *CommandExecutor) ReorderColumns(ctx context.Context, input commands.ReorderColumnsInput) error {
	return execute(ctx, e.ReorderColumnsCommander, input)
}

func (e *CommandExecutor) SaveColumns(ctx context.Context, input commands.SaveColumnsInput) error {
	return execute(ctx, e.SaveColumnsCommander, input)
}

func (e *CommandExecutor) Reset(ctx context.Context, input commands.ResetLayoutInput) error {
	return execute(ctx, e.ResetCommander, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshLayoutInput) error {
	return execute(ctx, e.RefreshCommander, input)
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, dashboard.ErrMissingViewer):
		return 401
	case errors.Is(err, dashboard.ErrUnknownTable):
		return 404
	case errors.Is(err, dashboard.ErrInvalidSize),
		errors.Is(err, dashboard.ErrInvalidSettings),
		errors.Is(err, dashboard.ErrIndexOutOfRange):
		return 400
	case errors.Is(err, ErrNotConfigured):
		return 501
	default:
		return 500
	}
}
