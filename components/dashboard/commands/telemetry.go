package commands

import (
	"context"

	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

// Telemetry allows commands to emit structured events.
type Telemetry = dashboard.Telemetry

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// Actor names who issued a command when it differs from the viewer.
type Actor struct {
	ActorID  string `json:"actor_id"`
	TenantID string `json:"tenant_id"`
}

func withActor(ctx context.Context, viewer dashboard.ViewerContext, actor Actor) context.Context {
	if actor.ActorID == "" && actor.TenantID == "" {
		return ctx
	}
	return dashboard.ContextWithActivity(ctx, dashboard.ActivityContext{
		ActorID:  actor.ActorID,
		UserID:   viewer.UserID,
		TenantID: actor.TenantID,
	})
}
