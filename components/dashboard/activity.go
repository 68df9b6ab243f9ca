package dashboard

import (
	"context"

	"github.com/goliatone/go-workboard/pkg/activity"
)

// ActivityContext captures actor/user/tenant identifiers for activity events.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}

// layoutActivity builds the activity event for a layout mutation. The viewer
// is the actor unless the context names someone else.
func layoutActivity(ctx context.Context, viewer ViewerContext, event LayoutEvent, meta map[string]any) activity.Event {
	actx := activityContextFrom(ctx)
	actor := actx.ActorID
	if actor == "" {
		actor = viewer.UserID
	}
	user := actx.UserID
	if user == "" {
		user = viewer.UserID
	}
	objectType := "widget_layout"
	objectID := event.ItemID
	if event.Scope != WidgetScope {
		objectType = "column_layout"
	}
	if objectID == "" {
		objectID = event.Scope
	}
	metadata := map[string]any{
		"scope":  event.Scope,
		"reason": event.Reason,
	}
	for k, v := range meta {
		metadata[k] = v
	}
	return activity.Event{
		Verb:       "dashboard.layout." + event.Reason,
		ActorID:    actor,
		UserID:     user,
		TenantID:   actx.TenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   metadata,
	}
}
