package dashboard

import (
	"context"
	"errors"
)

// NotificationsClient defines the minimal interface needed from a notifications service.
type NotificationsClient interface {
	PublishLayoutEvent(ctx context.Context, event LayoutEvent) error
}

// NotificationsHook forwards layout events to an external notifications client.
type NotificationsHook struct {
	Client NotificationsClient
}

// LayoutUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) LayoutUpdated(ctx context.Context, event LayoutEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishLayoutEvent(ctx, event)
}

// RefreshHooks fans a layout event out to several hooks.
type RefreshHooks []RefreshHook

// LayoutUpdated calls every hook and joins their errors.
func (hooks RefreshHooks) LayoutUpdated(ctx context.Context, event LayoutEvent) error {
	var errs []error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.LayoutUpdated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
