package dashboard

import (
	"context"
	"encoding/json"
	"io"
)

// LayoutResolver resolves the full layout for a viewer.
type LayoutResolver interface {
	Layout(ctx context.Context, viewer ViewerContext) (Layout, error)
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithTranslations localizes widget titles and column labels using the
// viewer's locale.
func WithTranslations(svc TranslationService) ControllerOption {
	return func(c *Controller) {
		c.translations = svc
	}
}

// Controller turns resolved layouts into payloads transports can serve.
type Controller struct {
	service      LayoutResolver
	translations TranslationService
}

// NewController wires the service into a controller.
func NewController(service LayoutResolver, opts ...ControllerOption) *Controller {
	c := &Controller{service: service}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Render resolves the layout for a viewer and returns it to the caller.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.service == nil {
		return Layout{}, nil
	}
	layout, err := c.service.Layout(ctx, viewer)
	if err != nil {
		return Layout{}, err
	}
	return localizeLayout(ctx, c.translations, layout, viewer.Locale), nil
}

// RenderJSON writes the viewer's layout as JSON.
func (c *Controller) RenderJSON(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return err
	}
	return json.NewEncoder(out).Encode(layout)
}
