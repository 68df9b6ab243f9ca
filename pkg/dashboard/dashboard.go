// Package dashboard is the public entry point for embedding workboard layouts
// in another application.
package dashboard

import (
	core "github.com/goliatone/go-workboard/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Controller re-exports the layout controller.
type Controller = core.Controller

// ViewerContext re-exports the viewer identity.
type ViewerContext = core.ViewerContext

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewController proxies to the internal constructor.
func NewController(service *Service, opts ...core.ControllerOption) *Controller {
	return core.NewController(service, opts...)
}

// Bootstrap builds a service whose catalog layers manifests over the
// built-in defaults. opts.Catalog is replaced.
func Bootstrap(opts Options, manifests ...string) (*Service, error) {
	cat, err := core.BootstrapCatalog(manifests...)
	if err != nil {
		return nil, err
	}
	opts.Catalog = cat
	return core.NewService(opts), nil
}
