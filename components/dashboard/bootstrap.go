package dashboard

import (
	"context"
	"errors"
	"fmt"
)

// BootstrapCatalog builds the default catalog and layers the given manifest
// files on top of it, in order.
func BootstrapCatalog(manifests ...string) (*Catalog, error) {
	cat := DefaultCatalog()
	for _, path := range manifests {
		if path == "" {
			continue
		}
		if _, err := cat.LoadManifestFile(path); err != nil {
			return nil, fmt.Errorf("bootstrap catalog: %w", err)
		}
	}
	return cat, nil
}

// SeedLayout persists the default widget and column layouts for owners that
// have no stored record yet. Existing customizations are left alone.
func SeedLayout(ctx context.Context, service *Service, owners ...string) error {
	if service == nil {
		return errors.New("dashboard: service is required to seed layout")
	}
	var seedErr error
	for _, owner := range owners {
		viewer := ViewerContext{UserID: owner}
		if err := seedScope(ctx, service, SettingsKey{OwnerID: owner, Scope: WidgetScope}, func() error {
			_, err := service.ResetWidgets(ctx, viewer)
			return err
		}); err != nil {
			seedErr = errors.Join(seedErr, err)
		}
		for _, table := range service.Catalog().Tables() {
			table := table
			if err := seedScope(ctx, service, SettingsKey{OwnerID: owner, Scope: ColumnScope(table)}, func() error {
				_, err := service.ResetColumns(ctx, viewer, table)
				return err
			}); err != nil {
				seedErr = errors.Join(seedErr, err)
			}
		}
	}
	return seedErr
}

func seedScope(ctx context.Context, service *Service, key SettingsKey, reset func() error) error {
	_, found, err := service.opts.SettingsStore.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: seed %s/%s: %w", ErrStore, key.OwnerID, key.Scope, err)
	}
	if found {
		return nil
	}
	return reset()
}
