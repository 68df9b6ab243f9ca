package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Reconciler is a layout session for one viewer and scope. It keeps the ordered
// item list in memory, applies mutations synchronously and persists the full
// list asynchronously. Persists run in the order mutations were issued.
type Reconciler[T any, S any] struct {
	variant  Variant[T, S]
	key      SettingsKey
	defaults []T
	store    SettingsStore
	cache    *SettingsCache

	mu    sync.Mutex
	items []T
	tail  *Pending
}

// NewReconciler builds a session seeded with a copy of defaults.
func NewReconciler[T any, S any](v Variant[T, S], key SettingsKey, defaults []T, store SettingsStore, cache *SettingsCache) *Reconciler[T, S] {
	return &Reconciler[T, S]{
		variant:  v,
		key:      key,
		defaults: append([]T(nil), defaults...),
		store:    store,
		cache:    cache,
		items:    append([]T(nil), defaults...),
	}
}

// Key returns the settings key the session persists to.
func (r *Reconciler[T, S]) Key() SettingsKey {
	return r.key
}

// Load reads the persisted settings through the cache, reconciles them with the
// defaults and replaces the local state.
func (r *Reconciler[T, S]) Load(ctx context.Context) ([]T, error) {
	blob, found, hit := r.cache.Get(r.key)
	if !hit {
		gen := r.cache.Generation(r.key)
		var err error
		blob, found, err = r.store.Get(ctx, r.key)
		if err != nil {
			return nil, fmt.Errorf("%w: get %s/%s: %w", ErrStore, r.key.OwnerID, r.key.Scope, err)
		}
		r.cache.Fill(r.key, blob, found, gen)
	}
	settings, err := DecodeSettings[S](blob)
	if err != nil {
		return nil, err
	}
	items := Reconcile(r.variant, r.defaults, settings, found)

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return append([]T(nil), items...), nil
}

// Items returns a copy of the current local list.
func (r *Reconciler[T, S]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.items...)
}

// Defaults returns a copy of the default set.
func (r *Reconciler[T, S]) Defaults() []T {
	return append([]T(nil), r.defaults...)
}

// ToggleVisibility flips the visibility of the item with key id. Unknown ids
// are a no-op and nothing is persisted.
func (r *Reconciler[T, S]) ToggleVisibility(ctx context.Context, id string, toggle func(T) T) *Pending {
	return r.update(ctx, id, func(item T) (T, error) {
		return toggle(item), nil
	})
}

// Reorder moves the item at from to to using splice semantics, then rewrites
// every order to its index.
func (r *Reconciler[T, S]) Reorder(ctx context.Context, from, to int) (*Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	moved, err := moveItem(r.variant, r.items, from, to)
	if err != nil {
		return nil, err
	}
	r.items = moved
	return r.schedule(ctx), nil
}

// ReorderKeys orders items following keys; items not listed keep their relative
// order after the listed ones.
func (r *Reconciler[T, S]) ReorderKeys(ctx context.Context, keys []string) *Pending {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = applyOrderOverride(r.variant, append([]T(nil), r.items...), keys)
	return r.schedule(ctx)
}

// Reset replaces the local list with a fresh copy of the defaults.
func (r *Reconciler[T, S]) Reset(ctx context.Context) *Pending {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]T(nil), r.defaults...)
	return r.schedule(ctx)
}

// Replace reconciles a full submitted list against the defaults and persists it.
func (r *Reconciler[T, S]) Replace(ctx context.Context, items []T) *Pending {
	merged := Reconcile(r.variant, r.defaults, Settings(r.variant, items), true)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = merged
	return r.schedule(ctx)
}

func (r *Reconciler[T, S]) update(ctx context.Context, id string, fn func(T) (T, error)) *Pending {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if r.variant.ItemKey(item) != id {
			continue
		}
		updated, err := fn(item)
		if err != nil {
			return completedPending(err)
		}
		next := append([]T(nil), r.items...)
		next[i] = updated
		r.items = next
		return r.schedule(ctx)
	}
	return skippedPending()
}

// schedule starts the persist of the current list. Callers hold r.mu.
func (r *Reconciler[T, S]) schedule(ctx context.Context) *Pending {
	snapshot := append([]T(nil), r.items...)
	prev := r.tail
	p := newPending()
	r.tail = p
	ctx = context.WithoutCancel(ctx)
	go func() {
		if prev != nil {
			<-prev.Done()
		}
		p.resolve(r.write(ctx, snapshot))
	}()
	return p
}

func (r *Reconciler[T, S]) write(ctx context.Context, items []T) error {
	defer r.cache.Invalidate(r.key)
	blob, err := EncodeSettings(r.variant, items)
	if err != nil {
		return err
	}
	if err := r.store.Upsert(ctx, r.key, blob); err != nil {
		return fmt.Errorf("%w: upsert %s/%s: %w", ErrStore, r.key.OwnerID, r.key.Scope, err)
	}
	return nil
}

// WidgetSession is a Reconciler for the dashboard widget layout.
type WidgetSession struct {
	*Reconciler[Widget, WidgetSetting]
}

// NewWidgetSession builds a widget layout session for owner.
func NewWidgetSession(owner string, defaults []Widget, store SettingsStore, cache *SettingsCache) *WidgetSession {
	key := SettingsKey{OwnerID: owner, Scope: WidgetScope}
	return &WidgetSession{NewReconciler[Widget, WidgetSetting](WidgetVariant{}, key, defaults, store, cache)}
}

// Toggle flips a widget's visibility.
func (s *WidgetSession) Toggle(ctx context.Context, id string) *Pending {
	return s.ToggleVisibility(ctx, id, func(w Widget) Widget {
		w.Visible = !w.Visible
		return w
	})
}

// Resize sets a widget's size.
func (s *WidgetSession) Resize(ctx context.Context, id string, size WidgetSize) *Pending {
	if !size.Valid() {
		return completedPending(fmt.Errorf("%w: %q", ErrInvalidSize, size))
	}
	return s.update(ctx, id, func(w Widget) (Widget, error) {
		w.Size = size
		return w, nil
	})
}

// ColumnSession is a Reconciler for one table's columns.
type ColumnSession struct {
	*Reconciler[Column, ColumnSetting]
	table string
}

// NewColumnSession builds a column layout session for owner and table.
func NewColumnSession(owner, table string, defaults []Column, store SettingsStore, cache *SettingsCache) *ColumnSession {
	key := SettingsKey{OwnerID: owner, Scope: ColumnScope(table)}
	return &ColumnSession{
		Reconciler: NewReconciler[Column, ColumnSetting](ColumnVariant{}, key, defaults, store, cache),
		table:      table,
	}
}

// Table returns the table the session customizes.
func (s *ColumnSession) Table() string {
	return s.table
}

// Toggle flips a column's visibility.
func (s *ColumnSession) Toggle(ctx context.Context, key string) *Pending {
	return s.ToggleVisibility(ctx, key, func(c Column) Column {
		c.Visible = !c.Visible
		return c
	})
}

// Resize sets a column's width, raising values below MinColumnWidth.
func (s *ColumnSession) Resize(ctx context.Context, key string, width int) *Pending {
	return s.update(ctx, key, func(c Column) (Column, error) {
		c.Width = ClampWidth(width)
		return c, nil
	})
}

// IsStoreError reports whether err came from the settings store.
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStore)
}
