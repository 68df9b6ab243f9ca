package dashboard

import (
	"fmt"
	"sort"
	"sync"
)

// CatalogHook lets packages register widgets/tables during init().
type CatalogHook func(cat *Catalog) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CatalogHook
)

// RegisterCatalogHook registers a hook executed against new catalogs.
func RegisterCatalogHook(h CatalogHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Catalog holds the default sets layouts are reconciled against: one widget set
// for the dashboard and one column set per table.
type Catalog struct {
	mu           sync.RWMutex
	widgets      []Widget
	tables       map[string][]Column
	translations Translations
}

// NewCatalog builds an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: map[string][]Column{}, translations: Translations{}}
}

// DefaultCatalog builds a catalog with the built-in defaults and applies hooks.
func DefaultCatalog() *Catalog {
	cat := NewCatalog()
	for _, w := range DefaultWidgets() {
		_ = cat.RegisterWidget(w)
	}
	for table, cols := range DefaultTables() {
		_ = cat.RegisterTable(table, cols)
	}
	_ = cat.ApplyHooks()
	return cat
}

// ApplyHooks executes registered catalog hooks.
func (c *Catalog) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(c); err != nil {
			return err
		}
	}
	return nil
}

// RegisterWidget adds or replaces a widget default. New widgets are appended
// after the existing ones.
func (c *Catalog) RegisterWidget(w Widget) error {
	if w.ID == "" {
		return fmt.Errorf("widget id is required")
	}
	if !w.Size.Valid() {
		return fmt.Errorf("widget %s: %w: %q", w.ID, ErrInvalidSize, w.Size)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.widgets {
		if existing.ID == w.ID {
			c.widgets[i] = w
			return nil
		}
	}
	c.widgets = append(c.widgets, w)
	return nil
}

// RegisterTable sets the column defaults for table.
func (c *Catalog) RegisterTable(table string, cols []Column) error {
	if table == "" {
		return fmt.Errorf("table name is required")
	}
	seen := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		if col.Key == "" {
			return fmt.Errorf("table %s: column key is required", table)
		}
		if _, dup := seen[col.Key]; dup {
			return fmt.Errorf("table %s: duplicate column %s", table, col.Key)
		}
		if col.Width < MinColumnWidth {
			return fmt.Errorf("table %s: column %s width %d below minimum %d", table, col.Key, col.Width, MinColumnWidth)
		}
		seen[col.Key] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[table] = append([]Column(nil), cols...)
	return nil
}

// Widgets returns the widget defaults sorted by order.
func (c *Catalog) Widgets() []Widget {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := append([]Widget(nil), c.widgets...)
	sortByOrder[Widget, WidgetSetting](WidgetVariant{}, out)
	return out
}

// Columns returns the column defaults for table sorted by order.
func (c *Catalog) Columns(table string) ([]Column, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cols, ok := c.tables[table]
	if !ok {
		return nil, false
	}
	out := append([]Column(nil), cols...)
	sortByOrder[Column, ColumnSetting](ColumnVariant{}, out)
	return out, true
}

// Tables returns the registered table names in lexical order.
func (c *Catalog) Tables() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterTranslations merges translation values into the catalog. Later
// values for the same key and locale win.
func (c *Catalog) RegisterTranslations(t Translations) {
	t = normalizeTranslations(t)
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, values := range t {
		existing, ok := c.translations[key]
		if !ok {
			existing = make(map[string]string, len(values))
			c.translations[key] = existing
		}
		for locale, value := range values {
			existing[locale] = value
		}
	}
}

// Translations returns a copy of the registered translations.
func (c *Catalog) Translations() Translations {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(Translations, len(c.translations))
	for key, values := range c.translations {
		cp := make(map[string]string, len(values))
		for locale, value := range values {
			cp[locale] = value
		}
		out[key] = cp
	}
	return out
}
