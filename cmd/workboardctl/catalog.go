package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ettle/strcase"

	"github.com/goliatone/go-workboard/components/dashboard"
)

type catalogCmd struct {
	AddWidget catalogAddWidgetCmd `cmd:"" name:"add-widget" help:"Add or replace a default widget in a manifest."`
	AddColumn catalogAddColumnCmd `cmd:"" name:"add-column" help:"Add or replace a default column in a manifest."`
}

type catalogAddWidgetCmd struct {
	Manifest  string `required:"" type:"path" help:"Manifest YAML file to update. Created when missing."`
	Title     string `required:"" help:"Widget title."`
	ID        string `name:"id" help:"Widget id. Derived from the title when empty."`
	Type      string `default:"custom" help:"Widget type."`
	Size      string `default:"full" enum:"medium,full" help:"Default size."`
	Hidden    bool   `help:"Hide the widget by default."`
	Overwrite bool   `help:"Replace an existing entry with the same id."`
}

func (cmd *catalogAddWidgetCmd) Run(_ context.Context) error {
	path, doc, err := openManifest(cmd.Manifest)
	if err != nil {
		return err
	}
	widget := buildWidget(cmd.ID, cmd.Title, cmd.Type, dashboard.WidgetSize(cmd.Size), !cmd.Hidden)

	idx := -1
	for i, w := range doc.Widgets {
		if w.ID == widget.ID {
			idx = i
			break
		}
	}
	switch {
	case idx >= 0 && !cmd.Overwrite:
		return fmt.Errorf("workboardctl: manifest already defines widget %s (use --overwrite to replace)", widget.ID)
	case idx >= 0:
		widget.Order = doc.Widgets[idx].Order
		doc.Widgets[idx] = widget
	default:
		widget.Order = len(doc.Widgets)
		doc.Widgets = append(doc.Widgets, widget)
	}

	if err := saveManifest(path, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added widget %s to %s\n", widget.ID, path)
	return nil
}

type catalogAddColumnCmd struct {
	Manifest  string `required:"" type:"path" help:"Manifest YAML file to update. Created when missing."`
	Table     string `required:"" help:"Table the column belongs to."`
	Key       string `required:"" help:"Column key. Normalized to snake_case."`
	Label     string `help:"Column label. Derived from the key when empty."`
	Width     int    `default:"150" help:"Default width in pixels."`
	Hidden    bool   `help:"Hide the column by default."`
	Overwrite bool   `help:"Replace an existing column with the same key."`
}

func (cmd *catalogAddColumnCmd) Run(_ context.Context) error {
	path, doc, err := openManifest(cmd.Manifest)
	if err != nil {
		return err
	}
	col := buildColumn(cmd.Key, cmd.Label, cmd.Width, !cmd.Hidden)
	table := strcase.ToSnake(cmd.Table)
	if doc.Tables == nil {
		doc.Tables = map[string][]dashboard.Column{}
	}
	cols := doc.Tables[table]

	idx := -1
	for i, c := range cols {
		if c.Key == col.Key {
			idx = i
			break
		}
	}
	switch {
	case idx >= 0 && !cmd.Overwrite:
		return fmt.Errorf("workboardctl: manifest table %s already defines column %s (use --overwrite to replace)", table, col.Key)
	case idx >= 0:
		col.Order = cols[idx].Order
		cols[idx] = col
	default:
		col.Order = len(cols)
		cols = append(cols, col)
	}
	doc.Tables[table] = cols

	if err := saveManifest(path, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added column %s.%s to %s\n", table, col.Key, path)
	return nil
}

// buildWidget derives a kebab-case id from the title when id is empty.
func buildWidget(id, title, typ string, size dashboard.WidgetSize, visible bool) dashboard.Widget {
	if id == "" {
		id = title
	}
	return dashboard.Widget{
		ID:      strcase.ToKebab(id),
		Type:    strcase.ToKebab(typ),
		Title:   title,
		Visible: visible,
		Size:    size,
	}
}

// buildColumn normalizes key to snake_case and derives a title-cased label
// when label is empty.
func buildColumn(key, label string, width int, visible bool) dashboard.Column {
	key = strcase.ToSnake(key)
	if label == "" {
		label = strcase.ToCase(key, strcase.TitleCase, ' ')
	}
	if width < dashboard.MinColumnWidth {
		width = dashboard.MinColumnWidth
	}
	return dashboard.Column{Key: key, Label: label, Visible: visible, Width: width}
}

func openManifest(raw string) (string, *dashboard.CatalogManifest, error) {
	path, err := filepath.Abs(raw)
	if err != nil {
		return "", nil, fmt.Errorf("workboardctl: resolve manifest path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return path, &dashboard.CatalogManifest{Version: dashboard.ManifestVersion, Source: path}, nil
		}
		return "", nil, fmt.Errorf("workboardctl: stat manifest: %w", err)
	}
	doc, err := dashboard.ReadManifest(path)
	if err != nil {
		return "", nil, err
	}
	return path, doc, nil
}

// saveManifest validates doc and writes it through a temp file so a failed
// encode leaves the previous manifest in place.
func saveManifest(path string, doc *dashboard.CatalogManifest) error {
	sort.SliceStable(doc.Widgets, func(i, j int) bool { return doc.Widgets[i].Order < doc.Widgets[j].Order })
	if err := doc.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("workboardctl: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".manifest-*.yaml")
	if err != nil {
		return fmt.Errorf("workboardctl: create manifest: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := dashboard.EncodeManifest(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("workboardctl: write manifest: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
