package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifest models a YAML/JSON manifest describing default widgets and
// table columns. Translations are keyed by WidgetTitleKey or ColumnLabelKey.
type CatalogManifest struct {
	Version      string              `json:"version" yaml:"version"`
	Name         string              `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets      []Widget            `json:"widgets,omitempty" yaml:"widgets,omitempty"`
	Tables       map[string][]Column `json:"tables,omitempty" yaml:"tables,omitempty"`
	Translations Translations        `json:"translations,omitempty" yaml:"translations,omitempty"`
	Source       string              `json:"-" yaml:"-"`
}

// LoadManifestFile reads a manifest from disk, registers it against the catalog, and returns the document.
func (c *Catalog) LoadManifestFile(path string) (*CatalogManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := c.LoadManifest(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifest registers widgets and tables from a decoded manifest.
func (c *Catalog) LoadManifest(doc *CatalogManifest) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, w := range doc.Widgets {
		if err := c.RegisterWidget(w); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", w.ID, doc.Source, err)
		}
	}
	for table, cols := range doc.Tables {
		if err := c.RegisterTable(table, cols); err != nil {
			return fmt.Errorf("dashboard: register table %s from %s: %w", table, doc.Source, err)
		}
	}
	c.RegisterTranslations(doc.Translations)
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*CatalogManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*CatalogManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeManifest writes doc as YAML.
func EncodeManifest(w io.Writer, doc *CatalogManifest) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: write manifest: %w", err)
	}
	return encoder.Close()
}

// Validate ensures the manifest satisfies required fields.
func (doc *CatalogManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, w := range doc.Widgets {
		if w.ID == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing id", idx)
		}
		if !w.Size.Valid() {
			return fmt.Errorf("dashboard: manifest widget %s has invalid size %q", w.ID, w.Size)
		}
		if _, exists := seen[w.ID]; exists {
			return fmt.Errorf("dashboard: manifest duplicates widget id %s", w.ID)
		}
		seen[w.ID] = struct{}{}
	}
	for table, cols := range doc.Tables {
		keys := make(map[string]struct{}, len(cols))
		for idx, col := range cols {
			if col.Key == "" {
				return fmt.Errorf("dashboard: manifest table %s column at index %d is missing key", table, idx)
			}
			if _, exists := keys[col.Key]; exists {
				return fmt.Errorf("dashboard: manifest table %s duplicates column %s", table, col.Key)
			}
			keys[col.Key] = struct{}{}
		}
	}
	return nil
}

func (doc *CatalogManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Widgets {
		if doc.Widgets[i].Size == "" {
			doc.Widgets[i].Size = WidgetSizeMedium
		}
	}
	for table, cols := range doc.Tables {
		for i := range cols {
			if cols[i].Width == 0 {
				cols[i].Width = MinColumnWidth
			}
			if cols[i].Label == "" {
				cols[i].Label = cols[i].Key
			}
		}
		doc.Tables[table] = cols
	}
}
