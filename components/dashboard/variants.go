package dashboard

// WidgetVariant reconciles dashboard widgets. Persisted widgets without a default
// belong to retired widget types and are dropped.
type WidgetVariant struct{}

func (WidgetVariant) ItemKey(w Widget) string {
	return w.ID
}

func (WidgetVariant) SettingKey(s WidgetSetting) string {
	return s.ID
}

func (WidgetVariant) ItemOrder(w Widget) int {
	return w.Order
}

func (WidgetVariant) WithOrder(w Widget, order int) Widget {
	w.Order = order
	return w
}

func (WidgetVariant) Merge(def Widget, s WidgetSetting) Widget {
	if s.Visible != nil {
		def.Visible = *s.Visible
	}
	if s.Order != nil {
		def.Order = *s.Order
	}
	if s.Size.Valid() {
		def.Size = s.Size
	}
	return def
}

func (WidgetVariant) Extra(WidgetSetting) (Widget, bool) {
	return Widget{}, false
}

func (WidgetVariant) Setting(w Widget) WidgetSetting {
	visible := w.Visible
	order := w.Order
	return WidgetSetting{
		ID:      w.ID,
		Visible: &visible,
		Order:   &order,
		Size:    w.Size,
	}
}

// ColumnVariant reconciles table columns. Persisted columns without a default
// are kept as trailing extras since table schemas can grow at runtime.
type ColumnVariant struct{}

func (ColumnVariant) ItemKey(c Column) string {
	return c.Key
}

func (ColumnVariant) SettingKey(s ColumnSetting) string {
	return s.Key
}

func (ColumnVariant) ItemOrder(c Column) int {
	return c.Order
}

func (ColumnVariant) WithOrder(c Column, order int) Column {
	c.Order = order
	return c
}

func (ColumnVariant) Merge(def Column, s ColumnSetting) Column {
	if s.Label != "" {
		def.Label = s.Label
	}
	if s.Visible != nil {
		def.Visible = *s.Visible
	}
	if s.Order != nil {
		def.Order = *s.Order
	}
	if s.Width != nil {
		def.Width = ClampWidth(*s.Width)
	}
	return def
}

func (ColumnVariant) Extra(s ColumnSetting) (Column, bool) {
	col := Column{Key: s.Key, Label: s.Label, Visible: true, Width: MinColumnWidth}
	if col.Label == "" {
		col.Label = s.Key
	}
	if s.Visible != nil {
		col.Visible = *s.Visible
	}
	if s.Width != nil {
		col.Width = ClampWidth(*s.Width)
	}
	return col, true
}

func (ColumnVariant) Setting(c Column) ColumnSetting {
	visible := c.Visible
	order := c.Order
	width := c.Width
	return ColumnSetting{
		Key:     c.Key,
		Label:   c.Label,
		Visible: &visible,
		Order:   &order,
		Width:   &width,
	}
}

// ClampWidth raises widths below MinColumnWidth to the minimum.
func ClampWidth(width int) int {
	if width < MinColumnWidth {
		return MinColumnWidth
	}
	return width
}

var (
	_ Variant[Widget, WidgetSetting] = WidgetVariant{}
	_ Variant[Column, ColumnSetting] = ColumnVariant{}
)
