package dashboard

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func widgetIDs(ws []Widget) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

func columnKeys(cs []Column) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Key
	}
	return out
}

func testWidgets() []Widget {
	return []Widget{
		{ID: "a", Type: "stats", Title: "A", Visible: true, Order: 0, Size: WidgetSizeFull},
		{ID: "b", Type: "list", Title: "B", Visible: true, Order: 1, Size: WidgetSizeMedium},
		{ID: "c", Type: "list", Title: "C", Visible: false, Order: 2, Size: WidgetSizeMedium},
	}
}

func testColumns() []Column {
	return []Column{
		{Key: "name", Label: "Name", Visible: true, Order: 0, Width: 200},
		{Key: "sku", Label: "SKU", Visible: true, Order: 1, Width: 120},
		{Key: "price", Label: "Price", Visible: true, Order: 2, Width: 100},
	}
}

func TestReconcileWithoutPersistedReturnsDefaults(t *testing.T) {
	defaults := testWidgets()
	out := Reconcile[Widget, WidgetSetting](WidgetVariant{}, defaults, nil, false)
	assert.Equal(t, defaults, out)

	out[0].Title = "changed"
	assert.Equal(t, "A", defaults[0].Title, "defaults must not be mutated")
}

func TestReconcilePersistedOverridesDefaults(t *testing.T) {
	defaults := testWidgets()
	persisted := []WidgetSetting{
		{ID: "c", Visible: boolPtr(true), Order: intPtr(0), Size: WidgetSizeFull},
		{ID: "a", Visible: boolPtr(false), Order: intPtr(1)},
		{ID: "b", Order: intPtr(2)},
	}
	out := Reconcile(WidgetVariant{}, defaults, persisted, true)

	require.Equal(t, []string{"c", "a", "b"}, widgetIDs(out))
	assert.True(t, out[0].Visible)
	assert.Equal(t, WidgetSizeFull, out[0].Size)
	assert.Equal(t, "C", out[0].Title, "title comes from defaults")
	assert.False(t, out[1].Visible)
	assert.Equal(t, WidgetSizeFull, out[1].Size, "missing size keeps default")
	assert.True(t, out[2].Visible, "missing visible keeps default")
}

func TestReconcileNilOrderFallsBackToDefault(t *testing.T) {
	defaults := testWidgets()
	persisted := []WidgetSetting{
		{ID: "a", Order: intPtr(5)},
		{ID: "b", Visible: boolPtr(false)},
		{ID: "c", Order: intPtr(0)},
	}
	out := Reconcile(WidgetVariant{}, defaults, persisted, true)
	require.Equal(t, []string{"c", "b", "a"}, widgetIDs(out))
	assert.Equal(t, 1, out[1].Order)
}

func TestReconcileAppendsNewDefaults(t *testing.T) {
	defaults := append(testWidgets(),
		Widget{ID: "d", Visible: true, Order: 3, Size: WidgetSizeMedium},
		Widget{ID: "e", Visible: true, Order: 4, Size: WidgetSizeMedium},
	)
	persisted := []WidgetSetting{
		{ID: "b", Order: intPtr(10)},
		{ID: "a", Order: intPtr(11)},
		{ID: "c", Order: intPtr(12)},
	}
	out := Reconcile(WidgetVariant{}, defaults, persisted, true)
	require.Equal(t, []string{"b", "a", "c", "d", "e"}, widgetIDs(out))
	assert.Equal(t, 13, out[3].Order)
	assert.Equal(t, 14, out[4].Order)
}

func TestReconcileNewDefaultsOrderAboveDefaultOrders(t *testing.T) {
	defaults := []Widget{
		{ID: "a", Order: 0, Size: WidgetSizeMedium},
		{ID: "new", Order: 7, Size: WidgetSizeMedium},
	}
	persisted := []WidgetSetting{{ID: "a", Order: intPtr(2)}}
	out := Reconcile(WidgetVariant{}, defaults, persisted, true)
	require.Equal(t, []string{"a", "new"}, widgetIDs(out))
	assert.Equal(t, 8, out[1].Order)
}

func TestReconcileDropsRetiredWidgets(t *testing.T) {
	defaults := testWidgets()
	persisted := []WidgetSetting{
		{ID: "retired", Visible: boolPtr(true), Order: intPtr(0)},
		{ID: "a", Order: intPtr(1)},
	}
	out := Reconcile(WidgetVariant{}, defaults, persisted, true)
	assert.NotContains(t, widgetIDs(out), "retired")
	assert.Len(t, out, len(defaults))

	blob, err := EncodeSettings(WidgetVariant{}, out)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "retired")
}

func TestReconcileKeepsExtraColumns(t *testing.T) {
	defaults := testColumns()
	persisted := []ColumnSetting{
		{Key: "custom_b", Label: "Custom B", Visible: boolPtr(false), Order: intPtr(0), Width: intPtr(10)},
		{Key: "name", Order: intPtr(4)},
		{Key: "custom_a", Order: intPtr(1)},
		{Key: "sku", Order: intPtr(3)},
		{Key: "price", Order: intPtr(2), Label: "Cost"},
	}
	out := Reconcile(ColumnVariant{}, defaults, persisted, true)
	require.Equal(t, []string{"price", "sku", "name", "custom_b", "custom_a"}, columnKeys(out))

	assert.Equal(t, "Cost", out[0].Label, "persisted label wins")
	assert.Equal(t, 5, out[3].Order)
	assert.Equal(t, 6, out[4].Order)
	assert.Equal(t, "Custom B", out[3].Label)
	assert.False(t, out[3].Visible)
	assert.Equal(t, MinColumnWidth, out[3].Width, "extra width clamped")
	assert.Equal(t, "custom_a", out[4].Label, "extra without label uses key")
	assert.True(t, out[4].Visible)
}

func TestReconcileDuplicatePersistedKeysFirstWins(t *testing.T) {
	defaults := testColumns()
	persisted := []ColumnSetting{
		{Key: "sku", Width: intPtr(300)},
		{Key: "sku", Width: intPtr(90)},
		{Key: "extra", Width: intPtr(150)},
		{Key: "extra", Width: intPtr(160)},
	}
	out := Reconcile(ColumnVariant{}, defaults, persisted, true)
	require.Len(t, out, 4)
	for _, col := range out {
		switch col.Key {
		case "sku":
			assert.Equal(t, 300, col.Width)
		case "extra":
			assert.Equal(t, 150, col.Width)
		}
	}
}

func TestReconcileClampsPersistedWidth(t *testing.T) {
	out := Reconcile(ColumnVariant{}, testColumns(), []ColumnSetting{{Key: "name", Width: intPtr(12)}}, true)
	assert.Equal(t, MinColumnWidth, out[0].Width)
}

func TestReconcileIgnoresInvalidPersistedSize(t *testing.T) {
	out := Reconcile(WidgetVariant{}, testWidgets(), []WidgetSetting{{ID: "a", Size: "gigantic"}}, true)
	assert.Equal(t, WidgetSizeFull, out[0].Size)
}

func TestReconcileStableForEqualOrders(t *testing.T) {
	defaults := testColumns()
	persisted := []ColumnSetting{
		{Key: "price", Order: intPtr(1)},
		{Key: "name", Order: intPtr(1)},
		{Key: "sku", Order: intPtr(1)},
	}
	out := Reconcile(ColumnVariant{}, defaults, persisted, true)
	assert.Equal(t, []string{"name", "sku", "price"}, columnKeys(out), "ties keep declared default order")
}

func TestReconcileMergeCompletenessProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		var defaults []Column
		nDefaults, nPersisted := rng.Intn(8), rng.Intn(10)
		for i := 0; i < nDefaults; i++ {
			defaults = append(defaults, Column{Key: "d" + strconv.Itoa(i), Order: rng.Intn(5), Width: 100})
		}
		var persisted []ColumnSetting
		extras := map[string]struct{}{}
		for i := 0; i < nPersisted; i++ {
			key := "d" + strconv.Itoa(rng.Intn(10))
			if rng.Intn(3) == 0 {
				key = "x" + strconv.Itoa(rng.Intn(4))
			}
			setting := ColumnSetting{Key: key}
			if rng.Intn(2) == 0 {
				setting.Order = intPtr(rng.Intn(6))
			}
			persisted = append(persisted, setting)
		}
		defaultKeys := map[string]struct{}{}
		for _, d := range defaults {
			defaultKeys[d.Key] = struct{}{}
		}
		for _, p := range persisted {
			if _, ok := defaultKeys[p.Key]; !ok {
				extras[p.Key] = struct{}{}
			}
		}

		cols := Reconcile(ColumnVariant{}, defaults, persisted, true)
		counts := map[string]int{}
		for _, c := range cols {
			counts[c.Key]++
		}
		require.Len(t, cols, len(defaultKeys)+len(extras))
		for key := range defaultKeys {
			require.Equal(t, 1, counts[key], "default %s", key)
		}
		for key := range extras {
			require.Equal(t, 1, counts[key], "extra %s", key)
		}
		for i := 1; i < len(cols); i++ {
			require.LessOrEqual(t, cols[i-1].Order, cols[i].Order)
		}

		again := Reconcile(ColumnVariant{}, defaults, persisted, true)
		require.Equal(t, cols, again, "reconcile is deterministic")

		widgetDefaults := make([]Widget, len(defaults))
		widgetPersisted := make([]WidgetSetting, len(persisted))
		for i, d := range defaults {
			widgetDefaults[i] = Widget{ID: d.Key, Order: d.Order, Size: WidgetSizeMedium}
		}
		for i, p := range persisted {
			widgetPersisted[i] = WidgetSetting{ID: p.Key, Order: p.Order}
		}
		widgets := Reconcile(WidgetVariant{}, widgetDefaults, widgetPersisted, true)
		require.Len(t, widgets, len(defaultKeys))
	}
}

func TestMoveItemSpliceSemantics(t *testing.T) {
	items := []Widget{{ID: "w0", Order: 0}, {ID: "w1", Order: 1}, {ID: "w2", Order: 2}, {ID: "w3", Order: 3}}

	out, err := moveItem[Widget, WidgetSetting](WidgetVariant{}, items, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"w1", "w2", "w0", "w3"}, widgetIDs(out))
	for i, w := range out {
		assert.Equal(t, i, w.Order)
	}
	assert.Equal(t, "w0", items[0].ID, "input is not modified")

	out, err = moveItem[Widget, WidgetSetting](WidgetVariant{}, items, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"w3", "w0", "w1", "w2"}, widgetIDs(out))

	out, err = moveItem[Widget, WidgetSetting](WidgetVariant{}, items, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, widgetIDs(items), widgetIDs(out))
}

func TestMoveItemOutOfRange(t *testing.T) {
	items := []Widget{{ID: "w0"}, {ID: "w1"}}
	for _, tc := range [][2]int{{-1, 0}, {0, 2}, {2, 0}, {0, -1}} {
		_, err := moveItem[Widget, WidgetSetting](WidgetVariant{}, items, tc[0], tc[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	}
}

func TestApplyOrderOverride(t *testing.T) {
	items := testColumns()
	out := applyOrderOverride[Column, ColumnSetting](ColumnVariant{}, items, []string{"price", "missing", "price", "name"})
	assert.Equal(t, []string{"price", "name", "sku"}, columnKeys(out))
	for i, c := range out {
		assert.Equal(t, i, c.Order)
	}
}

func TestDecodeSettings(t *testing.T) {
	settings, err := DecodeSettings[WidgetSetting](nil)
	require.NoError(t, err)
	assert.Nil(t, settings)

	settings, err = DecodeSettings[WidgetSetting](SettingsBlob("null"))
	require.NoError(t, err)
	assert.Nil(t, settings)

	_, err = DecodeSettings[WidgetSetting](SettingsBlob("{"))
	assert.ErrorIs(t, err, ErrCorruptSettings)
}

func TestEncodeSettingsWidgetsOmitDescriptiveFields(t *testing.T) {
	blob, err := EncodeSettings(WidgetVariant{}, testWidgets()[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","visible":true,"order":0,"size":"full"}]`, string(blob))

	blob, err = EncodeSettings(ColumnVariant{}, testColumns()[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"name","label":"Name","visible":true,"order":0,"width":200}]`, string(blob))
}

func TestClampWidth(t *testing.T) {
	assert.Equal(t, MinColumnWidth, ClampWidth(0))
	assert.Equal(t, MinColumnWidth, ClampWidth(79))
	assert.Equal(t, 80, ClampWidth(80))
	assert.Equal(t, 500, ClampWidth(500))
}
