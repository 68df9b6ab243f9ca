package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dedupe"
)

func TestBuildWidgetDerivesID(t *testing.T) {
	w := buildWidget("", "Revenue By Region", "Bar Chart", dashboard.WidgetSizeMedium, true)
	assert.Equal(t, "revenue-by-region", w.ID)
	assert.Equal(t, "bar-chart", w.Type)
	assert.Equal(t, "Revenue By Region", w.Title)
	assert.True(t, w.Visible)
}

func TestBuildColumnNormalizesKey(t *testing.T) {
	col := buildColumn("createdAt", "", 20, false)
	assert.Equal(t, "created_at", col.Key)
	assert.Equal(t, "Created At", col.Label)
	assert.Equal(t, dashboard.MinColumnWidth, col.Width)
	assert.False(t, col.Visible)
}

func TestCatalogAddWidgetCreatesManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog", "widgets.yaml")
	cmd := &catalogAddWidgetCmd{Manifest: path, Title: "Open Tickets", Type: "stats", Size: "medium"}
	require.NoError(t, cmd.Run(context.Background()))

	doc, err := dashboard.ReadManifest(path)
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)
	assert.Equal(t, "open-tickets", doc.Widgets[0].ID)
	assert.Equal(t, dashboard.WidgetSizeMedium, doc.Widgets[0].Size)

	err = cmd.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defines widget open-tickets")

	cmd.Overwrite = true
	cmd.Hidden = true
	require.NoError(t, cmd.Run(context.Background()))
	doc, err = dashboard.ReadManifest(path)
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)
	assert.False(t, doc.Widgets[0].Visible)
}

func TestCatalogAddColumnLoadsIntoCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	add := func(key string) {
		t.Helper()
		cmd := &catalogAddColumnCmd{Manifest: path, Table: "Invoices", Key: key, Width: 120}
		require.NoError(t, cmd.Run(context.Background()))
	}
	add("number")
	add("dueDate")

	cat, err := dashboard.BootstrapCatalog(path)
	require.NoError(t, err)
	cols, ok := cat.Columns("invoices")
	require.True(t, ok)
	require.Len(t, cols, 2)
	assert.Equal(t, "due_date", cols[1].Key)
	assert.Equal(t, 1, cols[1].Order)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	summary := dedupe.Summary{DuplicateGroups: 1, DuplicatesRemoved: 2}
	require.NoError(t, printSummary(&buf, summary, false))
	assert.Contains(t, buf.String(), `"message": "Removed 2 duplicate products"`)
	assert.Contains(t, buf.String(), `"duplicatesRemoved": 2`)
	assert.NotContains(t, buf.String(), "dryRun")

	buf.Reset()
	require.NoError(t, printSummary(&buf, summary, true))
	assert.Contains(t, buf.String(), `"dryRun": true`)
	assert.Contains(t, buf.String(), "Found 1 duplicate groups")
}
