package dashboard

var defaultWidgets = []Widget{
	{ID: "stats-overview", Type: "stats", Title: "Overview", Visible: true, Order: 0, Size: WidgetSizeFull},
	{ID: "projects-status", Type: "projects", Title: "Projects by Status", Visible: true, Order: 1, Size: WidgetSizeMedium},
	{ID: "products-recent", Type: "products", Title: "Recent Products", Visible: true, Order: 2, Size: WidgetSizeMedium},
	{ID: "customers-top", Type: "customers", Title: "Top Customers", Visible: true, Order: 3, Size: WidgetSizeMedium},
	{ID: "optimization-progress", Type: "optimization", Title: "Optimization Progress", Visible: true, Order: 4, Size: WidgetSizeMedium},
	{ID: "notifications-recent", Type: "notifications", Title: "Recent Notifications", Visible: false, Order: 5, Size: WidgetSizeFull},
}

var defaultTables = map[string][]Column{
	"products": {
		{Key: "name", Label: "Name", Visible: true, Order: 0, Width: 240},
		{Key: "sku", Label: "SKU", Visible: true, Order: 1, Width: 120},
		{Key: "price", Label: "Price", Visible: true, Order: 2, Width: 100},
		{Key: "stock", Label: "Stock", Visible: true, Order: 3, Width: 100},
		{Key: "status", Label: "Status", Visible: true, Order: 4, Width: 120},
		{Key: "created_at", Label: "Created", Visible: false, Order: 5, Width: 160},
	},
	"projects": {
		{Key: "name", Label: "Name", Visible: true, Order: 0, Width: 240},
		{Key: "customer", Label: "Customer", Visible: true, Order: 1, Width: 200},
		{Key: "status", Label: "Status", Visible: true, Order: 2, Width: 120},
		{Key: "progress", Label: "Progress", Visible: true, Order: 3, Width: 140},
		{Key: "due_date", Label: "Due", Visible: true, Order: 4, Width: 140},
	},
	"customers": {
		{Key: "name", Label: "Name", Visible: true, Order: 0, Width: 220},
		{Key: "email", Label: "Email", Visible: true, Order: 1, Width: 240},
		{Key: "phone", Label: "Phone", Visible: false, Order: 2, Width: 160},
		{Key: "projects", Label: "Projects", Visible: true, Order: 3, Width: 100},
		{Key: "created_at", Label: "Created", Visible: false, Order: 4, Width: 160},
	},
}

// DefaultWidgets returns a copy of the built-in dashboard widget set.
func DefaultWidgets() []Widget {
	return append([]Widget(nil), defaultWidgets...)
}

// DefaultTables returns a copy of the built-in column sets keyed by table.
func DefaultTables() map[string][]Column {
	out := make(map[string][]Column, len(defaultTables))
	for table, cols := range defaultTables {
		out[table] = append([]Column(nil), cols...)
	}
	return out
}
