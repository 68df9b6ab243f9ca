package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

type widgetService interface {
	WidgetLayout(ctx context.Context, viewer dashboard.ViewerContext) ([]dashboard.Widget, error)
}

// WidgetLayoutQuery fetches the viewer's merged widget layout.
type WidgetLayoutQuery struct {
	service widgetService
}

// NewWidgetLayoutQuery builds the query.
func NewWidgetLayoutQuery(service widgetService) *WidgetLayoutQuery {
	return &WidgetLayoutQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, []dashboard.Widget] = (*WidgetLayoutQuery)(nil)

func (q *WidgetLayoutQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) ([]dashboard.Widget, error) {
	return q.service.WidgetLayout(ctx, viewer)
}
