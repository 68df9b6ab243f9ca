package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

// ColumnLayoutInput identifies a table request for a viewer.
type ColumnLayoutInput struct {
	Viewer dashboard.ViewerContext
	Table  string
}

type columnService interface {
	ColumnLayout(ctx context.Context, viewer dashboard.ViewerContext, table string) ([]dashboard.Column, error)
}

// ColumnLayoutQuery fetches the viewer's merged columns for one table.
type ColumnLayoutQuery struct {
	service columnService
}

// NewColumnLayoutQuery builds the query.
func NewColumnLayoutQuery(service columnService) *ColumnLayoutQuery {
	return &ColumnLayoutQuery{service: service}
}

var _ gocommand.Querier[ColumnLayoutInput, []dashboard.Column] = (*ColumnLayoutQuery)(nil)

func (q *ColumnLayoutQuery) Query(ctx context.Context, input ColumnLayoutInput) ([]dashboard.Column, error) {
	return q.service.ColumnLayout(ctx, input.Viewer, input.Table)
}
