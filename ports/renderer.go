package ports

import (
	"autoeda/domain/table"
	"autoeda/models"
)

// ChartRenderer turns one oracle assignment into one rendered chart, or
// safely into nothing. A nil Graph means the item was skipped: unknown
// label, unknown column, explicit no-visualization, or a contained
// rendering failure. Render calls never propagate per-item errors.
type ChartRenderer interface {
	// RenderUnivariate renders one single-column assignment.
	RenderUnivariate(tbl *table.Table, column, label string) *models.Graph

	// RenderPair renders one (feature_x, feature_y, label) assignment
	// under the given pair identifier.
	RenderPair(tbl *table.Table, pairID string, pair [3]string) *models.Graph
}
