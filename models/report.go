package models

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Graph is one rendered chart. Image is an embedded, self-describing
// data:image/png;base64 string.
type Graph struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// ColumnDetail describes one column of the analyzed table.
type ColumnDetail struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	MissingValues int    `json:"missing_values"`
	UniqueValues  int    `json:"unique_values"`
}

// AnalysisReport is the terminal aggregate of one analysis request. Built
// once per request, returned, then discarded.
type AnalysisReport struct {
	Filename         string                        `json:"filename"`
	Rows             int                           `json:"rows"`
	Columns          int                           `json:"columns"`
	Summary          string                        `json:"summary"`
	SummaryHTML      string                        `json:"summary_html"`
	ColumnDetails    []ColumnDetail                `json:"column_details"`
	NumericalStats   map[string]map[string]float64 `json:"numerical_stats"`
	PreviewData      []map[string]interface{}      `json:"preview_data"`
	UnivariateGraphs []Graph                       `json:"univariate_graphs"`
	PairwiseGraphs   []Graph                       `json:"pairwise_graphs"`
}

// RenderSummaryHTML converts the oracle's markdown summary into HTML for the
// dashboard.
func RenderSummaryHTML(summary string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(summary), p, renderer))
}
