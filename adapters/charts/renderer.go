// Package charts renders oracle visualization assignments into encoded PNG
// images. Each dispatch call owns its drawing surface for the duration of
// rendering: the chart and its backing buffer are created, drawn, encoded
// and released inside the call, and only the encoded image escapes.
package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"sort"

	"autoeda/domain/table"
	"autoeda/models"
	"autoeda/ports"

	"github.com/wcharczuk/go-chart/v2"
)

// Renderer dispatches visualization assignments to the matching chart
// builder. All rendering failures are contained per item: a bad assignment
// yields no Graph and never aborts sibling items.
type Renderer struct {
	width  int
	height int
}

var _ ports.ChartRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer producing 600x400 charts.
func NewRenderer() *Renderer {
	return &Renderer{width: 600, height: 400}
}

// renderable is the subset of go-chart types this package draws.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// renderDataURI draws the chart into a transient buffer and returns the
// embedded image string. The buffer is released when this returns, bounding
// memory across a report with many charts.
func renderDataURI(c renderable) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// RenderUnivariate renders one single-column assignment, or nil when the
// item yields no chart (unknown label, unknown column, explicit skip, or a
// contained rendering failure).
func (r *Renderer) RenderUnivariate(tbl *table.Table, column, label string) (graph *models.Graph) {
	kind, ok := ParseUnivariateKind(label)
	if !ok {
		log.Printf("[Renderer] Skipping %s: unknown visualization type %q", column, label)
		return nil
	}
	if kind == UnivariateNone {
		return nil
	}
	col, ok := tbl.Column(column)
	if !ok {
		log.Printf("[Renderer] Skipping %s: column not in table", column)
		return nil
	}

	// Degenerate data can panic deep inside drawing code; that must stay
	// contained to this one item.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Renderer] Skipping %s: render panic: %v", column, rec)
			graph = nil
		}
	}()

	title := fmt.Sprintf("%s: %s", label, column)

	var (
		c   renderable
		err error
	)
	switch kind {
	case UnivariateHistogram:
		c, err = r.histogramChart(title, col)
	case UnivariateBoxPlot:
		c, err = r.boxChart(title, col)
	case UnivariateBarChart:
		c, err = r.barChart(title, col)
	case UnivariatePieChart:
		c, err = r.pieChart(title, col)
	case UnivariateLineChart:
		c, err = r.lineChart(title, col)
	case UnivariateScatterPlot:
		c, err = r.indexScatterChart(title, col)
	}
	if err != nil {
		log.Printf("[Renderer] Skipping %s: %v", column, err)
		return nil
	}

	image, err := renderDataURI(c)
	if err != nil {
		log.Printf("[Renderer] Skipping %s: encode failed: %v", column, err)
		return nil
	}

	return &models.Graph{ID: column, Title: title, Image: image}
}

// RenderPair renders one pairwise assignment, or nil when the item is
// malformed, references unknown features, or fails to render.
func (r *Renderer) RenderPair(tbl *table.Table, pairID string, pair [3]string) (graph *models.Graph) {
	x, y, label := pair[0], pair[1], pair[2]

	kind, ok := ParsePairKind(label)
	if !ok {
		log.Printf("[Renderer] Skipping pair %s: unknown visualization type %q", pairID, label)
		return nil
	}
	xCol, ok := tbl.Column(x)
	if !ok {
		log.Printf("[Renderer] Skipping pair %s: feature %q not in table", pairID, x)
		return nil
	}
	yCol, ok := tbl.Column(y)
	if !ok {
		log.Printf("[Renderer] Skipping pair %s: feature %q not in table", pairID, y)
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Renderer] Skipping pair %s: render panic: %v", pairID, rec)
			graph = nil
		}
	}()

	title := fmt.Sprintf("%s: %s vs %s", label, x, y)

	var (
		c   renderable
		err error
	)
	switch kind {
	case PairScatterPlot:
		c, err = r.pairScatterChart(title, xCol, yCol)
	case PairLineChart:
		c, err = r.pairLineChart(title, xCol, yCol)
	case PairBoxPlot:
		c, err = r.groupedBoxChart(title, xCol, yCol)
	case PairViolinPlot:
		c, err = r.violinChart(title, xCol, yCol)
	case PairStackedBarChart:
		c, err = r.stackedBarChart(title, xCol, yCol)
	}
	if err != nil {
		log.Printf("[Renderer] Skipping pair %s: %v", pairID, err)
		return nil
	}

	image, err := renderDataURI(c)
	if err != nil {
		log.Printf("[Renderer] Skipping pair %s: encode failed: %v", pairID, err)
		return nil
	}

	return &models.Graph{ID: pairID, Title: title, Image: image}
}

// valueCount is one category with its frequency.
type valueCount struct {
	Value string
	Count int
}

// topCounts returns the n most frequent non-missing values of a column,
// most frequent first, ties broken by first appearance.
func topCounts(col *table.Column, n int) []valueCount {
	counts := make(map[string]int)
	order := make(map[string]int)
	for i, cell := range col.Cells {
		if col.Missing[i] {
			continue
		}
		if _, seen := counts[cell]; !seen {
			order[cell] = i
		}
		counts[cell]++
	}

	all := make([]valueCount, 0, len(counts))
	for value, count := range counts {
		all = append(all, valueCount{Value: value, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return order[all[i].Value] < order[all[j].Value]
	})

	if len(all) > n {
		all = all[:n]
	}
	return all
}

// groupValues collects the numeric y values per x category, preserving the
// order in which categories first appear.
func groupValues(xCol, yCol *table.Column) (groups []string, byGroup map[string][]float64) {
	byGroup = make(map[string][]float64)
	for i, cell := range xCol.Cells {
		if xCol.Missing[i] || yCol.Missing[i] {
			continue
		}
		if _, seen := byGroup[cell]; !seen {
			groups = append(groups, cell)
		}
		byGroup[cell] = append(byGroup[cell], yCol.Numbers[i])
	}
	return groups, byGroup
}
