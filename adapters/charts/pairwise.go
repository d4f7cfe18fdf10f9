package charts

import (
	"fmt"
	"sort"

	"autoeda/domain/table"

	"github.com/wcharczuk/go-chart/v2"
)

// stackedBarMaxCategories caps how many x categories a cross-tabulation
// renders, keeping stacked bars readable.
const stackedBarMaxCategories = 10

// pairScatterChart renders an x/y scatter of two numeric features.
func (r *Renderer) pairScatterChart(title string, xCol, yCol *table.Column) (renderable, error) {
	xs, ys, err := pairedValues(xCol, yCol)
	if err != nil {
		return nil, err
	}

	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		XAxis:  chart.XAxis{Name: xCol.Name},
		YAxis:  chart.YAxis{Name: yCol.Name},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   scatterStyle(0),
			},
		},
	}, nil
}

// pairLineChart renders y against x as a line, ordered by x.
func (r *Renderer) pairLineChart(title string, xCol, yCol *table.Column) (renderable, error) {
	xs, ys, err := pairedValues(xCol, yCol)
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })

	sortedX := make([]float64, len(xs))
	sortedY := make([]float64, len(ys))
	for i, j := range idx {
		sortedX[i] = xs[j]
		sortedY[i] = ys[j]
	}

	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		XAxis:  chart.XAxis{Name: xCol.Name},
		YAxis:  chart.YAxis{Name: yCol.Name},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: sortedX,
				YValues: sortedY,
			},
		},
	}, nil
}

// groupedBoxChart renders the distribution of the numeric feature grouped
// by the categories of the other, one box glyph per category. When the
// categorical feature arrives as y, orientation flips, matching how the
// pair would be plotted by hand.
func (r *Renderer) groupedBoxChart(title string, xCol, yCol *table.Column) (renderable, error) {
	xCol, yCol, err := orientGrouped(xCol, yCol)
	if err != nil {
		return nil, err
	}

	groups, byGroup := groupValues(xCol, yCol)
	if len(groups) == 0 {
		return nil, fmt.Errorf("no observations to group")
	}

	var series []chart.Series
	for i, group := range groups {
		segments, err := boxSegments(float64(i+1), 0.3, byGroup[group], chart.GetDefaultColor(i))
		if err != nil {
			// A sparse category is skipped, not fatal to the chart.
			continue
		}
		series = append(series, segments...)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no group had enough values for a box plot")
	}

	ticks, xRange := groupTicks(groups)
	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		XAxis: chart.XAxis{
			Name:  xCol.Name,
			Ticks: ticks,
			Range: xRange,
		},
		YAxis:  chart.YAxis{Name: yCol.Name},
		Series: series,
	}, nil
}

// violinChart renders the distribution of the numeric feature per category
// of the other as mirrored density outlines.
func (r *Renderer) violinChart(title string, xCol, yCol *table.Column) (renderable, error) {
	xCol, yCol, err := orientGrouped(xCol, yCol)
	if err != nil {
		return nil, err
	}

	groups, byGroup := groupValues(xCol, yCol)
	if len(groups) == 0 {
		return nil, fmt.Errorf("no observations to group")
	}

	var series []chart.Series
	for i, group := range groups {
		values := byGroup[group]
		grid, density := kdeCurve(values, 60)
		if grid == nil {
			continue
		}

		maxDensity := 0.0
		for _, d := range density {
			if d > maxDensity {
				maxDensity = d
			}
		}
		if maxDensity == 0 {
			continue
		}

		center := float64(i + 1)
		scale := 0.4 / maxDensity
		left := make([]float64, len(grid))
		right := make([]float64, len(grid))
		for j, d := range density {
			left[j] = center - d*scale
			right[j] = center + d*scale
		}

		style := chart.Style{StrokeColor: chart.GetDefaultColor(i), StrokeWidth: 1.5}
		series = append(series,
			chart.ContinuousSeries{XValues: left, YValues: grid, Style: style},
			chart.ContinuousSeries{XValues: right, YValues: grid, Style: style},
		)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no group had enough values for a violin plot")
	}

	ticks, xRange := groupTicks(groups)
	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		XAxis: chart.XAxis{
			Name:  xCol.Name,
			Ticks: ticks,
			Range: xRange,
		},
		YAxis:  chart.YAxis{Name: yCol.Name},
		Series: series,
	}, nil
}

// stackedBarChart renders the cross-tabulation of two features as stacked
// bars, truncated to the first 10 x categories in sorted order.
func (r *Renderer) stackedBarChart(title string, xCol, yCol *table.Column) (renderable, error) {
	crosstab := make(map[string]map[string]int)
	ySeen := make(map[string]bool)
	var yCats []string

	for i, xCell := range xCol.Cells {
		if xCol.Missing[i] || yCol.Missing[i] {
			continue
		}
		yCell := yCol.Cells[i]
		if crosstab[xCell] == nil {
			crosstab[xCell] = make(map[string]int)
		}
		crosstab[xCell][yCell]++
		if !ySeen[yCell] {
			ySeen[yCell] = true
			yCats = append(yCats, yCell)
		}
	}
	if len(crosstab) == 0 {
		return nil, fmt.Errorf("no observations to cross-tabulate")
	}

	xCats := make([]string, 0, len(crosstab))
	for xCell := range crosstab {
		xCats = append(xCats, xCell)
	}
	sort.Strings(xCats)
	if len(xCats) > stackedBarMaxCategories {
		xCats = xCats[:stackedBarMaxCategories]
	}
	sort.Strings(yCats)

	bars := make([]chart.StackedBar, 0, len(xCats))
	for _, xCell := range xCats {
		values := make([]chart.Value, 0, len(yCats))
		for _, yCell := range yCats {
			count := crosstab[xCell][yCell]
			if count == 0 {
				continue
			}
			values = append(values, chart.Value{
				Label: yCell,
				Value: float64(count),
			})
		}
		if len(values) == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{Name: xCell, Values: values})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("cross-tabulation is empty")
	}

	return &chart.StackedBarChart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Bars:   bars,
	}, nil
}

// orientGrouped picks which feature supplies the groups and which the
// values for grouped distribution charts. The numeric feature provides the
// values; at least one feature must be numeric.
func orientGrouped(xCol, yCol *table.Column) (group, value *table.Column, err error) {
	switch {
	case yCol.Kind == table.KindNumerical:
		return xCol, yCol, nil
	case xCol.Kind == table.KindNumerical:
		return yCol, xCol, nil
	default:
		return nil, nil, fmt.Errorf("neither %s nor %s is numeric", xCol.Name, yCol.Name)
	}
}

// pairedValues collects rows where both numeric features are present.
func pairedValues(xCol, yCol *table.Column) (xs, ys []float64, err error) {
	if xCol.Kind != table.KindNumerical {
		return nil, nil, fmt.Errorf("feature %s is not numeric", xCol.Name)
	}
	if yCol.Kind != table.KindNumerical {
		return nil, nil, fmt.Errorf("feature %s is not numeric", yCol.Name)
	}
	for i := range xCol.Numbers {
		if xCol.Missing[i] || yCol.Missing[i] {
			continue
		}
		xs = append(xs, xCol.Numbers[i])
		ys = append(ys, yCol.Numbers[i])
	}
	if len(xs) < 2 {
		return nil, nil, fmt.Errorf("too few paired observations")
	}
	return xs, ys, nil
}
