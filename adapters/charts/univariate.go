package charts

import (
	"fmt"

	"autoeda/domain/table"

	"github.com/wcharczuk/go-chart/v2"
)

const histogramBins = 20

// histogramChart renders the distribution of a numeric column as fixed-bin
// frequency bars with a smoothed density overlay.
func (r *Renderer) histogramChart(title string, col *table.Column) (renderable, error) {
	values, err := numericValues(col)
	if err != nil {
		return nil, err
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return nil, fmt.Errorf("column %s has no spread", col.Name)
	}

	binWidth := (hi - lo) / float64(histogramBins)
	counts := make([]float64, histogramBins)
	centers := make([]float64, histogramBins)
	for i := range centers {
		centers[i] = lo + binWidth*(float64(i)+0.5)
	}
	for _, v := range values {
		idx := int((v - lo) / binWidth)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		counts[idx]++
	}

	series := []chart.Series{
		chart.HistogramSeries{
			Name: "frequency",
			InnerSeries: chart.ContinuousSeries{
				XValues: centers,
				YValues: counts,
			},
		},
	}

	// Density overlay rescaled to the count axis.
	if xs, ys := kdeCurve(values, 120); xs != nil {
		scaled := make([]float64, len(ys))
		for i, d := range ys {
			scaled[i] = d * float64(len(values)) * binWidth
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "density",
			XValues: xs,
			YValues: scaled,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 2.0,
			},
		})
	}

	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Series: series,
	}, nil
}

// boxChart renders a single-column box-and-whisker plot.
func (r *Renderer) boxChart(title string, col *table.Column) (renderable, error) {
	values, err := numericValues(col)
	if err != nil {
		return nil, err
	}

	series, err := boxSegments(1.0, 0.3, values, chart.GetDefaultColor(0))
	if err != nil {
		return nil, err
	}

	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: 0, Max: 2},
		},
		Series: series,
	}, nil
}

// barChart renders frequency bars over the top 15 most frequent category
// values. The cap keeps high-cardinality columns readable.
func (r *Renderer) barChart(title string, col *table.Column) (renderable, error) {
	counts := topCounts(col, 15)
	if len(counts) == 0 {
		return nil, fmt.Errorf("column %s has no values to count", col.Name)
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, vc := range counts {
		bars = append(bars, chart.Value{Label: vc.Value, Value: float64(vc.Count)})
	}

	return &chart.BarChart{
		Title:    title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: barWidthFor(r.width, len(bars)),
		Bars:     bars,
	}, nil
}

// pieChart renders proportion wedges over the top 5 category values with
// percentage labels.
func (r *Renderer) pieChart(title string, col *table.Column) (renderable, error) {
	counts := topCounts(col, 5)
	if len(counts) == 0 {
		return nil, fmt.Errorf("column %s has no values to count", col.Name)
	}

	total := 0
	for _, vc := range counts {
		total += vc.Count
	}

	values := make([]chart.Value, 0, len(counts))
	for _, vc := range counts {
		pct := 100 * float64(vc.Count) / float64(total)
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", vc.Value, pct),
			Value: float64(vc.Count),
		})
	}

	return &chart.PieChart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}, nil
}

// lineChart renders a value-vs-row-index line plot.
func (r *Renderer) lineChart(title string, col *table.Column) (renderable, error) {
	xs, ys, err := indexedValues(col)
	if err != nil {
		return nil, err
	}

	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    col.Name,
				XValues: xs,
				YValues: ys,
			},
		},
	}, nil
}

// indexScatterChart renders a value-vs-row-index scatter for a single
// column.
func (r *Renderer) indexScatterChart(title string, col *table.Column) (renderable, error) {
	xs, ys, err := indexedValues(col)
	if err != nil {
		return nil, err
	}

	return &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    col.Name,
				XValues: xs,
				YValues: ys,
				Style:   scatterStyle(0),
			},
		},
	}, nil
}

// numericValues returns the non-missing values of a numeric column, or an
// error for categorical or empty columns.
func numericValues(col *table.Column) ([]float64, error) {
	if col.Kind != table.KindNumerical {
		return nil, fmt.Errorf("column %s is not numeric", col.Name)
	}
	values := col.Values()
	if len(values) < 2 {
		return nil, fmt.Errorf("column %s has too few values to plot", col.Name)
	}
	return values, nil
}

// indexedValues pairs non-missing numeric values with their row indices.
func indexedValues(col *table.Column) (xs, ys []float64, err error) {
	if col.Kind != table.KindNumerical {
		return nil, nil, fmt.Errorf("column %s is not numeric", col.Name)
	}
	for i, missing := range col.Missing {
		if missing {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, col.Numbers[i])
	}
	if len(xs) < 2 {
		return nil, nil, fmt.Errorf("column %s has too few values to plot", col.Name)
	}
	return xs, ys, nil
}

func barWidthFor(chartWidth, bars int) int {
	w := (chartWidth - 100) / (bars * 2)
	if w < 8 {
		w = 8
	}
	if w > 60 {
		w = 60
	}
	return w
}
