package charts

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// boxStats holds the five reference values of one box-and-whisker glyph.
// Whiskers extend to the farthest observations within 1.5 IQR of the box.
type boxStats struct {
	Q1, Median, Q3      float64
	WhiskLow, WhiskHigh float64
}

func computeBoxStats(values []float64) (boxStats, error) {
	if len(values) < 2 {
		return boxStats{}, fmt.Errorf("too few values for a box plot")
	}
	quartiles, err := stats.Quartile(values)
	if err != nil {
		return boxStats{}, err
	}

	iqr := quartiles.Q3 - quartiles.Q1
	loFence := quartiles.Q1 - 1.5*iqr
	hiFence := quartiles.Q3 + 1.5*iqr

	b := boxStats{
		Q1:        quartiles.Q1,
		Median:    quartiles.Q2,
		Q3:        quartiles.Q3,
		WhiskLow:  quartiles.Q1,
		WhiskHigh: quartiles.Q3,
	}
	for _, v := range values {
		if v >= loFence && v < b.WhiskLow {
			b.WhiskLow = v
		}
		if v <= hiFence && v > b.WhiskHigh {
			b.WhiskHigh = v
		}
	}
	return b, nil
}

// segment builds one two-point line series.
func segment(x0, y0, x1, y1 float64, style chart.Style) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{x0, x1},
		YValues: []float64{y0, y1},
		Style:   style,
	}
}

// boxSegments draws one box-and-whisker glyph centered at x as a set of
// line series: quartile box, median line, whisker stems and caps.
func boxSegments(center, halfWidth float64, values []float64, color drawing.Color) ([]chart.Series, error) {
	b, err := computeBoxStats(values)
	if err != nil {
		return nil, err
	}

	line := chart.Style{StrokeColor: color, StrokeWidth: 1.5}
	median := chart.Style{StrokeColor: color, StrokeWidth: 3.0}
	capHalf := halfWidth / 2

	return []chart.Series{
		// Box.
		segment(center-halfWidth, b.Q1, center+halfWidth, b.Q1, line),
		segment(center-halfWidth, b.Q3, center+halfWidth, b.Q3, line),
		segment(center-halfWidth, b.Q1, center-halfWidth, b.Q3, line),
		segment(center+halfWidth, b.Q1, center+halfWidth, b.Q3, line),
		// Median.
		segment(center-halfWidth, b.Median, center+halfWidth, b.Median, median),
		// Whisker stems.
		segment(center, b.Q1, center, b.WhiskLow, line),
		segment(center, b.Q3, center, b.WhiskHigh, line),
		// Whisker caps.
		segment(center-capHalf, b.WhiskLow, center+capHalf, b.WhiskLow, line),
		segment(center-capHalf, b.WhiskHigh, center+capHalf, b.WhiskHigh, line),
	}, nil
}

// scatterStyle renders dots only, no connecting stroke.
func scatterStyle(seriesIndex int) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    chart.GetDefaultColor(seriesIndex),
	}
}

// groupTicks labels integer x positions 1..n with category names, padding
// the axis range on both sides.
func groupTicks(groups []string) ([]chart.Tick, *chart.ContinuousRange) {
	ticks := make([]chart.Tick, 0, len(groups)+2)
	ticks = append(ticks, chart.Tick{Value: 0, Label: ""})
	for i, g := range groups {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: g})
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(groups) + 1), Label: ""})
	return ticks, &chart.ContinuousRange{Min: 0, Max: float64(len(groups) + 1)}
}
