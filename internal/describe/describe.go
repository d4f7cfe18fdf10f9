// Package describe computes per-column descriptive statistics for the report,
// mirroring the shape of a pandas describe() table.
package describe

import (
	"math"

	"autoeda/domain/table"

	"github.com/montanaflynn/stats"
)

// Numerical computes count/mean/std/min/quartiles/max for every numerical
// column, rounded to 2 decimal places. Columns with no non-missing values
// are omitted.
func Numerical(t *table.Table) map[string]map[string]float64 {
	result := make(map[string]map[string]float64)
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Kind != table.KindNumerical {
			continue
		}
		values := col.Values()
		if len(values) == 0 {
			continue
		}
		result[col.Name] = summarize(values)
	}
	return result
}

func summarize(values []float64) map[string]float64 {
	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviationSample(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	q25, _ := stats.Percentile(values, 25)
	q50, _ := stats.Median(values)
	q75, _ := stats.Percentile(values, 75)

	summary := map[string]float64{
		"count": float64(len(values)),
		"mean":  mean,
		"std":   std,
		"min":   min,
		"25%":   q25,
		"50%":   q50,
		"75%":   q75,
		"max":   max,
	}
	// A statistic that is undefined for the data (sample std of one value)
	// is omitted rather than reported as a fabricated number.
	for key, value := range summary {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			delete(summary, key)
			continue
		}
		summary[key] = math.Round(value*100) / 100
	}
	return summary
}
