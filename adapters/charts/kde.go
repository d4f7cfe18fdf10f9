package charts

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// kdeCurve evaluates a Gaussian kernel density estimate over an evenly
// spaced grid spanning the data range plus three bandwidths on each side.
// Bandwidth follows Silverman's rule of thumb. Returns nil grids when the
// data is degenerate (fewer than two points or zero spread).
func kdeCurve(values []float64, points int) (xs, ys []float64) {
	n := len(values)
	if n < 2 || points < 2 {
		return nil, nil
	}

	sigma := stat.StdDev(values, nil)
	if sigma == 0 || math.IsNaN(sigma) {
		return nil, nil
	}

	bandwidth := 1.06 * sigma * math.Pow(float64(n), -0.2)
	kernel := distuv.Normal{Mu: 0, Sigma: bandwidth}

	lo := floats.Min(values) - 3*bandwidth
	hi := floats.Max(values) + 3*bandwidth
	step := (hi - lo) / float64(points-1)

	xs = make([]float64, points)
	ys = make([]float64, points)
	for i := 0; i < points; i++ {
		x := lo + step*float64(i)
		sum := 0.0
		for _, v := range values {
			sum += kernel.Prob(x - v)
		}
		xs[i] = x
		ys[i] = sum / float64(n)
	}
	return xs, ys
}
