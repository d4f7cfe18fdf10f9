package charts

// UnivariateKind is the closed set of single-column visualization types the
// oracle may assign. Raw labels are translated at the boundary; anything
// else is rejected before it reaches rendering logic.
type UnivariateKind int

const (
	UnivariateHistogram UnivariateKind = iota
	UnivariateBoxPlot
	UnivariateBarChart
	UnivariatePieChart
	UnivariateLineChart
	UnivariateScatterPlot
	UnivariateNone
)

var univariateLabels = map[string]UnivariateKind{
	"Histogram":               UnivariateHistogram,
	"Box Plot":                UnivariateBoxPlot,
	"Bar Chart":               UnivariateBarChart,
	"Pie Chart":               UnivariatePieChart,
	"Line Chart":              UnivariateLineChart,
	"Scatter Plot":            UnivariateScatterPlot,
	"No Visualization Needed": UnivariateNone,
}

// ParseUnivariateKind translates an oracle label into its enum value.
func ParseUnivariateKind(label string) (UnivariateKind, bool) {
	kind, ok := univariateLabels[label]
	return kind, ok
}

// PairKind is the closed set of pairwise visualization types.
type PairKind int

const (
	PairScatterPlot PairKind = iota
	PairLineChart
	PairBoxPlot
	PairViolinPlot
	PairStackedBarChart
)

var pairLabels = map[string]PairKind{
	"Scatter Plot":      PairScatterPlot,
	"Line Chart":        PairLineChart,
	"Box Plot":          PairBoxPlot,
	"Violin Plot":       PairViolinPlot,
	"Stacked Bar Chart": PairStackedBarChart,
}

// ParsePairKind translates an oracle label into its enum value.
func ParsePairKind(label string) (PairKind, bool) {
	kind, ok := pairLabels[label]
	return kind, ok
}
