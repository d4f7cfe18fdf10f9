// Package app contains the analysis orchestration pipeline: the sequence
// that turns one uploaded file into one complete report.
package app

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"time"

	"autoeda/adapters/tabular"
	"autoeda/domain/table"
	"autoeda/internal/describe"
	"autoeda/models"
	"autoeda/ports"
)

// AnalysisService assembles one AnalysisReport per request: load and sample
// the table, ask the oracle what to visualize, dispatch every suggestion,
// and fold in descriptive statistics. Per-item failures inside a stage are
// isolated; only input errors and oracle availability failures abort.
type AnalysisService struct {
	oracle      ports.Oracle
	renderer    ports.ChartRenderer
	sampleLimit int
}

// NewAnalysisService creates the orchestrator. The oracle handle is process
// scoped and shared across requests; everything else is request-local.
func NewAnalysisService(oracle ports.Oracle, renderer ports.ChartRenderer, sampleLimit int) *AnalysisService {
	return &AnalysisService{
		oracle:      oracle,
		renderer:    renderer,
		sampleLimit: sampleLimit,
	}
}

// Analyze runs the full pipeline for one uploaded file.
func (s *AnalysisService) Analyze(ctx context.Context, filename string, data []byte) (*models.AnalysisReport, error) {
	tbl, err := tabular.Load(filename, data)
	if err != nil {
		return nil, err
	}

	// Cap the analyzed table to bound prompt size and rendering cost.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tbl = tbl.Sample(s.sampleLimit, rng)

	summary, err := s.oracle.Summarize(ctx, tbl)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.oracle.SuggestColumnVisualizations(ctx, tbl)
	if err != nil {
		return nil, err
	}
	univariate := s.dispatchUnivariate(tbl, suggestions)

	// Pairwise suggestions depend on the summary text, so they run after
	// Summarize; they are otherwise independent of the univariate stage.
	pairs, err := s.oracle.SuggestPairwiseVisualizations(ctx, tbl, summary)
	if err != nil {
		return nil, err
	}
	pairwise := s.dispatchPairs(tbl, pairs)

	metadata := table.ExtractMetadata(tbl)
	columnDetails := make([]models.ColumnDetail, 0, len(metadata))
	for _, m := range metadata {
		col, _ := tbl.Column(m.Name)
		columnDetails = append(columnDetails, models.ColumnDetail{
			Name:          m.Name,
			Type:          col.DType(),
			MissingValues: m.MissingCount,
			UniqueValues:  m.UniqueCount,
		})
	}

	return &models.AnalysisReport{
		Filename:         filename,
		Rows:             tbl.RowCount(),
		Columns:          len(tbl.Columns),
		Summary:          summary,
		SummaryHTML:      models.RenderSummaryHTML(summary),
		ColumnDetails:    columnDetails,
		NumericalStats:   describe.Numerical(tbl),
		PreviewData:      tbl.HeadRecords(5),
		UnivariateGraphs: univariate,
		PairwiseGraphs:   pairwise,
	}, nil
}

// dispatchUnivariate renders every column suggestion in sorted name order,
// keeping report ordering deterministic. Items that yield no chart are
// dropped silently.
func (s *AnalysisService) dispatchUnivariate(tbl *table.Table, suggestions map[string]string) []models.Graph {
	columns := make([]string, 0, len(suggestions))
	for column := range suggestions {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	graphs := make([]models.Graph, 0, len(columns))
	for _, column := range columns {
		if graph := s.renderer.RenderUnivariate(tbl, column, suggestions[column]); graph != nil {
			graphs = append(graphs, *graph)
		}
	}
	log.Printf("[AnalysisService] Univariate stage: %d suggestions, %d graphs", len(suggestions), len(graphs))
	return graphs
}

// dispatchPairs renders every pair suggestion in sorted identifier order.
func (s *AnalysisService) dispatchPairs(tbl *table.Table, pairs map[string][3]string) []models.Graph {
	ids := make([]string, 0, len(pairs))
	for id := range pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	graphs := make([]models.Graph, 0, len(ids))
	for _, id := range ids {
		if graph := s.renderer.RenderPair(tbl, id, pairs[id]); graph != nil {
			graphs = append(graphs, *graph)
		}
	}
	log.Printf("[AnalysisService] Pairwise stage: %d suggestions, %d graphs", len(pairs), len(graphs))
	return graphs
}
