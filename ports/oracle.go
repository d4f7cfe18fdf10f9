package ports

import (
	"context"

	"autoeda/domain/table"
)

// Oracle is the external text-completion collaborator that supplies the
// dataset summary and visualization suggestions. Its output is untrusted:
// implementations must recover structured data defensively, degrading to
// empty mappings rather than surfacing parse failures.
type Oracle interface {
	// Summarize returns a short free-text summary of the table.
	Summarize(ctx context.Context, tbl *table.Table) (string, error)

	// SuggestColumnVisualizations maps column names to visualization-type
	// labels. Labels and column names are unvalidated oracle output.
	SuggestColumnVisualizations(ctx context.Context, tbl *table.Table) (map[string]string, error)

	// SuggestPairwiseVisualizations returns up to 5 feature pairs keyed by
	// opaque identifiers, each a (feature_x, feature_y, label) triple. It
	// depends on the summary text, so it must only run after Summarize.
	SuggestPairwiseVisualizations(ctx context.Context, tbl *table.Table, summary string) (map[string][3]string, error)

	// Chat passes a raw prompt through to the oracle and returns its text.
	Chat(ctx context.Context, prompt string) (string, error)
}
