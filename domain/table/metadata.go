package table

// ColumnMetadata is the per-column descriptive metadata fed to the oracle
// prompts. Computed once per analysis request, immutable afterward.
type ColumnMetadata struct {
	Name         string
	Kind         Kind
	UniqueCount  int
	MissingCount int
}

// ExtractMetadata computes one ColumnMetadata per column, in table order.
// Pure computation over an already-loaded table: no I/O, no error paths,
// identical output on repeated calls.
func ExtractMetadata(t *Table) []ColumnMetadata {
	metadata := make([]ColumnMetadata, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		metadata[i] = ColumnMetadata{
			Name:         col.Name,
			Kind:         col.Kind,
			UniqueCount:  col.UniqueCount(),
			MissingCount: col.MissingCount(),
		}
	}
	return metadata
}
