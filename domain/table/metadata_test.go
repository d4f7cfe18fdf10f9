package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetadata(t *testing.T) {
	tbl := &Table{Columns: []Column{
		NewColumn("city", []string{"nyc", "sf", "nyc", ""}, []bool{false, false, false, true}),
		NewColumn("pop", []string{"8", "1", "8", "2"}, []bool{false, false, false, false}),
	}}

	metadata := ExtractMetadata(tbl)
	require.Len(t, metadata, 2)

	assert.Equal(t, ColumnMetadata{Name: "city", Kind: KindCategorical, UniqueCount: 2, MissingCount: 1}, metadata[0])
	assert.Equal(t, ColumnMetadata{Name: "pop", Kind: KindNumerical, UniqueCount: 3, MissingCount: 0}, metadata[1])
}

func TestExtractMetadataIdempotent(t *testing.T) {
	tbl := &Table{Columns: []Column{
		NewColumn("v", []string{"1", "2", "", "2"}, []bool{false, false, true, false}),
	}}

	first := ExtractMetadata(tbl)
	second := ExtractMetadata(tbl)
	assert.Equal(t, first, second)
}
