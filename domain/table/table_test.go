package table

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumnClassification(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  Kind
	}{
		{"integers", []string{"1", "2", "3"}, KindNumerical},
		{"floats", []string{"1.5", "2.25", "-3"}, KindNumerical},
		{"text", []string{"a", "b", "c"}, KindCategorical},
		{"mixed", []string{"1", "two", "3"}, KindCategorical},
		{"numeric with spaces", []string{" 1 ", "2", "3"}, KindNumerical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing := make([]bool, len(tt.cells))
			col := NewColumn("c", tt.cells, missing)
			assert.Equal(t, tt.want, col.Kind)

			// Classification is a pure function of the cells.
			again := NewColumn("c", tt.cells, missing)
			assert.Equal(t, col.Kind, again.Kind)
		})
	}
}

func TestColumnDType(t *testing.T) {
	ints := NewColumn("i", []string{"1", "2", "3"}, []bool{false, false, false})
	assert.Equal(t, "int64", ints.DType())

	floats := NewColumn("f", []string{"1.5", "2", "3"}, []bool{false, false, false})
	assert.Equal(t, "float64", floats.DType())

	// A missing value promotes integer storage to float, pandas-style.
	withMissing := NewColumn("m", []string{"1", "", "3"}, []bool{false, true, false})
	assert.Equal(t, "float64", withMissing.DType())

	text := NewColumn("t", []string{"x", "y", "z"}, []bool{false, false, false})
	assert.Equal(t, "object", text.DType())
}

func TestColumnCounts(t *testing.T) {
	col := NewColumn("c", []string{"a", "b", "a", "", "b"}, []bool{false, false, false, true, false})
	assert.Equal(t, 2, col.UniqueCount())
	assert.Equal(t, 1, col.MissingCount())
}

func buildTable(rows int) *Table {
	cells := make([]string, rows)
	missing := make([]bool, rows)
	for i := range cells {
		cells[i] = "v"
	}
	return &Table{
		Filename: "t.csv",
		Columns:  []Column{NewColumn("c", cells, missing)},
	}
}

func TestSampleCapsLargeTables(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	big := buildTable(6001)
	sampled := big.Sample(5000, rng)
	assert.Equal(t, 5000, sampled.RowCount())

	small := buildTable(5000)
	assert.Same(t, small, small.Sample(5000, rng))

	tiny := buildTable(3)
	assert.Same(t, tiny, tiny.Sample(5000, rng))
}

func TestSamplePreservesRowAlignment(t *testing.T) {
	n := 100
	a := make([]string, n)
	b := make([]string, n)
	missing := make([]bool, n)
	for i := 0; i < n; i++ {
		a[i] = "k" + string(rune('0'+i%10))
		b[i] = a[i]
	}
	tbl := &Table{Columns: []Column{NewColumn("a", a, missing), NewColumn("b", b, missing)}}

	sampled := tbl.Sample(10, rand.New(rand.NewSource(7)))
	require.Equal(t, 10, sampled.RowCount())
	for i := 0; i < 10; i++ {
		assert.Equal(t, sampled.Columns[0].Cells[i], sampled.Columns[1].Cells[i])
	}
}

func TestHeadRecordsRendersMissingAsEmpty(t *testing.T) {
	tbl := &Table{Columns: []Column{
		NewColumn("name", []string{"ann", ""}, []bool{false, true}),
		NewColumn("score", []string{"1.5", "2"}, []bool{false, false}),
	}}

	records := tbl.HeadRecords(5)
	require.Len(t, records, 2)
	assert.Equal(t, "ann", records[0]["name"])
	assert.Equal(t, "", records[1]["name"])
	assert.Equal(t, 1.5, records[0]["score"])
}

func TestHeadLimitsRows(t *testing.T) {
	tbl := buildTable(50)
	head := tbl.Head(10)

	// Header line plus ten data rows.
	lines := 0
	for _, ch := range head {
		if ch == '\n' {
			lines++
		}
	}
	assert.Equal(t, 11, lines)
}
