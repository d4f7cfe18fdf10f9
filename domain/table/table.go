package table

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Kind is the semantic kind of a column, derived from its storage type.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindNumerical   Kind = "numerical"
)

// Column is a single named, typed column. Cells holds the raw text of every
// row; Missing marks null cells. Numbers is parallel to Cells and is only
// meaningful for numerical columns at non-missing rows.
type Column struct {
	Name    string
	Kind    Kind
	Cells   []string
	Missing []bool
	Numbers []float64
}

// NewColumn builds a column from raw cells, classifying its kind. A column is
// numerical when every non-missing cell parses as a number; otherwise it is
// categorical. Classification depends only on the cells, so repeated calls on
// the same data always agree.
func NewColumn(name string, cells []string, missing []bool) Column {
	col := Column{
		Name:    name,
		Cells:   cells,
		Missing: missing,
		Numbers: make([]float64, len(cells)),
	}

	col.Kind = KindNumerical
	for i, cell := range cells {
		if missing[i] {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			col.Kind = KindCategorical
			break
		}
		col.Numbers[i] = value
	}

	return col
}

// DType reports the storage type of the column, pandas-style: "int64" or
// "float64" for numerical columns, "object" for categorical ones.
func (c *Column) DType() string {
	if c.Kind != KindNumerical {
		return "object"
	}
	for i, v := range c.Numbers {
		if c.Missing[i] {
			// Any missing value promotes an integer column to float storage.
			return "float64"
		}
		if v != math.Trunc(v) {
			return "float64"
		}
	}
	return "int64"
}

// Values returns the non-missing numeric values of a numerical column.
func (c *Column) Values() []float64 {
	values := make([]float64, 0, len(c.Numbers))
	for i, v := range c.Numbers {
		if !c.Missing[i] {
			values = append(values, v)
		}
	}
	return values
}

// UniqueCount is the exact number of distinct non-missing values.
func (c *Column) UniqueCount() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for i, cell := range c.Cells {
		if !c.Missing[i] {
			seen[cell] = struct{}{}
		}
	}
	return len(seen)
}

// MissingCount is the exact number of null cells.
func (c *Column) MissingCount() int {
	count := 0
	for _, m := range c.Missing {
		if m {
			count++
		}
	}
	return count
}

// Table is an ordered collection of equal-length columns loaded from one file.
type Table struct {
	Filename string
	Columns  []Column
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// HasColumn reports whether a column of that name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Sample returns a table capped at n rows via uniform random sampling without
// replacement, preserving the original row order. Tables at or under the cap
// are returned unchanged.
func (t *Table) Sample(n int, rng *rand.Rand) *Table {
	rows := t.RowCount()
	if rows <= n {
		return t
	}

	picked := rng.Perm(rows)[:n]
	sort.Ints(picked)

	sampled := &Table{Filename: t.Filename, Columns: make([]Column, len(t.Columns))}
	for ci, col := range t.Columns {
		next := Column{
			Name:    col.Name,
			Kind:    col.Kind,
			Cells:   make([]string, n),
			Missing: make([]bool, n),
			Numbers: make([]float64, n),
		}
		for i, ri := range picked {
			next.Cells[i] = col.Cells[ri]
			next.Missing[i] = col.Missing[ri]
			next.Numbers[i] = col.Numbers[ri]
		}
		sampled.Columns[ci] = next
	}
	return sampled
}

// Head renders the first n rows as aligned plain text, suitable for
// embedding in a prompt.
func (t *Table) Head(n int) string {
	rows := t.RowCount()
	if n > rows {
		n = rows
	}

	widths := make([]int, len(t.Columns))
	for ci, col := range t.Columns {
		widths[ci] = len(col.Name)
		for ri := 0; ri < n; ri++ {
			if w := len(col.Cells[ri]); w > widths[ci] {
				widths[ci] = w
			}
		}
	}

	var b strings.Builder
	for ci, col := range t.Columns {
		if ci > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[ci], col.Name)
	}
	b.WriteString("\n")
	for ri := 0; ri < n; ri++ {
		for ci, col := range t.Columns {
			if ci > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[ci], col.Cells[ri])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HeadRecords returns the first n rows as records for the report preview.
// Missing values are rendered as empty strings rather than nulls; numeric
// cells keep their numeric type.
func (t *Table) HeadRecords(n int) []map[string]interface{} {
	rows := t.RowCount()
	if n > rows {
		n = rows
	}

	records := make([]map[string]interface{}, 0, n)
	for ri := 0; ri < n; ri++ {
		record := make(map[string]interface{}, len(t.Columns))
		for _, col := range t.Columns {
			switch {
			case col.Missing[ri]:
				record[col.Name] = ""
			case col.Kind == KindNumerical:
				record[col.Name] = col.Numbers[ri]
			default:
				record[col.Name] = col.Cells[ri]
			}
		}
		records = append(records, record)
	}
	return records
}
