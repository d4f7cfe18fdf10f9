package tabular

import (
	"bytes"
	"fmt"
	"testing"

	"autoeda/domain/table"
	"autoeda/internal/errors"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	data := []byte("name,age\nann,31\nbob,\ncarol,45\n")

	tbl, err := Load("people.csv", data)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, []string{"name", "age"}, tbl.ColumnNames())

	age, ok := tbl.Column("age")
	require.True(t, ok)
	assert.Equal(t, table.KindNumerical, age.Kind)
	assert.Equal(t, 1, age.MissingCount())
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	tbl, err := Load("empty.csv", []byte("a,b,c\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount())
	assert.Len(t, tbl.Columns, 3)
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`[
		{"city": "nyc", "pop": 8.4},
		{"city": "sf", "pop": 0.8},
		{"city": "austin", "pop": null}
	]`)

	tbl, err := Load("cities.json", data)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, []string{"city", "pop"}, tbl.ColumnNames())

	pop, ok := tbl.Column("pop")
	require.True(t, ok)
	assert.Equal(t, table.KindNumerical, pop.Kind)
	assert.Equal(t, 1, pop.MissingCount())
}

func TestLoadExcel(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"product", "units"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"widget", 12}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"gadget", 7}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := Load("inventory.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, []string{"product", "units"}, tbl.ColumnNames())

	units, ok := tbl.Column("units")
	require.True(t, ok)
	assert.Equal(t, table.KindNumerical, units.Kind)
}

func TestLoadParquet(t *testing.T) {
	type row struct {
		Name  string  `parquet:"name"`
		Score float64 `parquet:"score"`
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[row](&buf)
	_, err := writer.Write([]row{
		{Name: "ann", Score: 1.5},
		{Name: "bob", Score: 2.5},
		{Name: "carol", Score: 3.5},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	tbl, err := Load("scores.parquet", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, []string{"name", "score"}, tbl.ColumnNames())

	score, ok := tbl.Column("score")
	require.True(t, ok)
	assert.Equal(t, table.KindNumerical, score.Kind)
}

func TestLoadParquetCorruptPage(t *testing.T) {
	type row struct {
		Name  string  `parquet:"name"`
		Score float64 `parquet:"score"`
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[row](&buf, parquet.Compression(&parquet.Snappy))
	rows := make([]row, 200)
	for i := range rows {
		rows[i] = row{Name: fmt.Sprintf("r%03d", i), Score: float64(i)}
	}
	_, err := writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	// Flip bits in the data page region, leaving the magic and the footer
	// intact; a partial table must not come back as a success.
	data := buf.Bytes()
	for i := 8; i < 72 && i < len(data)-128; i++ {
		data[i] ^= 0xFF
	}

	_, err = Load("scores.parquet", data)
	require.Error(t, err)
	assert.Equal(t, errors.CodeFileParse, errors.GetCode(err))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("report.pdf", []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
}

func TestLoadParseFailure(t *testing.T) {
	_, err := Load("broken.json", []byte("{not json"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeFileParse, errors.GetCode(err))
}

func TestLoadCSVParseFailure(t *testing.T) {
	_, err := Load("broken.csv", []byte("a,\"b\nunclosed"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeFileParse, errors.GetCode(err))
}
