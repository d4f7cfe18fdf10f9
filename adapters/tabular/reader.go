// Package tabular loads uploaded dataset files into the in-memory table
// model. Format is chosen by file extension; parse failures are reported
// distinctly from unsupported formats so the HTTP layer can map them to the
// right status.
package tabular

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"autoeda/domain/table"
	"autoeda/internal/errors"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// Load parses an uploaded file into a Table based on its extension.
// Supported: .csv, .xls, .xlsx, .json, .parquet.
func Load(filename string, data []byte) (*table.Table, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	log.Printf("[DataReader] Loading %s file: %s (%d bytes)", ext, filename, len(data))

	var (
		tbl *table.Table
		err error
	)
	switch ext {
	case "csv":
		tbl, err = readCSV(filename, data)
	case "xls", "xlsx":
		tbl, err = readExcel(filename, data)
	case "json":
		tbl, err = readJSON(filename, data)
	case "parquet":
		tbl, err = readParquet(filename, data)
	default:
		return nil, errors.UnsupportedFormat(ext)
	}
	if err != nil {
		log.Printf("[DataReader] FAILED - Error reading %s: %v", filename, err)
		return nil, errors.FileParseError(err)
	}

	log.Printf("[DataReader] Loaded %s: %d columns, %d rows", filename, len(tbl.Columns), tbl.RowCount())
	return tbl, nil
}

// readCSV parses delimited text with a header row. Empty cells are missing.
func readCSV(filename string, data []byte) (*table.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	return fromStringRows(filename, records[0], records[1:]), nil
}

// readExcel parses the first sheet of a workbook with a header row.
func readExcel(filename string, data []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook sheet %s is empty", sheets[0])
	}
	return fromStringRows(filename, rows[0], rows[1:]), nil
}

// readJSON parses an array of flat records. Column order follows the key
// order of the first record, then first appearance across the rest.
func readJSON(filename string, data []byte) (*table.Table, error) {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, fmt.Errorf("failed to parse JSON records: %w", err)
	}

	var header []string
	seen := make(map[string]bool)
	records := make([]map[string]interface{}, 0, len(rawRecords))

	for i, raw := range rawRecords {
		keys, err := orderedKeys(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d is not an object: %w", i, err)
		}
		for _, key := range keys {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}

		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		var record map[string]interface{}
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		records = append(records, record)
	}

	return fromRecords(filename, header, records), nil
}

// readParquet reads a columnar binary file row by row.
func readParquet(filename string, data []byte) (*table.Table, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	header := make([]string, 0, len(pf.Schema().Fields()))
	for _, field := range pf.Schema().Fields() {
		header = append(header, field.Name())
	}

	reader := parquet.NewReader(pf)
	defer reader.Close()

	var records []map[string]interface{}
	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err == io.EOF {
			break
		}
		if err != nil {
			// A corrupt page mid-file must fail the load, not yield a
			// silently partial table.
			return nil, fmt.Errorf("failed to read parquet row %d: %w", len(records), err)
		}
		records = append(records, row)
	}

	return fromRecords(filename, header, records), nil
}

// fromStringRows builds a table from a header and raw text rows. Short rows
// are padded; empty cells count as missing.
func fromStringRows(filename string, header []string, rows [][]string) *table.Table {
	n := len(rows)
	columns := make([]table.Column, 0, len(header))
	for ci, name := range header {
		cells := make([]string, n)
		missing := make([]bool, n)
		for ri, row := range rows {
			if ci >= len(row) || strings.TrimSpace(row[ci]) == "" {
				missing[ri] = true
				continue
			}
			cells[ri] = row[ci]
		}
		columns = append(columns, table.NewColumn(strings.TrimSpace(name), cells, missing))
	}
	return &table.Table{Filename: filename, Columns: columns}
}

// fromRecords builds a table from decoded records. Absent keys and explicit
// nulls count as missing.
func fromRecords(filename string, header []string, records []map[string]interface{}) *table.Table {
	n := len(records)
	columns := make([]table.Column, 0, len(header))
	for _, name := range header {
		cells := make([]string, n)
		missing := make([]bool, n)
		for ri, record := range records {
			value, ok := record[name]
			if !ok || value == nil {
				missing[ri] = true
				continue
			}
			cells[ri] = formatValue(value)
		}
		columns = append(columns, table.NewColumn(name, cells, missing))
	}
	return &table.Table{Filename: filename, Columns: columns}
}

// formatValue renders a decoded cell value as text for the column model.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case []byte:
		return string(v)
	case float64:
		return trimFloat(v)
	case float32:
		return trimFloat(float64(v))
	case int:
		return fmt.Sprintf("%d", v)
	case int32:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

// orderedKeys extracts the top-level object keys of one JSON record in the
// order they appear, which encoding/json maps do not preserve.
func orderedKeys(raw json.RawMessage) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		keys = append(keys, key)
		if err := skipValue(decoder); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one JSON value, descending into nested containers.
func skipValue(decoder *json.Decoder) error {
	tok, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); ok && (delim == '{' || delim == '[') {
		depth := 1
		for depth > 0 {
			tok, err := decoder.Token()
			if err != nil {
				return err
			}
			if d, ok := tok.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}
