package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is a titled table built column-first. Rows are positional
// and always as wide as the column list.
type Dataset struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// NewDataset starts a table with the given title and column order.
func NewDataset(title string, columns ...string) *Dataset {
	return &Dataset{Title: title, Columns: columns}
}

// Append adds a row, padding or truncating it to the column count so
// every row lines up with the header.
func (d *Dataset) Append(values ...string) {
	row := make([]string, len(d.Columns))
	copy(row, values)
	d.Rows = append(d.Rows, row)
}

// CSVExporter renders datasets as CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render writes the header row followed by every data row.
func (e *CSVExporter) Render(d *Dataset) ([]byte, error) {
	if len(d.Columns) == 0 {
		return nil, fmt.Errorf("csv export needs at least one column")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(d.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(d.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
