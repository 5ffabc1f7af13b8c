package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pivolan/go_utils"
)

var ErrEmptyDataset = errors.New("dataset has no columns")

// Dataset is a CSV file loaded into memory: normalized column names plus raw
// string rows. Short rows are padded with empty cells so every row has one
// value per column.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// LoadDataset reads and normalizes a CSV file. Header names are lower-cased
// and cleaned up; when the first row already looks like data, synthetic
// column_N names are generated and the row is kept.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	firstRow, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{Columns: analysis.Headers}
	if analysis.FirstRowIsData {
		ds.Rows = append(ds.Rows, padRow(firstRow, len(ds.Columns)))
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		ds.Rows = append(ds.Rows, padRow(row, len(ds.Columns)))
	}

	return ds, nil
}

func padRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// Total returns the number of data rows.
func (d *Dataset) Total() int {
	return len(d.Rows)
}

// ColumnIndex returns the index of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Values returns the cell values of one column, in row order.
func (d *Dataset) Values(col int) []string {
	values := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		values = append(values, row[col])
	}
	return values
}

// CrimeTypeColumn finds the column holding the crime type: the first column
// whose name mentions crime or type, with a fallback to the first column.
func (d *Dataset) CrimeTypeColumn() int {
	for i, c := range d.Columns {
		if strings.Contains(c, "crime") || strings.Contains(c, "type") {
			return i
		}
	}
	if i := d.ColumnIndex("crime_type"); i >= 0 {
		return i
	}
	if len(d.Columns) > 0 {
		return 0
	}
	return -1
}

// LocationColumn finds the location column, accepting place as an alias.
func (d *Dataset) LocationColumn() int {
	for i, c := range d.Columns {
		if go_utils.InArray(c, []string{"location", "place"}) {
			return i
		}
	}
	return -1
}

// YearColumn finds the year column; no aliases, matching the source data.
func (d *Dataset) YearColumn() int {
	return d.ColumnIndex("year")
}
