package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoHeaderRow reports a source with no rows at all.
var ErrNoHeaderRow = errors.New("spreadsheet has no header row")

// Grid is a rectangular cell grid with a header row. Cell values are
// display-formatted strings: what a user would see in the cell, not raw
// typed values.
type Grid struct {
	Headers []string
	Rows    [][]string
}

// Row pairs the cells of row i with the headers, preserving column order.
// Short rows are padded with empty cells.
func (g *Grid) Row(i int) Row {
	row := make(Row, len(g.Headers))
	for col, header := range g.Headers {
		cell := Cell{Label: header}
		if col < len(g.Rows[i]) {
			cell.Value = g.Rows[i][col]
		}
		row[col] = cell
	}
	return row
}

// ReadCSVGrid parses a CSV stream into a grid. Rows may be ragged; the
// header row fixes the column count.
func ReadCSVGrid(r io.Reader) (*Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return gridFromRecords(records)
}

// ReadXLSXGrid parses the first sheet of an XLSX stream into a grid.
// excelize already returns display-formatted cell strings, which is exactly
// the contract the mapper expects.
func ReadXLSXGrid(r io.Reader) (*Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoHeaderRow
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return gridFromRecords(rows)
}

func gridFromRecords(records [][]string) (*Grid, error) {
	if len(records) == 0 {
		return nil, ErrNoHeaderRow
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return &Grid{Headers: headers, Rows: records[1:]}, nil
}
