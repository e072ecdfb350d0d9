// Package table reads and writes column-oriented light curve tables in CSV and ECSV layouts.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/lightcurve/schema"
)

// ErrEmpty is returned when a table has no header row.
var ErrEmpty = errors.New("empty table: missing header row")

// Table is a header-first delimited dataset. Rows keep their original order.
type Table struct {
	Columns []string
	Rows    [][]string
	Meta    map[string]any
	index   map[string]int
}

// New builds a table from a header and rows. Every row must have one field per column.
// Repeated column names are kept; lookups by name resolve to the first occurrence.
func New(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, seen := index[c]; !seen {
			index[c] = i
		}
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(columns))
		}
	}
	return &Table{Columns: columns, Rows: rows, index: index}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the named column exists. Names are case-sensitive.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Missing returns the names that are not columns of the table, in argument order.
func (t *Table) Missing(names ...string) []string {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Column returns the raw values of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	values := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		values[r] = row[i]
	}
	return values, nil
}

// Floats parses the named column as float64 values in row order.
func (t *Table) Floats(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw))
	for r, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: invalid number %q", name, r+1, s)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("column %q row %d: non-finite value %q", name, r+1, s)
		}
		values[r] = v
	}
	return values, nil
}

// Read parses a table from r. AutoTable sniffs the ECSV banner and falls back to CSV.
func Read(r io.Reader, format schema.TableFormat) (*Table, error) {
	br := bufio.NewReader(r)
	if format == schema.AutoTable {
		format = schema.CSVTable
		if head, _ := br.Peek(len(ecsvBanner)); bytes.Equal(head, []byte(ecsvBanner)) {
			format = schema.ECSVTable
		}
	}

	switch format {
	case schema.ECSVTable:
		return readECSV(br)
	case schema.CSVTable:
		return readDelimited(br, ',', nil)
	default:
		return nil, fmt.Errorf("unsupported table format: %s", format)
	}
}

// Write serializes a table to w in the given format.
func Write(w io.Writer, t *Table, format schema.TableFormat) error {
	switch format {
	case schema.ECSVTable:
		return writeECSV(w, t)
	case schema.CSVTable, schema.AutoTable:
		return writeDelimited(w, t, ',')
	default:
		return fmt.Errorf("unsupported table format: %s", format)
	}
}

// FromFloats builds a numeric table from parallel columns.
func FromFloats(columns []string, values ...[]float64) (*Table, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("got %d column names for %d columns", len(columns), len(values))
	}
	n := 0
	if len(values) > 0 {
		n = len(values[0])
	}
	for i, v := range values {
		if len(v) != n {
			return nil, fmt.Errorf("column %q has %d values, expected %d", columns[i], len(v), n)
		}
	}
	rows := make([][]string, n)
	for r := range rows {
		row := make([]string, len(columns))
		for c := range columns {
			row[c] = strconv.FormatFloat(values[c][r], 'f', -1, 64)
		}
		rows[r] = row
	}
	return New(columns, rows)
}

// readDelimited reads a header row followed by data rows.
func readDelimited(r io.Reader, comma rune, meta map[string]any) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	t, err := New(header, rows)
	if err != nil {
		return nil, err
	}
	t.Meta = meta
	return t, nil
}

// writeDelimited writes the header followed by every row.
func writeDelimited(w io.Writer, t *Table, comma rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = comma

	if err := csvWriter.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := csvWriter.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
