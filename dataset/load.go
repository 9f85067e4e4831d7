package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spektr-org/launchdash/internal/logging"
	"github.com/spektr-org/launchdash/schema"
)

// ============================================================================
// CSV LOADER — Parses a launch export into an immutable Dataset
// ============================================================================
// Columns are located by header name through schema.Columns.Resolve, so
// column order, header spelling and extra columns (like the export's unnamed
// index) do not matter.
// Any load failure is fatal: the dashboard never starts on partial data.
// ============================================================================

// ErrEmptyDataset is returned when the file has a header but no rows.
var ErrEmptyDataset = errors.New("dataset has no launch records")

// MissingColumnError lists required headers absent from the file, along
// with the full required set.
type MissingColumnError struct {
	Columns  []string
	Required []string
}

func (e *MissingColumnError) Error() string {
	msg := fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
	if len(e.Required) > 0 {
		msg += fmt.Sprintf(" (required: %s)", strings.Join(e.Required, ", "))
	}
	return msg
}

// RowError reports a malformed data row. Line is 1-based and counts the header.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Load reads and parses the CSV file at path.
func Load(path string, sch schema.Config) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f, sch)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	b := ds.PayloadBounds()
	logging.New("dataset").Info("dataset loaded",
		"path", path, "launches", ds.Len(), "payload_min", b.Min, "payload_max", b.Max)
	return ds, nil
}

// columnIndex maps each schema column to its position in the header, -1 if absent.
type columnIndex struct {
	site, payload, outcome, booster int
	flight, version                 int
}

// indexColumns locates the schema's columns in header. It returns the
// columns as spelled in the file, for error messages.
func indexColumns(header []string, sch schema.Config) (columnIndex, schema.Columns, error) {
	resolved, missing := sch.Columns.Resolve(header)
	if len(missing) > 0 {
		return columnIndex{}, resolved, &MissingColumnError{Columns: missing, Required: sch.RequiredColumns()}
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	find := func(name string) int {
		if i, ok := pos[name]; ok && name != "" {
			return i
		}
		return -1
	}
	return columnIndex{
		site:    find(resolved.Site),
		payload: find(resolved.Payload),
		outcome: find(resolved.Outcome),
		booster: find(resolved.BoosterCategory),
		flight:  find(resolved.FlightNumber),
		version: find(resolved.BoosterVersion),
	}, resolved, nil
}

// Parse reads a CSV launch export from r.
func Parse(r io.Reader, sch schema.Config) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	idx, cols, err := indexColumns(header, sch)
	if err != nil {
		return nil, err
	}

	var launches []Launch
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &RowError{Line: pe.Line, Err: pe.Err}
			}
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if blank(row) {
			continue
		}

		l, rowErr := parseRow(row, idx, cols)
		if rowErr != nil {
			rowErr.Line = line
			return nil, rowErr
		}
		launches = append(launches, l)
	}

	if len(launches) == 0 {
		return nil, ErrEmptyDataset
	}
	return newDataset(launches), nil
}

func parseRow(row []string, idx columnIndex, cols schema.Columns) (Launch, *RowError) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var l Launch
	l.Site = field(idx.site)
	if l.Site == "" {
		return l, &RowError{Column: cols.Site, Err: errors.New("empty site")}
	}
	l.BoosterCategory = field(idx.booster)
	l.BoosterVersion = field(idx.version)

	payload, err := strconv.ParseFloat(field(idx.payload), 64)
	if err != nil || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return l, &RowError{Column: cols.Payload, Err: fmt.Errorf("invalid payload mass %q", field(idx.payload))}
	}
	if payload < 0 {
		return l, &RowError{Column: cols.Payload, Err: fmt.Errorf("negative payload mass %g", payload)}
	}
	l.PayloadMass = payload

	outcome, err := strconv.ParseFloat(field(idx.outcome), 64)
	if err != nil || (outcome != 0 && outcome != 1) {
		return l, &RowError{Column: cols.Outcome, Err: fmt.Errorf("outcome must be 0 or 1, got %q", field(idx.outcome))}
	}
	l.Outcome = int(outcome)

	if s := field(idx.flight); s != "" {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || n != math.Trunc(n) {
			return l, &RowError{Column: cols.FlightNumber, Err: fmt.Errorf("invalid flight number %q", s)}
		}
		l.FlightNumber = int(n)
	}
	return l, nil
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
