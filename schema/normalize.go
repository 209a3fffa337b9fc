package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cropsight-org/cropsight/engine"
)

// ============================================================================
// NORMALIZER — raw column-labeled tables → canonical engine Records
// ============================================================================
// Renames headers to canonical keys, classifies columns into dimensions and
// measures, and coerces year/week/horizon values to integers. Fails loudly:
// a missing required column is a SchemaError, an uncoercible value is a
// TypeCoercionError. No partial output is ever produced.
// ============================================================================

// Table is a raw column-labeled extract as the loaders produce it: header
// names trimmed, every cell still a string.
type Table struct {
	Name    string
	Headers []string
	Rows    []map[string]string
}

// SchemaError reports a required canonical column missing after renaming.
type SchemaError struct {
	Source string
	Column string // raw header that was expected
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %q: required column %q missing after normalization", e.Source, e.Column)
}

// TypeCoercionError reports a value that cannot be converted to its
// expected type.
type TypeCoercionError struct {
	Source string
	Column string // canonical key
	Value  string
	Row    int // zero-based data row
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("source %q: row %d: cannot coerce %q value %q", e.Source, e.Row, e.Column, e.Value)
}

// Normalize converts a raw table into canonical engine Records per the
// source contract. The input table is not modified.
func Normalize(t *Table, src Source) ([]engine.Record, error) {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[strings.TrimSpace(h)] = true
	}
	for _, c := range src.Columns {
		if !present[c.Source] {
			return nil, &SchemaError{Source: src.Name, Column: c.Source}
		}
	}

	records := make([]engine.Record, 0, len(t.Rows))
	for i, raw := range t.Rows {
		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}
		for _, c := range src.Columns {
			val := strings.TrimSpace(raw[c.Source])
			switch c.Kind {
			case KindMeasure:
				if val == "" {
					rec.Measures[c.Canonical] = 0
					continue
				}
				f, err := parseNumeric(val)
				if err != nil {
					return nil, &TypeCoercionError{Source: src.Name, Column: c.Canonical, Value: val, Row: i}
				}
				rec.Measures[c.Canonical] = f

			case KindIntDimension:
				if val == "" {
					// Missing dimension values group under the engine's
					// unknown sentinel; absence is not a coercion failure.
					continue
				}
				n, err := parseIntLoose(val)
				if err != nil {
					return nil, &TypeCoercionError{Source: src.Name, Column: c.Canonical, Value: val, Row: i}
				}
				rec.Dimensions[c.Canonical] = strconv.Itoa(n)

			default:
				if val != "" {
					rec.Dimensions[c.Canonical] = val
				}
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseIntLoose accepts "27", "27.0", and spreadsheet float renderings of
// integer identifiers, truncating any fractional part.
func parseIntLoose(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := parseNumeric(s)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// parseNumeric parses a cell that may carry spreadsheet thousands
// separators.
func parseNumeric(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}
