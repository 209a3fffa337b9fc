package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cropsight-org/cropsight/schema"
)

// ============================================================================
// CSV READER — csv extracts → raw tables
// ============================================================================
// Same contract as the workbook reader, for sources exported as CSV.
// ============================================================================

// ReadCSVFile reads a CSV file into a raw table.
func ReadCSVFile(path string) (*schema.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseCSV(name, data)
}

// ParseCSV parses CSV bytes into a raw table. Header labels are trimmed;
// malformed rows are skipped rather than aborting the whole extract.
func ParseCSV(name string, data []byte) (*schema.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV headers: %w", err)
	}
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.TrimSpace(h)
	}

	table := &schema.Table{Name: name, Headers: headers}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		m := make(map[string]string, len(headers))
		blank := true
		for i, h := range headers {
			if h == "" || i >= len(row) {
				continue
			}
			m[h] = row[i]
			if strings.TrimSpace(row[i]) != "" {
				blank = false
			}
		}
		if !blank {
			table.Rows = append(table.Rows, m)
		}
	}
	return table, nil
}
