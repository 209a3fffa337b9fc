package extract

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cropsight-org/cropsight/schema"
)

// ============================================================================
// WORKBOOK READER — xlsx extracts → raw tables
// ============================================================================
// Reads one named sheet of a workbook into a column-labeled string table.
// Header labels are trimmed; everything else stays raw — classification and
// coercion are the schema package's job.
// ============================================================================

// ReadWorkbookSheet reads one sheet of an xlsx workbook into a raw table.
// An empty sheet name selects the first sheet.
func ReadWorkbookSheet(path, sheet string) (*schema.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s: no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of %s is empty", sheet, path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &schema.Table{
		Name:    sheet,
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				m[h] = row[i]
			}
		}
		table.Rows = append(table.Rows, m)
	}

	log.Printf("cropsight: read %d rows from sheet %q of %s", len(table.Rows), sheet, path)
	return table, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
