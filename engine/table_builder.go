package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TABLE BUILDER — Detail Tables from Metric Rows
// ============================================================================

// BuildMetricTable renders metric rows as a detail table: one text column
// per grouping dimension, then the measure and derived-metric columns.
func BuildMetricTable(title string, rows []MetricRow, dimFields []string) *TableData {
	columns := make([]Column, 0, len(dimFields)+5)
	for _, f := range dimFields {
		columns = append(columns, Column{
			Key: f, Label: LabelForField(f), Type: "text", Align: "left",
		})
	}
	columns = append(columns,
		Column{Key: "actual", Label: "Actual Kg", Type: "number", Align: "right"},
		Column{Key: "forecast", Label: "Forecast Kg", Type: "number", Align: "right"},
		Column{Key: "disparity", Label: "Disparity Kg", Type: "number", Align: "right"},
		Column{Key: "abs_disparity", Label: "Abs Disparity Kg", Type: "number", Align: "right"},
		Column{Key: "accuracy", Label: "Forecast Accuracy", Type: "percent", Align: "right"},
	)

	tableRows := make([][]string, 0, len(rows))
	var totalActual, totalForecast, totalAbs float64
	for _, r := range rows {
		row := make([]string, 0, len(columns))
		for _, f := range dimFields {
			row = append(row, r.Dims[f])
		}
		row = append(row,
			FormatKg(r.Actual),
			FormatKg(r.Forecast),
			FormatKg(r.Disparity),
			FormatKg(r.AbsDisparity),
			fmt.Sprintf("%.1f%%", r.Accuracy),
		)
		tableRows = append(tableRows, row)
		totalActual += r.Actual
		totalForecast += r.Forecast
		totalAbs += r.AbsDisparity
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    tableRows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d buckets)", len(rows)),
			Values: map[string]string{
				"actual":        FormatKg(totalActual),
				"forecast":      FormatKg(totalForecast),
				"abs_disparity": FormatKg(totalAbs),
			},
		},
	}
}

// BuildWageTable renders wage metric rows: grouping dimensions, averaged
// rates, yield, and the benchmark variance columns. Undefined percentage
// variances render as "n/a", never as a number.
func BuildWageTable(title string, rows []WageMetricRow, dimFields []string) *TableData {
	columns := make([]Column, 0, len(dimFields)+8)
	for _, f := range dimFields {
		columns = append(columns, Column{
			Key: f, Label: LabelForField(f), Type: "text", Align: "left",
		})
	}
	columns = append(columns,
		Column{Key: "picker_cost_hr", Label: "Picker Cost/Hr", Type: "number", Align: "right"},
		Column{Key: "total_cost_hr", Label: "Total Cost/Hr", Type: "number", Align: "right"},
		Column{Key: "ea_rate", Label: "EA Rate", Type: "number", Align: "right"},
		Column{Key: "yield_kg", Label: "Yield Kg", Type: "number", Align: "right"},
		Column{Key: "picker_variance", Label: "Picker Variance", Type: "number", Align: "right"},
		Column{Key: "total_variance", Label: "Total Variance", Type: "number", Align: "right"},
		Column{Key: "picker_variance_pct", Label: "Picker Variance %", Type: "percent", Align: "right"},
		Column{Key: "total_variance_pct", Label: "Total Variance %", Type: "percent", Align: "right"},
	)

	tableRows := make([][]string, 0, len(rows))
	var totalYield, sumPicker, sumTotal, sumEA float64
	for _, r := range rows {
		row := make([]string, 0, len(columns))
		for _, f := range dimFields {
			row = append(row, r.Dims[f])
		}
		row = append(row,
			fmt.Sprintf("%.2f", r.PickerCostHr),
			fmt.Sprintf("%.2f", r.TotalCostHr),
			fmt.Sprintf("%.2f", r.EARate),
			FormatKg(r.YieldKg),
			fmt.Sprintf("%+.2f", r.PickerVariance),
			fmt.Sprintf("%+.2f", r.TotalVariance),
			formatPct(r.PickerVariancePct),
			formatPct(r.TotalVariancePct),
		)
		tableRows = append(tableRows, row)
		totalYield += r.YieldKg
		sumPicker += r.PickerCostHr
		sumTotal += r.TotalCostHr
		sumEA += r.EARate
	}

	summary := &Summary{
		Label: fmt.Sprintf("Total (%d buckets)", len(rows)),
		Values: map[string]string{
			"yield_kg": FormatKg(totalYield),
		},
	}
	if n := float64(len(rows)); n > 0 {
		summary.Values["picker_cost_hr"] = fmt.Sprintf("%.2f", sumPicker/n)
		summary.Values["total_cost_hr"] = fmt.Sprintf("%.2f", sumTotal/n)
		summary.Values["ea_rate"] = fmt.Sprintf("%.2f", sumEA/n)
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    tableRows,
		Summary: summary,
	}
}

func formatPct(v MetricValue) string {
	if !v.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", v.Value)
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatKg formats a kilogram quantity with comma separators and no
// decimals — volumes are whole kilograms for display.
func FormatKg(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	s := FormatInt(int(v + 0.5))
	if negative {
		return "-" + s
	}
	return s
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// LabelForField turns a canonical snake_case field into a display label.
func LabelForField(field string) string {
	parts := strings.Split(field, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
