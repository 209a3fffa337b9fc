package engine

import (
	"github.com/shopspring/decimal"
)

// ============================================================================
// WAGES VARIANCE — Cost Rates Against the EA Benchmark
// ============================================================================
// Variance = cost rate − benchmark rate; percentage variance is
// variance/benchmark·100, undefined when the benchmark is zero. Unlike
// accuracy there is no clipping: variance is legitimately unbounded in
// either direction.
//
// Rates are dollars per hour, so the arithmetic runs through decimals and
// converts back to float64 only at the row boundary.
// ============================================================================

// Canonical wages measure keys produced by schema.Wages.
const (
	MeasurePickerCostHr = "picker_cost_hr"
	MeasureTotalCostHr  = "total_cost_hr"
	MeasureEARate       = "ea_rate"
	MeasureYieldKg      = "yield_kg"
)

var hundred = decimal.NewFromInt(100)

// ComputeWageVariance derives benchmark variance for every aggregated
// wages bucket. Both averaged cost rates get their own variance pair
// against the EA rate.
func ComputeWageVariance(rows []AggregatedRow) []WageMetricRow {
	out := make([]WageMetricRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, computeWageRow(r))
	}
	return out
}

func computeWageRow(row AggregatedRow) WageMetricRow {
	picker := decimal.NewFromFloat(row.Measures[MeasurePickerCostHr])
	total := decimal.NewFromFloat(row.Measures[MeasureTotalCostHr])
	ea := decimal.NewFromFloat(row.Measures[MeasureEARate])

	pickerVar := picker.Sub(ea)
	totalVar := total.Sub(ea)

	return WageMetricRow{
		Dims:              row.Dims,
		PickerCostHr:      picker.InexactFloat64(),
		TotalCostHr:       total.InexactFloat64(),
		EARate:            ea.InexactFloat64(),
		YieldKg:           row.Measures[MeasureYieldKg],
		PickerVariance:    pickerVar.InexactFloat64(),
		TotalVariance:     totalVar.InexactFloat64(),
		PickerVariancePct: variancePct(pickerVar, ea),
		TotalVariancePct:  variancePct(totalVar, ea),
	}
}

// variancePct propagates a zero benchmark as undefined rather than zero.
func variancePct(variance, benchmark decimal.Decimal) MetricValue {
	if benchmark.IsZero() {
		return Undefined()
	}
	return DefinedValue(variance.Div(benchmark).Mul(hundred).InexactFloat64())
}
