package engine

import (
	"fmt"
	"math"
)

// ============================================================================
// METRIC CALCULATOR — Disparity, Accuracy, and KPI Summaries
// ============================================================================
// Pure functions of their inputs. Zero-denominator ratios become explicit
// MetricValue markers (or the documented accuracy-zero policy) — never NaN,
// never an error.
// ============================================================================

// Accuracy derives the forecast accuracy percentage from an actual volume
// and an absolute disparity, clipped to [0, 100].
//
// An actual of exactly zero yields accuracy 0: a zero actual with a nonzero
// forecast is maximally inaccurate, and a zero actual with a zero forecast
// also scores 0 under this rule. The second case is a known asymmetry kept
// for continuity with the established reports.
func Accuracy(actual, absDisparity float64) float64 {
	if actual == 0 {
		return 0
	}
	return clip((1-absDisparity/actual)*100, 0, 100)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ComputeMetrics derives the accuracy fields for a single aggregated or
// joined row.
func ComputeMetrics(row AggregatedRow, actualMeasure, forecastMeasure string) MetricRow {
	actual := row.Measures[actualMeasure]
	forecast := row.Measures[forecastMeasure]
	disparity := forecast - actual
	absDisparity := math.Abs(disparity)

	return MetricRow{
		Dims:         row.Dims,
		Actual:       actual,
		Forecast:     forecast,
		Disparity:    disparity,
		AbsDisparity: absDisparity,
		Accuracy:     Accuracy(actual, absDisparity),
	}
}

// ComputeMetricRows derives accuracy fields for every row.
func ComputeMetricRows(rows []AggregatedRow, actualMeasure, forecastMeasure string) []MetricRow {
	out := make([]MetricRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ComputeMetrics(r, actualMeasure, forecastMeasure))
	}
	return out
}

// ============================================================================
// WEIGHTED ACCURACY + KPI SET
// ============================================================================

// WeightedAccuracy computes Σ(accuracy·weight)/Σ(weight) with the actual
// volume as weight. Undefined when the weight sum is zero — distinct from a
// valid 0%, so callers can suppress the figure instead of displaying it.
func WeightedAccuracy(rows []MetricRow) MetricValue {
	var weighted, weight float64
	for _, r := range rows {
		weighted += r.Accuracy * r.Actual
		weight += r.Actual
	}
	if weight == 0 {
		return Undefined()
	}
	return DefinedValue(weighted / weight)
}

// ComputeKPIs builds the scalar summary block for a set of metric rows:
// weighted accuracy, mean absolute disparity, and cumulative absolute
// disparity. The whole block is undefined when the rows carry no actual
// volume.
func ComputeKPIs(rows []MetricRow) KPISet {
	if len(rows) == 0 {
		return KPISet{}
	}

	weighted := WeightedAccuracy(rows)
	if !weighted.Defined {
		return KPISet{}
	}

	var cum float64
	for _, r := range rows {
		cum += r.AbsDisparity
	}

	return KPISet{
		WeightedAccuracy: weighted,
		MeanAbsDisparity: DefinedValue(cum / float64(len(rows))),
		CumAbsDisparity:  DefinedValue(cum),
	}
}

// ============================================================================
// HORIZON HELPERS
// ============================================================================

// HorizonLabel renders a weeks-out horizon as "N week(s)-out".
func HorizonLabel(weeksOut int) string {
	if weeksOut == 1 {
		return "1 week-out"
	}
	return fmt.Sprintf("%d weeks-out", weeksOut)
}
