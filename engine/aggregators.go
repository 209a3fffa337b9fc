package engine

import (
	"sort"
	"strconv"
)

// ============================================================================
// AGGREGATOR — Composite-Key Grouping with Per-Measure Reducers
// ============================================================================
// Groups a view by an ordered tuple of dimension fields and reduces each
// declared measure with its own operation (sum or mean). One output row per
// distinct key tuple; grouping is insensitive to input row order. Output
// order is first-seen and implementation-defined — callers sort before
// display via SortRows.
// ============================================================================

// Aggregate groups a view by the full groupBy tuple and reduces each measure
// with its declared operation. Rows with a missing dimension value share the
// UnknownValue bucket for that field — they are never dropped.
func Aggregate(view RecordView, groupBy []string, measures map[string]Op) []AggregatedRow {
	n := view.Len()
	if n == 0 {
		return nil
	}

	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < n; i++ {
		key := rowKey(view, i, groupBy)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	rows := make([]AggregatedRow, 0, len(order))
	for _, key := range order {
		indices := grouped[key]
		row := AggregatedRow{
			Dims:     make(map[string]string, len(groupBy)),
			Measures: make(map[string]float64, len(measures)),
		}
		for _, f := range groupBy {
			row.Dims[f] = dimensionOrUnknown(view, indices[0], f)
		}
		for m, op := range measures {
			row.Measures[m] = reduce(view, indices, m, op)
		}
		rows = append(rows, row)
	}
	return rows
}

func rowKey(view RecordView, i int, groupBy []string) string {
	return compositeKey(func(f string) string {
		return dimensionOrUnknown(view, i, f)
	}, groupBy)
}

// dimensionOrUnknown maps a missing dimension value to the shared sentinel.
func dimensionOrUnknown(view RecordView, i int, field string) string {
	v := view.Dimension(i, field)
	if v == "" {
		return UnknownValue
	}
	return v
}

func reduce(view RecordView, indices []int, measure string, op Op) float64 {
	group := newSubView(view, indices)
	if op == OpMean {
		return MeanMeasure(group, measure)
	}
	return SumMeasure(group, measure)
}

// ============================================================================
// VIEW-LEVEL REDUCERS
// ============================================================================

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// MeanMeasure averages a named measure across a view. Zero for empty views.
func MeanMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// ============================================================================
// SORTING — display order for aggregated output
// ============================================================================

// SortRows orders aggregated rows lexicographically by the given dimension
// fields. Values that parse as integers (fiscal weeks, years, weeks-out)
// compare numerically so week 10 sorts after week 9, not after week 1.
func SortRows(rows []AggregatedRow, by []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, f := range by {
			if c := compareDimValues(rows[i].Dims[f], rows[j].Dims[f]); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

// SortMetricRows orders metric rows the same way.
func SortMetricRows(rows []MetricRow, by []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, f := range by {
			if c := compareDimValues(rows[i].Dims[f], rows[j].Dims[f]); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func compareDimValues(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// UniqueValues returns distinct values for a dimension across a view, in
// first-seen order. The filter widgets build their option lists from this.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
