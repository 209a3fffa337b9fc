package engine

import (
	"encoding/json"
	"fmt"
)

// ============================================================================
// ENGINE TYPES — Forecast Accuracy & Wages Variance
// ============================================================================
// Every pipeline stage produces a new value; nothing is mutated in place.
// Records come in from extract/schema, Results go out to the presentation
// layer. The engine itself has no I/O.
// ============================================================================

// ============================================================================
// RECORD — one row of a normalized extract
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Dimension values are exact: "5" and "05" are different keys. The schema
// package canonicalizes year/week values before records reach the engine.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// Op is a per-measure reduction operation for aggregation.
type Op string

const (
	// OpSum totals the measure across the group.
	OpSum Op = "sum"
	// OpMean averages the measure across the group.
	OpMean Op = "mean"
)

// UnknownValue stands in for a missing dimension value during grouping.
// Rows with a missing dimension are grouped under it, never dropped.
const UnknownValue = "unknown"

// ============================================================================
// AGGREGATED ROW — one dimension-key bucket with reduced measures
// ============================================================================

// AggregatedRow is one aggregation bucket: a dimension-key tuple plus its
// reduced measures. Join produces the same shape (both sides' measures
// merged), so joined tables feed straight back into Aggregate via RowView.
type AggregatedRow struct {
	Dims     map[string]string  `json:"dims"`
	Measures map[string]float64 `json:"measures"`
}

// KeyOn builds the composite grouping key for the given ordered dimension
// fields. Equality of keys is exact equality of every component.
func (r AggregatedRow) KeyOn(fields []string) string {
	return compositeKey(func(f string) string { return r.Dims[f] }, fields)
}

// compositeKey joins component values with an unprintable separator so that
// distinct tuples can never collide.
func compositeKey(value func(string) string, fields []string) string {
	key := ""
	for i, f := range fields {
		if i > 0 {
			key += "\x1f"
		}
		key += value(f)
	}
	return key
}

// ============================================================================
// METRIC VALUE — a number that may be undefined
// ============================================================================

// MetricValue is a metric that may have no defined value (zero denominator).
// Undefined values marshal as JSON null so renderers can suppress them
// instead of showing NaN or a spurious zero.
type MetricValue struct {
	Value   float64
	Defined bool
}

// DefinedValue wraps a valid metric value.
func DefinedValue(v float64) MetricValue { return MetricValue{Value: v, Defined: true} }

// Undefined is the "no value" marker for zero-denominator ratios.
func Undefined() MetricValue { return MetricValue{} }

// MarshalJSON emits the value, or null when undefined.
func (m MetricValue) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number or null.
func (m *MetricValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = DefinedValue(v)
	return nil
}

// String renders the value or "n/a".
func (m MetricValue) String() string {
	if !m.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// ============================================================================
// METRIC ROW — joined/aggregated row with derived accuracy fields
// ============================================================================

// MetricRow is an aggregated (or joined) row augmented with the derived
// forecast-accuracy fields.
type MetricRow struct {
	Dims         map[string]string `json:"dims"`
	Actual       float64           `json:"actual"`
	Forecast     float64           `json:"forecast"`
	Disparity    float64           `json:"disparity"`    // forecast − actual
	AbsDisparity float64           `json:"absDisparity"` // |disparity|
	Accuracy     float64           `json:"accuracy"`     // clipped to [0, 100]
}

// WageMetricRow is an aggregated wages bucket with cost variance against
// the EA benchmark rate. Percentage variance is undefined when the
// benchmark is zero — it is never clipped or zeroed.
type WageMetricRow struct {
	Dims              map[string]string `json:"dims"`
	PickerCostHr      float64           `json:"pickerCostHr"`
	TotalCostHr       float64           `json:"totalCostHr"`
	EARate            float64           `json:"eaRate"`
	YieldKg           float64           `json:"yieldKg"`
	PickerVariance    float64           `json:"pickerVariance"` // picker − benchmark
	TotalVariance     float64           `json:"totalVariance"`  // total − benchmark
	PickerVariancePct MetricValue       `json:"pickerVariancePct"`
	TotalVariancePct  MetricValue       `json:"totalVariancePct"`
}

// ============================================================================
// KPI TYPES — scalar summary metrics
// ============================================================================

// KPISet holds the three scalar summary metrics for a filtered selection.
// All three are undefined when the selection carries no actual volume —
// renderers suppress the whole block rather than show a spurious figure.
type KPISet struct {
	WeightedAccuracy MetricValue `json:"weightedAccuracy"` // percent
	MeanAbsDisparity MetricValue `json:"meanAbsDisparity"` // kg
	CumAbsDisparity  MetricValue `json:"cumAbsDisparity"`  // kg
}

// Suppressed reports whether the whole KPI block should be hidden.
func (k KPISet) Suppressed() bool { return !k.WeightedAccuracy.Defined }

// HorizonKPI is a KPI set for one weeks-out forecast horizon.
type HorizonKPI struct {
	WeeksOut int    `json:"weeksOut"`
	Label    string `json:"label"` // "2 weeks-out"
	KPIs     KPISet `json:"kpis"`
}

// ============================================================================
// RESULT — render-ready output
// ============================================================================

// Result is the engine's render-ready output for one view run.
// Only the fields relevant to the view are populated.
type Result struct {
	View  string `json:"view"`
	Title string `json:"title,omitempty"`

	Rows     []MetricRow     `json:"rows,omitempty"`
	WageRows []WageMetricRow `json:"wageRows,omitempty"`

	KPIs        *KPISet      `json:"kpis,omitempty"`
	HorizonKPIs []HorizonKPI `json:"horizonKpis,omitempty"`

	Table      *TableData        `json:"table,omitempty"`
	Heatmap    *HeatmapConfig    `json:"heatmap,omitempty"`
	FacetChart *FacetChartConfig `json:"facetChart,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a detail table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// HeatmapConfig defines an accuracy heatmap: one colored cell per
// (x, y[, facet]) combination.
type HeatmapConfig struct {
	Title       string        `json:"title"`
	XField      string        `json:"xField"`
	YField      string        `json:"yField"`
	FacetField  string        `json:"facetField,omitempty"`
	ColorField  string        `json:"colorField"`
	ColorDomain []float64     `json:"colorDomain"`
	ColorRange  []string      `json:"colorRange"`
	Cells       []HeatmapCell `json:"cells"`
}

// HeatmapCell is one rectangle of the heatmap plus its tooltip payload.
type HeatmapCell struct {
	X            string  `json:"x"`
	Y            string  `json:"y"`
	Facet        string  `json:"facet,omitempty"`
	Accuracy     float64 `json:"accuracy"`
	Actual       float64 `json:"actual"`
	Forecast     float64 `json:"forecast"`
	Disparity    float64 `json:"disparity"`
	AbsDisparity float64 `json:"absDisparity"`
}

// FacetChartConfig defines the weekly actual-vs-forecast chart: one row of
// facets per forecast horizon, bars for actuals colored by accuracy and a
// dashed line for the forecast.
type FacetChartConfig struct {
	Title       string       `json:"title"`
	FacetField  string       `json:"facetField"`
	XField      string       `json:"xField"`
	ColorDomain []float64    `json:"colorDomain"`
	ColorRange  []string     `json:"colorRange"`
	Facets      []ChartFacet `json:"facets"`
}

// ChartFacet is one horizon row of the facet chart, sorted by Order.
type ChartFacet struct {
	Label  string       `json:"label"` // "2 weeks-out"
	Order  int          `json:"order"` // weeks out
	Points []FacetPoint `json:"points"`
}

// FacetPoint is one fiscal week within a facet.
type FacetPoint struct {
	Week     string  `json:"week"`
	Actual   float64 `json:"actual"`
	Forecast float64 `json:"forecast"`
	Accuracy float64 `json:"accuracy"`
}
