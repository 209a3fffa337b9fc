package engine

import (
	"errors"
	"log"
	"sort"
	"strconv"
)

// ============================================================================
// VIEW PIPELINE — filter → aggregate → (join) → metrics → builders
// ============================================================================
// One parameterized pipeline instantiated three times with different
// ViewConfigs. The three analysis views differ only in grouping keys,
// measure operations, and which builders run on the output — keeping them
// as configurations of a single pipeline eliminates drift between them.
// ============================================================================

// Canonical dimension field names shared by every view.
const (
	DimPlant           = "plant"
	DimProductCategory = "product_category"
	DimProductVariety  = "product_variety"
	DimLocation        = "location"
	DimFiscalYear      = "fiscal_year"
	DimFiscalWeek      = "fiscal_week"
	DimSeason          = "season"
	DimWeeksOut        = "weeks_out"
	DimPickDate        = "pick_date"
)

// Canonical volume measure keys.
const (
	MeasureActualKg   = "actual_kg"
	MeasureForecastKg = "forecast_kg"
)

// ErrNoCategorySelected is returned by the weekly week-out view when no
// product category filter is set. The original report refuses to render in
// that state and prompts for a category instead.
var ErrNoCategorySelected = errors.New("select a product category to display analysis")

// ViewConfig parameterizes one run of the shared pipeline.
type ViewConfig struct {
	Name            string
	GroupBy         []string      // aggregation key for the display stage
	Measures        map[string]Op // measure → reduction for the display stage
	ActualMeasure   string        // measure treated as actual volume
	ForecastMeasure string        // measure treated as forecast volume
	SortBy          []string      // default display sort
}

// JoinKey is the composite key the accuracy-overview pre-join aggregates
// and joins on: the full dimensional identity of a weekly bucket.
var JoinKey = []string{
	DimPlant, DimProductCategory, DimProductVariety,
	DimLocation, DimFiscalYear, DimFiscalWeek,
}

// AccuracyOverview regroups joined weekly buckets for display by plant,
// category, and week.
var AccuracyOverview = ViewConfig{
	Name:    "accuracy_overview",
	GroupBy: []string{DimPlant, DimProductCategory, DimFiscalWeek},
	Measures: map[string]Op{
		MeasureYieldKg:    OpSum,
		MeasureForecastKg: OpSum,
	},
	ActualMeasure:   MeasureYieldKg,
	ForecastMeasure: MeasureForecastKg,
	SortBy:          []string{DimPlant, DimFiscalWeek},
}

// WeeklyWeekOut buckets the pre-joined week-out extract per season, year,
// horizon, and week.
var WeeklyWeekOut = ViewConfig{
	Name:    "weekly_week_out",
	GroupBy: []string{DimSeason, DimFiscalYear, DimWeeksOut, DimFiscalWeek},
	Measures: map[string]Op{
		MeasureActualKg:   OpSum,
		MeasureForecastKg: OpSum,
	},
	ActualMeasure:   MeasureActualKg,
	ForecastMeasure: MeasureForecastKg,
	SortBy:          []string{DimSeason, DimWeeksOut, DimFiscalWeek},
}

// WagesVariance buckets the wages extract per pick date and plant/category,
// averaging the hourly rates and summing the yield.
var WagesVariance = ViewConfig{
	Name:    "wages_variance",
	GroupBy: []string{DimFiscalYear, DimFiscalWeek, DimPickDate, DimPlant, DimProductCategory},
	Measures: map[string]Op{
		MeasurePickerCostHr: OpMean,
		MeasureTotalCostHr:  OpMean,
		MeasureEARate:       OpMean,
		MeasureYieldKg:      OpSum,
	},
	SortBy: []string{DimFiscalYear, DimFiscalWeek, DimPickDate, DimPlant},
}

// ============================================================================
// SHARED PIPELINE STAGE
// ============================================================================

// runAccuracy is the shared filter → aggregate → metrics stage for the two
// accuracy views.
func runAccuracy(cfg ViewConfig, view RecordView, filters Filters, sortBy []string) []MetricRow {
	filtered := ApplyFilters(view, filters)
	log.Printf("cropsight: %s — %d rows after filtering (from %d)",
		cfg.Name, filtered.Len(), view.Len())

	rows := Aggregate(filtered, cfg.GroupBy, cfg.Measures)
	metricRows := ComputeMetricRows(rows, cfg.ActualMeasure, cfg.ForecastMeasure)
	SortMetricRows(metricRows, sortBy)
	return metricRows
}

// ============================================================================
// VIEW 1 — ACCURACY OVERVIEW
// ============================================================================

// RunAccuracyOverview joins weekly actuals against the forecast roster and
// produces the accuracy overview: metric rows, KPI block, plant × week
// heatmap, and the detail table.
//
// Both inputs must already be normalized to canonical field names; each is
// aggregated to one row per JoinKey before the inner join.
func RunAccuracyOverview(actuals, forecast RecordView, filters Filters, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)
	title := cfg.Title
	if title == "" {
		title = "Weekly Forecast Accuracy"
	}

	actualWeekly := Aggregate(actuals, JoinKey, map[string]Op{MeasureYieldKg: OpSum})
	forecastWeekly := Aggregate(forecast, JoinKey, map[string]Op{MeasureForecastKg: OpSum})
	joined := Join(actualWeekly, forecastWeekly, JoinKey)

	sortBy := cfg.SortBy
	if sortBy == nil {
		sortBy = AccuracyOverview.SortBy
	}
	metricRows := runAccuracy(AccuracyOverview, NewRowView(joined), filters, sortBy)

	kpis := ComputeKPIs(metricRows)
	colors := WithColorScale(cfg.ColorDomain, cfg.ColorRange)
	heatmap := BuildAccuracyHeatmap(title, metricRows, DimFiscalWeek, DimPlant, "", colors)

	return &Result{
		View:    AccuracyOverview.Name,
		Title:   title,
		Rows:    metricRows,
		KPIs:    &kpis,
		Heatmap: heatmap,
		Table:   BuildMetricTable(title, metricRows, AccuracyOverview.GroupBy),
	}, nil
}

// ============================================================================
// VIEW 2 — WEEKLY WEEK-OUT ANALYSIS
// ============================================================================

// RunWeeklyWeekOut analyzes the pre-joined week-out/season extract per
// forecast horizon: metric rows, per-horizon facet chart, season-faceted
// heatmap, and per-horizon KPI blocks.
//
// A product category must be selected; with none the view refuses to run,
// matching the original report's behavior.
func RunWeeklyWeekOut(view RecordView, filters Filters, opts ...Option) (*Result, error) {
	if !filters.Restricts(DimProductCategory) {
		return nil, ErrNoCategorySelected
	}

	cfg := applyOptions(opts)
	title := cfg.Title
	if title == "" {
		title = "Weekly Forecast vs Actual Analysis (Week-Out)"
	}

	sortBy := cfg.SortBy
	if sortBy == nil {
		sortBy = WeeklyWeekOut.SortBy
	}
	metricRows := runAccuracy(WeeklyWeekOut, view, filters, sortBy)

	colors := WithColorScale(cfg.ColorDomain, cfg.ColorRange)
	return &Result{
		View:        WeeklyWeekOut.Name,
		Title:       title,
		Rows:        metricRows,
		HorizonKPIs: computeHorizonKPIs(metricRows),
		FacetChart:  BuildWeekOutFacetChart(title, metricRows, colors),
		Heatmap:     BuildAccuracyHeatmap(title, metricRows, DimFiscalWeek, DimWeeksOut, DimSeason, colors),
		Table:       BuildMetricTable(title, metricRows, WeeklyWeekOut.GroupBy),
	}, nil
}

// computeHorizonKPIs groups metric rows by weeks-out horizon and builds one
// KPI block per horizon, ascending. Horizons with no actual volume are
// suppressed entirely rather than reported as zero.
func computeHorizonKPIs(rows []MetricRow) []HorizonKPI {
	byHorizon := make(map[int][]MetricRow)
	for _, r := range rows {
		w, err := strconv.Atoi(r.Dims[DimWeeksOut])
		if err != nil {
			continue
		}
		byHorizon[w] = append(byHorizon[w], r)
	}

	horizons := make([]int, 0, len(byHorizon))
	for w := range byHorizon {
		horizons = append(horizons, w)
	}
	sort.Ints(horizons)

	var out []HorizonKPI
	for _, w := range horizons {
		kpis := ComputeKPIs(byHorizon[w])
		if kpis.Suppressed() {
			continue
		}
		out = append(out, HorizonKPI{
			WeeksOut: w,
			Label:    HorizonLabel(w),
			KPIs:     kpis,
		})
	}
	return out
}

// ============================================================================
// VIEW 3 — WAGES VARIANCE ANALYSIS
// ============================================================================

// RunWagesVariance buckets the wages extract and scores each bucket's
// hourly cost rates against the EA benchmark rate.
func RunWagesVariance(view RecordView, filters Filters, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)
	title := cfg.Title
	if title == "" {
		title = "Wages Variance vs EA Rate"
	}

	filtered := ApplyFilters(view, filters)
	log.Printf("cropsight: %s — %d rows after filtering (from %d)",
		WagesVariance.Name, filtered.Len(), view.Len())

	rows := Aggregate(filtered, WagesVariance.GroupBy, WagesVariance.Measures)
	sortBy := cfg.SortBy
	if sortBy == nil {
		sortBy = WagesVariance.SortBy
	}
	SortRows(rows, sortBy)

	wageRows := ComputeWageVariance(rows)

	return &Result{
		View:     WagesVariance.Name,
		Title:    title,
		WageRows: wageRows,
		Table:    BuildWageTable(title, wageRows, WagesVariance.GroupBy),
	}, nil
}
