package engine

import (
	"sort"
	"strconv"
)

// ============================================================================
// CHART BUILDER — Heatmap and Facet Chart Configs from Metric Rows
// ============================================================================
// The engine emits declarative chart configurations; rendering is the
// presentation layer's job.
// ============================================================================

// AccuracyColorDomain and AccuracyColorRange are the standard accuracy
// color ramp: red below 75%, amber to 90%, green above.
var (
	AccuracyColorDomain = []float64{0, 75, 90, 100}
	AccuracyColorRange  = []string{"#f8696b", "#ffeb84", "#63be7b", "#1f9d55"}
)

// BuildAccuracyHeatmap lays metric rows out as a heatmap colored by
// forecast accuracy. facetField may be empty for a single unfaceted grid.
func BuildAccuracyHeatmap(title string, rows []MetricRow, xField, yField, facetField string, opts ...Option) *HeatmapConfig {
	if len(rows) == 0 {
		return nil
	}
	cfg := applyOptions(opts)

	cells := make([]HeatmapCell, 0, len(rows))
	for _, r := range rows {
		cell := HeatmapCell{
			X:            r.Dims[xField],
			Y:            r.Dims[yField],
			Accuracy:     r.Accuracy,
			Actual:       r.Actual,
			Forecast:     r.Forecast,
			Disparity:    r.Disparity,
			AbsDisparity: r.AbsDisparity,
		}
		if facetField != "" {
			cell.Facet = r.Dims[facetField]
		}
		cells = append(cells, cell)
	}

	return &HeatmapConfig{
		Title:       title,
		XField:      xField,
		YField:      yField,
		FacetField:  facetField,
		ColorField:  "accuracy",
		ColorDomain: cfg.ColorDomain,
		ColorRange:  cfg.ColorRange,
		Cells:       cells,
	}
}

// BuildWeekOutFacetChart builds the actual-vs-forecast chart with one facet
// per weeks-out horizon, sorted ascending by horizon.
func BuildWeekOutFacetChart(title string, rows []MetricRow, opts ...Option) *FacetChartConfig {
	if len(rows) == 0 {
		return nil
	}
	cfg := applyOptions(opts)

	byHorizon := make(map[int][]FacetPoint)
	for _, r := range rows {
		w, err := strconv.Atoi(r.Dims[DimWeeksOut])
		if err != nil {
			continue
		}
		byHorizon[w] = append(byHorizon[w], FacetPoint{
			Week:     r.Dims[DimFiscalWeek],
			Actual:   r.Actual,
			Forecast: r.Forecast,
			Accuracy: r.Accuracy,
		})
	}
	if len(byHorizon) == 0 {
		return nil
	}

	horizons := make([]int, 0, len(byHorizon))
	for w := range byHorizon {
		horizons = append(horizons, w)
	}
	sort.Ints(horizons)

	facets := make([]ChartFacet, 0, len(horizons))
	for _, w := range horizons {
		points := byHorizon[w]
		sort.SliceStable(points, func(i, j int) bool {
			return compareDimValues(points[i].Week, points[j].Week) < 0
		})
		facets = append(facets, ChartFacet{
			Label:  HorizonLabel(w),
			Order:  w,
			Points: points,
		})
	}

	return &FacetChartConfig{
		Title:       title,
		FacetField:  DimWeeksOut,
		XField:      DimFiscalWeek,
		ColorDomain: cfg.ColorDomain,
		ColorRange:  cfg.ColorRange,
		Facets:      facets,
	}
}
