package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMetricTable(t *testing.T) {
	rows := []MetricRow{
		{
			Dims:     map[string]string{DimPlant: "X", DimFiscalWeek: "1"},
			Actual:   1000, Forecast: 1100, Disparity: 100, AbsDisparity: 100, Accuracy: 90,
		},
		{
			Dims:     map[string]string{DimPlant: "Y", DimFiscalWeek: "1"},
			Actual:   2500, Forecast: 2500, Disparity: 0, AbsDisparity: 0, Accuracy: 100,
		},
	}

	table := BuildMetricTable("Weekly Forecast Accuracy", rows, []string{DimPlant, DimFiscalWeek})

	require.Len(t, table.Columns, 7)
	assert.Equal(t, "Plant", table.Columns[0].Label)
	assert.Equal(t, "Fiscal Week", table.Columns[1].Label)
	assert.Equal(t, "percent", table.Columns[6].Type)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"X", "1", "1,000", "1,100", "100", "100", "90.0%"}, table.Rows[0])

	require.NotNil(t, table.Summary)
	assert.Equal(t, "Total (2 buckets)", table.Summary.Label)
	assert.Equal(t, "3,500", table.Summary.Values["actual"])
	assert.Equal(t, "100", table.Summary.Values["abs_disparity"])
}

func TestBuildWageTableUndefinedPct(t *testing.T) {
	rows := []WageMetricRow{
		{
			Dims:              map[string]string{DimPlant: "X"},
			PickerCostHr:      28.5, TotalCostHr: 32, EARate: 0, YieldKg: 500,
			PickerVariance:    28.5, TotalVariance: 32,
			PickerVariancePct: Undefined(), TotalVariancePct: Undefined(),
		},
	}

	table := BuildWageTable("Wages Variance vs EA Rate", rows, []string{DimPlant})
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "+28.50", row[5])
	assert.Equal(t, "n/a", row[7], "undefined percentage renders as n/a, never a number")
	assert.Equal(t, "n/a", row[8])
	assert.Equal(t, "500", table.Summary.Values["yield_kg"])
	assert.Equal(t, "28.50", table.Summary.Values["picker_cost_hr"], "summary carries the mean rates")
}

func TestBuildAccuracyHeatmap(t *testing.T) {
	rows := []MetricRow{
		{
			Dims:     map[string]string{DimPlant: "X", DimFiscalWeek: "1", DimSeason: "Summer"},
			Actual:   1000, Forecast: 1100, Disparity: 100, AbsDisparity: 100, Accuracy: 90,
		},
	}
	hm := BuildAccuracyHeatmap("t", rows, DimFiscalWeek, DimPlant, DimSeason)
	require.NotNil(t, hm)
	assert.Equal(t, AccuracyColorDomain, hm.ColorDomain)
	assert.Equal(t, AccuracyColorRange, hm.ColorRange)

	require.Len(t, hm.Cells, 1)
	cell := hm.Cells[0]
	assert.Equal(t, "1", cell.X)
	assert.Equal(t, "X", cell.Y)
	assert.Equal(t, "Summer", cell.Facet)
	assert.Equal(t, 90.0, cell.Accuracy)

	assert.Nil(t, BuildAccuracyHeatmap("t", nil, DimFiscalWeek, DimPlant, ""))
}

func TestBuildWeekOutFacetChartOrdering(t *testing.T) {
	mk := func(weeksOut, week string) MetricRow {
		return MetricRow{
			Dims:   map[string]string{DimWeeksOut: weeksOut, DimFiscalWeek: week},
			Actual: 100, Forecast: 100, Accuracy: 100,
		}
	}
	rows := []MetricRow{mk("4", "21"), mk("1", "21"), mk("1", "9"), mk("2", "20")}

	chart := BuildWeekOutFacetChart("t", rows)
	require.NotNil(t, chart)
	require.Len(t, chart.Facets, 3)

	assert.Equal(t, "1 week-out", chart.Facets[0].Label)
	assert.Equal(t, "2 weeks-out", chart.Facets[1].Label)
	assert.Equal(t, "4 weeks-out", chart.Facets[2].Label)

	// Weeks inside a facet sort numerically: 9 before 21.
	require.Len(t, chart.Facets[0].Points, 2)
	assert.Equal(t, "9", chart.Facets[0].Points[0].Week)
	assert.Equal(t, "21", chart.Facets[0].Points[1].Week)
}

func TestFormatKg(t *testing.T) {
	assert.Equal(t, "0", FormatKg(0))
	assert.Equal(t, "999", FormatKg(999.2))
	assert.Equal(t, "1,000", FormatKg(999.6))
	assert.Equal(t, "1,234,567", FormatKg(1234567))
	assert.Equal(t, "-1,200", FormatKg(-1200.4))
}

func TestLabelForField(t *testing.T) {
	assert.Equal(t, "Product Category", LabelForField("product_category"))
	assert.Equal(t, "Plant", LabelForField("plant"))
}

func TestWithColorScale(t *testing.T) {
	hm := BuildAccuracyHeatmap("t", []MetricRow{{Dims: map[string]string{}}}, DimFiscalWeek, DimPlant, "",
		WithColorScale([]float64{0, 50, 100}, []string{"#000", "#888", "#fff"}))
	require.NotNil(t, hm)
	assert.Equal(t, []float64{0, 50, 100}, hm.ColorDomain)
	assert.Equal(t, []string{"#000", "#888", "#fff"}, hm.ColorRange)
}
