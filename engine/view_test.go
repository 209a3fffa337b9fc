package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type packRecord struct {
	Plant    string
	Category string
	Variety  string
	Location string
	Year     string
	Week     string
	YieldKg  float64
}

func packAdapter() *DomainAdapter[packRecord] {
	return NewDomainAdapter[packRecord]().
		Dimension(DimPlant, func(p packRecord) string { return p.Plant }).
		Dimension(DimProductCategory, func(p packRecord) string { return p.Category }).
		Dimension(DimProductVariety, func(p packRecord) string { return p.Variety }).
		Dimension(DimLocation, func(p packRecord) string { return p.Location }).
		Dimension(DimFiscalYear, func(p packRecord) string { return p.Year }).
		Dimension(DimFiscalWeek, func(p packRecord) string { return p.Week }).
		Measure(MeasureYieldKg, func(p packRecord) float64 { return p.YieldKg })
}

func TestDomainAdapterBind(t *testing.T) {
	packs := []packRecord{
		{"X", "Blueberry", "Duke", "North", "2024", "1", 600},
		{"X", "Blueberry", "Duke", "North", "2024", "1", 400},
	}
	view := packAdapter().Bind(packs)

	require.Equal(t, 2, view.Len())
	assert.Equal(t, "X", view.Dimension(0, DimPlant))
	assert.Equal(t, 400.0, view.Measure(1, MeasureYieldKg))
	assert.Equal(t, JoinKey, view.DimensionKeys(), "keys come back in registration order")
	assert.Equal(t, []string{MeasureYieldKg}, view.MeasureKeys())

	assert.Equal(t, "", view.Dimension(0, "harvest_crew"), "unregistered dimension reads empty")
	assert.Equal(t, 0.0, view.Measure(0, "crates"), "unregistered measure reads zero")
}

func TestDomainAdapterFeedsPipeline(t *testing.T) {
	// Typed pack records on the actual side, plain records on the forecast
	// side; both shapes meet in the same join.
	actuals := packAdapter().Bind([]packRecord{
		{"X", "Blueberry", "Duke", "North", "2024", "1", 600},
		{"X", "Blueberry", "Duke", "North", "2024", "1", 400},
	})
	forecast := NewSliceView([]Record{
		rec(overviewDims("X", "Blueberry", "1"), map[string]float64{MeasureForecastKg: 1100}),
	})

	result, err := RunAccuracyOverview(actuals, forecast, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, 1000.0, row.Actual)
	assert.Equal(t, 1100.0, row.Forecast)
	assert.Equal(t, 90.0, row.Accuracy)
}
