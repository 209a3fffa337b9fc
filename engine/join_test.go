package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggRow(dims map[string]string, meas map[string]float64) AggregatedRow {
	return AggregatedRow{Dims: dims, Measures: meas}
}

func TestJoinInnerSemantics(t *testing.T) {
	on := []string{"plant", "fiscal_week"}
	actual := []AggregatedRow{
		aggRow(map[string]string{"plant": "X", "fiscal_week": "1"}, map[string]float64{"yield_kg": 1000}),
		aggRow(map[string]string{"plant": "X", "fiscal_week": "2"}, map[string]float64{"yield_kg": 500}),
		aggRow(map[string]string{"plant": "Z", "fiscal_week": "1"}, map[string]float64{"yield_kg": 50}),
	}
	forecast := []AggregatedRow{
		aggRow(map[string]string{"plant": "X", "fiscal_week": "1"}, map[string]float64{"forecast_kg": 1100}),
		aggRow(map[string]string{"plant": "X", "fiscal_week": "2"}, map[string]float64{"forecast_kg": 450}),
		aggRow(map[string]string{"plant": "Y", "fiscal_week": "1"}, map[string]float64{"forecast_kg": 75}),
	}

	joined := Join(actual, forecast, on)

	require.Len(t, joined, 2, "keys present on only one side are dropped")
	assert.Equal(t, 1000.0, joined[0].Measures["yield_kg"])
	assert.Equal(t, 1100.0, joined[0].Measures["forecast_kg"])
	assert.Equal(t, "X", joined[0].Dims["plant"])
}

func TestJoinCardinalityBound(t *testing.T) {
	on := []string{"plant"}
	actual := []AggregatedRow{
		aggRow(map[string]string{"plant": "X"}, map[string]float64{"yield_kg": 1}),
		aggRow(map[string]string{"plant": "Y"}, map[string]float64{"yield_kg": 2}),
	}
	forecast := []AggregatedRow{
		aggRow(map[string]string{"plant": "X"}, map[string]float64{"forecast_kg": 3}),
		aggRow(map[string]string{"plant": "Y"}, map[string]float64{"forecast_kg": 4}),
	}

	// Equal key sets: |join| == min(|A|, |F|).
	assert.Len(t, Join(actual, forecast, on), 2)

	// Drop one forecast key: |join| < min.
	assert.Len(t, Join(actual, forecast[:1], on), 1)

	// Disjoint key sets: empty.
	other := []AggregatedRow{aggRow(map[string]string{"plant": "Q"}, map[string]float64{"forecast_kg": 9})}
	assert.Empty(t, Join(actual, other, on))
}

func TestJoinDuplicateKeysCrossProduct(t *testing.T) {
	// Should not occur after Aggregate, but duplication must surface rather
	// than be masked.
	on := []string{"plant"}
	actual := []AggregatedRow{
		aggRow(map[string]string{"plant": "X"}, map[string]float64{"yield_kg": 1}),
		aggRow(map[string]string{"plant": "X"}, map[string]float64{"yield_kg": 2}),
	}
	forecast := []AggregatedRow{
		aggRow(map[string]string{"plant": "X"}, map[string]float64{"forecast_kg": 10}),
		aggRow(map[string]string{"plant": "X"}, map[string]float64{"forecast_kg": 20}),
	}

	joined := Join(actual, forecast, on)
	assert.Len(t, joined, 4, "colliding keys enumerate the full cross-product")
}

func TestJoinNoTypeCoercionAcrossKeys(t *testing.T) {
	on := []string{"fiscal_week"}
	actual := []AggregatedRow{
		aggRow(map[string]string{"fiscal_week": "5"}, map[string]float64{"yield_kg": 1}),
	}
	forecast := []AggregatedRow{
		aggRow(map[string]string{"fiscal_week": "05"}, map[string]float64{"forecast_kg": 2}),
	}

	assert.Empty(t, Join(actual, forecast, on),
		"\"5\" and \"05\" are distinct keys; the normalizer must canonicalize before joining")
}

func TestJoinEmptySides(t *testing.T) {
	rows := []AggregatedRow{aggRow(map[string]string{"plant": "X"}, nil)}
	assert.Empty(t, Join(nil, rows, []string{"plant"}))
	assert.Empty(t, Join(rows, nil, []string{"plant"}))
}
