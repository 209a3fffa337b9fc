package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wageBucket(picker, total, ea, yield float64) AggregatedRow {
	return AggregatedRow{
		Dims: map[string]string{"plant": "X", "pick_date": "2024-06-03"},
		Measures: map[string]float64{
			MeasurePickerCostHr: picker,
			MeasureTotalCostHr:  total,
			MeasureEARate:       ea,
			MeasureYieldKg:      yield,
		},
	}
}

func TestComputeWageVariance(t *testing.T) {
	rows := ComputeWageVariance([]AggregatedRow{wageBucket(28.50, 32.00, 25.00, 1200)})
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, 28.50, got.PickerCostHr)
	assert.Equal(t, 32.00, got.TotalCostHr)
	assert.Equal(t, 25.00, got.EARate)
	assert.Equal(t, 1200.0, got.YieldKg)

	assert.Equal(t, 3.50, got.PickerVariance)
	assert.Equal(t, 7.00, got.TotalVariance)

	require.True(t, got.PickerVariancePct.Defined)
	assert.Equal(t, 14.0, got.PickerVariancePct.Value)
	require.True(t, got.TotalVariancePct.Defined)
	assert.Equal(t, 28.0, got.TotalVariancePct.Value)
}

func TestComputeWageVarianceBelowBenchmark(t *testing.T) {
	rows := ComputeWageVariance([]AggregatedRow{wageBucket(22.00, 24.00, 25.00, 800)})
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, -3.00, got.PickerVariance)
	assert.Equal(t, -1.00, got.TotalVariance)
	require.True(t, got.PickerVariancePct.Defined)
	assert.Equal(t, -12.0, got.PickerVariancePct.Value)
}

func TestComputeWageVarianceZeroBenchmark(t *testing.T) {
	rows := ComputeWageVariance([]AggregatedRow{wageBucket(28.50, 32.00, 0, 500)})
	require.Len(t, rows, 1)

	got := rows[0]
	// Absolute variance still holds against a zero benchmark.
	assert.Equal(t, 28.50, got.PickerVariance)
	assert.Equal(t, 32.00, got.TotalVariance)

	// Percentage variance cannot, and must not collapse to zero.
	assert.False(t, got.PickerVariancePct.Defined)
	assert.False(t, got.TotalVariancePct.Defined)
}

func TestComputeWageVarianceDecimalExactness(t *testing.T) {
	// 0.1 + 0.2 style drift must not leak into the variance column.
	rows := ComputeWageVariance([]AggregatedRow{wageBucket(25.30, 25.10, 25.00, 100)})
	require.Len(t, rows, 1)

	assert.Equal(t, 0.30, rows[0].PickerVariance)
	assert.Equal(t, 0.10, rows[0].TotalVariance)
}

func TestComputeWageVarianceEmpty(t *testing.T) {
	assert.Empty(t, ComputeWageVariance(nil))
}
