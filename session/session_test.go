package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropsight-org/cropsight/engine"
)

func TestManagerOpenGetClose(t *testing.T) {
	m := NewManager()
	assert.Equal(t, 0, m.Len())

	s := m.Open()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	m.Close(s.ID)
	assert.Equal(t, 0, m.Len())
	_, ok = m.Get(s.ID)
	assert.False(t, ok)
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager()
	a := m.Open()
	b := m.Open()
	require.NotEqual(t, a.ID, b.ID)

	a.SetFilters("accuracy_overview", engine.Filters{engine.DimPlant: engine.Of("P1")})

	assert.True(t, a.Filters("accuracy_overview").Restricts(engine.DimPlant))
	assert.False(t, b.Filters("accuracy_overview").Restricts(engine.DimPlant),
		"one session's filters must never leak into another")
}

func TestFiltersPerView(t *testing.T) {
	m := NewManager()
	s := m.Open()

	s.SetFilters("accuracy_overview", engine.Filters{engine.DimPlant: engine.Of("P1")})
	s.SetFilters("weekly_week_out", engine.Filters{engine.DimProductCategory: engine.Of("Blueberry")})

	assert.True(t, s.Filters("accuracy_overview").Restricts(engine.DimPlant))
	assert.False(t, s.Filters("weekly_week_out").Restricts(engine.DimPlant))
	assert.True(t, s.Filters("weekly_week_out").Restricts(engine.DimProductCategory))

	unset := s.Filters("wages_variance")
	require.NotNil(t, unset)
	assert.True(t, unset.IsEmpty())
}

func TestSetFiltersReplaces(t *testing.T) {
	m := NewManager()
	s := m.Open()

	s.SetFilters("accuracy_overview", engine.Filters{engine.DimPlant: engine.Of("P1")})
	s.SetFilters("accuracy_overview", engine.Filters{engine.DimFiscalYear: engine.Of("2024")})

	f := s.Filters("accuracy_overview")
	assert.False(t, f.Restricts(engine.DimPlant), "SetFilters replaces, it does not merge")
	assert.True(t, f.Restricts(engine.DimFiscalYear))
}
