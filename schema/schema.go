package schema

// ============================================================================
// SCHEMA — Canonical column contracts for each extract source
// ============================================================================
// Raw extracts arrive with presentation-oriented headers ("Costa Fiscal
// Year", "Fiscal Week No", "kg") that differ between sources. Each Source
// here declares the mapping to canonical snake_case keys plus the kind of
// every column, so Normalize can rename, classify, and coerce in one pass.
//
// Year/week/horizon columns are forced to integer form so composite join
// keys from different sources compare equal — the Joiner never coerces.
// ============================================================================

// Kind classifies a column for normalization.
type Kind string

const (
	// KindDimension is a plain string grouping/filter field.
	KindDimension Kind = "dimension"
	// KindIntDimension is a dimension that must coerce to an integer
	// (fiscal year, fiscal week, weeks-out horizon).
	KindIntDimension Kind = "int_dimension"
	// KindMeasure is a numeric field reduced during aggregation.
	KindMeasure Kind = "measure"
)

// Column maps one raw source header to its canonical key.
type Column struct {
	Canonical string // canonical snake_case key
	Source    string // raw header as it appears in the extract (pre-trim)
	Kind      Kind
}

// Source is the column contract for one extract.
type Source struct {
	Name    string
	Columns []Column
}

// DimensionKeys returns the canonical keys of all dimension columns.
func (s Source) DimensionKeys() []string {
	var keys []string
	for _, c := range s.Columns {
		if c.Kind != KindMeasure {
			keys = append(keys, c.Canonical)
		}
	}
	return keys
}

// MeasureKeys returns the canonical keys of all measure columns.
func (s Source) MeasureKeys() []string {
	var keys []string
	for _, c := range s.Columns {
		if c.Kind == KindMeasure {
			keys = append(keys, c.Canonical)
		}
	}
	return keys
}

// ============================================================================
// STOCK SOURCES
// ============================================================================

// Actuals is the harvested/processed volume extract.
var Actuals = Source{
	Name: "actuals",
	Columns: []Column{
		{Canonical: "plant", Source: "Plant", Kind: KindDimension},
		{Canonical: "product_category", Source: "Product Category", Kind: KindDimension},
		{Canonical: "product_variety", Source: "Product Variety", Kind: KindDimension},
		{Canonical: "location", Source: "Location", Kind: KindDimension},
		{Canonical: "fiscal_year", Source: "Costa Fiscal Year", Kind: KindIntDimension},
		{Canonical: "fiscal_week", Source: "Fiscal Week No", Kind: KindIntDimension},
		{Canonical: "yield_kg", Source: "Yield Kg", Kind: KindMeasure},
	},
}

// ForecastRoster is the forecast roster extract.
var ForecastRoster = Source{
	Name: "forecast_roster",
	Columns: []Column{
		{Canonical: "plant", Source: "Plant", Kind: KindDimension},
		{Canonical: "product_category", Source: "Product Category", Kind: KindDimension},
		{Canonical: "product_variety", Source: "Product Variety", Kind: KindDimension},
		{Canonical: "location", Source: "Location", Kind: KindDimension},
		{Canonical: "fiscal_year", Source: "Fiscal Year", Kind: KindIntDimension},
		{Canonical: "fiscal_week", Source: "Fiscal Week", Kind: KindIntDimension},
		{Canonical: "forecast_kg", Source: "kg", Kind: KindMeasure},
	},
}

// WeekOutSeason is the pre-joined week-out forecast extract with seasons.
var WeekOutSeason = Source{
	Name: "week_out_season",
	Columns: []Column{
		{Canonical: "season", Source: "Season", Kind: KindDimension},
		{Canonical: "plant", Source: "Plant", Kind: KindDimension},
		{Canonical: "product_category", Source: "Product Category", Kind: KindDimension},
		{Canonical: "fiscal_year", Source: "Year", Kind: KindIntDimension},
		{Canonical: "weeks_out", Source: "Weeks_out", Kind: KindIntDimension},
		{Canonical: "fiscal_week", Source: "As at Fiscal Week", Kind: KindIntDimension},
		{Canonical: "actual_kg", Source: "Actual", Kind: KindMeasure},
		{Canonical: "forecast_kg", Source: "Forecast", Kind: KindMeasure},
	},
}

// Wages is the labor cost extract.
var Wages = Source{
	Name: "wages",
	Columns: []Column{
		{Canonical: "fiscal_year", Source: "Costa Fiscal Year", Kind: KindIntDimension},
		{Canonical: "fiscal_week", Source: "Fiscal Week No", Kind: KindIntDimension},
		{Canonical: "pick_date", Source: "Pick Date", Kind: KindDimension},
		{Canonical: "plant", Source: "Plant", Kind: KindDimension},
		{Canonical: "product_category", Source: "Product Category", Kind: KindDimension},
		{Canonical: "product_variety", Source: "Product Variety", Kind: KindDimension},
		{Canonical: "location", Source: "Location", Kind: KindDimension},
		{Canonical: "picker_cost_hr", Source: "Picker Cost/Hr", Kind: KindMeasure},
		{Canonical: "total_cost_hr", Source: "Total Cost/Hr", Kind: KindMeasure},
		{Canonical: "ea_rate", Source: "EA Rate", Kind: KindMeasure},
		{Canonical: "yield_kg", Source: "Yield Kg", Kind: KindMeasure},
	},
}
