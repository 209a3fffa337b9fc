package engine

// ============================================================================
// JOINER — Inner Join of Aggregated Tables on a Composite Key
// ============================================================================
// One output row per key present on both sides. Keys appearing on only one
// side are dropped: unmatched keys represent data-entry drift or incomplete
// forecast coverage and are excluded rather than surfaced as partial rows.
//
// There is no type coercion across join keys — "5" and "5.0" never match.
// The schema package forces year/week values to canonical integer strings
// before records reach the engine, which is what makes keys comparable.
// ============================================================================

// Join inner-joins two aggregated tables on the given key fields.
//
// Aggregate guarantees one row per key, but Join is defensive: if a key
// collides with multiple rows on one side, the full cross-product for that
// key is enumerated so duplication surfaces instead of being masked.
func Join(actual, forecast []AggregatedRow, on []string) []AggregatedRow {
	if len(actual) == 0 || len(forecast) == 0 {
		return nil
	}

	byKey := make(map[string][]int, len(forecast))
	for i, r := range forecast {
		k := r.KeyOn(on)
		byKey[k] = append(byKey[k], i)
	}

	var joined []AggregatedRow
	for _, a := range actual {
		matches, ok := byKey[a.KeyOn(on)]
		if !ok {
			continue
		}
		for _, fi := range matches {
			joined = append(joined, mergeRows(a, forecast[fi]))
		}
	}
	return joined
}

// mergeRows combines an actual-side and a forecast-side row sharing a key.
// The actual side wins on any colliding dimension or measure name.
func mergeRows(a, f AggregatedRow) AggregatedRow {
	merged := AggregatedRow{
		Dims:     make(map[string]string, len(a.Dims)+len(f.Dims)),
		Measures: make(map[string]float64, len(a.Measures)+len(f.Measures)),
	}
	for k, v := range f.Dims {
		merged.Dims[k] = v
	}
	for k, v := range a.Dims {
		merged.Dims[k] = v
	}
	for k, v := range f.Measures {
		merged.Measures[k] = v
	}
	for k, v := range a.Measures {
		merged.Measures[k] = v
	}
	return merged
}
