package engine

import "sort"

// ============================================================================
// FILTERS — Tagged Selections over Dimension Values
// ============================================================================
// A Selection is either unrestricted or an explicit value subset. There is
// no "All" sentinel string mixed into the value domain — a dataset whose
// plant is literally named "All" filters correctly.
//
// Single-pass filter: checks ALL dimension constraints per record in one
// loop and returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// Selection is a tagged filter for one dimension: unrestricted, or a
// subset of allowed values. The zero value is unrestricted.
type Selection struct {
	restricted bool
	subset     map[string]bool
}

// Unrestricted returns a Selection that allows every value.
func Unrestricted() Selection { return Selection{} }

// Of returns a Selection allowing exactly the given values.
// Membership is exact — case- and whitespace-sensitive.
func Of(values ...string) Selection {
	s := Selection{restricted: true, subset: make(map[string]bool, len(values))}
	for _, v := range values {
		s.subset[v] = true
	}
	return s
}

// IsUnrestricted reports whether the selection allows every value.
func (s Selection) IsUnrestricted() bool { return !s.restricted }

// Allows reports whether a value passes the selection.
func (s Selection) Allows(v string) bool {
	if !s.restricted {
		return true
	}
	return s.subset[v]
}

// Values returns the allowed values in sorted order (nil if unrestricted).
func (s Selection) Values() []string {
	if !s.restricted {
		return nil
	}
	vals := make([]string, 0, len(s.subset))
	for v := range s.subset {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return vals
}

// Filters maps dimension fields to selections. Dimensions are AND-combined;
// values within a dimension are OR-combined. A missing entry means the
// dimension is unrestricted.
type Filters map[string]Selection

// Restricts reports whether the filter set constrains the given dimension.
func (f Filters) Restricts(dimension string) bool {
	sel, ok := f[dimension]
	return ok && !sel.IsUnrestricted()
}

// IsEmpty reports whether no dimension is constrained.
func (f Filters) IsEmpty() bool {
	for _, sel := range f {
		if !sel.IsUnrestricted() {
			return false
		}
	}
	return true
}

// ApplyFilters returns a view of records matching all dimension selections.
// An empty filter set is the identity. Filters commute: each selection is
// an independent row-membership predicate.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	active := make(map[string]Selection)
	for dim, sel := range filters {
		if !sel.IsUnrestricted() {
			active[dim] = sel
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, sel := range active {
			if !sel.Allows(view.Dimension(i, dim)) {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}
