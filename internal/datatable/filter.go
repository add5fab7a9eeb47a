package datatable

import (
	"maps"
	"slices"
	"strings"
)

// Facet is a named dimension rows can be multi-select filtered on.
type Facet[R any] struct {
	Key   string
	Label string
	Value func(R) string
}

// Filter combines free-text search over a fixed set of fields with facet
// membership tests.
type Filter[R any] struct {
	Search []func(R) string
	Facets []Facet[R]
}

// FilterState holds the search query and the selected values per facet.
// An empty selection for a facet imposes no restriction. FilterState is a
// value: the mutators return an updated copy and never touch the receiver.
type FilterState struct {
	Query    string
	selected map[string]map[string]struct{}
}

// WithQuery returns a copy of the state with a new search query.
func (s FilterState) WithQuery(q string) FilterState {
	s.Query = q
	return s
}

// Toggle returns a copy of the state with value flipped in facet's selection.
func (s FilterState) Toggle(facet, value string) FilterState {
	next := s.clone()
	set := next.selected[facet]
	if set == nil {
		set = make(map[string]struct{})
		next.selected[facet] = set
	}
	if _, ok := set[value]; ok {
		delete(set, value)
	} else {
		set[value] = struct{}{}
	}
	if len(set) == 0 {
		delete(next.selected, facet)
	}
	return next
}

// Select returns a copy of the state with value added to facet's selection.
func (s FilterState) Select(facet, value string) FilterState {
	if s.IsSelected(facet, value) {
		return s
	}
	return s.Toggle(facet, value)
}

// ClearFacet returns a copy of the state without any selection for facet.
func (s FilterState) ClearFacet(facet string) FilterState {
	next := s.clone()
	delete(next.selected, facet)
	return next
}

// ClearFacets returns a copy of the state with every facet selection removed.
func (s FilterState) ClearFacets() FilterState {
	return FilterState{Query: s.Query}
}

// IsSelected reports whether value is selected on facet.
func (s FilterState) IsSelected(facet, value string) bool {
	_, ok := s.selected[facet][value]
	return ok
}

// Selected returns the sorted selection for facet.
func (s FilterState) Selected(facet string) []string {
	return slices.Sorted(maps.Keys(s.selected[facet]))
}

// ActiveFacets returns the keys of facets with a non-empty selection, sorted.
func (s FilterState) ActiveFacets() []string {
	return slices.Sorted(maps.Keys(s.selected))
}

// IsZero reports whether the state filters nothing.
func (s FilterState) IsZero() bool {
	return strings.TrimSpace(s.Query) == "" && len(s.selected) == 0
}

func (s FilterState) clone() FilterState {
	next := FilterState{Query: s.Query, selected: make(map[string]map[string]struct{}, len(s.selected))}
	for facet, set := range s.selected {
		next.selected[facet] = maps.Clone(set)
	}
	return next
}

// Apply returns the rows matching state in their input order. A row passes
// when the query is blank or is a case-insensitive substring of at least one
// searchable field, and, for every facet with a selection, the row's facet
// value is selected. Selections on unknown facets are ignored.
func (f Filter[R]) Apply(rows []R, state FilterState) []R {
	query := strings.ToLower(strings.TrimSpace(state.Query))

	type activeFacet struct {
		value func(R) string
		set   map[string]struct{}
	}
	var active []activeFacet
	for _, facet := range f.Facets {
		set := state.selected[facet.Key]
		if len(set) == 0 || facet.Value == nil {
			continue
		}
		active = append(active, activeFacet{value: facet.Value, set: set})
	}

	out := make([]R, 0, len(rows))
	for _, row := range rows {
		if query != "" && !f.matchesQuery(row, query) {
			continue
		}
		keep := true
		for _, facet := range active {
			if _, ok := facet.set[facet.value(row)]; !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

func (f Filter[R]) matchesQuery(row R, query string) bool {
	for _, field := range f.Search {
		if strings.Contains(strings.ToLower(field(row)), query) {
			return true
		}
	}
	return false
}

// Options returns the distinct, sorted values of facet across rows. Callers
// pass the unfiltered base rows so the offered options never depend on the
// current selections or query. Blank values are skipped.
func (f Filter[R]) Options(rows []R, facet string) []string {
	var value func(R) string
	for _, fc := range f.Facets {
		if fc.Key == facet {
			value = fc.Value
			break
		}
	}
	if value == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, row := range rows {
		if v := value(row); strings.TrimSpace(v) != "" {
			seen[v] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
