package datatable

import "slices"

// Direction is the order applied by an active sort.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortConfig selects the column rows are ordered by. The zero value means no
// sort is applied.
type SortConfig struct {
	Key       string
	Direction Direction
}

// NoSort is the unsorted configuration.
var NoSort = SortConfig{}

// Active reports whether a sort key is set.
func (s SortConfig) Active() bool { return s.Key != "" }

// For returns the direction applied to key and whether key is the sorted column.
func (s SortConfig) For(key string) (Direction, bool) {
	if !s.Active() || s.Key != key {
		return Asc, false
	}
	return s.Direction, true
}

// NextSort applies a header click on key to the current configuration.
// The same column cycles none, asc, desc, none. A different sortable column
// always starts ascending. Clicks on unknown or non-sortable columns leave
// the configuration untouched.
func NextSort[R any](current SortConfig, cols []Column[R], key string) SortConfig {
	idx := FindColumn(cols, key)
	if idx < 0 || !cols[idx].Sortable {
		return current
	}
	if current.Key != key {
		return SortConfig{Key: key, Direction: Asc}
	}
	if current.Direction == Asc {
		return SortConfig{Key: key, Direction: Desc}
	}
	return NoSort
}

// Sort returns a new slice ordered by cfg. Rows keep their input order when
// cfg is inactive or references a column that cannot be sorted. The sort is
// stable in both directions: descending negates the comparator instead of
// reversing the ascending result, so tied rows never swap.
func Sort[R any](rows []R, cols []Column[R], cfg SortConfig) []R {
	out := slices.Clone(rows)
	if !cfg.Active() {
		return out
	}
	idx := FindColumn(cols, cfg.Key)
	if idx < 0 || !cols[idx].Sortable || cols[idx].Value == nil {
		return out
	}
	value := cols[idx].Value
	sign := 1
	if cfg.Direction == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b R) int {
		return sign * value(a).Compare(value(b))
	})
	return out
}
