package datatable

import (
	"cmp"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the dynamic type carried by a Value.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindTag
	KindNumber
	KindTime
)

// dateLayout is the display form for time values.
const dateLayout = "2006-01-02"

// Value is a single typed cell value. The zero Value is empty and sorts first.
type Value struct {
	kind Kind
	str  string
	num  float64
	at   time.Time
}

// String wraps free text.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Tag wraps an enumerated value such as a status or rank.
func Tag(s string) Value { return Value{kind: KindTag, str: s} }

// Number wraps a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Int wraps an integer value.
func Int(n int) Value { return Number(float64(n)) }

// Time wraps a timestamp. A zero time yields an empty Value.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{kind: KindTime, at: t}
}

// Kind reports the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value carries nothing.
func (v Value) IsEmpty() bool { return v.kind == KindNone }

// String returns the raw display form of the value.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindTag:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.at.Format(dateLayout)
	default:
		return ""
	}
}

// Compare orders two values relationally. Values of different kinds order by
// kind so a mixed column still sorts deterministically.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return cmp.Compare(v.kind, o.kind)
	}
	switch v.kind {
	case KindString, KindTag:
		return strings.Compare(v.str, o.str)
	case KindNumber:
		return cmp.Compare(v.num, o.num)
	case KindTime:
		return v.at.Compare(o.at)
	default:
		return 0
	}
}
