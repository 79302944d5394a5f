// Package query filters, orders, and pages slices of arbitrary items.
// Field access is virtualized through an accessor callback, so the
// engine never reflects over item types. Matching is total: an
// operator applied to a value kind it does not support simply does
// not match, it never errors.
package query

import "time"

// Kind discriminates the value union
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindNumber
	KindString
	KindEnum
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Value is what an accessor yields for one field of one item
type Value struct {
	Kind Kind

	bool   bool
	number float64
	str    string
	time   time.Time
}

func None() Value                  { return Value{Kind: KindNone} }
func Bool(b bool) Value            { return Value{Kind: KindBool, bool: b} }
func Number(n float64) Value       { return Value{Kind: KindNumber, number: n} }
func String(s string) Value        { return Value{Kind: KindString, str: s} }
func Enum(discriminant string) Value {
	return Value{Kind: KindEnum, str: discriminant}
}
func Timestamp(t time.Time) Value { return Value{Kind: KindTimestamp, time: t} }

// IsNone reports whether the field was absent
func (v Value) IsNone() bool { return v.Kind == KindNone }

// equal is kind-strict: cross-kind values are never equal
func (v Value) equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNone:
		return true
	case KindBool:
		return v.bool == o.bool
	case KindNumber:
		return v.number == o.number
	case KindString, KindEnum:
		return v.str == o.str
	case KindTimestamp:
		return v.time.Equal(o.time)
	default:
		return false
	}
}

// compare returns -1/0/+1 for orderable kinds; ok=false when the pair
// has no natural order (cross-kind, or an unorderable kind)
func (v Value) compare(o Value) (int, bool) {
	if v.Kind != o.Kind {
		return 0, false
	}
	switch v.Kind {
	case KindNumber:
		switch {
		case v.number < o.number:
			return -1, true
		case v.number > o.number:
			return 1, true
		}
		return 0, true
	case KindString, KindEnum:
		switch {
		case v.str < o.str:
			return -1, true
		case v.str > o.str:
			return 1, true
		}
		return 0, true
	case KindBool:
		switch {
		case !v.bool && o.bool:
			return -1, true
		case v.bool && !o.bool:
			return 1, true
		}
		return 0, true
	case KindTimestamp:
		switch {
		case v.time.Before(o.time):
			return -1, true
		case v.time.After(o.time):
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
