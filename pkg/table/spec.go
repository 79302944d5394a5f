// Package table lays out columnar data against a terminal width.
// Columns declare fixed, bounded, fractional or fill widths; the
// resolver distributes available space and cell rendering truncates
// and pads ANSI-aware.
package table

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tela/pkg/text"
)

// WidthKind discriminates the width strategies
type WidthKind int

const (
	// WidthFixed is an exact column width
	WidthFixed WidthKind = iota
	// WidthBounded sizes to content, clamped between optional bounds
	WidthBounded
	// WidthFraction takes a weighted share of leftover space
	WidthFraction
	// WidthFill is a fraction with weight one
	WidthFill
)

// Width is a column width strategy
type Width struct {
	Kind WidthKind
	// N is the exact width for Fixed and the weight for Fraction
	N int
	// Min and Max bound a Bounded column; Min 0 means no lower bound
	// and Max 0 means unbounded.
	Min int
	Max int
}

// Fixed declares an exact width
func Fixed(n int) Width { return Width{Kind: WidthFixed, N: n} }

// Bounded declares a content-sized width clamped to [min, max];
// max 0 means unbounded.
func Bounded(min, max int) Width { return Width{Kind: WidthBounded, Min: min, Max: max} }

// Fraction declares a flex width with the given weight
func Fraction(weight int) Width { return Width{Kind: WidthFraction, N: weight} }

// Fill declares a flex width with weight one
func Fill() Width { return Width{Kind: WidthFill, N: 1} }

func (w Width) isFlex() bool {
	return w.Kind == WidthFraction || w.Kind == WidthFill
}

func (w Width) weight() int {
	if w.Kind == WidthFill {
		return 1
	}
	return w.N
}

// Align positions cell content within its column
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Truncate selects which part of an overlong cell survives
type Truncate int

const (
	// TruncateEnd keeps the prefix
	TruncateEnd Truncate = iota
	// TruncateStart keeps the suffix
	TruncateStart
	// TruncateMiddle keeps both ends
	TruncateMiddle
)

// Column describes one table column
type Column struct {
	Width    Width
	Align    Align
	Truncate Truncate
	// Ellipsis defaults to "…"
	Ellipsis string
	// NullRepr is shown when Key misses in a row
	NullRepr string
	// Style names a theme style wrapped around each cell
	Style string
	// Key is a dotted path into the row object
	Key string
	// Header is the display title; Key is the fallback
	Header string
}

func (c Column) ellipsis() string {
	if c.Ellipsis == "" {
		return text.Ellipsis
	}
	return c.Ellipsis
}

func (c Column) header() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Key
}

// Spec is the full table description: ordered columns plus static
// row decorations.
type Spec struct {
	Columns   []Column
	ColumnSep string
	RowPrefix string
	RowSuffix string
}

// Overhead returns the fixed decoration width for n columns:
// prefix + suffix + (n-1) separators.
func (s *Spec) Overhead() int {
	n := len(s.Columns)
	if n == 0 {
		return text.DisplayWidth(s.RowPrefix) + text.DisplayWidth(s.RowSuffix)
	}
	return text.DisplayWidth(s.RowPrefix) +
		text.DisplayWidth(s.RowSuffix) +
		(n-1)*text.DisplayWidth(s.ColumnSep)
}

// CellValue extracts the display string for a column from a row by
// walking the dotted key path. Missing keys yield the column's null
// representation.
func (c Column) CellValue(row map[string]interface{}) string {
	if c.Key == "" {
		return c.NullRepr
	}
	var current interface{} = row
	for _, part := range strings.Split(c.Key, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return c.NullRepr
		}
		current, ok = m[part]
		if !ok {
			return c.NullRepr
		}
	}
	if current == nil {
		return c.NullRepr
	}
	if s, ok := current.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", current)
}
