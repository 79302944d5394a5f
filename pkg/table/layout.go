package table

import (
	"strings"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/text"
)

// ResolveWidths assigns each column a width against totalWidth.
//
// Fixed columns take their width as-is. Bounded columns size to the
// widest cell (ANSI-stripped) clamped between their bounds, or start
// at their minimum without data. Flex columns split the remaining
// space in proportion to their weights, the rightmost absorbing the
// integer-division remainder so the sum is exact.
//
// When there is leftover space and no flex column, the rightmost
// Bounded column absorbs the full remainder even past its max; the
// table is asked to fill the width, and that wins over the bound.
func (s *Spec) ResolveWidths(totalWidth int, rows []map[string]interface{}) ([]int, error) {
	if len(s.Columns) == 0 {
		if totalWidth > 0 {
			return []int{}, errors.New(errors.ErrLayoutError, "table spec has no columns")
		}
		return []int{}, nil
	}

	widths := make([]int, len(s.Columns))
	available := totalWidth - s.Overhead()
	if available <= 0 {
		return widths, nil
	}

	type flexCol struct {
		index  int
		weight int
	}
	var flex []flexCol
	lastBounded := -1

	for i, col := range s.Columns {
		switch col.Width.Kind {
		case WidthFixed:
			widths[i] = col.Width.N
			available -= col.Width.N
		case WidthBounded:
			w := col.Width.Min
			if rows != nil {
				dataMax := 0
				for _, row := range rows {
					if cw := text.DisplayWidth(text.Strip(col.CellValue(row))); cw > dataMax {
						dataMax = cw
					}
				}
				w = clamp(dataMax, col.Width.Min, col.Width.Max)
			}
			widths[i] = w
			available -= w
			lastBounded = i
		default:
			flex = append(flex, flexCol{index: i, weight: col.Width.weight()})
		}
	}

	if available < 0 {
		available = 0
	}

	if len(flex) > 0 {
		totalWeight := 0
		for _, f := range flex {
			totalWeight += f.weight
		}
		if totalWeight > 0 {
			assigned := 0
			for _, f := range flex[:len(flex)-1] {
				w := available * f.weight / totalWeight
				widths[f.index] = w
				assigned += w
			}
			widths[flex[len(flex)-1].index] = available - assigned
		}
		return widths, nil
	}

	if available > 0 && lastBounded >= 0 {
		widths[lastBounded] += available
	}
	return widths, nil
}

func clamp(v, min, max int) int {
	if v < min {
		v = min
	}
	if max > 0 && v > max {
		v = max
	}
	return v
}

// fit truncates then pads a cell string to exactly w columns
func (c Column) fit(s string, w int) string {
	e := c.ellipsis()
	switch c.Truncate {
	case TruncateStart:
		s = text.TruncateStart(s, w, e)
	case TruncateMiddle:
		s = text.TruncateMiddle(s, w, e)
	default:
		s = text.TruncateEnd(s, w, e)
	}
	switch c.Align {
	case AlignRight:
		return text.PadLeft(s, w)
	case AlignCenter:
		return text.PadCenter(s, w)
	default:
		return text.PadRight(s, w)
	}
}

// styled wraps a fitted cell in its column style tag, if any. Fitting
// happens first so tag markers never get truncated.
func (c Column) styled(cell string) string {
	if c.Style == "" {
		return cell
	}
	return "[" + c.Style + "]" + cell + "[/" + c.Style + "]"
}

// RenderRow renders one data row against resolved widths
func (s *Spec) RenderRow(widths []int, row map[string]interface{}) string {
	cells := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		cells[i] = col.styled(col.fit(col.CellValue(row), widths[i]))
	}
	return s.RowPrefix + strings.Join(cells, s.ColumnSep) + s.RowSuffix
}

// RenderHeader renders the header row against resolved widths
func (s *Spec) RenderHeader(widths []int) string {
	cells := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		cells[i] = col.fit(col.header(), widths[i])
	}
	return s.RowPrefix + strings.Join(cells, s.ColumnSep) + s.RowSuffix
}

// Render lays out the whole table: optional header then one line per
// row, joined by newlines.
func (s *Spec) Render(totalWidth int, rows []map[string]interface{}, withHeader bool) (string, error) {
	widths, err := s.ResolveWidths(totalWidth, rows)
	if err != nil {
		return "", err
	}

	var lines []string
	if withHeader {
		lines = append(lines, s.RenderHeader(widths))
	}
	for _, row := range rows {
		lines = append(lines, s.RenderRow(widths, row))
	}
	return strings.Join(lines, "\n"), nil
}
