package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/arthur-debert/tela/pkg/table"
	"github.com/arthur-debert/tela/pkg/text"
)

// pongo2 filters are process-global, so register once
var filterOnce sync.Once

func registerFilters() {
	filterOnce.Do(func() {
		must := func(name string, fn pongo2.FilterFunction) {
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				panic(fmt.Sprintf("engine: duplicate filter %q: %v", name, err))
			}
		}
		must("style", filterStyle)
		must("pad_left", filterPad(text.PadLeft))
		must("pad_right", filterPad(text.PadRight))
		must("pad_center", filterPad(text.PadCenter))
		must("truncate_end", filterTruncate(text.TruncateEnd))
		must("truncate_start", filterTruncate(text.TruncateStart))
		must("truncate_middle", filterTruncate(text.TruncateMiddle))
		must("table", filterTable)
	})
}

// filterStyle wraps the input in style markers for the tag pass:
// {{ msg | style:"ok" }} -> [ok]msg[/ok]
func filterStyle(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	name := param.String()
	if name == "" {
		return nil, &pongo2.Error{
			Sender:    "filter:style",
			OrigError: fmt.Errorf("style filter requires a style name"),
		}
	}
	return pongo2.AsValue("[" + name + "]" + in.String() + "[/" + name + "]"), nil
}

func filterPad(pad func(string, int) string) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(pad(in.String(), param.Integer())), nil
	}
}

func filterTruncate(trunc func(string, int, string) string) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(trunc(in.String(), param.Integer(), text.Ellipsis)), nil
	}
}

// filterTable lays out a list of row maps as an aligned table. The
// parameter is a compact column spec, columns comma-separated:
//
//	{{ items | table:"name:12,title:fill,count:6:right" }}
//
// Per column "key:width[:align]" where width is a fixed count, "fill",
// "Nfr" for a fraction, or "min-max" for a bounded column. The total
// width comes from the render context via SetLayoutWidth.
func filterTable(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	fail := func(err error) (*pongo2.Value, *pongo2.Error) {
		return nil, &pongo2.Error{Sender: "filter:table", OrigError: err}
	}

	spec, err := parseTableSpec(param.String())
	if err != nil {
		return fail(err)
	}
	rows, err := toRows(in.Interface())
	if err != nil {
		return fail(err)
	}

	out, err := spec.Render(LayoutWidth(), rows, true)
	if err != nil {
		return fail(err)
	}
	return pongo2.AsSafeValue(out), nil
}

func parseTableSpec(s string) (*table.Spec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("table filter requires a column spec")
	}
	spec := &table.Spec{ColumnSep: "  "}
	for _, raw := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(raw), ":")
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("bad column %q, want key:width[:align]", raw)
		}
		col := table.Column{Key: parts[0]}
		w, err := parseWidth(parts[1])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", parts[0], err)
		}
		col.Width = w
		if len(parts) > 2 {
			switch parts[2] {
			case "left":
				col.Align = table.AlignLeft
			case "right":
				col.Align = table.AlignRight
			case "center":
				col.Align = table.AlignCenter
			default:
				return nil, fmt.Errorf("column %q: unknown alignment %q", parts[0], parts[2])
			}
		}
		spec.Columns = append(spec.Columns, col)
	}
	return spec, nil
}

func parseWidth(s string) (table.Width, error) {
	switch {
	case s == "fill" || s == "*":
		return table.Fill(), nil
	case strings.HasSuffix(s, "fr"):
		n, err := strconv.Atoi(strings.TrimSuffix(s, "fr"))
		if err != nil || n < 1 {
			return table.Width{}, fmt.Errorf("bad fraction weight %q", s)
		}
		return table.Fraction(n), nil
	case strings.Contains(s, "-"):
		lo, hi, _ := strings.Cut(s, "-")
		min, err1 := strconv.Atoi(lo)
		max, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil || min < 0 || max < min {
			return table.Width{}, fmt.Errorf("bad bounded width %q", s)
		}
		return table.Bounded(min, max), nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return table.Width{}, fmt.Errorf("bad width %q", s)
		}
		return table.Fixed(n), nil
	}
}

func toRows(v interface{}) ([]map[string]interface{}, error) {
	switch items := v.(type) {
	case []map[string]interface{}:
		return items, nil
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(items))
		for i, it := range items {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("row %d is %T, want a map", i, it)
			}
			rows = append(rows, m)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("table input is %T, want a list of maps", v)
	}
}
