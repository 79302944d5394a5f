// Package dispatch routes parsed command invocations to handlers and
// feeds their results through the renderer. A routing table maps
// dotted command paths to recipes; a recipe binds a handler, a
// template name, and optional hook chains.
package dispatch

import (
	"encoding/json"

	"github.com/arthur-debert/tela/pkg/errors"
)

// OutputKind discriminates handler results
type OutputKind int

const (
	// OutputRender carries a serializable value for the pipeline
	OutputRender OutputKind = iota
	// OutputBinary carries raw bytes that skip rendering
	OutputBinary
	// OutputSilent produces no output at all
	OutputSilent
)

func (k OutputKind) String() string {
	switch k {
	case OutputRender:
		return "render"
	case OutputBinary:
		return "binary"
	case OutputSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// Output is what a handler returns
type Output struct {
	Kind     OutputKind
	Value    interface{}
	Bytes    []byte
	Filename string
}

// Render wraps a serializable value for template rendering
func Render(value interface{}) Output {
	return Output{Kind: OutputRender, Value: value}
}

// Binary wraps raw bytes with a suggested filename; rendering is
// skipped and the bytes propagate unchanged
func Binary(data []byte, filename string) Output {
	return Output{Kind: OutputBinary, Bytes: data, Filename: filename}
}

// Silent produces no output; hooks still run
func Silent() Output {
	return Output{Kind: OutputSilent}
}

// Rendered is the final result of a dispatch
type Rendered struct {
	Kind     OutputKind
	Text     string
	Bytes    []byte
	Filename string
}

// toMap normalizes a handler value to a JSON-shaped map. Maps pass
// through; anything else takes a json round-trip.
func toMap(v interface{}) (map[string]interface{}, error) {
	if v == nil {
		return map[string]interface{}{}, nil
	}
	if m, ok := v.(map[string]interface{}); ok {
		return m, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRenderError, "handler value is not serializable")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrRenderError, "handler value is not map-shaped")
	}
	return m, nil
}
