// Package render is the pipeline façade: it resolves a template from
// the registry, expands it through the engine with merged context,
// runs the style-tag pass for the active output mode, and hands back
// the final string. Structured modes (json, yaml, xml, csv) bypass
// the template pipeline and serialize the data directly.
package render

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/tags"
)

// OutputMode selects the final form of rendered output
type OutputMode int

const (
	// ModeAuto picks ModeTerm or ModeText by terminal detection
	ModeAuto OutputMode = iota
	// ModeTerm applies styles as ANSI escapes
	ModeTerm
	// ModeText strips style tags, keeping plain content
	ModeText
	// ModeTermDebug keeps style tags verbatim for assertions
	ModeTermDebug
	ModeJSON
	ModeYAML
	ModeXML
	ModeCSV
)

var modeNames = map[OutputMode]string{
	ModeAuto:      "auto",
	ModeTerm:      "term",
	ModeText:      "text",
	ModeTermDebug: "term-debug",
	ModeJSON:      "json",
	ModeYAML:      "yaml",
	ModeXML:       "xml",
	ModeCSV:       "csv",
}

func (m OutputMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode parses an output mode name
func ParseMode(s string) (OutputMode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeAuto, errors.Newf(errors.ErrInvalidInput, "unknown output mode %q", s)
}

// Structured reports whether the mode serializes data directly,
// bypassing templates
func (m OutputMode) Structured() bool {
	switch m {
	case ModeJSON, ModeYAML, ModeXML, ModeCSV:
		return true
	default:
		return false
	}
}

// transform maps a non-structured mode onto the tag pass
func (m OutputMode) transform() tags.Transform {
	switch m {
	case ModeTerm:
		return tags.TransformApply
	case ModeTermDebug:
		return tags.TransformKeep
	default:
		return tags.TransformRemove
	}
}

// DetectMode resolves ModeAuto against a sink: a terminal gets ANSI,
// anything else plain text. Non-auto modes pass through.
func DetectMode(m OutputMode, sink io.Writer) OutputMode {
	if m != ModeAuto {
		return m
	}
	if f, ok := sink.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return ModeTerm
		}
	}
	return ModeText
}
