package theme

import (
	_ "embed"
)

//go:embed default.yaml
var defaultTheme []byte

// Default returns the built-in theme. The embedded copy always parses;
// a failure here is a programming error in the shipped asset.
func Default() *Theme {
	t, err := FromYAML("default", defaultTheme)
	if err != nil {
		panic("embedded default theme is invalid: " + err.Error())
	}
	return t
}

// DefaultSource exposes the embedded default theme document so it can
// be registered with a stylesheet registry as an embedded entry.
func DefaultSource() []byte {
	out := make([]byte, len(defaultTheme))
	copy(out, defaultTheme)
	return out
}
