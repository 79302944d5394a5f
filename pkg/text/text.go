// Package text provides ANSI-aware string measurement, truncation and
// padding. Escape sequences measure as zero columns and survive on the
// retained side of any truncation.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Ellipsis is the default truncation marker
const Ellipsis = "…"

// DisplayWidth returns the number of terminal columns the string
// occupies. Escape sequences count as zero, typical characters as one,
// CJK and wide emoji as two.
func DisplayWidth(s string) int {
	return ansi.StringWidth(s)
}

// Strip removes all ANSI escape sequences
func Strip(s string) string {
	return ansi.Strip(s)
}

// token is either a run of printable text or a single escape sequence
type token struct {
	text  string
	isSeq bool
}

// tokenize splits a string into printable runs and escape sequences.
// It understands CSI (ESC[...x), OSC (ESC]...BEL / ESC]...ST) and
// two-byte escapes, which covers everything a style pass emits.
func tokenize(s string) []token {
	var tokens []token
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			tokens = append(tokens, token{text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != 0x1b {
			_, size := utf8.DecodeRuneInString(s[i:])
			plain.WriteString(s[i : i+size])
			i += size
			continue
		}
		flush()
		seq := scanEscape(s[i:])
		tokens = append(tokens, token{text: seq, isSeq: true})
		i += len(seq)
	}
	flush()
	return tokens
}

// scanEscape returns the escape sequence starting at s[0] == ESC
func scanEscape(s string) string {
	if len(s) < 2 {
		return s
	}
	switch s[1] {
	case '[':
		// CSI: parameters then a final byte in @-~
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return s[:i+1]
			}
		}
		return s
	case ']':
		// OSC: terminated by BEL or ESC-backslash
		for i := 2; i < len(s); i++ {
			if s[i] == 0x07 {
				return s[:i+1]
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return s[:i+2]
			}
		}
		return s
	default:
		return s[:2]
	}
}

// TruncateEnd shortens s to at most w display columns, keeping the
// prefix and appending the ellipsis. Strings already within w pass
// through unchanged. A wide character is never split.
func TruncateEnd(s string, w int, ellipsis string) string {
	if DisplayWidth(s) <= w {
		return s
	}
	ew := DisplayWidth(ellipsis)
	if w < ew {
		return clipRunes(ellipsis, w)
	}
	budget := w - ew

	var out strings.Builder
	used := 0
	for _, tok := range tokenize(s) {
		if tok.isSeq {
			out.WriteString(tok.text)
			continue
		}
		for _, r := range tok.text {
			rw := runewidth.RuneWidth(r)
			if used+rw > budget {
				out.WriteString(ellipsis)
				return out.String()
			}
			out.WriteRune(r)
			used += rw
		}
	}
	out.WriteString(ellipsis)
	return out.String()
}

// TruncateStart shortens s to at most w display columns, keeping the
// suffix and prepending the ellipsis.
func TruncateStart(s string, w int, ellipsis string) string {
	if DisplayWidth(s) <= w {
		return s
	}
	ew := DisplayWidth(ellipsis)
	if w < ew {
		return clipRunes(ellipsis, w)
	}
	budget := w - ew

	tokens := tokenize(s)
	kept := make([]string, 0, len(tokens))
	used := 0
	full := false
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if tok.isSeq {
			if !full {
				kept = append(kept, tok.text)
			}
			continue
		}
		runes := []rune(tok.text)
		var piece []rune
		for j := len(runes) - 1; j >= 0; j-- {
			rw := runewidth.RuneWidth(runes[j])
			if used+rw > budget {
				full = true
				break
			}
			piece = append([]rune{runes[j]}, piece...)
			used += rw
		}
		if len(piece) > 0 {
			kept = append(kept, string(piece))
		}
		if full {
			break
		}
	}

	var out strings.Builder
	out.WriteString(ellipsis)
	for i := len(kept) - 1; i >= 0; i-- {
		out.WriteString(kept[i])
	}
	return out.String()
}

// TruncateMiddle shortens s to at most w display columns, keeping both
// ends with the ellipsis in between. The left side gets the extra
// column when the budget is odd.
func TruncateMiddle(s string, w int, ellipsis string) string {
	if DisplayWidth(s) <= w {
		return s
	}
	ew := DisplayWidth(ellipsis)
	if w < ew {
		return clipRunes(ellipsis, w)
	}
	budget := w - ew
	left := (budget + 1) / 2
	right := budget - left

	prefix := TruncateEnd(s, left, "")
	suffix := TruncateStart(s, right, "")
	return prefix + ellipsis + suffix
}

// clipRunes emits a prefix of s no wider than w columns, used when the
// target width cannot even fit the ellipsis.
func clipRunes(s string, w int) string {
	var out strings.Builder
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > w {
			break
		}
		out.WriteRune(r)
		used += rw
	}
	return out.String()
}

// PadRight pads s with spaces on the right up to w display columns.
// Wider strings pass through unchanged.
func PadRight(s string, w int) string {
	gap := w - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// PadLeft pads s with spaces on the left up to w display columns
func PadLeft(s string, w int) string {
	gap := w - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}

// PadCenter pads s on both sides up to w display columns, biasing the
// extra space to the right.
func PadCenter(s string, w int) string {
	gap := w - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	right := gap - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
