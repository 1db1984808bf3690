package chat

import (
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

// Indicator starts a formatting code, like "&c" for red text
const Indicator = '&'

// codes represents formatting codes mapped to terminal attributes
var codes = map[byte]color.Attribute{
	'0': color.FgBlack,
	'1': color.FgBlue,
	'2': color.FgGreen,
	'3': color.FgCyan,
	'4': color.FgRed,
	'5': color.FgMagenta,
	'6': color.FgYellow,
	'7': color.FgWhite,
	'8': color.FgHiBlack,
	'9': color.FgHiBlue,
	'a': color.FgHiGreen,
	'b': color.FgHiCyan,
	'c': color.FgHiRed,
	'd': color.FgHiMagenta,
	'e': color.FgHiYellow,
	'f': color.FgHiWhite,
	'l': color.Bold,
	'm': color.CrossedOut,
	'n': color.Underline,
	'o': color.Italic,
}

// reset represents code dropping every active attribute
const reset = 'r'

// Colorize returns <text> with formatting codes replaced by terminal escape sequences.
//
// Color code resets previous attributes, style codes add to them. If colors are disabled (color.NoColor), codes are
// just removed.
func Colorize(text string) string {
	var sb strings.Builder
	var attrs []color.Attribute
	for _, part := range split(text) {
		if part.code != 0 {
			attrs = apply(attrs, part.code)
			continue
		}
		if len(attrs) == 0 {
			sb.WriteString(part.text)
			continue
		}
		sb.WriteString(color.New(attrs...).Sprint(part.text))
	}
	return sb.String()
}

// Strip returns <text> without formatting codes
func Strip(text string) string {
	return strings.Join(lo.FilterMap(split(text), func(p part, _ int) (string, bool) {
		return p.text, p.code == 0
	}), "")
}

// part represents either a text or a formatting code
type part struct {
	text string
	code byte
}

// split returns <text> split to text parts and formatting codes
func split(text string) (out []part) {
	start := 0
	for i := 0; i+1 < len(text); i++ {
		if text[i] != Indicator || !isCode(lower(text[i+1])) {
			continue
		}
		if i > start {
			out = append(out, part{text: text[start:i]})
		}
		out = append(out, part{code: lower(text[i+1])})
		start = i + 2
		i++
	}
	if start < len(text) {
		out = append(out, part{text: text[start:]})
	}
	return
}

// apply returns active attributes <attrs> changed by formatting <code>
func apply(attrs []color.Attribute, code byte) []color.Attribute {
	if code == reset {
		return nil
	}
	attr := codes[code]
	if attr >= color.FgBlack {
		return []color.Attribute{attr}
	}
	return append(attrs, attr)
}

// isCode returns true if <c> is a known formatting code
func isCode(c byte) bool {
	_, ok := codes[c]
	return ok || c == reset
}

// lower returns lowercase version of ASCII letter <c>
func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
