package comments

import (
	"regexp"
	"strconv"
	"strings"

	"flight_cfg/util/parse"

	"github.com/samber/lo"
)

// lineKind represents what a line of YAML text consists of
type lineKind uint8

const (
	blankLine   lineKind = iota // Empty or whitespace only
	commentLine                 // Comment only
	contentLine                 // Keys, list items or values
	textLine                    // Part of a multi-line value or a document marker, never holds keys
)

// line represents classified line of YAML text
type line struct {
	text     string
	kind     lineKind
	indent   int
	nodes    []*Node // Nodes tracked on the line, list elements first
	side     string  // Side comment including whitespace before it
	sideOpen bool    // Side comment is inside of unclosed flow collection or quoted scalar
	opens    bool    // Line starts flow collection or quoted scalar continued on the next lines
	closes   bool    // Line ends flow collection or quoted scalar started on the previous lines
}

// continuation represents multi-line scalar following a key
type continuation struct {
	active bool
	block  bool // Block scalar ('|' or '>'), otherwise multi-line plain scalar
	keep   bool // Trailing blank lines belong to the scalar ('+' chomping indicator)
	indent int  // Lines indented deeper than this belong to the scalar
}

// blockScalarRx represents regex matching block scalar header with optional chomping and indentation indicators
var blockScalarRx = regexp.MustCompile(`^[|>][1-9+-]{0,2}$`)

// docMarkerRx represents regex matching document start and end markers
var docMarkerRx = regexp.MustCompile(`^(---|\.\.\.)(\s|$)`)

// reader classifies lines of YAML text and tracks keys found on them into a KeyTree
type reader struct {
	tree     *KeyTree
	flow     flowState
	cont     continuation
	deferred []string // Blank lines not yet known to belong to a multi-line scalar
}

// newReader returns new reader tracking keys into <tree>
func newReader(tree *KeyTree) *reader {
	return &reader{tree: tree}
}

// feed returns classified lines for <text>.
//
// Blank lines following a multi-line scalar are held back until it is known if the scalar continues, so result may
// contain several lines or none.
func (r *reader) feed(text string) []line {
	indent := parse.GetIndent(text)
	trimmed := strings.TrimSpace(text)

	if r.flow.open() {
		return []line{r.explicit(text, indent, trimmed)}
	}
	if r.cont.active {
		if trimmed == "" {
			r.deferred = append(r.deferred, text)
			return nil
		}
		if indent > r.cont.indent && (r.cont.block || !strings.HasPrefix(trimmed, Indicator)) {
			return append(r.release(textLine), line{text: text, kind: textLine, indent: indent})
		}
		out := r.release(lo.Ternary(r.cont.block && r.cont.keep, textLine, blankLine))
		r.cont = continuation{}
		return append(out, r.classify(text, indent, trimmed))
	}
	return []line{r.classify(text, indent, trimmed)}
}

// flush returns lines held back at the end of input
func (r *reader) flush() []line {
	out := r.release(lo.Ternary(r.cont.block && r.cont.keep, textLine, blankLine))
	r.cont = continuation{}
	return out
}

// release returns deferred blank lines as lines of <kind> kind
func (r *reader) release(kind lineKind) []line {
	out := lo.Map(r.deferred, func(text string, _ int) line {
		return line{text: text, kind: kind}
	})
	r.deferred = nil
	return out
}

// classify returns line outside of any multi-line construct
func (r *reader) classify(text string, indent int, trimmed string) line {
	l := line{text: text, indent: indent}
	switch {
	case trimmed == "":
		l.kind = blankLine
	case strings.HasPrefix(trimmed, Indicator):
		l.kind = commentLine
	case indent == 0 && (docMarkerRx.MatchString(text) || strings.HasPrefix(text, "%")):
		l.kind = textLine
	default:
		l.kind = contentLine
		r.track(&l)
	}
	return l
}

// track adds list elements and key found on <l> to the tree and reads the rest of the line
func (r *reader) track(l *line) {
	text := l.text
	pos := l.indent
	for isDash(text[pos:]) {
		l.nodes = append(l.nodes, r.tree.AddElement(pos))
		pos = skipSpaces(text, pos+1)
	}
	if key, next, ok := splitKey(text, pos); ok {
		l.nodes = append(l.nodes, r.tree.Add(pos, key, false))
		pos = next
	}

	start := skipProperties(text, pos)
	end := len(text)
	if idx, open := r.flow.scan(text, start); idx >= 0 {
		end = idx
		l.side, l.sideOpen = sideComment(text, idx), open
	}
	value := strings.TrimSpace(text[start:end])

	last, ok := lo.Last(l.nodes)
	if ok {
		last.openValue = value == ""
	}
	switch {
	case r.flow.open():
		l.opens = true
	case !ok, value == "":
	case blockScalarRx.MatchString(value):
		r.cont = continuation{active: true, block: true, keep: strings.Contains(value, "+"), indent: last.indent}
	default:
		r.cont = continuation{active: true, indent: last.indent}
	}
}

// explicit returns line inside of flow collection or quoted scalar spanning several lines
func (r *reader) explicit(text string, indent int, trimmed string) line {
	l := line{text: text, kind: textLine, indent: indent}
	if r.flow.quote == 0 && strings.HasPrefix(trimmed, Indicator) {
		l.kind = commentLine
		return l
	}
	if idx, open := r.flow.scan(text, 0); idx >= 0 {
		l.side, l.sideOpen = sideComment(text, idx), open
	}
	l.closes = !r.flow.open()
	return l
}

// sideComment returns comment starting at <idx> in <text> together with whitespace before it
func sideComment(text string, idx int) string {
	return text[len(strings.TrimRight(text[:idx], " \t")):]
}

// flowState tracks unclosed brackets and quotes of a value spanning several lines
type flowState struct {
	depth int
	quote byte
}

// open returns true if flow collection or quoted scalar is not closed yet
func (f *flowState) open() bool {
	return f.depth > 0 || f.quote != 0
}

// scan advances the state through <s> starting from <from> index.
//
// Returns index of comment start or -1 if there is no comment, and true if the comment is inside of unclosed flow
// collection or quoted scalar.
func (f *flowState) scan(s string, from int) (int, bool) {
	var prev byte
	for i := from; i < len(s); i++ {
		c := s[i]
		switch f.quote {
		case '\'':
			if c == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					i++
				} else {
					f.quote = 0
				}
			}
			prev = c
			continue
		case '"':
			if c == '\\' {
				i++
			} else if c == '"' {
				f.quote = 0
			}
			prev = c
			continue
		}
		switch c {
		case ' ', '\t':
			continue
		case '#':
			if i == 0 || s[i-1] == ' ' || s[i-1] == '\t' {
				return i, f.open()
			}
		case '"', '\'':
			if f.tokenStart(prev) {
				f.quote = c
			}
		case '[', '{':
			if f.depth > 0 || prev == 0 {
				f.depth++
			}
		case ']', '}':
			if f.depth > 0 {
				f.depth--
			}
		}
		prev = c
	}
	return -1, f.open()
}

// tokenStart returns true if character after <prev> starts a new scalar
func (f *flowState) tokenStart(prev byte) bool {
	if f.depth == 0 {
		return prev == 0
	}
	return prev == 0 || strings.IndexByte("[{,:", prev) >= 0
}

// isDash returns true if <s> starts with list item indicator
func isDash(s string) bool {
	return s == "-" || strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "-\t")
}

// skipSpaces returns index of the first non-space character in <s> starting from <pos>
func skipSpaces(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

// skipProperties returns index of the value in <s> starting from <pos>, skipping anchors and tags
func skipProperties(s string, pos int) int {
	for {
		pos = skipSpaces(s, pos)
		if pos >= len(s) || (s[pos] != '&' && s[pos] != '!') {
			return pos
		}
		for pos < len(s) && s[pos] != ' ' && s[pos] != '\t' {
			pos++
		}
	}
}

// splitKey returns mapping key starting at <pos> in <s> and index right after the ':' indicator.
//
// Returns false if there is no key at <pos>.
func splitKey(s string, pos int) (string, int, bool) {
	if pos >= len(s) {
		return "", 0, false
	}
	switch s[pos] {
	case '"', '\'':
		end := closingQuote(s, pos)
		if end < 0 {
			return "", 0, false
		}
		colon := skipSpaces(s, end+1)
		if !isMappingIndicator(s, colon) {
			return "", 0, false
		}
		return unquote(s[pos : end+1]), colon + 1, true
	case '[', '{', '|', '>', '&', '!', '*', '?', '@', '`', '%':
		return "", 0, false
	}
	for i := pos; i < len(s); i++ {
		switch {
		case s[i] == '#' && i > pos && (s[i-1] == ' ' || s[i-1] == '\t'):
			return "", 0, false
		case isMappingIndicator(s, i):
			return strings.TrimRight(s[pos:i], " \t"), i + 1, true
		}
	}
	return "", 0, false
}

// isMappingIndicator returns true if <s> has ':' followed by whitespace or line end at <i>
func isMappingIndicator(s string, i int) bool {
	if i >= len(s) || s[i] != ':' {
		return false
	}
	return i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\t'
}

// closingQuote returns index of the quote closing the one at <pos> in <s> or -1
func closingQuote(s string, pos int) int {
	q := s[pos]
	for i := pos + 1; i < len(s); i++ {
		switch {
		case q == '"' && s[i] == '\\':
			i++
		case s[i] == q && q == '\'' && i+1 < len(s) && s[i+1] == '\'':
			i++
		case s[i] == q:
			return i
		}
	}
	return -1
}

// unquote returns content of quoted scalar <s>
func unquote(s string) string {
	if s[0] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	if out, err := strconv.Unquote(s); err == nil {
		return out
	}
	return s[1 : len(s)-1]
}
