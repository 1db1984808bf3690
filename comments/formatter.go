package comments

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Format represents predefined comment formatting policy
type Format uint8

const (
	// Default prefixes comments with "# " and trims surrounding whitespace when reading them
	Default Format = iota
	// Pretty is Default with a blank line before block comments of top level keys, except the first one
	Pretty
	// BlankLine puts a blank line before block comments and writes side comments below the key
	BlankLine
	// Raw keeps comments exactly as they are written
	Raw
)

var formatNames = map[Format]string{
	Default:   "default",
	Pretty:    "pretty",
	BlankLine: "blank_line",
	Raw:       "raw",
}

// String is used to satisfy fmt.Stringer interface
func (f Format) String() string {
	return formatNames[f]
}

// ParseFormat returns comment format by it's <name> (case insensitive)
func ParseFormat(name string) (Format, error) {
	format, ok := lo.FindKey(formatNames, strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		names := lo.Values(formatNames)
		slices.Sort(names)
		return Default, errors.Newf("Unknown comment format %q, expected one of %v", name, names)
	}
	return format, nil
}

// Formatter returns comment formatter implementing the policy
func (f Format) Formatter() *CommentFormatter {
	switch f {
	case Pretty:
		return &CommentFormatter{block: defaultConfig, side: defaultSideConfig, pretty: true}
	case BlankLine:
		return &CommentFormatter{block: blankLineConfig, side: blankLineSideConfig}
	case Raw:
		return &CommentFormatter{block: rawConfig, side: rawSideConfig}
	default:
		return &CommentFormatter{block: defaultConfig, side: defaultSideConfig}
	}
}

var (
	defaultConfig       = lo.Must(NewFormatterConfig(Block, "# ", "# "))
	defaultSideConfig   = lo.Must(NewFormatterConfig(Side, " # ", "# "))
	blankLineConfig     = lo.Must(NewFormatterConfig(Block, "\n# ", "# ")).WithTrim(false)
	blankLineSideConfig = lo.Must(NewFormatterConfig(Side, "\n# ", "# ")).WithTrim(false)
	rawConfig           = defaultConfig.WithStripPrefix(false).WithTrim(false)
	rawSideConfig       = defaultSideConfig.WithStripPrefix(false).WithTrim(false)
)

// FormatterConfig represents settings of comment formatting for one comment type.
//
// It is immutable, With* methods return modified copies.
type FormatterConfig struct {
	prefixFirst     string
	prefixMultiline string
	suffixLast      string
	suffixMultiline string
	stripPrefix     bool
	trim            bool
}

// NewFormatterConfig returns formatter config for comments of <typ> type with <prefixFirst> for the first line and
// <prefixMultiline> for the rest of lines. Prefixes are stripped when comment is read and whitespace is trimmed.
//
// Every prefix should end with a comment line, side comment prefix should also start with whitespace, otherwise
// error marked as ErrInvalidPrefix is returned.
func NewFormatterConfig(typ Type, prefixFirst, prefixMultiline string) (FormatterConfig, error) {
	for _, prefix := range []string{prefixFirst, prefixMultiline} {
		lastLine, _ := lo.Last(strings.Split(prefix, "\n"))
		if !strings.HasPrefix(strings.TrimLeft(lastLine, " \t"), Indicator) {
			return FormatterConfig{}, errors.Mark(errors.Newf("Prefix %q does not start a comment", prefix),
				ErrInvalidPrefix)
		}
	}
	if typ == Side && !startsWithSpace(prefixFirst) {
		return FormatterConfig{}, errors.Mark(errors.Newf("Side comment prefix %q does not start with whitespace",
			prefixFirst), ErrInvalidPrefix)
	}
	return FormatterConfig{
		prefixFirst:     prefixFirst,
		prefixMultiline: prefixMultiline,
		stripPrefix:     true,
		trim:            true,
	}, nil
}

// WithSuffix returns copy of the config with <last> suffix for the last line and <multiline> suffix for the rest of
// lines. Suffixes with line breaks are rejected with error marked as ErrInvalidPrefix.
func (c FormatterConfig) WithSuffix(last, multiline string) (FormatterConfig, error) {
	if strings.Contains(last+multiline, "\n") {
		return c, errors.Mark(errors.Newf("Suffixes %q, %q contain line break", last, multiline), ErrInvalidPrefix)
	}
	c.suffixLast, c.suffixMultiline = last, multiline
	return c, nil
}

// WithStripPrefix returns copy of the config with prefix stripping set to <strip>
func (c FormatterConfig) WithStripPrefix(strip bool) FormatterConfig {
	c.stripPrefix = strip
	return c
}

// WithTrim returns copy of the config with whitespace trimming set to <trim>
func (c FormatterConfig) WithTrim(trim bool) FormatterConfig {
	c.trim = trim
	return c
}

// PrefixFirst returns prefix of the first line
func (c FormatterConfig) PrefixFirst() string {
	return c.prefixFirst
}

// PrefixMultiline returns prefix of the lines after the first one
func (c FormatterConfig) PrefixMultiline() string {
	return c.prefixMultiline
}

// StripPrefix returns true if prefixes are removed when reading comments
func (c FormatterConfig) StripPrefix() bool {
	return c.stripPrefix
}

// Trim returns true if whitespace is trimmed
func (c FormatterConfig) Trim() bool {
	return c.trim
}

// CommentFormatter converts comments between the text users set (clean) and the text stored in the document (raw)
type CommentFormatter struct {
	block  FormatterConfig
	side   FormatterConfig
	pretty bool
}

// NewCommentFormatter returns formatter using <block> config for block comments and <side> config for side comments
func NewCommentFormatter(block, side FormatterConfig) *CommentFormatter {
	return &CommentFormatter{block: block, side: side}
}

// Config returns formatter config used for comments of <typ> type
func (f *CommentFormatter) Config(typ Type) FormatterConfig {
	return lo.Ternary(typ == Side, f.side, f.block)
}

// Dump returns raw form of clean <comment> of <typ> type for <node>.
//
// Comments already consisting of comment and blank lines only are returned as is.
func (f *CommentFormatter) Dump(comment string, typ Type, node *Node) string {
	if comment == "" {
		return ""
	}
	lines := strings.Split(comment, "\n")
	if lo.EveryBy(lines, isRawLine) {
		if typ == Side && !startsWithSpace(comment) {
			return " " + comment
		}
		return comment
	}

	cfg := f.Config(typ)
	prefixFirst := cfg.prefixFirst
	if typ == Block && f.separates(node) {
		prefixFirst = "\n" + prefixFirst
	}
	out := lo.Map(lines, func(s string, i int) string {
		prefix := lo.Ternary(i == 0, prefixFirst, cfg.prefixMultiline)
		if strings.TrimSpace(s) == "" {
			s = strings.TrimRight(prefix, " \t")
		} else {
			s = prefix + s
		}
		if cfg.trim {
			s = strings.TrimRight(s, " \t")
		}
		return s + lo.Ternary(i == len(lines)-1, cfg.suffixLast, cfg.suffixMultiline)
	})
	return strings.Join(out, "\n")
}

// separates returns true if block comments of <node> are separated from the previous key by a blank line
func (f *CommentFormatter) separates(node *Node) bool {
	return f.pretty && node != nil && node.parent != nil && node.parent.IsRoot() && !node.IsFirstNode()
}

// Parse returns clean form of <raw> comment of <typ> type for <node>
func (f *CommentFormatter) Parse(raw string, typ Type, node *Node) string {
	cfg := f.Config(typ)
	if !cfg.stripPrefix || raw == "" {
		return raw
	}
	lines := strings.Split(raw, "\n")
	// Line breaks added by the first line prefix
	breaks := strings.Count(cfg.prefixFirst, "\n")
	for breaks > 0 && len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
		breaks--
	}

	for i, s := range lines {
		s = strings.TrimLeft(s, " \t")
		if suffix := lo.Ternary(i == len(lines)-1, cfg.suffixLast, cfg.suffixMultiline); suffix != "" {
			s = strings.TrimSuffix(s, suffix)
		}
		prefix := strings.TrimLeft(lo.Ternary(i == 0, cfg.prefixFirst, cfg.prefixMultiline), " \t\n")
		switch {
		case strings.HasPrefix(s, prefix):
			s = strings.TrimPrefix(s, prefix)
		case strings.HasPrefix(s, strings.TrimRight(prefix, " \t")):
			s = strings.TrimPrefix(s, strings.TrimRight(prefix, " \t"))
		default:
			s = strings.TrimPrefix(strings.TrimPrefix(s, Indicator), " ")
		}
		if cfg.trim {
			s = strings.TrimRight(s, " \t")
		}
		lines[i] = s
	}

	if cfg.trim {
		lines = lo.DropWhile(lines, isBlank)
		lines = lo.DropRightWhile(lines, isBlank)
	}
	return strings.Join(lines, "\n")
}

// isRawLine returns true if <s> is a blank or comment line
func isRawLine(s string) bool {
	s = strings.TrimLeft(s, " \t")
	return s == "" || strings.HasPrefix(s, Indicator)
}

// isBlank returns true if <s> consists of whitespace only
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// startsWithSpace returns true if <s> starts with space, tab or line break
func startsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\n", rune(s[0]))
}
