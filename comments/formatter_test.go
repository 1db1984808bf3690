package comments

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestFormatDump(t *testing.T) {
	def := Default.Formatter()
	assert.Exactly(t, "", def.Dump("", Block, nil), "should return empty string for empty comment")
	assert.Exactly(t, "# a\n# b", def.Dump("a\nb", Block, nil), "should prefix every line")
	assert.Exactly(t, "# a\n#\n# b", def.Dump("a\n\nb  ", Block, nil), "should not leave trailing spaces")
	assert.Exactly(t, " # c", def.Dump("c", Side, nil), "should prefix side comment with space")

	blank := BlankLine.Formatter()
	assert.Exactly(t, "\n# a", blank.Dump("a", Block, nil), "should put blank line before block comment")
	assert.Exactly(t, "\n# a\n# b", blank.Dump("a\nb", Side, nil), "should put side comment below the key")

	raw := Raw.Formatter()
	assert.Exactly(t, "# a", raw.Dump("a", Block, nil), "should prefix clean comment")
}

func TestFormatDumpIdempotence(t *testing.T) {
	for _, format := range []Format{Default, Pretty, BlankLine, Raw} {
		f := format.Formatter()
		for _, comment := range []string{"a", "a\nb", "a\n\nb", " indented"} {
			for _, typ := range []Type{Block, Side} {
				once := f.Dump(comment, typ, nil)
				assert.Exactly(t, once, f.Dump(once, typ, nil), "%v: dumping dumped %v comment %q should not change it",
					format, typ, comment)
			}
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	tree := NewKeyTree(DefaultOptions())
	tree.GetOrAdd("first")
	second := tree.GetOrAdd("second")

	for _, format := range []Format{Default, Pretty, BlankLine} {
		f := format.Formatter()
		for _, comment := range []string{"a", "a\nb", "a\n\nb", " indented", "with # inside"} {
			for _, typ := range []Type{Block, Side} {
				raw := f.Dump(comment, typ, second)
				assert.Exactly(t, comment, f.Parse(raw, typ, second), "%v: should read back %v comment %q from %q",
					format, typ, comment, raw)
			}
		}
	}
}

func TestFormatParse(t *testing.T) {
	def := Default.Formatter()
	assert.Exactly(t, "a\nb", def.Parse("#a\n  # b  \n\n", Block, nil), "should strip indicators and trim")
	assert.Exactly(t, "Trailing note", def.Parse("\n# Trailing note", Side, nil), "should trim side comment below")
	assert.Exactly(t, "", def.Parse("", Block, nil))

	raw := Raw.Formatter()
	assert.Exactly(t, "\n  # as is ", raw.Parse("\n  # as is ", Block, nil), "should return raw comment as is")
}

func TestFormatPretty(t *testing.T) {
	tree := NewKeyTree(DefaultOptions())
	first := tree.GetOrAdd("a")
	second := tree.GetOrAdd("b")
	nested := tree.GetOrAdd("b.c")
	f := Pretty.Formatter()

	assert.Exactly(t, "# x", f.Dump("x", Block, first), "should not put blank line before the first key")
	assert.Exactly(t, "\n# x", f.Dump("x", Block, second), "should put blank line before top level key")
	assert.Exactly(t, "# x", f.Dump("x", Block, nested), "should not put blank line before nested key")
	assert.Exactly(t, " # x", f.Dump("x", Side, second), "should not put blank line before side comment")
}

func TestFormatterConfig(t *testing.T) {
	_, err := NewFormatterConfig(Block, "// ", "# ")
	assert.True(t, errors.Is(err, ErrInvalidPrefix), "should reject prefix not starting a comment")
	_, err = NewFormatterConfig(Block, "# ", "\n")
	assert.True(t, errors.Is(err, ErrInvalidPrefix), "should reject prefix ending with line break")
	_, err = NewFormatterConfig(Side, "# ", "# ")
	assert.True(t, errors.Is(err, ErrInvalidPrefix), "should reject side prefix without leading whitespace")

	cfg, err := NewFormatterConfig(Block, "#> ", "#| ")
	assert.NoError(t, err)
	_, err = cfg.WithSuffix("\n", "")
	assert.True(t, errors.Is(err, ErrInvalidPrefix), "should reject suffix with line break")
	cfg, err = cfg.WithSuffix(" <", " |")
	assert.NoError(t, err)

	f := NewCommentFormatter(cfg, defaultSideConfig)
	raw := f.Dump("a\nb", Block, nil)
	assert.Exactly(t, "#> a |\n#| b <", raw, "should use custom prefixes and suffixes")
	assert.Exactly(t, "a\nb", f.Parse(raw, Block, nil), "should strip custom prefixes and suffixes")

	assert.False(t, cfg.WithStripPrefix(false).StripPrefix(), "should return modified copy")
	assert.True(t, cfg.StripPrefix(), "should not modify original config")
	assert.False(t, cfg.WithTrim(false).Trim())
	assert.Exactly(t, "#> ", cfg.PrefixFirst())
	assert.Exactly(t, "#| ", cfg.PrefixMultiline())
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat(" PRETTY ")
	assert.NoError(t, err)
	assert.Exactly(t, Pretty, format)

	format, err = ParseFormat("blank_line")
	assert.NoError(t, err)
	assert.Exactly(t, "blank_line", format.String())

	_, err = ParseFormat("fancy")
	assert.EqualError(t, err, `Unknown comment format "fancy", expected one of [blank_line default pretty raw]`)
}
