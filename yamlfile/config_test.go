package yamlfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flight_cfg/comments"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func loadConfig(t *testing.T, path string, format comments.Format) *Config {
	t.Helper()
	opts := DefaultOptions()
	opts.CommentFormat = format
	c := New(opts)
	assert.NoError(t, c.LoadFile(path), "should load config file")
	return c
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	assert.NoError(t, err)
	return string(b)
}

func saveString(t *testing.T, c *Config) string {
	t.Helper()
	text, err := c.SaveToString()
	assert.NoError(t, err, "should encode config")
	return text
}

func TestRoundTrip(t *testing.T) {
	c := loadConfig(t, "testdata/config.yaml", comments.Raw)
	assert.Exactly(t, readFile(t, "testdata/config.yaml"), saveString(t, c),
		"should write config exactly as it was read")

	c = loadConfig(t, "testdata/config.yaml", comments.Default)
	assert.Exactly(t, readFile(t, "testdata/config.yaml"), saveString(t, c),
		"should not reformat comments loaded from file")
}

func TestRoundTripLists(t *testing.T) {
	for _, format := range []comments.Format{comments.Raw, comments.Default} {
		c := loadConfig(t, "testdata/lists.yaml", format)
		assert.Exactly(t, readFile(t, "testdata/lists.yaml"), saveString(t, c),
			"should write sequence items exactly as they were read")
	}

	c := loadConfig(t, "testdata/lists.yaml", comments.Default)
	ratios, _ := c.Get("ratios")
	assert.Exactly(t, []any{1.0, "quoted", 31, []any{2.5, "x"}}, ratios, "should decode sequence items")
	limits, _ := c.Get("limits")
	assert.Exactly(t, []any{1.0, 15, nil}, limits, "should decode flow sequence items")

	c.Set("ratios", append(ratios.([]any)[:3], 0.5))
	assert.Exactly(t, "# Sampling ratios\nratios:\n  - 1.0 # first\n  - 'quoted'\n  - 0x1F\n  - 0.5\n"+
		"limits: [1.0, 0o17, ~]\n", saveString(t, c), "should keep untouched items as written")

	reloaded := New(DefaultOptions())
	assert.NoError(t, reloaded.LoadString(saveString(t, c)))
	ratios, _ = reloaded.Get("ratios")
	assert.Exactly(t, []any{1.0, "quoted", 31, 0.5}, ratios, "should read back the same values")
}

func TestSetWholeFloat(t *testing.T) {
	c := New(DefaultOptions())
	c.Set("scale", 2.0)
	c.Set("list", []float64{1, 1.5})
	assert.Exactly(t, "scale: 2.0\nlist:\n  - 1.0\n  - 1.5\n", saveString(t, c), "should write floats with a point")

	reloaded := New(DefaultOptions())
	assert.NoError(t, reloaded.LoadString(saveString(t, c)))
	scale, _ := reloaded.Get("scale")
	assert.Exactly(t, 2.0, scale, "should read back float")
	list, _ := reloaded.Get("list")
	assert.Exactly(t, []any{1.0, 1.5}, list, "should read back floats of sequence")
}

func TestKeyStyle(t *testing.T) {
	text := "1: one\n\"a: b\": 1\n'c': 2\nplain: 3\n"
	c := New(DefaultOptions())
	assert.NoError(t, c.LoadString(text))
	assert.Exactly(t, text, saveString(t, c), "should write keys as they were read")

	c.Set("c", 4)
	assert.Exactly(t, "1: one\n\"a: b\": 1\n'c': 4\nplain: 3\n", saveString(t, c),
		"should keep key style of changed value")
}

func TestLoadValues(t *testing.T) {
	c := loadConfig(t, "testdata/config.yaml", comments.Default)

	port, ok := c.Get("server.port")
	assert.True(t, ok)
	assert.Exactly(t, 8080, port, "should decode integer")
	ratio, _ := c.Get("ratio")
	assert.Exactly(t, 1.0, ratio, "should decode float")
	mask, _ := c.Get("mask")
	assert.Exactly(t, 31, mask, "should decode hex integer")
	motd, _ := c.Get("motd")
	assert.Exactly(t, "Hello\n# not a comment\n\nWorld\n", motd, "should decode block scalar")
	quoted, _ := c.Get("quoted")
	assert.Exactly(t, "text # not comment", quoted, "should decode quoted string")

	users, _ := c.Get("users")
	list, ok := users.([]any)
	assert.True(t, ok, "should decode sequence as []any")
	assert.Len(t, list, 2)
	first, ok := list[0].(*Section)
	assert.True(t, ok, "should decode mapping as section")
	roles, _ := first.Get("roles")
	assert.Exactly(t, []any{"admin", "dev"}, roles, "should decode flow sequence")

	assert.Exactly(t, []string{"server", "users", "motd", "ratio", "mask", "quoted"}, c.Keys("", false),
		"should keep key order")
	assert.Exactly(t, []string{"host", "port"}, c.Keys("server", false), "should return keys of section")
	assert.Nil(t, c.Keys("ratio", false), "should return nil for non-section")

	_, ok = c.Get("server.missing")
	assert.False(t, ok, "should return false for missing key")
	_, ok = c.Get("ratio.sub")
	assert.False(t, ok, "should return false for path through scalar")
}

func TestLoadComments(t *testing.T) {
	c := loadConfig(t, "testdata/config.yaml", comments.Default)

	comment, ok := c.GetComment("server", comments.Block)
	assert.True(t, ok)
	assert.Exactly(t, "Application settings\n\nServer section", comment, "should return block comment")
	comment, _ = c.GetComment("server.host", comments.Side)
	assert.Exactly(t, "Bind address", comment, "should return side comment")
	comment, _ = c.GetComment("users[0].name", comments.Side)
	assert.Exactly(t, "Admin", comment, "should return side comment of list item key")
	footer, ok := c.Footer()
	assert.True(t, ok)
	assert.Exactly(t, "Footer line", footer, "should return footer")

	_, ok = c.GetComment("motd", comments.Block)
	assert.False(t, ok, "should not treat block scalar lines as comments")
}

func TestLoadHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.Header = "Application settings"
	c := New(opts)
	assert.NoError(t, c.LoadFile("testdata/config.yaml"))

	comment, _ := c.GetComment("server", comments.Block)
	assert.Exactly(t, "Server section", comment, "should strip header from the first comment")
	assert.Exactly(t, readFile(t, "testdata/config.yaml"), saveString(t, c), "should write header back")
}

func TestLoadInvalid(t *testing.T) {
	c := New(DefaultOptions())
	c.Set("kept", true)

	err := c.LoadString("a: [1, 2\n")
	assert.True(t, errors.Is(err, ErrInvalidConfig), "should return invalid config error for broken YAML")
	err = c.LoadString("- a\n- b\n")
	assert.True(t, errors.Is(err, ErrInvalidConfig), "should return invalid config error for top level list")
	err = c.LoadString("just text\n")
	assert.True(t, errors.Is(err, ErrInvalidConfig), "should return invalid config error for top level scalar")

	kept, ok := c.Get("kept")
	assert.True(t, ok)
	assert.Exactly(t, true, kept, "should keep previous content on error")

	err = c.LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist, "should return error for missing file")
}

func TestLoadEmpty(t *testing.T) {
	c := New(DefaultOptions())
	for _, text := range []string{"", "# only comment\n", "~\n", "---\n"} {
		assert.NoError(t, c.LoadString(text), "should load empty document %q", text)
		assert.True(t, c.IsEmpty(), "should have no values for %q", text)
	}
	assert.Exactly(t, "", saveString(t, New(DefaultOptions())), "should write nothing for empty config")
}

func TestLoadMerge(t *testing.T) {
	c := loadConfig(t, "testdata/merge.yaml", comments.Default)

	a, _ := c.Get("derived.a")
	assert.Exactly(t, 1, a, "should take merged keys")
	b, _ := c.Get("derived.b")
	assert.Exactly(t, 3, b, "should prefer own keys over merged ones")
	assert.Exactly(t, []string{"a", "b"}, c.Keys("alias", false), "should resolve alias")
}

func TestSet(t *testing.T) {
	c := New(DefaultOptions())

	c.Set("a", 1)
	c.Set("b.c", "x")
	c.Set("b.d", []int{1, 2})
	c.Set("e", map[string]any{"z": true, "k": 1.5})
	assert.Exactly(t, "a: 1\nb:\n  c: x\n  d:\n    - 1\n    - 2\ne:\n  k: 1.5\n  z: true\n", saveString(t, c),
		"should create sections and sort map keys")

	c.Set("a.sub", "v")
	sub, _ := c.Get("a.sub")
	assert.Exactly(t, "v", sub, "should replace scalar by section")

	c.Set("b.c", nil)
	assert.False(t, c.Has("b.c"), "should remove value set to nil")
	c.Unset("b.missing")
	c.Unset("missing.key")
	assert.Exactly(t, []string{"d"}, c.Keys("b", false), "should ignore missing keys")

	c.SetWithStyle("q", "text", yaml.DoubleQuotedStyle)
	c.SetWithStyle("f", []any{1, 2}, yaml.FlowStyle)
	c.SetWithStyle("n", nil, 0)
	text := saveString(t, c)
	assert.True(t, strings.HasSuffix(text, "q: \"text\"\nf: [1, 2]\nn: null\n"), "should write values with style")
}

func TestSetKeepsSource(t *testing.T) {
	c := New(DefaultOptions())
	assert.NoError(t, c.LoadString("ratio: 1.0\nmask: 0x1F\nname: 'single'\n"))
	c.Set("mask", 32)
	assert.Exactly(t, "ratio: 1.0\nmask: 32\nname: 'single'\n", saveString(t, c),
		"should keep untouched scalars as written")
}

func TestKeysDeep(t *testing.T) {
	c := New(DefaultOptions())
	c.Set("a.b.c", 1)
	c.Set("a.d", 2)
	c.Set("e", 3)

	assert.Exactly(t, []string{"a", "a.b", "a.b.c", "a.d", "e"}, c.Keys("", true), "should return nested paths")
	assert.Exactly(t, []string{"b", "b.c", "d"}, c.Keys("a", true), "should return paths relative to section")
}

func TestPruneEmpty(t *testing.T) {
	c := New(DefaultOptions())
	c.Set("a.b.c", 1)
	c.Set("x.y.z", 1)
	c.Unset("x.y.z")
	c.PruneEmpty()

	assert.Exactly(t, []string{"a"}, c.Keys("", false), "should remove nested empty sections")
	assert.Exactly(t, []string{"a", "a.b", "a.b.c"}, c.Keys("", true), "should keep sections with values")
}

func TestClone(t *testing.T) {
	c := New(DefaultOptions())
	c.Set("a.b", []any{1})

	clone := c.Clone()
	clone.Set("a.b", 2)
	clone.Set("c", 3)

	b, _ := c.Get("a.b")
	assert.Exactly(t, []any{1}, b, "should not change original values")
	assert.False(t, c.Has("c"), "should not add keys to original")
}

func TestSetComments(t *testing.T) {
	c := New(DefaultOptions())
	c.Set("a", 1)
	c.Set("b.c", "x")
	c.SetComment("a", "First", comments.Block)
	c.SetComment("b.c", "Nested", comments.Side)
	c.SetComment("b", "Two\nlines", comments.Block)
	c.SetFooter("End")

	assert.Exactly(t, "# First\na: 1\n# Two\n# lines\nb:\n  c: x # Nested\n# End\n", saveString(t, c),
		"should write comments")

	c.SetComment("a", "", comments.Block)
	c.SetBlankLine("b")
	assert.Exactly(t, "a: 1\n\n# Two\n# lines\nb:\n  c: x # Nested\n# End\n", saveString(t, c),
		"should remove comment and add blank line")

	c.SetHeader("Generated")
	assert.True(t, strings.HasPrefix(saveString(t, c), "# Generated\n\na: 1\n"), "should write header")
}

func TestSetCommentsPretty(t *testing.T) {
	opts := DefaultOptions()
	opts.CommentFormat = comments.Pretty
	c := New(opts)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.SetComment("c", "C", comments.Block)
	c.SetComment("b", "B", comments.Block)
	c.SetComment("a", "A", comments.Block)

	assert.Exactly(t, "# A\na: 1\n\n# B\nb: 2\n\n# C\nc: 3\n", saveString(t, c),
		"should separate top level comments by blank lines")
	comment, _ := c.GetComment("b", comments.Block)
	assert.Exactly(t, "B", comment, "should read comment without separator")

	c.Unset("a")
	assert.Exactly(t, "# B\nb: 2\n\n# C\nc: 3\n", saveString(t, c),
		"should not start with a blank line after the first key is removed")
}

func TestSetCommentWithFormat(t *testing.T) {
	c := New(DefaultOptions())
	c.Set("a", 1)
	c.Set("b", 2)
	c.SetCommentWithFormat("b", "Below", comments.Side, comments.BlankLine)

	assert.Exactly(t, "a: 1\nb: 2\n# Below\n", saveString(t, c), "should write side comment below the key")
}

func TestWithoutComments(t *testing.T) {
	opts := DefaultOptions()
	opts.UseComments = false
	c := New(opts)
	assert.NoError(t, c.LoadFile("testdata/config.yaml"))

	_, ok := c.GetComment("server", comments.Block)
	assert.False(t, ok, "should not read comments")
	text := saveString(t, c)
	assert.False(t, strings.Contains(text, "# Bind address"), "should not write comments")
	assert.True(t, strings.HasPrefix(text, "server:\n  host: localhost\n"), "should write values")
}

func TestSaveFile(t *testing.T) {
	c := loadConfig(t, "testdata/config.yaml", comments.Raw)
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yml")

	assert.NoError(t, c.SaveFile(path), "should create directories and write file")
	assert.Exactly(t, readFile(t, "testdata/config.yaml"), readFile(t, path), "should write the same text")

	var sb strings.Builder
	assert.NoError(t, c.Save(&sb))
	assert.Exactly(t, readFile(t, path), sb.String(), "should write the same text to writer")
}
