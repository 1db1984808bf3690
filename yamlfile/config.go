// Package yamlfile loads and saves YAML configuration documents keeping their comments.
//
// Values are read and written by gopkg.in/yaml.v3, comments are tracked separately by the comments package and
// inserted back into the text emitted by the YAML library.
package yamlfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flight_cfg/comments"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned if document is not valid YAML or it's top level is not a mapping
var ErrInvalidConfig = errors.New("invalid config")

// Options represents settings of a configuration document
type Options struct {
	// Indent is the amount of spaces used to indent nested values
	Indent int
	// PathSeparator splits paths into keys
	PathSeparator string
	// CommentFormat is the policy used to convert comments set through the API
	CommentFormat comments.Format
	// Header is a comment written at the top of the document
	Header string
	// UseComments specifies if comments should be read on load and written on save
	UseComments bool
}

// DefaultOptions returns options with 2 spaces indentation, '.' path separator and default comment format
func DefaultOptions() Options {
	return Options{
		Indent:        2,
		PathSeparator: ".",
		CommentFormat: comments.Default,
		UseComments:   true,
	}
}

// Config represents YAML configuration document with it's comments
type Config struct {
	opts     Options
	root     *Section
	comments *comments.Mapper
}

// New returns empty configuration document
func New(opts Options) *Config {
	c := &Config{opts: opts, root: NewSection()}
	c.comments = comments.NewMapper(comments.NewKeyTree(c.commentOptions()), opts.CommentFormat.Formatter())
	return c
}

// Options returns options of the document
func (c *Config) Options() Options {
	return c.opts
}

// Load replaces content of the document by YAML text read from <r>.
//
// The document is left untouched if reading or parsing fails. Returns error marked as ErrInvalidConfig if the text is
// not valid YAML or it's top level is not a mapping.
func (c *Config) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "Read config")
	}
	root, err := decode(data)
	if err != nil {
		return err
	}
	formatter := c.opts.CommentFormat.Formatter()
	mapper := comments.NewMapper(comments.NewKeyTree(c.commentOptions()), formatter)
	if c.opts.UseComments {
		if mapper, err = comments.Load(bytes.NewReader(data), c.commentOptions(), formatter); err != nil {
			return errors.Wrap(err, "Load comments")
		}
	}
	c.root, c.comments = root, mapper
	return nil
}

// LoadFile replaces content of the document by YAML text of file at <path>
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "Open config file")
	}
	defer f.Close()
	return c.Load(f)
}

// LoadString replaces content of the document by YAML <text>
func (c *Config) LoadString(text string) error {
	return c.Load(strings.NewReader(text))
}

// Save writes YAML text of the document with it's comments to <w>
func (c *Config) Save(w io.Writer) error {
	text, err := c.SaveToString()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return errors.Wrap(err, "Write config")
	}
	return nil
}

// SaveFile writes YAML text of the document to file at <path>, creating parent directories if needed
func (c *Config) SaveFile(path string) error {
	text, err := c.SaveToString()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "Create config directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Create config file")
	}
	defer f.Close()
	if _, err := io.WriteString(f, text); err != nil {
		return errors.Wrap(err, "Write config file")
	}
	return nil
}

// SaveToString returns YAML text of the document with it's comments
func (c *Config) SaveToString() (string, error) {
	values, err := encode(c.root, c.opts.Indent)
	if err != nil {
		return "", err
	}
	if !c.opts.UseComments {
		return values, nil
	}
	return c.comments.Dump(values), nil
}

// Get returns value at <path> and true if it exists
func (c *Config) Get(path string) (any, bool) {
	parent, key, ok := c.lookup(path, false)
	if !ok {
		return nil, false
	}
	return parent.Get(key)
}

// Has returns true if value at <path> exists
func (c *Config) Has(path string) bool {
	_, ok := c.Get(path)
	return ok
}

// Section returns section at <path> and true if value at <path> is a section. Empty <path> returns top level section.
func (c *Config) Section(path string) (*Section, bool) {
	if path == "" {
		return c.root, true
	}
	v, ok := c.Get(path)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Section)
	return s, ok
}

// Set sets <value> at <path>, creating sections along the way. Nil <value> removes the value.
func (c *Config) Set(path string, value any) {
	if value == nil {
		c.Unset(path)
		return
	}
	c.SetWithStyle(path, value, 0)
}

// SetWithStyle sets <value> at <path> written with <style>. Nil <value> is written as null.
func (c *Config) SetWithStyle(path string, value any, style yaml.Style) {
	if parent, key, ok := c.lookup(path, true); ok {
		parent.SetWithStyle(key, value, style)
	}
}

// Unset removes value at <path>
func (c *Config) Unset(path string) {
	if parent, key, ok := c.lookup(path, false); ok {
		parent.Delete(key)
	}
}

// Keys returns keys of section at <path> in order or nil if there is no section at <path>.
//
// If <deep> is true, returns paths of every nested value relative to <path>.
func (c *Config) Keys(path string, deep bool) []string {
	s, ok := c.Section(path)
	if !ok {
		return nil
	}
	if !deep {
		return s.Keys()
	}
	var out []string
	var walk func(s *Section, prefix string)
	walk = func(s *Section, prefix string) {
		for _, key := range s.keys {
			full := lo.Ternary(prefix == "", key, prefix+c.opts.PathSeparator+key)
			out = append(out, full)
			if sub, ok := s.entries[key].value.(*Section); ok {
				walk(sub, full)
			}
		}
	}
	walk(s, "")
	return out
}

// PruneEmpty removes empty sections
func (c *Config) PruneEmpty() {
	c.root.prune()
}

// IsEmpty returns true if the document has no values
func (c *Config) IsEmpty() bool {
	return c.root.Len() == 0
}

// Clone returns deep copy of the document values and options. Comments are shared with the copy.
func (c *Config) Clone() *Config {
	return &Config{opts: c.opts, root: c.root.Clone(), comments: c.comments}
}

// Comments returns comment mapper of the document
func (c *Config) Comments() *comments.Mapper {
	return c.comments
}

// SetHeader sets <header> comment written at the top of the document
func (c *Config) SetHeader(header string) {
	c.opts.Header = header
	c.comments.Tree().SetHeader(header)
}

// SetComment sets <comment> of <typ> type for key at <path>. Empty <comment> removes the comment.
func (c *Config) SetComment(path, comment string, typ comments.Type) {
	c.syncKeys()
	c.comments.SetComment(path, comment, typ)
}

// SetCommentWithFormat sets <comment> of <typ> type for key at <path> using <format> instead of the default one
func (c *Config) SetCommentWithFormat(path, comment string, typ comments.Type, format comments.Format) {
	c.syncKeys()
	c.comments.SetCommentWithFormat(path, comment, typ, format.Formatter())
}

// GetComment returns comment of <typ> type for key at <path> and true if it is set
func (c *Config) GetComment(path string, typ comments.Type) (string, bool) {
	return c.comments.GetComment(path, typ)
}

// SetBlankLine puts a blank line above key at <path>
func (c *Config) SetBlankLine(path string) {
	c.syncKeys()
	c.comments.SetBlankLine(path)
}

// SetFooter sets <comment> written after the last key of the document
func (c *Config) SetFooter(comment string) {
	c.comments.SetFooter(comment)
}

// Footer returns comment written after the last key of the document and true if it is set
func (c *Config) Footer() (string, bool) {
	return c.comments.Footer()
}

// syncKeys adds top level keys missing in the comment tree in the order they are written
func (c *Config) syncKeys() {
	tree := c.comments.Tree()
	for _, key := range c.root.keys {
		tree.GetOrAdd(key)
	}
}

// lookup returns section holding the last key of <path> and the key itself.
//
// If <create> is true, missing sections are created and non-section values along the way are replaced.
func (c *Config) lookup(path string, create bool) (*Section, string, bool) {
	if path == "" {
		return nil, "", false
	}
	keys := []string{path}
	if c.opts.PathSeparator != "" {
		keys = strings.Split(path, c.opts.PathSeparator)
	}
	s := c.root
	for _, key := range keys[:len(keys)-1] {
		v, _ := s.Get(key)
		sub, ok := v.(*Section)
		if !ok {
			if !create {
				return nil, "", false
			}
			sub = NewSection()
			s.put(key, &entry{value: sub})
		}
		s = sub
	}
	return s, keys[len(keys)-1], true
}

// commentOptions returns options of the comment tree
func (c *Config) commentOptions() comments.Options {
	return comments.Options{
		Indent:     c.opts.Indent,
		IndentList: c.opts.Indent,
		Separator:  c.opts.PathSeparator,
		Header:     c.opts.Header,
	}
}
