package comments

import (
	"io"
	"strings"
)

// Mapper stores comments of a YAML document by path to their keys
type Mapper struct {
	tree      *KeyTree
	formatter *CommentFormatter
}

// NewMapper returns mapper of comments attached to <tree> converted with <formatter>
func NewMapper(tree *KeyTree, formatter *CommentFormatter) *Mapper {
	return &Mapper{tree: tree, formatter: formatter}
}

// Load returns mapper with comments read from YAML text in <r>
func Load(r io.Reader, opts Options, formatter *CommentFormatter) (*Mapper, error) {
	tree, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}
	return NewMapper(tree, formatter), nil
}

// Tree returns key tree of the mapper
func (m *Mapper) Tree() *KeyTree {
	return m.tree
}

// Formatter returns default formatter of the mapper
func (m *Mapper) Formatter() *CommentFormatter {
	return m.formatter
}

// SetFormatter sets default formatter of the mapper
func (m *Mapper) SetFormatter(formatter *CommentFormatter) {
	m.formatter = formatter
}

// SetComment sets <comment> of <typ> type for key at <path>, creating the key if needed.
//
// Empty <comment> removes the comment. Empty <path> addresses the footer.
func (m *Mapper) SetComment(path, comment string, typ Type) {
	m.SetCommentWithFormat(path, comment, typ, m.formatter)
}

// SetCommentWithFormat sets <comment> of <typ> type for key at <path> using <formatter> instead of the default one
func (m *Mapper) SetCommentWithFormat(path, comment string, typ Type, formatter *CommentFormatter) {
	if comment == "" {
		if node := m.tree.Get(path); node != nil {
			node.SetComment("", typ)
		}
		return
	}
	node := m.tree.GetOrAdd(path)
	raw := formatter.Dump(comment, typ, node)
	node.SetComment(raw, typ)
	node.padded = typ == Block && formatter.separates(node) && !strings.HasPrefix(comment, "\n") &&
		strings.HasPrefix(raw, "\n")
}

// GetComment returns comment of <typ> type for key at <path> and true if it is set
func (m *Mapper) GetComment(path string, typ Type) (string, bool) {
	return m.GetCommentWithFormat(path, typ, m.formatter)
}

// GetCommentWithFormat returns comment of <typ> type for key at <path> using <formatter> instead of the default one.
//
// Returns false if the key does not exist, has no comment or it's comment consists of blank lines only.
func (m *Mapper) GetCommentWithFormat(path string, typ Type, formatter *CommentFormatter) (string, bool) {
	node := m.tree.Get(path)
	if node == nil {
		return "", false
	}
	raw, ok := node.Comment(typ)
	if !ok {
		return "", false
	}
	comment := formatter.Parse(raw, typ, node)
	return comment, comment != ""
}

// SetRawComment sets <raw> comment of <typ> type for key at <path> as is. Empty <raw> removes the comment.
func (m *Mapper) SetRawComment(path, raw string, typ Type) {
	if raw == "" {
		if node := m.tree.Get(path); node != nil {
			node.SetComment("", typ)
		}
		return
	}
	m.tree.GetOrAdd(path).SetComment(raw, typ)
}

// GetRawComment returns comment of <typ> type for key at <path> as it is written in the document
func (m *Mapper) GetRawComment(path string, typ Type) (string, bool) {
	node := m.tree.Get(path)
	if node == nil {
		return "", false
	}
	return node.Comment(typ)
}

// SetBlankLine prepends a blank line to the block comment of key at <path>
func (m *Mapper) SetBlankLine(path string) {
	node := m.tree.GetOrAdd(path)
	if block, ok := node.Comment(Block); ok {
		node.set("\n"+block, Block, true)
		return
	}
	node.set("", Block, true)
}

// Footer returns comment after the last key of the document and true if it is set
func (m *Mapper) Footer() (string, bool) {
	return m.GetComment("", Block)
}

// SetFooter sets comment after the last key of the document. Empty <comment> removes it.
func (m *Mapper) SetFooter(comment string) {
	m.SetComment("", comment, Block)
}

// Header returns comment written at the top of the document
func (m *Mapper) Header() string {
	return m.tree.opts.Header
}
