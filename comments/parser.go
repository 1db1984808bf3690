package comments

import (
	"io"
	"strings"

	"flight_cfg/util/scan"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// parser attaches comments found in YAML text to the nodes of a KeyTree
type parser struct {
	tree       *KeyTree
	rd         *reader
	header     []string
	headerDone bool

	pending []string // Comment and blank lines not yet attached to any node
	current *Node    // Last node with content on it's line
	started bool     // Comment lines were found after the current node

	owner *Node    // Owner of a flow collection or quoted scalar spanning several lines
	acc   []string // Comments found inside of the construct owned by <owner>
}

// Parse reads YAML text from <r> and returns key tree with raw comments attached to the keys.
//
// Block comment is made of comment and blank lines above the key, side comment is the comment on the same line after
// the value, followed by the comments below the key if they are indented to the key's level and end the section.
// Comments after the last key form the footer, which is stored as block comment of the root node.
//
// Header from <opts> is stripped from the comment of the first key.
//
// Returns error marked as ErrRead if <r> could not be read, no partial tree is returned in that case.
func Parse(r io.Reader, opts Options) (*KeyTree, error) {
	p := parser{tree: NewKeyTree(opts), header: headerLines(opts.Header)}
	p.rd = newReader(p.tree)

	sc := scan.New(r)
	for sc.Lines() {
		lo.ForEach(p.rd.feed(sc.Line), p.handle)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "Parse comments"), ErrRead)
	}
	lo.ForEach(p.rd.flush(), p.handle)
	p.finish()

	return p.tree, nil
}

// handle processes line <l>
func (p *parser) handle(l line, _ int) {
	if p.owner != nil {
		p.explicit(l)
		return
	}
	switch l.kind {
	case blankLine:
		p.pending = append(p.pending, "")
	case commentLine:
		p.sideCommentBelow(l.indent)
		p.pending = append(p.pending, strings.TrimSpace(l.text))
		p.started = p.current != nil
	case contentLine:
		p.content(l)
	}
}

// content attaches pending comments and side comment to nodes of line <l>
func (p *parser) content(l line) {
	p.sideCommentBelow(l.indent)
	first, ok := lo.First(l.nodes)
	if !ok {
		return
	}
	last, _ := lo.Last(l.nodes)
	if raw, ok := p.takePending(); ok {
		first.set(raw, Block, true)
	}
	if l.opens {
		p.owner, p.acc = last, nil
		if l.side != "" {
			p.acc = append(p.acc, strings.TrimSpace(l.side))
		}
		return
	}
	if l.side != "" {
		last.set(l.side, Side, true)
	}
	p.current, p.started = last, false
}

// explicit processes line <l> inside of flow collection or quoted scalar spanning several lines
func (p *parser) explicit(l line) {
	switch l.kind {
	case commentLine:
		p.acc = append(p.acc, strings.TrimSpace(l.text))
	case textLine:
		if l.side != "" && l.sideOpen {
			p.acc = append(p.acc, strings.TrimSpace(l.side))
		}
		if !l.closes {
			return
		}
		if l.side != "" && !l.sideOpen {
			p.owner.set(l.side, Side, true)
		}
		p.closeExplicit()
	}
}

// closeExplicit appends comments found inside of the construct to the block comment of it's owner
func (p *parser) closeExplicit() {
	if len(p.acc) > 0 {
		lines := p.acc
		if block, ok := p.owner.Comment(Block); ok {
			lines = append([]string{block}, lines...)
		}
		p.owner.set(strings.Join(lines, "\n"), Block, true)
	}
	p.current, p.started = p.owner, false
	p.owner, p.acc = nil, nil
}

// sideCommentBelow moves pending comments to the side comment of the current node if line at <indent> ends it's
// section
func (p *parser) sideCommentBelow(indent int) {
	if p.current == nil || indent >= p.current.indent {
		return
	}
	if p.started {
		n := len(p.pending)
		for n > 0 && p.pending[n-1] == "" {
			n--
		}
		side, _ := p.current.Comment(Side)
		p.current.set(side+"\n"+strings.Join(p.pending[:n], "\n"), Side, true)
		p.pending = p.pending[n:]
	}
	p.current, p.started = nil, false
}

// finish attaches comments left at the end of input to the root node
func (p *parser) finish() {
	p.sideCommentBelow(0)
	if p.owner != nil {
		p.closeExplicit()
	}
	if raw, ok := p.takePending(); ok {
		p.tree.root.set(raw, Block, true)
	}
}

// takePending returns pending lines joined into raw comment and true if there were any.
//
// Header and the blank line after it are stripped from the first comment taken.
func (p *parser) takePending() (string, bool) {
	lines := p.pending
	p.pending = nil
	if !p.headerDone {
		p.headerDone = true
		lines = stripHeader(lines, p.header)
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// headerLines returns lines of <header> comment as they appear in the document
func headerLines(header string) []string {
	if header == "" {
		return nil
	}
	return lo.Map(strings.Split(header, "\n"), func(s string, _ int) string {
		return strings.TrimRight(Indicator+" "+s, " \t")
	})
}

// stripHeader returns <lines> without leading <header> lines and one blank line after them
func stripHeader(lines, header []string) []string {
	if len(header) == 0 || len(lines) < len(header) {
		return lines
	}
	for i, h := range header {
		if lines[i] != h {
			return lines
		}
	}
	lines = lines[len(header):]
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return lines
}
