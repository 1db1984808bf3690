package comments

import (
	"strings"

	"github.com/samber/lo"
)

// dumper inserts comments of a source tree into YAML text written without comments
type dumper struct {
	src *KeyTree
	rd  *reader
	out []string

	side       string   // Side comment waiting for the end of flow collection or quoted scalar
	sideIndent int      // Indentation of the key owning <side>
	below      []string // Side comment lines waiting for the end of multi-line value
}

// Dump returns YAML <values> text written without comments with the comments of the mapper inserted.
//
// Keys of <values> are matched to the keys of the mapper by their path, comments of keys missing in <values> are
// skipped.
func (m *Mapper) Dump(values string) string {
	d := dumper{src: m.tree, rd: newReader(NewKeyTree(m.tree.opts))}
	if values != "" {
		for _, text := range strings.Split(strings.TrimSuffix(values, "\n"), "\n") {
			lo.ForEach(d.rd.feed(text), d.line)
		}
	}
	lo.ForEach(d.rd.flush(), d.line)
	d.flushBelow()
	if footer, ok := m.tree.root.Comment(Block); ok {
		d.out = append(d.out, strings.Split(footer, "\n")...)
	}

	if header := headerLines(m.tree.opts.Header); len(header) > 0 {
		if len(d.out) > 0 {
			header = append(header, "")
		}
		d.out = append(header, d.out...)
	}
	if len(d.out) == 0 {
		return ""
	}
	return strings.Join(d.out, "\n") + "\n"
}

// line writes line <l> with it's comments
func (d *dumper) line(l line, _ int) {
	if l.kind != textLine {
		d.flushBelow()
	}
	if l.kind != contentLine {
		if l.closes && d.side != "" {
			d.sideComment(l.text, d.side, d.sideIndent)
			d.side = ""
			return
		}
		d.write(l.text)
		return
	}

	var sides []string
	for _, node := range l.nodes {
		src := d.src.lookup(node.segments())
		if src == nil {
			continue
		}
		if block, ok := src.Comment(Block); ok {
			// Nothing to separate the first written key from
			if src.padded && len(d.out) == 0 {
				block = strings.TrimPrefix(block, "\n")
			}
			d.block(block, node.indent)
		}
		if side, ok := src.Comment(Side); ok {
			sides = append(sides, side)
		}
	}
	side := strings.Join(sides, "")
	last, _ := lo.Last(l.nodes)
	indent := lo.TernaryF(last == nil, func() int { return 0 }, func() int { return last.indent })
	if l.opens {
		d.write(l.text)
		d.side, d.sideIndent = side, indent
		return
	}
	d.sideComment(l.text, side, indent)
}

// block writes <raw> block comment indented by <indent> spaces
func (d *dumper) block(raw string, indent int) {
	for _, s := range strings.Split(raw, "\n") {
		d.write(indentLine(s, indent))
	}
}

// sideComment writes <text> line followed by the first line of <side> comment.
//
// The rest of comment lines are written below, indented by <indent> spaces, as soon as multi-line value on the line
// ends.
func (d *dumper) sideComment(text, side string, indent int) {
	if side == "" {
		d.write(text)
		return
	}
	lines := strings.Split(side, "\n")
	first := lines[0]
	if first != "" && !startsWithSpace(first) {
		first = " " + first
	}
	d.write(text + first)
	d.below = lo.Map(lines[1:], func(s string, _ int) string {
		return indentLine(s, indent)
	})
}

// flushBelow writes side comment lines waiting for the end of multi-line value
func (d *dumper) flushBelow() {
	d.out = append(d.out, d.below...)
	d.below = nil
}

// write writes <s> line
func (d *dumper) write(s string) {
	d.out = append(d.out, s)
}

// indentLine returns <s> indented by <indent> spaces, blank lines are kept empty
func indentLine(s string, indent int) string {
	if s == "" {
		return ""
	}
	return strings.Repeat(" ", max(indent, 0)) + s
}
