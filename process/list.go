package process

import (
	"flight_cfg/comments"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// CommentRow represents a comment of a document as listed by List
type CommentRow struct {
	Path    string
	Type    string
	Comment string
}

// Comments returns comments of document read from <inp> in order they are written, with header first and footer last.
//
// Comments are returned in their clean form, blank lines above keys are not listed.
func (r repo) Comments(inp string) ([]CommentRow, error) {
	c, err := r.Load(inp)
	if err != nil {
		return nil, err
	}
	var rows []CommentRow
	if header := c.Comments().Header(); header != "" {
		rows = append(rows, CommentRow{Type: "header", Comment: header})
	}

	// Clean form does not depend on the format comments are written with
	formatter := comments.Default.Formatter()
	sep := r.set.Format.PathSeparator
	tree := c.Comments().Tree()
	tree.Walk(func(n *comments.Node) bool {
		for _, typ := range []comments.Type{comments.Block, comments.Side} {
			raw, ok := n.Comment(typ)
			if !ok {
				continue
			}
			if text := formatter.Parse(raw, typ, n); text != "" {
				rows = append(rows, CommentRow{Path: n.Path(sep), Type: typ.String(), Comment: text})
			}
		}
		return true
	})

	if raw, ok := tree.Root().Comment(comments.Block); ok {
		if footer := formatter.Parse(raw, comments.Block, tree.Root()); footer != "" {
			rows = append(rows, CommentRow{Type: "footer", Comment: footer})
		}
	}
	return rows, nil
}

// List prints table of comments of document read from <inp>
func (r repo) List(inp string) error {
	rows, err := r.Comments(inp)
	if err != nil {
		return err
	}
	r.tw.SetTitle("%v", inp)
	r.tw.AppendHeader(table.Row{"Path", "Type", "Comment"})
	r.tw.AppendRows(lo.Map(rows, func(row CommentRow, _ int) table.Row {
		return table.Row{row.Path, row.Type, row.Comment}
	}))
	r.tw.AppendFooter(table.Row{"", "Total", len(rows)})
	r.tw.Render()
	r.tw.SetTitle("")
	return nil
}
