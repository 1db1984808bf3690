package tw

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Writer represents table writer
type Writer struct {
	table.Writer
}

// New returns new configured table writer printing to standard error
func New() Writer {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput returns new configured table writer printing to <out>
func NewWithOutput(out io.Writer) Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Comment", WidthMax: 60},
		{Name: "Input", WidthMax: 70},
		{Name: "Path", WidthMax: 40},
		{Name: "Reason", WidthMax: 60},
		{Name: "Result", WidthMax: 20},
		{Name: "Type", WidthMax: 10},
	})

	return Writer{tw}
}

// Render renders table if it has rows and resets it
func (w Writer) Render() {
	if w.Length() > 0 {
		w.Writer.Render()
	}
	w.ResetHeaders()
	w.ResetRows()
	w.ResetFooters()
}
