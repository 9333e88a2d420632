package output

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints rows under the given headers as a pretty table on stdout.
func RenderTable(headers table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(headers)
	t.AppendRows(rows)

	t.Render()
}
