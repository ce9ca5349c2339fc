package format

import (
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kndndrj/sparqlbench/core"
)

var _ core.Formatter = (*Table)(nil)

// Table renders rows as a borderless text table for terminals. Floats are
// rounded to Precision decimals and undefined values print as "-".
type Table struct {
	Precision int
	// Title is printed above the table if set
	Title string
}

func NewTable() *Table {
	return &Table{
		Precision: 3,
	}
}

func (tf *Table) Format(header core.Header, rows []core.Row) ([]byte, error) {
	tableHeader := make(table.Row, 0, len(header))
	for _, h := range header {
		tableHeader = append(tableHeader, h)
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		r := make(table.Row, 0, len(row))
		for _, cell := range row {
			r = append(r, tf.cell(cell))
		}
		tableRows = append(tableRows, r)
	}

	t := table.NewWriter()
	if tf.Title != "" {
		t.SetTitle(tf.Title)
	}
	t.AppendHeader(tableHeader)
	t.AppendRows(tableRows)
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	return []byte(t.Render()), nil
}

func (tf *Table) cell(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', tf.Precision, 64)
}
