package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

// borderless fixed-width style for terminal output
var noStyle = table.Style{
	Name:   "StyleDefault",
	Box:    table.StyleBoxDefault,
	Color:  table.ColorOptionsDefault,
	Format: table.FormatOptionsDefault,
	HTML:   table.DefaultHTMLOptions,
	Options: table.Options{
		DrawBorder:      false,
		SeparateColumns: true,
		SeparateFooter:  false,
		SeparateHeader:  true,
		SeparateRows:    false,
	},
	Title: table.TitleOptionsDefault,
}

func renderText(w io.Writer, doc *Document) error {
	if doc.Title != "" {
		fmt.Fprintln(w, doc.Title)
		fmt.Fprintln(w, strings.Repeat("=", len(doc.Title)))
	}

	if len(doc.Summary) > 0 {
		maxKeyLength := 0
		for _, pair := range doc.Summary {
			if len(pair.Key) > maxKeyLength {
				maxKeyLength = len(pair.Key)
			}
		}
		for _, pair := range doc.Summary {
			fmt.Fprintf(w, "%-*s = %s\n", maxKeyLength, pair.Key, pair.Value)
		}
		fmt.Fprintln(w)
	}

	if len(doc.Rows) > 0 {
		withBars := lo.SomeBy(doc.Rows, func(r Row) bool { return r.BarPct != nil })

		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(noStyle)

		configs := lo.Map(doc.Columns, func(c Column, i int) table.ColumnConfig {
			config := table.ColumnConfig{Number: i + 1}
			if c.AlignRight {
				config.Align = text.AlignRight
			}
			return config
		})
		tw.SetColumnConfigs(configs)

		headers := lo.Map(doc.Columns, func(c Column, _ int) any { return c.Name })
		if withBars {
			headers = append(headers, "")
		}
		tw.AppendHeader(headers)

		for _, row := range doc.Rows {
			values := lo.Map(row.Cells, func(cell string, _ int) any { return cell })
			if withBars {
				bar := ""
				if row.BarPct != nil {
					bar = Bar(*row.BarPct)
				}
				values = append(values, bar)
			}
			tw.AppendRow(values)
		}
		tw.Render()
	}

	for _, note := range doc.Notes {
		fmt.Fprintf(w, "  * %s\n", note)
	}
	for _, warning := range doc.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}
