package render

import (
	"fmt"
	"io"
	"strings"
)

// renderMarkdown emits a standard pipe table, one row per entity,
// with numeric columns right-aligned.
func renderMarkdown(w io.Writer, doc *Document) error {
	if doc.Title != "" {
		fmt.Fprintf(w, "# %s\n\n", doc.Title)
	}

	for _, pair := range doc.Summary {
		fmt.Fprintf(w, "- **%s:** %s\n", pair.Key, escapeMarkdown(pair.Value))
	}
	if len(doc.Summary) > 0 {
		fmt.Fprintln(w)
	}

	if len(doc.Rows) > 0 {
		writeMarkdownTable(w, doc)
	}

	for _, note := range doc.Notes {
		fmt.Fprintf(w, "> %s\n", escapeMarkdown(note))
	}
	for _, warning := range doc.Warnings {
		fmt.Fprintf(w, "> **Warning:** %s\n", escapeMarkdown(warning))
	}
	return nil
}

func writeMarkdownTable(w io.Writer, doc *Document) {
	names := make([]string, len(doc.Columns))
	separators := make([]string, len(doc.Columns))
	for i, c := range doc.Columns {
		names[i] = c.Name
		if c.AlignRight {
			separators[i] = "---:"
		} else {
			separators[i] = "---"
		}
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(names, " | "))
	fmt.Fprintf(w, "| %s |\n", strings.Join(separators, " | "))

	for _, row := range doc.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = escapeMarkdown(cell)
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	fmt.Fprintln(w)
}

var markdownEscaper = strings.NewReplacer("|", "\\|", "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
