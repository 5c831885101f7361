package render

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// renderMDHTML emits a Markdown body with embedded inline-styled HTML
// for the pieces Markdown cannot express: status badges, progress bars
// and collapsible sections. The result stays valid under any Markdown
// processor that passes raw HTML through.
func renderMDHTML(w io.Writer, doc *Document) error {
	if doc.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", doc.Title)
	}

	for _, pair := range doc.Summary {
		fmt.Fprintf(w, "- **%s:** %s\n", pair.Key, escapeMarkdown(pair.Value))
	}
	if len(doc.Summary) > 0 {
		fmt.Fprintln(w)
	}

	if len(doc.Rows) > 0 {
		writeMDHTMLTable(w, doc)
	}

	if len(doc.Notes) > 0 {
		fmt.Fprintln(w, `<details open>`)
		fmt.Fprintln(w, `<summary><strong>Recommendations</strong></summary>`)
		fmt.Fprintln(w)
		for _, note := range doc.Notes {
			fmt.Fprintf(w, "> %s\n", escapeMarkdown(note))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, `</details>`)
		fmt.Fprintln(w)
	}

	if len(doc.Warnings) > 0 {
		fmt.Fprintln(w, `<details>`)
		fmt.Fprintf(w, "<summary><strong>Warnings (%d)</strong></summary>\n\n", len(doc.Warnings))
		for _, warning := range doc.Warnings {
			fmt.Fprintf(w, "> %s\n", escapeMarkdown(warning))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, `</details>`)
	}
	return nil
}

func writeMDHTMLTable(w io.Writer, doc *Document) {
	withBars := false
	for _, row := range doc.Rows {
		if row.BarPct != nil {
			withBars = true
			break
		}
	}

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
	names = append(names, "Status")
	separators = append(separators, "---")
	if withBars {
		names = append(names, "")
		separators = append(separators, "---")
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(names, " | "))
	fmt.Fprintf(w, "| %s |\n", strings.Join(separators, " | "))

	for _, row := range doc.Rows {
		cells := make([]string, 0, len(row.Cells)+2)
		for _, cell := range row.Cells {
			cells = append(cells, escapeMarkdown(cell))
		}
		cells = append(cells, statusBadge(row.Status))
		if withBars {
			bar := ""
			if row.BarPct != nil {
				bar = htmlBarBlock(*row.BarPct, statusColors[row.Status])
			}
			cells = append(cells, bar)
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	fmt.Fprintln(w)
}

func statusBadge(s Status) string {
	name := s.String()
	if name == "" {
		return ""
	}
	return fmt.Sprintf(
		`<span style="color: #fff; background: %s; border-radius: 3px; padding: 1px 6px; font-size: 12px;">%s</span>`,
		statusColors[s], html.EscapeString(strings.ToUpper(name)))
}

func htmlBarBlock(pct float64, color string) string {
	return fmt.Sprintf(
		`<div style="width: 120px; height: 8px; background: #e9ecef; border-radius: 4px;"><div style="width: %s%%; height: 100%%; background: %s; border-radius: 4px;"></div></div>`,
		barWidth(pct), color)
}
