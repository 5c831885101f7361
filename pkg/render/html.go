package render

import (
	"html/template"
	"io"
)

// Fixed status colors shared by the HTML-bearing encodings.
const (
	colorGood    = "#28a745"
	colorWarning = "#ffc107"
	colorBad     = "#dc3545"
	colorNeutral = "#6c757d"
)

var statusColors = map[Status]string{
	StatusGood:    colorGood,
	StatusWarning: colorWarning,
	StatusBad:     colorBad,
	StatusNone:    colorNeutral,
}

// htmlDocument is a fully self-contained page: inline styling only, no
// external references, so it can be dropped into a dashboard iframe or
// opened from disk.
var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; font-size: 14px; color: #212529; margin: 16px; }
h1 { font-size: 18px; border-bottom: 1px solid #dee2e6; padding-bottom: 6px; color: #495057; }
table { border-collapse: collapse; margin: 12px 0; }
th, td { padding: 4px 10px; border-bottom: 1px solid #e9ecef; text-align: left; }
th { background: #f8f9fa; color: #6c757d; font-size: 12px; text-transform: uppercase; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.summary { background: #f8f9fa; border-radius: 6px; padding: 10px; }
.summary div { display: flex; justify-content: space-between; max-width: 380px; padding: 2px 0; }
.summary span.key { color: #6c757d; }
.bar { width: 120px; height: 8px; background: #e9ecef; border-radius: 4px; overflow: hidden; }
.bar div { height: 100%; }
.status-good { color: {{.ColorGood}}; }
.status-warning { color: {{.ColorWarning}}; }
.status-bad { color: {{.ColorBad}}; }
.note { background: #fff3cd; border: 1px solid {{.ColorWarning}}; border-radius: 4px; padding: 8px; margin: 8px 0; color: #856404; }
.warning { background: #f8d7da; border: 1px solid {{.ColorBad}}; border-radius: 4px; padding: 8px; margin: 8px 0; color: #721c24; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Summary}}<div class="summary">
{{range .Summary}}  <div><span class="key">{{.Key}}</span><span>{{.Value}}</span></div>
{{end}}</div>
{{end}}{{if .Rows}}<table>
<tr>{{range .Columns}}<th>{{.Name}}</th>{{end}}{{if .WithBars}}<th></th>{{end}}</tr>
{{range .Rows}}<tr class="status-{{.StatusName}}">{{range .Cells}}<td{{if .AlignRight}} class="num"{{end}}>{{.Text}}</td>{{end}}{{if $.WithBars}}<td>{{if .Bar}}<div class="bar"><div style="width: {{.Bar.Width}}%; background: {{.Bar.Color}};"></div></div>{{end}}</td>{{end}}</tr>
{{end}}</table>
{{end}}{{range .Notes}}<div class="note">{{.}}</div>
{{end}}{{range .Warnings}}<div class="warning">{{.}}</div>
{{end}}</body>
</html>
`))

type htmlCell struct {
	Text       string
	AlignRight bool
}

type htmlBar struct {
	Width string
	Color string
}

type htmlRow struct {
	StatusName string
	Cells      []htmlCell
	Bar        *htmlBar
}

type htmlData struct {
	Title        string
	Summary      []Pair
	Columns      []Column
	Rows         []htmlRow
	Notes        []string
	Warnings     []string
	WithBars     bool
	ColorGood    string
	ColorWarning string
	ColorBad     string
}

func renderHTML(w io.Writer, doc *Document) error {
	return htmlTemplate.Execute(w, buildHTMLData(doc))
}

func buildHTMLData(doc *Document) htmlData {
	data := htmlData{
		Title:        doc.Title,
		Summary:      doc.Summary,
		Columns:      doc.Columns,
		Notes:        doc.Notes,
		Warnings:     doc.Warnings,
		ColorGood:    colorGood,
		ColorWarning: colorWarning,
		ColorBad:     colorBad,
	}

	for _, row := range doc.Rows {
		hr := htmlRow{StatusName: statusName(row.Status)}
		for i, cell := range row.Cells {
			alignRight := i < len(doc.Columns) && doc.Columns[i].AlignRight
			hr.Cells = append(hr.Cells, htmlCell{Text: cell, AlignRight: alignRight})
		}
		if row.BarPct != nil {
			data.WithBars = true
			hr.Bar = &htmlBar{
				Width: barWidth(*row.BarPct),
				Color: statusColors[row.Status],
			}
		}
		data.Rows = append(data.Rows, hr)
	}
	return data
}

func statusName(s Status) string {
	if name := s.String(); name != "" {
		return name
	}
	return "none"
}
