// Package render serializes one result model into the supported output
// encodings. Every encoding is produced from the same Document built by
// the model, so all of them report identical numbers.
package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

type Format string

const (
	TextFormat     Format = "text"
	JSONFormat     Format = "json"
	HTMLFormat     Format = "html"
	MarkdownFormat Format = "markdown"
	MDHTMLFormat   Format = "mdhtml"
)

var AllFormats = []Format{TextFormat, JSONFormat, HTMLFormat, MarkdownFormat, MDHTMLFormat}

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFormats {
		if f == known {
			return f, nil
		}
	}
	return "", models.NewBaseError("unsupported output format %q", s).
		WithCode(models.UnknownFormat).
		WithHint(`supported formats: text, json, html, markdown, mdhtml`)
}

// Status is the coloring hint attached to a row.
type Status int

const (
	StatusNone Status = iota
	StatusGood
	StatusWarning
	StatusBad
)

func (s Status) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusWarning:
		return "warning"
	case StatusBad:
		return "bad"
	default:
		return ""
	}
}

type Pair struct {
	Key   string
	Value string
}

type Column struct {
	Name       string
	AlignRight bool
}

// Row is one rendered entity. BarPct, when set, asks encoders that can
// draw progress bars to attach one for this row.
type Row struct {
	Cells  []string
	Status Status
	BarPct *float64
}

// Document is the single intermediate representation every non-JSON
// encoder consumes: a title, aligned summary pairs, an ordered table
// and free-form notes and warnings.
type Document struct {
	Title    string
	Summary  []Pair
	Columns  []Column
	Rows     []Row
	Notes    []string
	Warnings []string
}

// Renderable is a finished result model. The model itself is what the
// JSON encoding marshals; Document feeds the other encodings.
type Renderable interface {
	Document() *Document
}

// barCells is the fixed width of rendered progress bars.
const barCells = 20

// Bar renders pct as a two-glyph progress bar of barCells cells.
// Values outside 0..100 are clamped for display only.
func Bar(pct float64) string {
	clamped := math.Max(0, math.Min(100, pct))
	filled := int(math.Round(clamped / 100 * barCells))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled) + "]"
}

// barWidth is the clamped CSS width for HTML progress bars.
func barWidth(pct float64) string {
	return strconv.FormatFloat(math.Max(0, math.Min(100, pct)), 'f', 1, 64)
}
