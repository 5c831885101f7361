//go:build unit || !integration

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

// testModel is a minimal result model for exercising the encoders.
type testModel struct {
	Label string   `json:"label"`
	Pct   *float64 `json:"pct"`
	Blank *float64 `json:"blank"`
}

func (m testModel) Document() *Document {
	doc := &Document{
		Title: "Test Report",
		Summary: []Pair{
			{Key: "Label", Value: m.Label},
		},
		Columns: []Column{
			{Name: "Metric"},
			{Name: "Value", AlignRight: true},
		},
		Notes:    []string{"a note"},
		Warnings: []string{"a warning"},
	}
	doc.Rows = append(doc.Rows, Row{
		Cells:  []string{"pct", "82.3%"},
		Status: StatusGood,
		BarPct: m.Pct,
	})
	return doc
}

func newTestModel() testModel {
	pct := 82.3
	return testModel{Label: "example", Pct: &pct}
}

func TestRenderAllFormats(t *testing.T) {
	for _, format := range AllFormats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, format, newTestModel()))
			require.NotEmpty(t, buf.String())
		})
	}
}

func TestRenderJSONMarshalsModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, JSONFormat, newTestModel()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Equal(t, "example", decoded["label"])
	require.InDelta(t, 82.3, decoded["pct"].(float64), 0.001)

	// absent values serialize as explicit nulls, not omitted keys
	blank, present := decoded["blank"]
	require.True(t, present)
	require.Nil(t, blank)
}

func TestRenderTextAndJSONAgree(t *testing.T) {
	var text, asJSON bytes.Buffer
	require.NoError(t, Render(&text, TextFormat, newTestModel()))
	require.NoError(t, Render(&asJSON, JSONFormat, newTestModel()))

	require.Contains(t, text.String(), "82.3%")
	require.Contains(t, asJSON.String(), "82.3")
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, TextFormat, newTestModel()))
	out := buf.String()

	require.Contains(t, out, "Test Report\n===========")
	require.Contains(t, out, "Label = example")
	require.Contains(t, out, "█")
	require.Contains(t, out, "  * a note")
	require.Contains(t, out, "warning: a warning")
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, MarkdownFormat, newTestModel()))
	out := buf.String()

	require.Contains(t, out, "# Test Report")
	require.Contains(t, out, "| Metric | Value |")
	require.Contains(t, out, "| --- | ---: |")
	require.Contains(t, out, "| pct | 82.3% |")
	require.Contains(t, out, "> **Warning:** a warning")
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, HTMLFormat, newTestModel()))
	out := buf.String()

	require.Contains(t, out, "<!DOCTYPE html>")
	require.Contains(t, out, "<title>Test Report</title>")
	require.Contains(t, out, `class="status-good"`)
	require.Contains(t, out, "width: 82.3%")
	// self-contained: no external stylesheet or script references
	require.NotContains(t, out, "<link")
	require.NotContains(t, out, "<script")
}

func TestRenderMDHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, MDHTMLFormat, newTestModel()))
	out := buf.String()

	require.Contains(t, out, "## Test Report")
	require.Contains(t, out, "<details open>")
	require.Contains(t, out, "Recommendations")
	require.Contains(t, out, "Warnings (1)")
	require.Contains(t, out, "GOOD")
}

func TestParseFormat(t *testing.T) {
	for _, format := range AllFormats {
		parsed, err := ParseFormat(strings.ToUpper(string(format)))
		require.NoError(t, err)
		require.Equal(t, format, parsed)
	}

	_, err := ParseFormat("yaml")
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.UnknownFormat))
}

func TestBar(t *testing.T) {
	require.Equal(t, "["+strings.Repeat("█", 20)+"]", Bar(100))
	require.Equal(t, "["+strings.Repeat("░", 20)+"]", Bar(0))
	require.Equal(t, "["+strings.Repeat("█", 10)+strings.Repeat("░", 10)+"]", Bar(50))

	// out-of-range values are clamped for display
	require.Equal(t, Bar(100), Bar(250))
	require.Equal(t, Bar(0), Bar(-5))
}

func TestRenderToFile(t *testing.T) {
	path := t.TempDir() + "/report.json"
	require.NoError(t, RenderToFile(path, JSONFormat, newTestModel(), nil))

	var fallback bytes.Buffer
	require.NoError(t, RenderToFile("", TextFormat, newTestModel(), &fallback))
	require.Contains(t, fallback.String(), "Test Report")

	err := RenderToFile(t.TempDir()+"/missing/report.txt", TextFormat, newTestModel(), nil)
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.OutputWriteFailed))
}
