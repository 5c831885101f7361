//go:build unit || !integration

package quota

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

func ratio(v float64) *float64 { return &v }

func testEntries() []models.QuotaEntry {
	return []models.QuotaEntry{
		// A: well under every limit
		{Type: models.QuotaTypeUser, AppliesTo: "alice", Path: "/home/alice",
			HardLimit: 1000, Used: 100, EfficiencyRatio: ratio(0.9)},
		// B: high usage
		{Type: models.QuotaTypeUser, AppliesTo: "bob", Path: "/home/bob",
			HardLimit: 1000, Used: 950, EfficiencyRatio: ratio(0.9)},
		// C: low efficiency
		{Type: models.QuotaTypeUser, AppliesTo: "carol", Path: "/home/carol",
			HardLimit: 1000, Used: 100, EfficiencyRatio: ratio(0.3)},
		// D: unlimited
		{Type: models.QuotaTypeDirectory, AppliesTo: "-", Path: "/scratch",
			HardLimit: 0, Used: 5000},
	}
}

func newTestAggregator() *Aggregator {
	return NewAggregator(config.Default().Quota)
}

func TestAdminReportSummary(t *testing.T) {
	report := newTestAggregator().Admin(ParseResult{Entries: testEntries()})

	require.Equal(t, 4, report.Summary.TotalEntries)
	require.Equal(t, uint64(3000), report.Summary.TotalHardBytes)
	require.Equal(t, uint64(6150), report.Summary.TotalUsedBytes)
	require.Equal(t, 0, report.Summary.OverHardCount)
	require.Equal(t, 0, report.Summary.OverSoftCount)
	require.Equal(t, 1, report.Summary.HighUsageCount) // bob at 95%
	require.Equal(t, 0, report.Summary.SkippedRows)
}

func TestAdminReportCountsSkippedRows(t *testing.T) {
	parsed := ParseResult{
		Entries:  testEntries()[:1],
		Warnings: []string{"line 3: quota row has 5 columns, want at least 8"},
	}
	report := newTestAggregator().Admin(parsed)

	require.Equal(t, 1, report.Summary.TotalEntries)
	require.Equal(t, 1, report.Summary.SkippedRows)
	require.Len(t, report.Warnings, 1)
}

func TestUserReportFiltersExactly(t *testing.T) {
	parsed := ParseResult{Entries: testEntries()}

	report := newTestAggregator().User(parsed, "alice")
	require.Equal(t, 1, report.Summary.TotalEntries)
	require.Equal(t, "alice", report.Quotas[0].AppliesTo)
	// the summary reflects the filtered set, not the whole file
	require.Equal(t, uint64(100), report.Summary.TotalUsedBytes)

	empty := newTestAggregator().User(parsed, "nobody")
	require.Equal(t, 0, empty.Summary.TotalEntries)
	require.Empty(t, empty.Quotas)
}

func TestHighlightsSelectsBreachingEntries(t *testing.T) {
	parsed := ParseResult{Entries: testEntries()}

	report := newTestAggregator().Highlights(parsed, 80, 50)

	// bob breaches the usage threshold, carol the efficiency one
	require.Equal(t, 2, report.Summary.TotalEntries)
	require.Equal(t, "bob", report.Quotas[0].AppliesTo)
	require.Equal(t, "carol", report.Quotas[1].AppliesTo)
}

func TestHighlightsIgnoresUnlimitedEntries(t *testing.T) {
	parsed := ParseResult{Entries: testEntries()}

	report := newTestAggregator().Highlights(parsed, 10, 0)

	// the unlimited /scratch entry has 0% usage by definition
	for _, q := range report.Quotas {
		require.NotEqual(t, "/scratch", q.Path)
	}
}

func TestReportDocumentMatchesModel(t *testing.T) {
	report := newTestAggregator().Admin(ParseResult{Entries: testEntries()})
	doc := report.Document()

	require.Equal(t, "Storage Quota Report", doc.Title)
	require.Len(t, doc.Rows, len(report.Quotas))
	require.Len(t, doc.Columns, 7)
	for i, row := range doc.Rows {
		require.Len(t, row.Cells, len(doc.Columns))
		require.NotNil(t, row.BarPct)
		require.InDelta(t, report.Quotas[i].UsagePct, *row.BarPct, 0.001)
	}
}
