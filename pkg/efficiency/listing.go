package efficiency

import (
	"fmt"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/shanecorder/slurm-schmutz/pkg/render"
)

// Listing is the multi-job view over one user's dashboard sessions.
// Jobs that could not be fetched are reported in Warnings; they never
// abort the listing.
type Listing struct {
	User     string         `json:"user"`
	Jobs     []ListingEntry `json:"jobs"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ListingEntry pairs one result with the session directory it came
// from.
type ListingEntry struct {
	Session string `json:"session,omitempty"`
	Result
}

var _ render.Renderable = Listing{}

func (l Listing) Document() *render.Document {
	doc := &render.Document{
		Title: fmt.Sprintf("Active Sessions for %s", l.User),
		Summary: []render.Pair{
			{Key: "Sessions", Value: fmt.Sprintf("%d", len(l.Jobs))},
		},
		Columns: []render.Column{
			{Name: "Job"},
			{Name: "Name"},
			{Name: "State"},
			{Name: "CPU", AlignRight: true},
			{Name: "Memory", AlignRight: true},
			{Name: "Time", AlignRight: true},
			{Name: "Session"},
		},
		Warnings: l.Warnings,
	}

	for _, entry := range l.Jobs {
		doc.Rows = append(doc.Rows, render.Row{
			Cells: []string{
				entry.Job.JobID,
				entry.Job.Name,
				entry.Job.State.String(),
				pctCell(entry.CPUEfficiencyPct),
				pctCell(entry.MemoryEfficiencyPct),
				pctCell(entry.TimeUsedPct),
				filepath.Base(entry.Session),
			},
			Status: classStatus(entry.worstClass()),
		})
	}
	return doc
}

// worstClass is the row-level rating: the most severe of the metric
// classifications, with Unknown losing to everything.
func (e ListingEntry) worstClass() Classification {
	return lo.Max([]Classification{e.CPUClass, e.MemoryClass, e.TimeClass})
}

func pctCell(pct *float64) string {
	if pct == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *pct)
}
