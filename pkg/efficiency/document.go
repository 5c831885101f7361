package efficiency

import (
	"fmt"

	"github.com/shanecorder/slurm-schmutz/pkg/render"
	"github.com/shanecorder/slurm-schmutz/pkg/units"
)

var _ render.Renderable = Result{}

// Document builds the tabular representation of a job efficiency
// result: a job summary, one table row per metric and the advice list.
func (r Result) Document() *render.Document {
	job := r.Job

	title := fmt.Sprintf("Job %s", job.JobID)
	if job.Name != "" {
		title = fmt.Sprintf("Job %s (%s)", job.JobID, job.Name)
	}

	memory := units.Absent
	if job.MemoryRequested > 0 {
		used := units.Absent
		if job.MemoryUsedPeak != nil {
			used = units.FormatSize(*job.MemoryUsedPeak)
		}
		memory = fmt.Sprintf("%s / %s", used, units.FormatSize(job.MemoryRequested))
	}

	limit := "none"
	if job.WallTimeLimit > 0 {
		limit = units.FormatDuration(job.WallTimeLimit)
	}

	doc := &render.Document{
		Title: title,
		Summary: []render.Pair{
			{Key: "User", Value: job.User},
			{Key: "State", Value: job.State.String()},
			{Key: "Partition", Value: job.Partition},
			{Key: "Nodes", Value: fmt.Sprintf("%d", job.NodeCount)},
			{Key: "CPUs", Value: fmt.Sprintf("%d", job.CPUCount)},
			{Key: "Memory", Value: memory},
			{Key: "Elapsed", Value: units.FormatDuration(job.WallTimeElapsed)},
			{Key: "Time Limit", Value: limit},
		},
		Columns: []render.Column{
			{Name: "Metric"},
			{Name: "Efficiency", AlignRight: true},
			{Name: "Rating"},
		},
		Notes: r.Recommendations,
	}

	doc.Rows = append(doc.Rows, metricRow("CPU", r.CPUEfficiencyPct, r.CPUClass))
	doc.Rows = append(doc.Rows, metricRow("Memory", r.MemoryEfficiencyPct, r.MemoryClass))
	doc.Rows = append(doc.Rows, metricRow("Time Used", r.TimeUsedPct, r.TimeClass))
	return doc
}

func metricRow(name string, pct *float64, class Classification) render.Row {
	return render.Row{
		Cells:  []string{name, pctCell(pct), class.String()},
		Status: classStatus(class),
		BarPct: pct,
	}
}

func classStatus(c Classification) render.Status {
	switch c {
	case Good:
		return render.StatusGood
	case Warning:
		return render.StatusWarning
	case Bad:
		return render.StatusBad
	default:
		return render.StatusNone
	}
}
