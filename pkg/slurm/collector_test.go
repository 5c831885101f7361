//go:build unit || !integration

package slurm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shanecorder/slurm-schmutz/pkg/logger"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

// stubSource replays canned command output.
type stubSource struct {
	queue    string
	live     string
	acct     string
	queueErr error
	liveErr  error
	acctErr  error
}

func (s *stubSource) QueueRow(ctx context.Context, jobID string) (string, error) {
	return s.queue, s.queueErr
}

func (s *stubSource) LiveStats(ctx context.Context, jobID string) (string, error) {
	return s.live, s.liveErr
}

func (s *stubSource) Accounting(ctx context.Context, jobID string) (string, error) {
	return s.acct, s.acctErr
}

var testStart = time.Date(2024, 5, 1, 10, 5, 0, 0, time.Local)

func testCollector(t *testing.T, source DataSource) *Collector {
	t.Helper()
	logger.ConfigureTestLogging(t)
	return NewCollector(source).WithClock(func() time.Time {
		return testStart.Add(30 * time.Minute)
	})
}

const (
	runningQueueRow = "train.sh|jdoe|RUNNING|2024-05-01T10:00:00|2024-05-01T10:05:00|1:00:00|2|48|4000Mn|gpu"
	pendingQueueRow = "train.sh|jdoe|PENDING|2024-05-01T10:00:00|N/A|2:00:00|2|48|4000Mn|gpu"
	liveStatsRow    = "12345.batch|01:08:56|50G|1"

	completedMainRow = "12345|train.sh|jdoe|COMPLETED|2024-05-01T10:00:00|2024-05-01T10:05:00|" +
		"2024-05-01T11:28:45|01:23:45|02:00:00|2|48|4000Mn||01:08:56|gpu"
	completedBatchRow = "12345.batch|batch|jdoe|COMPLETED|2024-05-01T10:00:00|2024-05-01T10:05:00|" +
		"2024-05-01T11:28:45|01:23:45||2|48||40G|01:08:56|gpu"
)

func TestSnapshotRunningJobMergesLiveUsage(t *testing.T) {
	collector := testCollector(t, &stubSource{queue: runningQueueRow, live: liveStatsRow})

	job, err := collector.Snapshot(context.Background(), "12345")
	require.NoError(t, err)

	require.Equal(t, "12345", job.JobID)
	require.Equal(t, "train.sh", job.Name)
	require.Equal(t, "jdoe", job.User)
	require.Equal(t, models.JobStateRunning, job.State)
	require.Equal(t, "gpu", job.Partition)
	require.Equal(t, 2, job.NodeCount)
	require.Equal(t, 48, job.CPUCount)
	require.Equal(t, uint64(4000*1024*1024), job.MemoryRequested)

	// 30 minutes elapsed with an hour of time left
	require.Equal(t, int64(1800), job.WallTimeElapsed)
	require.Equal(t, int64(1800+3600), job.WallTimeLimit)

	require.NotNil(t, job.CPUTimeUsed)
	require.Equal(t, int64(4136), *job.CPUTimeUsed)
	require.NotNil(t, job.MemoryUsedPeak)
	require.Equal(t, uint64(50*1024*1024*1024), *job.MemoryUsedPeak)
}

func TestSnapshotPendingJobHasNoUsage(t *testing.T) {
	collector := testCollector(t, &stubSource{queue: pendingQueueRow})

	job, err := collector.Snapshot(context.Background(), "12345")
	require.NoError(t, err)

	require.Equal(t, models.JobStatePending, job.State)
	require.Nil(t, job.CPUTimeUsed)
	require.Nil(t, job.MemoryUsedPeak)
	require.Equal(t, int64(0), job.WallTimeElapsed)
	require.Equal(t, int64(7200), job.WallTimeLimit)
}

func TestSnapshotCompletedJobUsesAccounting(t *testing.T) {
	collector := testCollector(t, &stubSource{
		acct: completedMainRow + "\n" + completedBatchRow + "\n",
	})

	job, err := collector.Snapshot(context.Background(), "12345")
	require.NoError(t, err)

	require.Equal(t, models.JobStateCompleted, job.State)
	require.Equal(t, int64(5025), job.WallTimeElapsed)
	require.Equal(t, int64(7200), job.WallTimeLimit)
	// ReqMem is per node, 4000M across 2 nodes
	require.Equal(t, uint64(2*4000*1024*1024), job.MemoryRequested)

	// usage peaks come from the batch step
	require.NotNil(t, job.MemoryUsedPeak)
	require.Equal(t, uint64(40*1024*1024*1024), *job.MemoryUsedPeak)
	require.NotNil(t, job.CPUTimeUsed)
	require.Equal(t, int64(4136), *job.CPUTimeUsed)
	require.NotNil(t, job.EndTime)
}

func TestSnapshotSurvivesDeadQueueSource(t *testing.T) {
	collector := testCollector(t, &stubSource{
		queueErr: models.NewBaseError("squeue exploded").WithCode(models.SourceUnavailable),
		acct:     completedMainRow,
	})

	job, err := collector.Snapshot(context.Background(), "12345")
	require.NoError(t, err)
	require.Equal(t, models.JobStateCompleted, job.State)
}

func TestSnapshotDegradesWithoutLiveStats(t *testing.T) {
	collector := testCollector(t, &stubSource{
		queue:   runningQueueRow,
		liveErr: models.NewBaseError("sstat exploded").WithCode(models.SourceUnavailable),
	})

	job, err := collector.Snapshot(context.Background(), "12345")
	require.NoError(t, err)
	require.Equal(t, models.JobStateRunning, job.State)
	require.Nil(t, job.CPUTimeUsed)
	require.Nil(t, job.MemoryUsedPeak)
}

func TestSnapshotUnknownJob(t *testing.T) {
	collector := testCollector(t, &stubSource{})

	_, err := collector.Snapshot(context.Background(), "99999")
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.NotFound))
}

func TestSnapshotJobMissingFromAccountingRows(t *testing.T) {
	collector := testCollector(t, &stubSource{acct: completedMainRow})

	_, err := collector.Snapshot(context.Background(), "54321")
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.NotFound))
}

func TestParseQueueRowRejectsShortRow(t *testing.T) {
	_, err := parseQueueRow("a|b|c", "12345", time.Now())
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.MissingField))
}

func TestParseRequestedMemoryPerCPU(t *testing.T) {
	require.Equal(t, uint64(48*100*1024*1024), parseRequestedMemory("100Mc", 2, 48))
	require.Equal(t, uint64(2*4000*1024*1024), parseRequestedMemory("4000Mn", 2, 48))
	require.Equal(t, uint64(16*1024*1024*1024), parseRequestedMemory("16G", 2, 48))
	require.Equal(t, uint64(0), parseRequestedMemory("-", 2, 48))
}
