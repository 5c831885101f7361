//go:build unit || !integration

package sessioncard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/logger"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/render"
)

type testCard struct {
	Title string `json:"title"`
}

func (c testCard) Document() *render.Document {
	return &render.Document{Title: c.Title}
}

func newTestStore(t *testing.T) (*Store, config.DashboardConfig) {
	t.Helper()
	logger.ConfigureTestLogging(t)
	cfg := config.Default().Dashboard
	cfg.DataRoot = t.TempDir()
	return NewStore(cfg), cfg
}

func addSession(t *testing.T, cfg config.DashboardConfig, user, session, jobID string) string {
	t.Helper()
	dir := filepath.Join(cfg.DataRoot, user, cfg.SessionDataDir, session)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "job_id"), []byte(jobID+"\n"), 0o644))
	return dir
}

func TestListSessions(t *testing.T) {
	store, cfg := newTestStore(t)
	addSession(t, cfg, "jdoe", "session-a", "12345")
	addSession(t, cfg, "jdoe", "session-b", "67890")

	// a session directory without a job_id file is skipped
	empty := filepath.Join(cfg.DataRoot, "jdoe", cfg.SessionDataDir, "session-c")
	require.NoError(t, os.MkdirAll(empty, 0o755))

	sessions, err := store.ListSessions("jdoe")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	jobIDs := []string{sessions[0].JobID, sessions[1].JobID}
	require.ElementsMatch(t, []string{"12345", "67890"}, jobIDs)
}

func TestListSessionsNoUserDirectory(t *testing.T) {
	store, _ := newTestStore(t)

	sessions, err := store.ListSessions("ghost")
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestFindSessionForJob(t *testing.T) {
	store, cfg := newTestStore(t)
	want := addSession(t, cfg, "jdoe", "session-a", "12345")
	addSession(t, cfg, "jdoe", "session-b", "67890")

	session, err := store.FindSessionForJob("jdoe", "12345")
	require.NoError(t, err)
	require.Equal(t, want, session.Path)
	require.Equal(t, "12345", session.JobID)

	_, err = store.FindSessionForJob("jdoe", "99999")
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.NotFound))
}

func TestUpdateCardWritesInfoHTML(t *testing.T) {
	store, cfg := newTestStore(t)
	dir := addSession(t, cfg, "jdoe", "session-a", "12345")

	session := Session{Path: dir, JobID: "12345"}
	require.NoError(t, store.UpdateCard(session, testCard{Title: "Job 12345"}))

	raw, err := os.ReadFile(filepath.Join(dir, "info.html"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), "Job 12345"))
	require.True(t, strings.Contains(string(raw), "<!DOCTYPE html>"))
}

func TestUpdateCardUnwritableTarget(t *testing.T) {
	store, _ := newTestStore(t)

	session := Session{Path: filepath.Join(t.TempDir(), "missing"), JobID: "12345"}
	err := store.UpdateCard(session, testCard{Title: "Job 12345"})
	require.Error(t, err)
	require.True(t, models.HasCode(err, models.OutputWriteFailed))
}
