// Package sessioncard locates Open OnDemand interactive session
// directories and rewrites their info.html cards with job efficiency
// content. Each session directory carries a job_id file naming the
// scheduler job backing the session.
package sessioncard

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/render"
)

const (
	jobIDFile = "job_id"
	cardFile  = "info.html"
)

// Session is one dashboard session directory and the job it belongs to.
type Session struct {
	Path  string `json:"path"`
	JobID string `json:"job_id"`
}

// Store finds and updates session cards under the dashboard data root.
type Store struct {
	cfg config.DashboardConfig
}

func NewStore(cfg config.DashboardConfig) *Store {
	return &Store{cfg: cfg}
}

// UserSessionDir returns the directory holding one user's session
// directories.
func (s *Store) UserSessionDir(user string) string {
	return filepath.Join(s.cfg.DataRoot, user, s.cfg.SessionDataDir)
}

// ListSessions returns every session directory for the user that names
// a job. A missing user directory is an empty list, not an error:
// users without interactive sessions have no data root at all.
func (s *Store) ListSessions(user string) ([]Session, error) {
	root := s.UserSessionDir(user)
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		log.Debug().Str("path", root).Msg("no session directory for user")
		return nil, nil
	}
	if err != nil {
		return nil, models.NewBaseError("reading session directory %s", root).
			WithCode(models.SourceUnavailable).WithCause(err)
	}

	var sessions []Session
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		jobID, err := readJobID(dir)
		if err != nil {
			log.Debug().Err(err).Str("session", dir).Msg("skipping session without readable job_id")
			continue
		}
		sessions = append(sessions, Session{Path: dir, JobID: jobID})
	}
	return sessions, nil
}

// FindSessionForJob returns the session directory backing the given
// job, or a NotFound error when the user has no session for it.
func (s *Store) FindSessionForJob(user, jobID string) (*Session, error) {
	sessions, err := s.ListSessions(user)
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if sess.JobID == jobID {
			return &sess, nil
		}
	}
	return nil, models.NewBaseError("no dashboard session found for job %s", jobID).
		WithCode(models.NotFound).
		WithHint("interactive sessions record their job in a job_id file; batch jobs have no session card")
}

// UpdateCard replaces the session's info.html with the HTML rendering
// of the report.
func (s *Store) UpdateCard(sess Session, r render.Renderable) error {
	target := filepath.Join(sess.Path, cardFile)
	if err := render.RenderToFile(target, render.HTMLFormat, r, nil); err != nil {
		return err
	}
	log.Debug().Str("card", target).Msg("session card updated")
	return nil
}

func readJobID(dir string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, jobIDFile))
	if err != nil {
		return "", err
	}
	jobID := strings.TrimSpace(string(raw))
	if jobID == "" {
		return "", models.NewBaseError("empty job_id file in %s", dir).
			WithCode(models.MissingField)
	}
	return jobID, nil
}
