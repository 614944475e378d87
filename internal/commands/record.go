package commands

import (
	"context"
	"time"

	"github.com/agrifaas/farmledger/internal/auditlog"
	"github.com/agrifaas/farmledger/internal/config"
	"github.com/agrifaas/farmledger/internal/gitops"
	"github.com/agrifaas/farmledger/internal/logger"
)

// mutation describes one change to a workspace for the audit log and the
// optional git commit.
type mutation struct {
	action   string
	details  string
	entryIDs []string
	message  string // commit message
}

// record commits the workspace when git.auto_commit is on, then appends one
// audit row per entry ID (or a single row when there are none). Failures are
// logged, not returned: the ledger change itself has already been stored.
func record(ctx context.Context, root string, cfg *config.Config, runID string, m mutation) string {
	log := logger.FromContext(ctx)

	var hash string
	if cfg.Git.AutoCommit && gitops.IsRepo(root) {
		author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
		h, err := gitops.CommitAll(ctx, root, m.message, author)
		if err != nil {
			log.Warn().Err(err).Msg("git commit failed")
		} else {
			hash = h
		}
	}

	now := time.Now().UTC()
	ids := m.entryIDs
	if len(ids) == 0 {
		ids = []string{""}
	}
	rows := make([]auditlog.Entry, len(ids))
	for i, entryID := range ids {
		rows[i] = auditlog.Entry{
			Timestamp:  now,
			RunID:      runID,
			Action:     m.action,
			Details:    m.details,
			EntryID:    entryID,
			CommitHash: hash,
		}
	}
	if err := auditlog.Append(root, rows); err != nil {
		log.Warn().Err(err).Msg("writing audit log failed")
	}
	log.Debug().Str("action", m.action).Str("commit", hash).Int("rows", len(rows)).Msg("mutation recorded")
	return hash
}
