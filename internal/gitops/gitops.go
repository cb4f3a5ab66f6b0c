// Package gitops commits the refreshed administration file back to the
// workspace repository. Commits are local only; pushing is left to the
// surrounding CI job.
package gitops

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dead-hosts/launcher/internal/logfields"
)

const (
	defaultAuthorName  = "Dead-Hosts Launcher"
	defaultAuthorEmail = "launcher@dead-hosts.local"
)

// Client handles Git operations against the workspace repository.
type Client struct {
	workspaceDir string
	authorName   string
	authorEmail  string
}

// NewClient creates a Git client for the given workspace. The commit author
// is taken from GIT_NAME/GIT_EMAIL when set.
func NewClient(workspaceDir string) *Client {
	name := os.Getenv("GIT_NAME")
	if name == "" {
		name = defaultAuthorName
	}
	email := os.Getenv("GIT_EMAIL")
	if email == "" {
		email = defaultAuthorEmail
	}
	return &Client{workspaceDir: workspaceDir, authorName: name, authorEmail: email}
}

// CommitFile stages the given path (relative to the workspace) and commits it
// with the provided message. A workspace without pending changes is a no-op.
func (c *Client) CommitFile(relPath, message string) error {
	repo, err := git.PlainOpen(c.workspaceDir)
	if err != nil {
		return fmt.Errorf("failed to open workspace repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	if _, err := worktree.Add(relPath); err != nil {
		return fmt.Errorf("failed to stage %s: %w", relPath, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to read worktree status: %w", err)
	}
	if status.IsClean() {
		slog.Debug("Workspace is clean, nothing to commit", logfields.Path(c.workspaceDir))
		return nil
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  c.authorName,
			Email: c.authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", relPath, err)
	}

	slog.Info("Committed administration file",
		logfields.Path(relPath),
		slog.String("commit", hash.String()[:8]))
	return nil
}
