package tfs

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/output"
)

// Checkin sends committed local work back to the server as a single
// changeset.
type Checkin struct {
	repo   *git.Repository
	client *Client
	remote *Remote
	splog  *output.Splog
}

// NewCheckin creates a Checkin for the given remote
func NewCheckin(repo *git.Repository, client *Client, remote *Remote, splog *output.Splog) *Checkin {
	return &Checkin{
		repo:   repo,
		client: client,
		remote: remote,
		splog:  splog,
	}
}

// Run collects everything committed on HEAD since the last imported
// changeset and checks it in. Returns the new changeset id.
func (c *Checkin) Run(ctx context.Context, comment string) (int, error) {
	entry, err := RemoteFromHistory(c.repo, "", []*Remote{c.remote})
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, fmt.Errorf("no tfs metadata found in history; fetch from remote %q first", c.remote.Id)
	}

	changes, err := c.pendingChanges(ctx, entry.Commit)
	if err != nil {
		return 0, err
	}
	if len(changes) == 0 {
		return 0, fmt.Errorf("nothing to check in: HEAD matches C%d", entry.Ref.Changeset)
	}

	if comment == "" {
		comment, err = c.defaultComment(ctx, entry.Commit)
		if err != nil {
			return 0, err
		}
	}

	changeset, err := c.client.CreateChangeset(ctx, CreateChangesetRequest{
		Comment: comment,
		Changes: changes,
	})
	if err != nil {
		return 0, err
	}

	c.splog.Info("checked in C%d: %s", changeset.ChangesetId, comment)
	return changeset.ChangesetId, nil
}

// pendingChanges diffs the last synced commit against HEAD and converts
// each file change into a TFVC pending change.
func (c *Checkin) pendingChanges(ctx context.Context, base string) ([]PendingChange, error) {
	lines, err := c.repo.Runner().RunLines(ctx, "diff-tree", "-r", "--name-status", "--no-commit-id", base, "HEAD")
	if err != nil {
		return nil, err
	}

	var changes []PendingChange
	for _, line := range lines {
		status, file, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		serverPath := path.Join(c.remote.Repository, file)

		var change PendingChange
		switch status[0] {
		case 'A':
			change = PendingChange{ChangeType: "add", ServerPath: serverPath}
		case 'M':
			change = PendingChange{ChangeType: "edit", ServerPath: serverPath}
		case 'D':
			changes = append(changes, PendingChange{ChangeType: "delete", ServerPath: serverPath})
			continue
		default:
			return nil, fmt.Errorf("unsupported change %q for %s", status, file)
		}

		content, err := c.repo.Runner().RunRaw(ctx, "show", "HEAD:"+file)
		if err != nil {
			return nil, err
		}
		change.Content = content
		changes = append(changes, change)
	}
	return changes, nil
}

// defaultComment joins the subjects of the commits being checked in
func (c *Checkin) defaultComment(ctx context.Context, base string) (string, error) {
	subjects, err := c.repo.Runner().RunLines(ctx, "log", "--format=%s", "--reverse", base+"..HEAD")
	if err != nil {
		return "", err
	}
	return strings.Join(subjects, "; "), nil
}
