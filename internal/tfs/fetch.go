package tfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/output"
)

// Fetcher imports TFVC changesets as git commits onto a remote's tracking
// ref using plumbing commands against a private index, so the user's
// worktree and index are never touched.
type Fetcher struct {
	repo    *git.Repository
	client  *Client
	remote  *Remote
	authors *AuthorMap
	splog   *output.Splog
}

// NewFetcher creates a Fetcher for the given remote
func NewFetcher(repo *git.Repository, client *Client, remote *Remote, authors *AuthorMap, splog *output.Splog) *Fetcher {
	if authors == nil {
		authors = EmptyAuthorMap()
	}
	return &Fetcher{
		repo:    repo,
		client:  client,
		remote:  remote,
		authors: authors,
		splog:   splog,
	}
}

// Fetch imports every changeset newer than the last one on the tracking
// ref and returns the number of commits created.
func (f *Fetcher) Fetch(ctx context.Context) (int, error) {
	parent, lastChangeset, err := f.lastImported(ctx)
	if err != nil {
		return 0, err
	}

	changesets, err := f.client.GetChangesets(ctx, f.remote.Repository, lastChangeset+1)
	if err != nil {
		return 0, fmt.Errorf("failed to list changesets: %w", err)
	}
	if len(changesets) == 0 {
		f.splog.Info("tfs remote %s is up to date", f.remote.Id)
		return 0, nil
	}

	imported := 0
	for _, changeset := range changesets {
		if changeset.ChangesetId <= lastChangeset {
			continue
		}
		sha, err := f.importChangeset(ctx, changeset, parent)
		if err != nil {
			return imported, fmt.Errorf("failed to import C%d: %w", changeset.ChangesetId, err)
		}
		if _, err := f.repo.Runner().Run(ctx, "update-ref", f.remote.TrackingRef(), sha); err != nil {
			return imported, err
		}
		f.splog.Info("C%d = %s", changeset.ChangesetId, sha)
		parent = sha
		imported++
	}
	return imported, nil
}

// lastImported resolves the tracking ref and the changeset number recorded
// on its tip. A missing ref means nothing was imported yet.
func (f *Fetcher) lastImported(ctx context.Context) (sha string, changeset int, err error) {
	sha, err = f.repo.Runner().Run(ctx, "rev-parse", "--verify", "--quiet", f.remote.TrackingRef())
	if err != nil {
		return "", 0, nil
	}

	entry, err := RemoteFromHistory(f.repo, f.remote.TrackingRef(), []*Remote{f.remote})
	if err != nil {
		return "", 0, err
	}
	if entry == nil {
		return sha, 0, nil
	}
	return sha, entry.Ref.Changeset, nil
}

func (f *Fetcher) importChangeset(ctx context.Context, changeset Changeset, parent string) (string, error) {
	indexFile := filepath.Join(f.repo.GitDir(), fmt.Sprintf("git-tfs-index-%s", f.remote.Id))
	env := []string{"GIT_INDEX_FILE=" + indexFile}
	defer os.Remove(indexFile)

	runner := f.repo.Runner()
	if parent != "" {
		if _, err := runner.RunWithEnv(ctx, env, "read-tree", parent); err != nil {
			return "", err
		}
	} else if _, err := runner.RunWithEnv(ctx, env, "read-tree", "--empty"); err != nil {
		return "", err
	}

	changes, err := f.client.GetChangesetChanges(ctx, changeset.ChangesetId)
	if err != nil {
		return "", err
	}

	for _, change := range changes {
		rel, ok := f.relativePath(change.Item.Path)
		if !ok || change.Item.IsFolder {
			continue
		}
		if change.IsDelete() {
			if _, err := runner.RunWithEnv(ctx, env, "update-index", "--force-remove", "--", rel); err != nil {
				return "", err
			}
			continue
		}

		content, err := f.client.GetItemContent(ctx, change.Item.Path, changeset.ChangesetId)
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(content)
		content.Close()
		if err != nil {
			return "", err
		}

		blob, err := runner.RunWithInput(ctx, string(data), "hash-object", "-w", "--stdin")
		if err != nil {
			return "", err
		}
		cacheInfo := fmt.Sprintf("100644,%s,%s", blob, rel)
		if _, err := runner.RunWithEnv(ctx, env, "update-index", "--add", "--cacheinfo", cacheInfo); err != nil {
			return "", err
		}
	}

	tree, err := runner.RunWithEnv(ctx, env, "write-tree")
	if err != nil {
		return "", err
	}

	return f.commitTree(ctx, changeset, tree, parent)
}

func (f *Fetcher) commitTree(ctx context.Context, changeset Changeset, tree, parent string) (string, error) {
	identity, ok := f.authors.Lookup(changeset.Author.UniqueName)
	if !ok {
		identity = Identity{
			Name:  changeset.Author.DisplayName,
			Email: changeset.Author.UniqueName,
		}
	}

	when := changeset.CreatedDate.Format("2006-01-02T15:04:05Z07:00")
	env := []string{
		"GIT_AUTHOR_NAME=" + identity.Name,
		"GIT_AUTHOR_EMAIL=" + identity.Email,
		"GIT_AUTHOR_DATE=" + when,
		"GIT_COMMITTER_NAME=" + identity.Name,
		"GIT_COMMITTER_EMAIL=" + identity.Email,
		"GIT_COMMITTER_DATE=" + when,
	}

	message := strings.TrimSpace(changeset.Comment)
	if message == "" {
		message = fmt.Sprintf("Changeset %d", changeset.ChangesetId)
	}
	message += "\n\n" + FormatTrailer(ChangesetRef{
		ServerURL:  f.remote.URL,
		ServerPath: f.remote.Repository,
		Changeset:  changeset.ChangesetId,
	}) + "\n"

	args := []string{"commit-tree", tree}
	if parent != "" {
		args = append(args, "-p", parent)
	}
	return f.repo.Runner().RunWithInputEnv(ctx, message, env, args...)
}

// relativePath maps a TFVC server path to a path relative to the remote's
// root. Items outside the remote's subtree are skipped.
func (f *Fetcher) relativePath(serverPath string) (string, bool) {
	root := strings.TrimRight(f.remote.Repository, "/")
	if !strings.HasPrefix(strings.ToLower(serverPath), strings.ToLower(root)) {
		return "", false
	}
	rel := strings.TrimPrefix(serverPath[len(root):], "/")
	if rel == "" {
		return "", false
	}
	return path.Clean(rel), true
}
