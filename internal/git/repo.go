package git

import (
	"context"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Repository wraps a go-git repository together with the exec runner
// rooted at its worktree.
type Repository struct {
	*gogit.Repository
	root   string
	gitDir string
	runner *CommandRunner
}

// OpenRepository opens the git repository containing path.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if worktree, err := repo.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		root:       root,
		gitDir:     filepath.Join(root, GitDirName),
		runner:     NewCommandRunner(root),
	}, nil
}

// Root returns the worktree root of the repository
func (r *Repository) Root() string {
	return r.root
}

// GitDir returns the control directory of the repository
func (r *Repository) GitDir() string {
	return r.gitDir
}

// Runner returns the exec runner rooted at the repository
func (r *Repository) Runner() *CommandRunner {
	return r.runner
}

// HeadCommit returns the commit object at HEAD
func (r *Repository) HeadCommit() (*object.Commit, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return r.CommitObject(head.Hash())
}

// WalkHistory iterates commits reachable from ref (or HEAD when ref is
// empty) in breadth-first order, nearest commits first. The walk stops
// when visit returns false or an error.
func (r *Repository) WalkHistory(ref string, visit func(*object.Commit) (bool, error)) error {
	var from plumbing.Hash
	if ref == "" {
		head, err := r.Head()
		if err != nil {
			return fmt.Errorf("failed to resolve HEAD: %w", err)
		}
		from = head.Hash()
	} else {
		hash, err := r.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", ref, err)
		}
		from = *hash
	}

	iter, err := r.Log(&gogit.LogOptions{From: from, Order: gogit.LogOrderBSF})
	if err != nil {
		return fmt.Errorf("failed to walk history: %w", err)
	}
	defer iter.Close()

	return iter.ForEach(func(commit *object.Commit) error {
		keep, err := visit(commit)
		if err != nil {
			return err
		}
		if !keep {
			return storer.ErrStop
		}
		return nil
	})
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, "symbolic-ref", "--short", "HEAD")
}
