package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/runtime"
)

// probePrefix records where the invocation started relative to the
// repository root, before any directory change. Outside a repository the
// prefix stays empty.
func probePrefix(ctx context.Context, g *runtime.Globals) {
	if prefix, err := git.ShowPrefix(ctx, "."); err == nil {
		g.RelativePrefix = prefix
	}
}

// locateRepository finds and validates the git control directory, walking
// up the directory tree when the current directory is inside a worktree
// but not at its root. On success the process working directory is the
// repository root and g.Repository is open.
func locateRepository(ctx context.Context, g *runtime.Globals) error {
	if g.GitDirSetByUser {
		// An explicit control directory must exist as given; no walking.
		info, err := os.Stat(g.GitDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%q is not a valid git repository: %w",
				g.GitDir, gitfserrors.NewRepositoryNotFoundError(g.GitDir))
		}
		repo, err := git.OpenRepository(g.GitDir)
		if err != nil {
			return fmt.Errorf("%q is not a valid git repository: %w", g.GitDir, err)
		}
		g.Repository = repo
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	if _, err := os.Stat(git.GitDirName); err != nil {
		cdup, err := git.ShowCdup(ctx, ".")
		if err != nil {
			return gitfserrors.NewRepositoryNotFoundError(filepath.Join(cwd, git.GitDirName))
		}

		root := filepath.Join(cwd, cdup)
		if _, err := os.Stat(filepath.Join(root, git.GitDirName)); err != nil {
			return gitfserrors.NewRepositoryNotFoundError(
				filepath.Join(cwd, git.GitDirName),
				filepath.Join(root, git.GitDirName))
		}
		if err := os.Chdir(root); err != nil {
			return err
		}
	}

	repo, err := git.OpenRepository(".")
	if err != nil {
		return fmt.Errorf("%w: %v", gitfserrors.ErrRepositoryNotFound, err)
	}
	g.Repository = repo
	g.GitDir = repo.GitDir()
	return nil
}
