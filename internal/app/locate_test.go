package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/testhelpers"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLocateRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("opens the repository at the current directory", func(t *testing.T) {
		testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("readme.md", "hello", "initial commit")
		})

		var out bytes.Buffer
		g := newTestGlobals(&out)

		require.NoError(t, locateRepository(ctx, g))
		require.NotNil(t, g.Repository)
		require.NotEmpty(t, g.GitDir)
	})

	t.Run("walks up from a subdirectory and changes into the root", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("sub/dir/file.md", "hello", "initial commit")
		})
		chdir(t, filepath.Join(scene.Dir, "sub", "dir"))

		var out bytes.Buffer
		g := newTestGlobals(&out)

		require.NoError(t, locateRepository(ctx, g))
		require.NotNil(t, g.Repository)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		resolvedCwd, err := filepath.EvalSymlinks(cwd)
		require.NoError(t, err)
		resolvedRoot, err := filepath.EvalSymlinks(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, resolvedRoot, resolvedCwd)
	})

	t.Run("fails outside any repository", func(t *testing.T) {
		chdir(t, t.TempDir())

		var out bytes.Buffer
		g := newTestGlobals(&out)

		err := locateRepository(ctx, g)
		require.ErrorIs(t, err, gitfserrors.ErrRepositoryNotFound)
	})

	t.Run("honors an explicit control directory", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("readme.md", "hello", "initial commit")
		})
		chdir(t, t.TempDir())

		var out bytes.Buffer
		g := newTestGlobals(&out)
		g.GitDir = filepath.Join(scene.Dir, git.GitDirName)
		g.GitDirSetByUser = true

		require.NoError(t, locateRepository(ctx, g))
		require.NotNil(t, g.Repository)
	})

	t.Run("an invalid explicit control directory fails without walking", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("readme.md", "hello", "initial commit")
		})
		// The current directory is a perfectly good repository; the explicit
		// override must still win.
		chdir(t, scene.Dir)

		var out bytes.Buffer
		g := newTestGlobals(&out)
		g.GitDir = filepath.Join(scene.Dir, "does-not-exist")
		g.GitDirSetByUser = true

		err := locateRepository(ctx, g)
		require.ErrorIs(t, err, gitfserrors.ErrRepositoryNotFound)
	})
}

func TestProbePrefix(t *testing.T) {
	ctx := context.Background()

	t.Run("records the prefix below the repository root", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("sub/dir/file.md", "hello", "initial commit")
		})
		chdir(t, filepath.Join(scene.Dir, "sub", "dir"))

		var out bytes.Buffer
		g := newTestGlobals(&out)

		probePrefix(ctx, g)
		require.Equal(t, "sub/dir/", g.RelativePrefix)
	})

	t.Run("stays empty outside a repository", func(t *testing.T) {
		chdir(t, t.TempDir())

		var out bytes.Buffer
		g := newTestGlobals(&out)

		probePrefix(ctx, g)
		require.Empty(t, g.RelativePrefix)
	})
}
