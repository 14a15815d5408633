package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/testhelpers"
)

func TestShowPrefixAndCdup(t *testing.T) {
	ctx := context.Background()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("sub/dir/file.md", "hello", "initial commit")
	})

	t.Run("at the root both are empty", func(t *testing.T) {
		prefix, err := git.ShowPrefix(ctx, scene.Dir)
		require.NoError(t, err)
		require.Empty(t, prefix)

		cdup, err := git.ShowCdup(ctx, scene.Dir)
		require.NoError(t, err)
		require.Empty(t, cdup)
		require.Equal(t, 0, git.CdupLevels(cdup))
	})

	t.Run("below the root they mirror each other", func(t *testing.T) {
		sub := filepath.Join(scene.Dir, "sub", "dir")

		prefix, err := git.ShowPrefix(ctx, sub)
		require.NoError(t, err)
		require.Equal(t, "sub/dir/", prefix)

		cdup, err := git.ShowCdup(ctx, sub)
		require.NoError(t, err)
		require.Equal(t, "../../", cdup)
		require.Equal(t, 2, git.CdupLevels(cdup))
	})

	t.Run("cdup fails outside a worktree", func(t *testing.T) {
		_, err := git.ShowCdup(ctx, t.TempDir())
		require.Error(t, err)
	})
}
