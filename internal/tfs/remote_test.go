package tfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/tfs"
	"github.com/gius/git-tfs/testhelpers"
)

func TestAllRemotes(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty for a fresh repository", func(t *testing.T) {
		testhelpers.NewScene(t, nil)
		repo, err := git.OpenRepository(".")
		require.NoError(t, err)

		remotes, err := tfs.AllRemotes(ctx, repo)
		require.NoError(t, err)
		require.Empty(t, remotes)
	})

	t.Run("reads configured remotes sorted by id", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, scene.Repo.SetTfsRemoteConfig("second", "http://tfs/b", "$/B"))
		require.NoError(t, scene.Repo.SetTfsRemoteConfig("default", "http://tfs/a", "$/A"))

		repo, err := git.OpenRepository(".")
		require.NoError(t, err)

		remotes, err := tfs.AllRemotes(ctx, repo)
		require.NoError(t, err)
		require.Len(t, remotes, 2)
		require.Equal(t, "default", remotes[0].Id)
		require.Equal(t, "http://tfs/a", remotes[0].URL)
		require.Equal(t, "$/A", remotes[0].Repository)
		require.Equal(t, "second", remotes[1].Id)
		require.False(t, remotes[0].IsDerived)
	})
}

func TestSaveRemote(t *testing.T) {
	ctx := context.Background()
	testhelpers.NewScene(t, nil)

	repo, err := git.OpenRepository(".")
	require.NoError(t, err)

	saved := &tfs.Remote{
		Id:         "mine",
		URL:        "http://tfs:8080/tfs/DefaultCollection",
		Repository: "$/Proj/Trunk",
		Username:   "DOMAIN\\user",
	}
	require.NoError(t, tfs.SaveRemote(ctx, repo, saved))

	loaded, err := tfs.RemoteById(ctx, repo, "mine")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, saved.URL, loaded.URL)
	require.Equal(t, saved.Repository, loaded.Repository)
	require.Equal(t, saved.Username, loaded.Username)
}

func TestRemoteById(t *testing.T) {
	ctx := context.Background()
	scene := testhelpers.NewScene(t, nil)
	require.NoError(t, scene.Repo.SetTfsRemoteConfig("default", "http://tfs", "$/P"))

	repo, err := git.OpenRepository(".")
	require.NoError(t, err)

	remote, err := tfs.RemoteById(ctx, repo, "default")
	require.NoError(t, err)
	require.NotNil(t, remote)
	require.Equal(t, "refs/remotes/tfs/default", remote.TrackingRef())

	missing, err := tfs.RemoteById(ctx, repo, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}
