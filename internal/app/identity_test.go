package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
	"github.com/gius/git-tfs/testhelpers"
)

const sampleAuthors = "DOMAIN\\adoe = Anna Doe <anna@example.com>\nDOMAIN\\bsmith = Bob Smith <bob@example.com>\n"

func TestLoadIdentityMap(t *testing.T) {
	t.Run("does nothing without a repository or an explicit path", func(t *testing.T) {
		var out bytes.Buffer
		g := newTestGlobals(&out)

		require.NoError(t, loadIdentityMap(g))
		require.Equal(t, 0, g.Authors.Len())
	})

	t.Run("loads a user-specified authors file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "authors.txt")
		require.NoError(t, os.WriteFile(path, []byte(sampleAuthors), 0o644))

		var out bytes.Buffer
		g := newTestGlobals(&out)
		g.AuthorsFilePath = path
		g.AuthorsSetByUser = true

		require.NoError(t, loadIdentityMap(g))
		require.Equal(t, 2, g.Authors.Len())

		identity, ok := g.Authors.Lookup("DOMAIN\\adoe")
		require.True(t, ok)
		require.Equal(t, "Anna Doe", identity.Name)
	})

	t.Run("a missing user-specified file is fatal", func(t *testing.T) {
		var out bytes.Buffer
		g := newTestGlobals(&out)
		g.AuthorsFilePath = filepath.Join(t.TempDir(), "nope.txt")
		g.AuthorsSetByUser = true

		err := loadIdentityMap(g)
		require.ErrorIs(t, err, gitfserrors.ErrIdentityMapUnreadable)
	})

	t.Run("a missing conventional cache is silent", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)

		var out bytes.Buffer
		g := newTestGlobals(&out)
		openSceneRepository(t, g, scene)

		require.NoError(t, loadIdentityMap(g))
		require.Equal(t, 0, g.Authors.Len())
		require.Empty(t, out.String())
	})

	t.Run("a mangled conventional cache warns and continues", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)

		var out bytes.Buffer
		g := newTestGlobals(&out)
		openSceneRepository(t, g, scene)

		cache := g.DefaultAuthorsPath()
		require.NotEmpty(t, cache)
		require.NoError(t, os.WriteFile(cache, []byte("this is not an authors file"), 0o644))

		require.NoError(t, loadIdentityMap(g))
		require.Equal(t, 0, g.Authors.Len())
		require.Contains(t, out.String(), "warning:")
	})

	t.Run("loads the conventional cache when present", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)

		var out bytes.Buffer
		g := newTestGlobals(&out)
		openSceneRepository(t, g, scene)

		require.NoError(t, os.WriteFile(g.DefaultAuthorsPath(), []byte(sampleAuthors), 0o644))

		require.NoError(t, loadIdentityMap(g))
		require.Equal(t, 2, g.Authors.Len())
	})
}
