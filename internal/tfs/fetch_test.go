package tfs_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/output"
	"github.com/gius/git-tfs/internal/tfs"
	"github.com/gius/git-tfs/testhelpers"
)

// fakeCollection serves a tiny TFVC project with two changesets: C5 adds
// readme.md, C6 rewrites it and adds src/app.c.
func fakeCollection(t *testing.T) *httptest.Server {
	t.Helper()

	contents := map[string]string{
		"5:$/Proj/readme.md": "hello\n",
		"6:$/Proj/readme.md": "hello world\n",
		"6:$/Proj/src/app.c": "int main() { return 0; }\n",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/_apis/tfvc/changesets", func(w http.ResponseWriter, r *http.Request) {
		fromId, _ := strconv.Atoi(r.URL.Query().Get("searchCriteria.fromId"))
		var rows []string
		for _, cs := range []struct {
			id      int
			comment string
		}{{5, "add readme"}, {6, "rewrite readme, add app"}} {
			if cs.id < fromId {
				continue
			}
			rows = append(rows, fmt.Sprintf(
				`{"changesetId":%d,"author":{"displayName":"Anna","uniqueName":"DOMAIN\\adoe"},"createdDate":"2024-05-01T10:0%d:00Z","comment":"%s"}`,
				cs.id, cs.id, cs.comment))
		}
		fmt.Fprintf(w, `{"count":%d,"value":[%s]}`, len(rows), strings.Join(rows, ","))
	})
	mux.HandleFunc("/_apis/tfvc/changesets/5/changes", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"count":1,"value":[{"changeType":"add","item":{"path":"$/Proj/readme.md","version":5}}]}`)
	})
	mux.HandleFunc("/_apis/tfvc/changesets/6/changes", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"count":2,"value":[
			{"changeType":"edit","item":{"path":"$/Proj/readme.md","version":6}},
			{"changeType":"add","item":{"path":"$/Proj/src/app.c","version":6}}]}`)
	})
	mux.HandleFunc("/_apis/tfvc/items", func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("versionDescriptor.version") + ":" + r.URL.Query().Get("path")
		content, ok := contents[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, content)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	server := fakeCollection(t)

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("local.md", "local", "local commit")
	})

	repo, err := git.OpenRepository(scene.Dir)
	require.NoError(t, err)

	client, err := tfs.NewClient(server.URL)
	require.NoError(t, err)

	remote := &tfs.Remote{Id: "default", URL: server.URL, Repository: "$/Proj"}
	authors := tfs.EmptyAuthorMap()

	var out bytes.Buffer
	fetcher := tfs.NewFetcher(repo, client, remote, authors, output.NewSplogWriter(&out))

	imported, err := fetcher.Fetch(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, imported)

	t.Run("the tracking ref points at the last changeset", func(t *testing.T) {
		message, err := scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%B", remote.TrackingRef())
		require.NoError(t, err)
		require.Contains(t, message, "rewrite readme, add app")
		require.Contains(t, message, fmt.Sprintf("git-tfs-id: [%s]$/Proj;C6", server.URL))
	})

	t.Run("imported trees hold the server content", func(t *testing.T) {
		content, err := scene.Repo.RunGitCommandAndGetOutput("show", remote.TrackingRef()+":readme.md")
		require.NoError(t, err)
		require.Equal(t, "hello world", content)

		content, err = scene.Repo.RunGitCommandAndGetOutput("show", remote.TrackingRef()+":src/app.c")
		require.NoError(t, err)
		require.Equal(t, "int main() { return 0; }", content)
	})

	t.Run("unmapped authors keep their server identity", func(t *testing.T) {
		author, err := scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%an <%ae>", remote.TrackingRef())
		require.NoError(t, err)
		require.Equal(t, "Anna <DOMAIN\\adoe>", author)
	})

	t.Run("the user's branch and worktree are untouched", func(t *testing.T) {
		head, err := scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s", "HEAD")
		require.NoError(t, err)
		require.Equal(t, "local commit", head)

		status, err := scene.Repo.RunGitCommandAndGetOutput("status", "--porcelain")
		require.NoError(t, err)
		require.Empty(t, status)
	})

	t.Run("a second fetch finds nothing new", func(t *testing.T) {
		imported, err := fetcher.Fetch(ctx)
		require.NoError(t, err)
		require.Equal(t, 0, imported)
		require.Contains(t, out.String(), "up to date")
	})
}
