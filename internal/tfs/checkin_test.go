package tfs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/output"
	"github.com/gius/git-tfs/internal/tfs"
	"github.com/gius/git-tfs/testhelpers"
)

type recordedCheckin struct {
	Comment string `json:"comment"`
	Changes []struct {
		ChangeType string `json:"changeType"`
		Item       struct {
			Path string `json:"path"`
		} `json:"item"`
		NewContent *struct {
			Content string `json:"content"`
		} `json:"newContent"`
	} `json:"changes"`
}

func TestCheckin(t *testing.T) {
	ctx := context.Background()

	var recorded recordedCheckin
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/_apis/tfvc/changesets", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recorded))
		fmt.Fprint(w, `{"changesetId":6,"comment":"recorded"}`)
	}))
	defer server.Close()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		// The synced baseline: C5 brought in readme.md and old.md.
		for file, content := range map[string]string{"readme.md": "hello\n", "old.md": "bye\n"} {
			if err := os.WriteFile(filepath.Join(s.Dir, file), []byte(content), 0o644); err != nil {
				return err
			}
		}
		if err := s.Repo.RunGitCommand("add", "."); err != nil {
			return err
		}
		message := fmt.Sprintf("import C5\n\ngit-tfs-id: [%s]$/Proj;C5", server.URL)
		if err := s.Repo.RunGitCommand("commit", "-m", message); err != nil {
			return err
		}

		// Local work on top: edit, add, delete.
		if err := os.WriteFile(filepath.Join(s.Dir, "readme.md"), []byte("hello world\n"), 0o644); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Join(s.Dir, "src"), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(s.Dir, "src", "app.c"), []byte("int main() { return 0; }\n"), 0o644); err != nil {
			return err
		}
		if err := s.Repo.RunGitCommand("rm", "-q", "old.md"); err != nil {
			return err
		}
		if err := s.Repo.RunGitCommand("add", "."); err != nil {
			return err
		}
		return s.Repo.RunGitCommand("commit", "-m", "local work")
	})

	repo, err := git.OpenRepository(scene.Dir)
	require.NoError(t, err)

	client, err := tfs.NewClient(server.URL)
	require.NoError(t, err)

	remote := &tfs.Remote{Id: "default", URL: server.URL, Repository: "$/Proj"}

	var out bytes.Buffer
	checkin := tfs.NewCheckin(repo, client, remote, output.NewSplogWriter(&out))

	changesetId, err := checkin.Run(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 6, changesetId)

	// The comment defaults to the subjects of the checked-in commits.
	require.Equal(t, "local work", recorded.Comment)
	require.Len(t, recorded.Changes, 3)

	byPath := map[string]int{}
	for i, change := range recorded.Changes {
		byPath[change.Item.Path] = i
	}

	edit := recorded.Changes[byPath["$/Proj/readme.md"]]
	require.Equal(t, "edit", edit.ChangeType)
	require.Equal(t, "hello world\n", edit.NewContent.Content)

	added := recorded.Changes[byPath["$/Proj/src/app.c"]]
	require.Equal(t, "add", added.ChangeType)
	require.Equal(t, "int main() { return 0; }\n", added.NewContent.Content)

	deleted := recorded.Changes[byPath["$/Proj/old.md"]]
	require.Equal(t, "delete", deleted.ChangeType)
	require.Nil(t, deleted.NewContent)

	require.Contains(t, out.String(), "checked in C6")
}

func TestCheckinNothingToDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CommitWithTfsId("import C5", server.URL, "$/Proj", 5)
	})

	repo, err := git.OpenRepository(scene.Dir)
	require.NoError(t, err)

	client, err := tfs.NewClient(server.URL)
	require.NoError(t, err)

	remote := &tfs.Remote{Id: "default", URL: server.URL, Repository: "$/Proj"}
	checkin := tfs.NewCheckin(repo, client, remote, output.NewSplogWriter(&bytes.Buffer{}))

	_, err = checkin.Run(context.Background(), "")
	require.ErrorContains(t, err, "nothing to check in")
}

func TestCheckinWithoutMetadata(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("readme.md", "hello", "plain commit")
	})

	repo, err := git.OpenRepository(scene.Dir)
	require.NoError(t, err)

	client, err := tfs.NewClient("http://tfs:8080/tfs")
	require.NoError(t, err)

	remote := &tfs.Remote{Id: "default", URL: "http://tfs:8080/tfs", Repository: "$/Proj"}
	checkin := tfs.NewCheckin(repo, client, remote, output.NewSplogWriter(&bytes.Buffer{}))

	_, err = checkin.Run(context.Background(), "")
	require.ErrorContains(t, err, "no tfs metadata")
}
