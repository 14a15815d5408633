package testhelpers

import (
	"os"
	"testing"
)

// Scene is a test fixture: a temporary directory holding a real git
// repository, with the process working directory moved inside it for the
// duration of the test.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	oldDir string
}

// SceneSetup is a function type for preparing a scene before the test body
// runs.
type SceneSetup func(*Scene) error

// NewScene creates a scene and registers its cleanup with t.Cleanup.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "git-tfs-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to create git repo: %v", err)
	}

	scene := &Scene{
		Dir:    tmpDir,
		Repo:   repo,
		oldDir: oldDir,
	}

	if err := os.Chdir(tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to change directory: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			os.Chdir(oldDir)
			os.RemoveAll(tmpDir)
			t.Fatalf("scene setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		}
	})

	return scene
}
