// Package testhelpers provides git repository fixtures for git-tfs tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a git repository under test
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new git repository in dir using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Configure git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory.
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	return cmd.Run()
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed
// output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %v failed: %w", args, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChangeAndCommit writes content to a file and commits it with the
// given message.
func (r *GitRepo) CreateChangeAndCommit(file, content, message string) error {
	path := filepath.Join(r.Dir, file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", "--", file); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", message)
}

// CommitWithTfsId commits an empty change whose message carries a
// git-tfs-id trailer for serverURL/serverPath at the given changeset.
func (r *GitRepo) CommitWithTfsId(subject, serverURL, serverPath string, changeset int) error {
	message := fmt.Sprintf("%s\n\ngit-tfs-id: [%s]%s;C%d", subject, serverURL, serverPath, changeset)
	return r.RunGitCommand("commit", "--allow-empty", "-m", message)
}

// SetTfsRemoteConfig writes a tfs-remote entry into the repository's git
// config.
func (r *GitRepo) SetTfsRemoteConfig(id, url, repository string) error {
	if err := r.RunGitCommand("config", fmt.Sprintf("tfs-remote.%s.url", id), url); err != nil {
		return err
	}
	return r.RunGitCommand("config", fmt.Sprintf("tfs-remote.%s.repository", id), repository)
}

// CurrentBranchName returns the branch HEAD points at
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("symbolic-ref", "--short", "HEAD")
}

// HeadSha returns the commit id of HEAD
func (r *GitRepo) HeadSha() (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "HEAD")
}
