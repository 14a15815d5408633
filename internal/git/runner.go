// Package git provides a wrapper around git commands and go-git for
// repository operations.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner rooted at workingDir.
// An empty workingDir runs commands in the process's current directory.
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// SetWorkingDir sets the working directory for subsequent commands.
func (r *CommandRunner) SetWorkingDir(dir string) {
	r.workingDir = dir
}

// WorkingDir returns the current working directory setting.
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a git command and returns its trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", nil, true, args...)
}

// RunRaw executes a git command and returns the untrimmed output
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", nil, false, args...)
}

// RunLines executes a git command and returns its output split into lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// RunWithInput executes a git command feeding input on stdin
func (r *CommandRunner) RunWithInput(ctx context.Context, input string, args ...string) (string, error) {
	return r.runInternal(ctx, input, nil, true, args...)
}

// RunWithEnv executes a git command with additional environment variables
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return r.runInternal(ctx, "", env, true, args...)
}

// RunWithInputEnv executes a git command with stdin input and additional
// environment variables
func (r *CommandRunner) RunWithInputEnv(ctx context.Context, input string, env []string, args ...string) (string, error) {
	return r.runInternal(ctx, input, env, true, args...)
}

func (r *CommandRunner) runInternal(ctx context.Context, input string, env []string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", gitfserrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", gitfserrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}
