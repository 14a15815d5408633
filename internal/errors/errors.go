// Package errors provides sentinel errors and custom error types for git-tfs.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for bootstrap-stage failures
var (
	// ErrRepositoryNotFound indicates that no valid git repository could be located
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrConfigConflict indicates that mutually exclusive options were set together
	ErrConfigConflict = errors.New("conflicting options")

	// ErrNoRemoteDefined indicates that remote auto-detection found no tfs-remote configuration
	ErrNoRemoteDefined = errors.New("no tfs remotes defined in this repository!")

	// ErrAmbiguousRemote indicates that auto-detection cannot choose between several tfs-remotes
	ErrAmbiguousRemote = errors.New("ambiguous tfs remote")

	// ErrIdentityMapUnreadable indicates that an authors file could not be parsed
	ErrIdentityMapUnreadable = errors.New("authors file unreadable")
)

// RepositoryNotFoundError reports the paths that were probed for a .git directory
type RepositoryNotFoundError struct {
	Paths []string
}

func (e *RepositoryNotFoundError) Error() string {
	if len(e.Paths) == 0 {
		return "no git repository found"
	}
	return fmt.Sprintf("no git repository found (looked in %s)", strings.Join(e.Paths, ", "))
}

// Is returns true if the target error is ErrRepositoryNotFound
func (e *RepositoryNotFoundError) Is(target error) bool {
	return target == ErrRepositoryNotFound
}

// NewRepositoryNotFoundError creates a new RepositoryNotFoundError
func NewRepositoryNotFoundError(paths ...string) *RepositoryNotFoundError {
	return &RepositoryNotFoundError{Paths: paths}
}

// AmbiguousRemoteError lists the candidate tfs-remote ids the user must choose between
type AmbiguousRemoteError struct {
	RemoteIds []string
}

func (e *AmbiguousRemoteError) Error() string {
	return fmt.Sprintf("more than one tfs remote is configured (%s); use -i to pick one",
		strings.Join(e.RemoteIds, ", "))
}

// Is returns true if the target error is ErrAmbiguousRemote
func (e *AmbiguousRemoteError) Is(target error) bool {
	return target == ErrAmbiguousRemote
}

// NewAmbiguousRemoteError creates a new AmbiguousRemoteError
func NewAmbiguousRemoteError(remoteIds []string) *AmbiguousRemoteError {
	return &AmbiguousRemoteError{RemoteIds: remoteIds}
}

// IdentityMapError wraps a read or parse failure for an authors file
type IdentityMapError struct {
	Path string
	Err  error
}

func (e *IdentityMapError) Error() string {
	return fmt.Sprintf("error parsing authors file %s: %v", e.Path, e.Err)
}

func (e *IdentityMapError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrIdentityMapUnreadable
func (e *IdentityMapError) Is(target error) bool {
	return target == ErrIdentityMapUnreadable
}

// NewIdentityMapError creates a new IdentityMapError
func NewIdentityMapError(path string, err error) *IdentityMapError {
	return &IdentityMapError{Path: path, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// TfsRequestError represents a failed request against the TFS server
type TfsRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *TfsRequestError) Error() string {
	msg := fmt.Sprintf("tfs request failed: %s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += fmt.Sprintf("\n%s", e.Body)
	}
	return msg
}
