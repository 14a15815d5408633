// Package runtime provides the per-invocation state threaded through the
// git-tfs bootstrap pipeline and into command execution.
package runtime

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/output"
	"github.com/gius/git-tfs/internal/tfs"
)

// BuildInfo carries the version information stamped into the binary
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Globals is the process context for one git-tfs invocation. It is created
// once per run, populated stage by stage, and read by the executed command.
type Globals struct {
	// Repository location
	GitDir          string
	GitDirSetByUser bool
	Repository      *git.Repository
	RelativePrefix  string

	// Remote selection
	RemoteId          string
	RemoteIdSetByUser bool
	AutoDetectRemote  bool
	ResolvedRemote    *tfs.Remote

	// Identity map
	AuthorsFilePath  string
	AuthorsSetByUser bool
	Authors          *tfs.AuthorMap

	// Dispatch flags
	ShowHelp    bool
	ShowVersion bool

	Splog *output.Splog
	Build BuildInfo
}

// NewGlobals creates the process context with defaults and environment
// overrides applied.
func NewGlobals(build BuildInfo) *Globals {
	g := &Globals{
		GitDir:   git.GitDirName,
		RemoteId: tfs.DefaultRemoteId,
		Authors:  tfs.EmptyAuthorMap(),
		Splog:    output.NewSplog(),
		Build:    build,
	}
	if gitDir := os.Getenv("GIT_DIR"); gitDir != "" {
		g.GitDir = gitDir
		g.GitDirSetByUser = true
	}
	if authors := os.Getenv("GIT_TFS_AUTHORS"); authors != "" {
		g.AuthorsFilePath = authors
		g.AuthorsSetByUser = true
	}
	return g
}

// AddFlags registers the global flags shared by every command
func (g *Globals) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&g.RemoteId, "tfs-remote", "i", g.RemoteId, "the tfs-remote id to operate on")
	fs.BoolVarP(&g.AutoDetectRemote, "auto-tfs-remote", "I", false, "detect the tfs-remote from repository history")
	fs.StringVar(&g.AuthorsFilePath, "authors", g.AuthorsFilePath, "path to an authors file mapping TFS logins to git identities")
	fs.BoolVarP(&g.ShowHelp, "help", "h", false, "show help for the command")
	fs.BoolVar(&g.ShowVersion, "version", false, "show version information")
}

// DefaultAuthorsPath returns the conventional cached authors file path, or
// "" when no repository was resolved.
func (g *Globals) DefaultAuthorsPath() string {
	if g.Repository == nil {
		return ""
	}
	return filepath.Join(g.Repository.GitDir(), tfs.AuthorsFileName)
}

// LogFilePath returns where the debug log should go for this run, or ""
// when the run has no repository to anchor it to.
func (g *Globals) LogFilePath() string {
	if path := os.Getenv("GIT_TFS_LOG"); path != "" {
		return path
	}
	if g.Repository == nil {
		return ""
	}
	return filepath.Join(g.Repository.GitDir(), "git-tfs.log")
}

// AttachLogFile upgrades the console logger to one that also writes the
// rotated debug log. Called once the repository is resolved.
func (g *Globals) AttachLogFile() {
	path := g.LogFilePath()
	if path == "" {
		return
	}
	splog, err := output.NewSplogWithFile(path)
	if err != nil {
		g.Splog.Debug("debug log unavailable: %v", err)
		return
	}
	g.Splog = splog
}

// Release tears down every scoped resource acquired during the run. It is
// safe to call on every exit path.
func (g *Globals) Release() {
	if g.Splog != nil {
		_ = g.Splog.Close()
	}
}
