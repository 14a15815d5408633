package cmds

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/git"
	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

// initCmd creates (or reuses) a git repository and configures a tfs-remote
// in it. It does not fetch anything.
type initCmd struct {
	flags       *pflag.FlagSet
	username    string
	ignorePaths string
}

func newInitCmd() *initCmd {
	c := &initCmd{}
	c.flags = newFlagSet("init")
	c.flags.StringVar(&c.username, "username", "", "TFS username stored in the remote configuration")
	c.flags.StringVar(&c.ignorePaths, "ignore-paths", "", "regex of server paths to skip when fetching")
	return c
}

func (c *initCmd) Name() string          { return "init" }
func (c *initCmd) Aliases() []string     { return nil }
func (c *initCmd) Synopsis() string      { return "initialize a git repository tracking a TFS server path" }
func (c *initCmd) Usage() string         { return "init <tfs-url> <repository-path> [directory]" }
func (c *initCmd) RequiresRepo() bool    { return false }
func (c *initCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *initCmd) Run(ctx context.Context, g *runtime.Globals, args []string) (int, error) {
	if len(args) < 2 || len(args) > 3 {
		return ExitFailure, fmt.Errorf("usage: git tfs %s", c.Usage())
	}
	serverURL, serverPath := args[0], args[1]

	dir := "."
	if len(args) == 3 {
		dir = args[2]
	}

	repo, err := ensureRepository(ctx, dir)
	if err != nil {
		return ExitFailure, err
	}
	g.Repository = repo

	existing, err := tfs.RemoteById(ctx, repo, g.RemoteId)
	if err != nil {
		return ExitFailure, err
	}
	if existing != nil {
		return ExitFailure, fmt.Errorf("tfs remote %q already exists in this repository", g.RemoteId)
	}

	remote := &tfs.Remote{
		Id:          g.RemoteId,
		URL:         serverURL,
		Repository:  serverPath,
		Username:    c.username,
		IgnorePaths: c.ignorePaths,
	}
	if err := tfs.SaveRemote(ctx, repo, remote); err != nil {
		return ExitFailure, err
	}

	g.Splog.Info("initialized tfs remote %s tracking %s%s", remote.Id, remote.URL, remote.Repository)
	return ExitOK, nil
}

// ensureRepository opens the repository containing dir, running git init
// there first when none exists.
func ensureRepository(ctx context.Context, dir string) (*git.Repository, error) {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	repo, err := git.OpenRepository(dir)
	if err == nil {
		return repo, nil
	}

	if _, err := git.NewCommandRunner(dir).Run(ctx, "init"); err != nil {
		return nil, err
	}
	return git.OpenRepository(dir)
}
