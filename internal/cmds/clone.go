package cmds

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

// cloneCmd is init plus a first fetch plus a checkout
type cloneCmd struct {
	flags       *pflag.FlagSet
	username    string
	ignorePaths string
	branch      string
}

func newCloneCmd() *cloneCmd {
	c := &cloneCmd{}
	c.flags = newFlagSet("clone")
	c.flags.StringVar(&c.username, "username", "", "TFS username stored in the remote configuration")
	c.flags.StringVar(&c.ignorePaths, "ignore-paths", "", "regex of server paths to skip when fetching")
	c.flags.StringVar(&c.branch, "branch", "main", "name of the local branch created on top of the imported history")
	return c
}

func (c *cloneCmd) Name() string          { return "clone" }
func (c *cloneCmd) Aliases() []string     { return nil }
func (c *cloneCmd) Synopsis() string      { return "clone a TFS server path into a new git repository" }
func (c *cloneCmd) Usage() string         { return "clone <tfs-url> <repository-path> [directory]" }
func (c *cloneCmd) RequiresRepo() bool    { return false }
func (c *cloneCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *cloneCmd) Run(ctx context.Context, g *runtime.Globals, args []string) (int, error) {
	if len(args) < 2 || len(args) > 3 {
		return ExitFailure, fmt.Errorf("usage: git tfs %s", c.Usage())
	}
	serverURL, serverPath := args[0], args[1]

	dir := path.Base(strings.TrimRight(serverPath, "/"))
	if len(args) == 3 {
		dir = args[2]
	}

	repo, err := ensureRepository(ctx, dir)
	if err != nil {
		return ExitFailure, err
	}
	g.Repository = repo

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

	client, err := remoteClient(ctx, remote)
	if err != nil {
		return ExitFailure, err
	}

	fetcher := tfs.NewFetcher(repo, client, remote, g.Authors, g.Splog)
	imported, err := fetcher.Fetch(ctx)
	if err != nil {
		return ExitFailure, err
	}
	if imported == 0 {
		return ExitFailure, fmt.Errorf("no changesets found at %s%s", serverURL, serverPath)
	}

	if _, err := repo.Runner().Run(ctx, "checkout", "-B", c.branch, remote.TrackingRef()); err != nil {
		return ExitFailure, err
	}

	g.Splog.Info("cloned %s%s into %s (%d changesets)", serverURL, serverPath, dir, imported)
	return ExitOK, nil
}
