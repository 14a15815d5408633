package cmds

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

type pullCmd struct {
	flags  *pflag.FlagSet
	rebase bool
}

func newPullCmd() *pullCmd {
	c := &pullCmd{}
	c.flags = newFlagSet("pull")
	c.flags.BoolVarP(&c.rebase, "rebase", "r", false, "rebase the current branch onto the fetched history instead of merging")
	return c
}

func (c *pullCmd) Name() string          { return "pull" }
func (c *pullCmd) Aliases() []string     { return nil }
func (c *pullCmd) Synopsis() string      { return "fetch from TFS and merge into the current branch" }
func (c *pullCmd) Usage() string         { return "pull [-r] [-i <remote>]" }
func (c *pullCmd) RequiresRepo() bool    { return true }
func (c *pullCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *pullCmd) Run(ctx context.Context, g *runtime.Globals, _ []string) (int, error) {
	remote, err := resolveRemote(ctx, g)
	if err != nil {
		return ExitFailure, err
	}

	client, err := remoteClient(ctx, remote)
	if err != nil {
		return ExitFailure, err
	}

	fetcher := tfs.NewFetcher(g.Repository, client, remote, g.Authors, g.Splog)
	if _, err := fetcher.Fetch(ctx); err != nil {
		return ExitFailure, err
	}

	runner := g.Repository.Runner()
	if c.rebase {
		_, err = runner.Run(ctx, "rebase", remote.TrackingRef())
	} else {
		_, err = runner.Run(ctx, "merge", remote.TrackingRef())
	}
	if err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}
