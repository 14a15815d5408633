package cmds

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

type fetchCmd struct {
	flags *pflag.FlagSet
}

func newFetchCmd() *fetchCmd {
	return &fetchCmd{flags: newFlagSet("fetch")}
}

func (c *fetchCmd) Name() string          { return "fetch" }
func (c *fetchCmd) Aliases() []string     { return nil }
func (c *fetchCmd) Synopsis() string      { return "import new TFS changesets onto the remote's tracking ref" }
func (c *fetchCmd) Usage() string         { return "fetch [-i <remote>]" }
func (c *fetchCmd) RequiresRepo() bool    { return true }
func (c *fetchCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *fetchCmd) Run(ctx context.Context, g *runtime.Globals, _ []string) (int, error) {
	remote, err := resolveRemote(ctx, g)
	if err != nil {
		return ExitFailure, err
	}

	client, err := remoteClient(ctx, remote)
	if err != nil {
		return ExitFailure, err
	}

	fetcher := tfs.NewFetcher(g.Repository, client, remote, g.Authors, g.Splog)
	imported, err := fetcher.Fetch(ctx)
	if err != nil {
		return ExitFailure, err
	}
	if imported > 0 {
		g.Splog.Info("fetched %d changesets from tfs remote %s", imported, remote.Id)
	}
	return ExitOK, nil
}
