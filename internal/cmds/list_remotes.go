package cmds

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/output"
	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

type listRemotesCmd struct {
	flags *pflag.FlagSet
}

func newListRemotesCmd() *listRemotesCmd {
	return &listRemotesCmd{flags: newFlagSet("list-remote-branches")}
}

func (c *listRemotesCmd) Name() string          { return "list-remote-branches" }
func (c *listRemotesCmd) Aliases() []string     { return []string{"remotes"} }
func (c *listRemotesCmd) Synopsis() string      { return "list configured tfs-remotes and their sync state" }
func (c *listRemotesCmd) Usage() string         { return "list-remote-branches" }
func (c *listRemotesCmd) RequiresRepo() bool    { return true }
func (c *listRemotesCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *listRemotesCmd) Run(ctx context.Context, g *runtime.Globals, _ []string) (int, error) {
	remotes, err := tfs.AllRemotes(ctx, g.Repository)
	if err != nil {
		return ExitFailure, err
	}
	if len(remotes) == 0 {
		g.Splog.Info("no tfs remotes are configured; run `git tfs init` or `git tfs bootstrap`")
		return ExitOK, nil
	}

	for _, remote := range remotes {
		fmt.Fprintf(os.Stdout, "%s %s%s%s\n",
			output.RemoteId(remote.Id), remote.URL, remote.Repository, c.syncState(ctx, g, remote))
	}
	return ExitOK, nil
}

func (c *listRemotesCmd) syncState(_ context.Context, g *runtime.Globals, remote *tfs.Remote) string {
	entry, err := tfs.RemoteFromHistory(g.Repository, remote.TrackingRef(), []*tfs.Remote{remote})
	if err != nil || entry == nil {
		return output.Dim(" (never fetched)")
	}
	return output.Dim(fmt.Sprintf(" (synced to C%d)", entry.Ref.Changeset))
}
