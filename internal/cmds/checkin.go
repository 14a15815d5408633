package cmds

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

type checkinCmd struct {
	flags   *pflag.FlagSet
	comment string
}

func newCheckinCmd() *checkinCmd {
	c := &checkinCmd{}
	c.flags = newFlagSet("checkin")
	c.flags.StringVarP(&c.comment, "comment", "m", "", "changeset comment (defaults to the subjects of the commits being checked in)")
	return c
}

func (c *checkinCmd) Name() string          { return "checkin" }
func (c *checkinCmd) Aliases() []string     { return []string{"ci"} }
func (c *checkinCmd) Synopsis() string      { return "check committed work in to TFS as a changeset" }
func (c *checkinCmd) Usage() string         { return "checkin [-m <comment>] [-i <remote>]" }
func (c *checkinCmd) RequiresRepo() bool    { return true }
func (c *checkinCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *checkinCmd) Run(ctx context.Context, g *runtime.Globals, _ []string) (int, error) {
	remote, err := resolveRemote(ctx, g)
	if err != nil {
		return ExitFailure, err
	}

	client, err := remoteClient(ctx, remote)
	if err != nil {
		return ExitFailure, err
	}

	checkin := tfs.NewCheckin(g.Repository, client, remote, g.Splog)
	if _, err := checkin.Run(ctx, c.comment); err != nil {
		return ExitFailure, err
	}

	g.Splog.Info("run `git tfs pull` to sync the new changeset back into git")
	return ExitOK, nil
}
