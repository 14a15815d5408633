package cmds

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

// bootstrapCmd turns remote associations found in commit metadata into
// tfs-remote configuration, so that a repository cloned over plain git can
// talk to TFS again.
type bootstrapCmd struct {
	flags *pflag.FlagSet
}

func newBootstrapCmd() *bootstrapCmd {
	return &bootstrapCmd{flags: newFlagSet("bootstrap")}
}

func (c *bootstrapCmd) Name() string          { return "bootstrap" }
func (c *bootstrapCmd) Aliases() []string     { return nil }
func (c *bootstrapCmd) Synopsis() string      { return "configure tfs-remotes found in commit metadata" }
func (c *bootstrapCmd) Usage() string         { return "bootstrap" }
func (c *bootstrapCmd) RequiresRepo() bool    { return true }
func (c *bootstrapCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *bootstrapCmd) Run(ctx context.Context, g *runtime.Globals, _ []string) (int, error) {
	configured, err := tfs.AllRemotes(ctx, g.Repository)
	if err != nil {
		return ExitFailure, err
	}

	entries, err := tfs.AllRemotesFromHistory(g.Repository, "", configured)
	if err != nil {
		return ExitFailure, err
	}
	if len(entries) == 0 {
		g.Splog.Info("no tfs metadata found in history; nothing to bootstrap")
		return ExitOK, nil
	}

	bootstrapped := 0
	for _, entry := range entries {
		if !entry.Remote.IsDerived {
			g.Splog.Info("tfs remote %s is already configured", entry.Remote.Id)
			continue
		}
		entry.Remote.IsDerived = false
		if err := tfs.SaveRemote(ctx, g.Repository, entry.Remote); err != nil {
			return ExitFailure, err
		}
		g.Splog.Info("bootstrapped tfs remote %s -> %s%s (found at %s)",
			entry.Remote.Id, entry.Remote.URL, entry.Remote.Repository, entry.Commit[:12])
		bootstrapped++
	}

	if bootstrapped == 0 {
		g.Splog.Info("all remotes in history are already configured")
	}
	return ExitOK, nil
}
