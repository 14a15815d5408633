package cmds

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

// cleanupCmd removes state left behind by interrupted fetches: private
// index files under the control directory, and tracking refs whose
// tfs-remote configuration is gone.
type cleanupCmd struct {
	flags *pflag.FlagSet
}

func newCleanupCmd() *cleanupCmd {
	return &cleanupCmd{flags: newFlagSet("cleanup")}
}

func (c *cleanupCmd) Name() string          { return "cleanup" }
func (c *cleanupCmd) Aliases() []string     { return nil }
func (c *cleanupCmd) Synopsis() string      { return "remove stale git-tfs working files and orphaned tracking refs" }
func (c *cleanupCmd) Usage() string         { return "cleanup" }
func (c *cleanupCmd) RequiresRepo() bool    { return true }
func (c *cleanupCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *cleanupCmd) Run(ctx context.Context, g *runtime.Globals, _ []string) (int, error) {
	stale, err := filepath.Glob(filepath.Join(g.Repository.GitDir(), "git-tfs-index-*"))
	if err != nil {
		return ExitFailure, err
	}

	removed := 0
	for _, file := range stale {
		if err := os.Remove(file); err != nil {
			g.Splog.Warn("could not remove %s: %v", file, err)
			continue
		}
		removed++
	}

	pruned, err := c.pruneOrphanedRefs(ctx, g)
	if err != nil {
		return ExitFailure, err
	}

	g.Splog.Info("removed %d stale working files, pruned %d orphaned tracking refs", removed, pruned)
	return ExitOK, nil
}

// pruneOrphanedRefs deletes refs under refs/remotes/tfs/ that no configured
// tfs-remote claims.
func (c *cleanupCmd) pruneOrphanedRefs(ctx context.Context, g *runtime.Globals) (int, error) {
	remotes, err := tfs.AllRemotes(ctx, g.Repository)
	if err != nil {
		return 0, err
	}
	configured := map[string]bool{}
	for _, remote := range remotes {
		configured[remote.TrackingRef()] = true
	}

	refs, err := g.Repository.Runner().RunLines(ctx, "for-each-ref", "--format=%(refname)", "refs/remotes/tfs/")
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" || configured[ref] {
			continue
		}
		if _, err := g.Repository.Runner().Run(ctx, "update-ref", "-d", ref); err != nil {
			g.Splog.Warn("could not delete %s: %v", ref, err)
			continue
		}
		g.Splog.Info("pruned %s", ref)
		pruned++
	}
	return pruned, nil
}
