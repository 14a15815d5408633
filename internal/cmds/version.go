package cmds

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
)

type versionCmd struct {
	flags *pflag.FlagSet
}

func newVersionCmd() *versionCmd {
	return &versionCmd{flags: newFlagSet("version")}
}

func (c *versionCmd) Name() string          { return "version" }
func (c *versionCmd) Aliases() []string     { return nil }
func (c *versionCmd) Synopsis() string      { return "show version information" }
func (c *versionCmd) Usage() string         { return "version" }
func (c *versionCmd) RequiresRepo() bool    { return false }
func (c *versionCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *versionCmd) Run(_ context.Context, g *runtime.Globals, _ []string) (int, error) {
	fmt.Printf("%s\n", FormatVersion(g.Build))
	return ExitOK, nil
}

// FormatVersion renders the version line shown by `git tfs version` and
// the --version flag.
func FormatVersion(build runtime.BuildInfo) string {
	return fmt.Sprintf("git-tfs version %s (%s, built %s)", build.Version, build.Commit, build.Date)
}
