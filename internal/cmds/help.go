package cmds

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/output"
	"github.com/gius/git-tfs/internal/runtime"
)

// helpCmd renders usage. It is also the default command when no argument
// names one.
type helpCmd struct {
	registry *Registry
	flags    *pflag.FlagSet
}

func newHelpCmd(registry *Registry) *helpCmd {
	return &helpCmd{
		registry: registry,
		flags:    newFlagSet("help"),
	}
}

func (c *helpCmd) Name() string          { return "help" }
func (c *helpCmd) Aliases() []string     { return nil }
func (c *helpCmd) Synopsis() string      { return "show help for git-tfs or a command" }
func (c *helpCmd) Usage() string         { return "help [command]" }
func (c *helpCmd) RequiresRepo() bool    { return false }
func (c *helpCmd) Flags() *pflag.FlagSet { return c.flags }

func (c *helpCmd) Run(_ context.Context, g *runtime.Globals, args []string) (int, error) {
	if len(args) > 0 {
		if cmd, ok := c.registry.Lookup(args[0]); ok {
			RenderCommandHelp(os.Stdout, g, cmd)
			return ExitOK, nil
		}
		fmt.Fprintf(os.Stdout, "unknown command %q\n\n", args[0])
	}
	RenderGlobalHelp(os.Stdout, g, c.registry)
	return ExitOK, nil
}

// RenderGlobalHelp prints the command table and the global options
func RenderGlobalHelp(w io.Writer, g *runtime.Globals, registry *Registry) {
	fmt.Fprintf(w, "%s\n\n", output.Heading("git-tfs: a bidirectional bridge between git and TFS"))
	fmt.Fprintf(w, "%s git tfs <command> [options]\n\n", output.Heading("usage:"))
	fmt.Fprintf(w, "%s\n", output.Heading("commands:"))
	for _, cmd := range registry.Commands() {
		fmt.Fprintf(w, "  %-22s %s\n", output.CommandName(cmd.Name()), cmd.Synopsis())
	}
	fmt.Fprintf(w, "\n%s\n%s", output.Heading("global options:"), globalFlagUsages(g))
}

// RenderCommandHelp prints usage for a single command
func RenderCommandHelp(w io.Writer, g *runtime.Globals, cmd Command) {
	fmt.Fprintf(w, "%s git tfs %s\n\n", output.Heading("usage:"), cmd.Usage())
	fmt.Fprintf(w, "%s\n", cmd.Synopsis())
	if usages := cmd.Flags().FlagUsages(); usages != "" {
		fmt.Fprintf(w, "\n%s\n%s", output.Heading("options:"), usages)
	}
	fmt.Fprintf(w, "\n%s\n%s", output.Heading("global options:"), globalFlagUsages(g))
}

func globalFlagUsages(g *runtime.Globals) string {
	fs := newFlagSet("global")
	g.AddFlags(fs)
	return fs.FlagUsages()
}
