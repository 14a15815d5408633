// Package app implements the git-tfs bootstrap pipeline: repository
// discovery, command resolution, option parsing, identity-map loading,
// remote auto-detection, and dispatch.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/cmds"
	"github.com/gius/git-tfs/internal/runtime"
)

// Run is the process entry point: it takes the raw argument list (without
// the program name) and returns the process exit code. Fatal errors in the
// bootstrap stages print a message to stderr and yield a non-zero code;
// the target command never runs after one.
func Run(args []string, build runtime.BuildInfo) int {
	g := runtime.NewGlobals(build)
	defer g.Release()

	code, err := run(context.Background(), g, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "git-tfs: %v\n", err)
		if code == cmds.ExitOK {
			code = cmds.ExitFailure
		}
	}
	return code
}

// run executes the bootstrap stages in order. Any error aborts the
// remaining stages; only the deferred teardown in Run is guaranteed.
func run(ctx context.Context, g *runtime.Globals, args []string) (int, error) {
	registry := cmds.NewRegistry()

	// Stage 1: the working-directory prefix probe is best-effort; commands
	// that never touch the repository run from anywhere.
	probePrefix(ctx, g)

	// Stage 2: command resolution
	cmd, rest := registry.Resolve(args)

	// Stage 3: repository discovery, skipped for exempt commands
	if cmd.RequiresRepo() {
		if err := locateRepository(ctx, g); err != nil {
			return cmds.ExitFailure, err
		}
		g.AttachLogFile()
	}

	// Stage 4: option parsing
	leftover, err := parseOptions(g, cmd, rest)
	if err != nil {
		return cmds.ExitFailure, err
	}

	// Stage 5: identity map, attempted for every command
	if err := loadIdentityMap(g); err != nil {
		return cmds.ExitFailure, err
	}

	// Stage 6: remote auto-detection, only on request
	if g.AutoDetectRemote {
		if err := autoDetectRemote(ctx, g); err != nil {
			return cmds.ExitFailure, err
		}
	}

	// Stage 7: dispatch
	if g.ShowHelp {
		if cmd == registry.Help() {
			cmds.RenderGlobalHelp(os.Stdout, g, registry)
		} else {
			cmds.RenderCommandHelp(os.Stdout, g, cmd)
		}
		return cmds.ExitOK, nil
	}
	if g.ShowVersion {
		fmt.Println(cmds.FormatVersion(g.Build))
		return cmds.ExitOK, nil
	}

	g.Splog.Debug("dispatching %s", cmd.Name())
	return cmd.Run(ctx, g, leftover)
}

// parseOptions parses the remaining arguments against the command's option
// schema merged with the global flags, and records which of the mutually
// exclusive remote options the user actually set.
func parseOptions(g *runtime.Globals, cmd cmds.Command, args []string) ([]string, error) {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	g.AddFlags(fs)
	fs.AddFlagSet(cmd.Flags())

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	g.RemoteIdSetByUser = fs.Changed("tfs-remote")
	if fs.Changed("authors") {
		g.AuthorsSetByUser = true
	}
	return fs.Args(), nil
}
