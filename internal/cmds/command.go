// Package cmds defines the git-tfs command set: the command interface, the
// registry commands are resolved from, and one file per command.
package cmds

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/gius/git-tfs/internal/runtime"
)

// ExitOK is the process exit code for successful runs, including help and
// version short-circuits.
const ExitOK = 0

// ExitFailure is the generic non-zero exit code for failed runs
const ExitFailure = 1

// Command is one resolvable unit of work. Implementations are registered
// in the Registry at startup; there is no reflection involved in dispatch.
type Command interface {
	// Name is the token users type to invoke the command
	Name() string

	// Aliases are additional tokens resolving to this command
	Aliases() []string

	// Synopsis is the one-line description shown in help output
	Synopsis() string

	// Usage is the argument signature shown in help output
	Usage() string

	// RequiresRepo reports whether the command needs a resolved git
	// repository before it can run. Commands that create repositories
	// from scratch, and help/version, return false.
	RequiresRepo() bool

	// Flags returns the command's option schema. The dispatcher parses it
	// together with the global flags after the command is resolved.
	Flags() *pflag.FlagSet

	// Run executes the command with the leftover positional arguments and
	// returns the process exit code.
	Run(ctx context.Context, g *runtime.Globals, args []string) (int, error)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}
