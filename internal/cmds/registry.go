package cmds

// Registry is the closed lookup table of git-tfs commands, built once at
// startup.
type Registry struct {
	commands []Command
	byName   map[string]Command
	help     *helpCmd
}

// NewRegistry builds the registry with the full command set
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]Command{}}
	r.help = newHelpCmd(r)

	r.Register(r.help)
	r.Register(newVersionCmd())
	r.Register(newInitCmd())
	r.Register(newCloneCmd())
	r.Register(newFetchCmd())
	r.Register(newPullCmd())
	r.Register(newCheckinCmd())
	r.Register(newBootstrapCmd())
	r.Register(newListRemotesCmd())
	r.Register(newCleanupCmd())

	return r
}

// Register adds a command under its name and aliases
func (r *Registry) Register(cmd Command) {
	r.commands = append(r.commands, cmd)
	r.byName[cmd.Name()] = cmd
	for _, alias := range cmd.Aliases() {
		r.byName[alias] = cmd
	}
}

// Lookup finds a command by name or alias. Matching is exact and
// case-sensitive.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Commands returns every registered command in registration order
func (r *Registry) Commands() []Command {
	return r.commands
}

// Help returns the default help command
func (r *Registry) Help() Command {
	return r.help
}

// Resolve scans args left to right for the first token naming a command,
// removes it, and returns the command with the remaining arguments. Tokens
// before the command (typically flags) keep their position. When no token
// matches, the help command is returned and args come back untouched.
func (r *Registry) Resolve(args []string) (Command, []string) {
	for i, arg := range args {
		if cmd, ok := r.Lookup(arg); ok {
			rest := make([]string, 0, len(args)-1)
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+1:]...)
			return cmd, rest
		}
	}
	return r.help, args
}
