package cmds_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gius/git-tfs/internal/cmds"
)

func TestResolve(t *testing.T) {
	registry := cmds.NewRegistry()

	t.Run("removes exactly the command token", func(t *testing.T) {
		args := []string{"--authors", "authors.txt", "fetch", "-i", "mine"}

		cmd, rest := registry.Resolve(args)

		require.Equal(t, "fetch", cmd.Name())
		require.Equal(t, []string{"--authors", "authors.txt", "-i", "mine"}, rest)
	})

	t.Run("first matching token wins", func(t *testing.T) {
		cmd, rest := registry.Resolve([]string{"help", "clone"})

		require.Equal(t, "help", cmd.Name())
		require.Equal(t, []string{"clone"}, rest)
	})

	t.Run("command names appearing after flags are found", func(t *testing.T) {
		cmd, rest := registry.Resolve([]string{"tfs", "clone", "http://server", "$/proj"})

		require.Equal(t, "clone", cmd.Name())
		require.Equal(t, []string{"tfs", "http://server", "$/proj"}, rest)
	})

	t.Run("aliases resolve to the command", func(t *testing.T) {
		cmd, _ := registry.Resolve([]string{"ci"})
		require.Equal(t, "checkin", cmd.Name())

		cmd, _ = registry.Resolve([]string{"remotes"})
		require.Equal(t, "list-remote-branches", cmd.Name())
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		cmd, rest := registry.Resolve([]string{"FETCH"})

		require.Equal(t, "help", cmd.Name())
		require.Equal(t, []string{"FETCH"}, rest)
	})

	t.Run("no match returns help and leaves args untouched", func(t *testing.T) {
		args := []string{"-i", "mine", "--unknown"}

		cmd, rest := registry.Resolve(args)

		require.Equal(t, "help", cmd.Name())
		require.Equal(t, args, rest)
	})

	t.Run("empty args resolve to help", func(t *testing.T) {
		cmd, rest := registry.Resolve(nil)

		require.Equal(t, "help", cmd.Name())
		require.Empty(t, rest)
	})
}

func TestRegistryLookup(t *testing.T) {
	registry := cmds.NewRegistry()

	for _, name := range []string{"help", "version", "init", "clone", "fetch", "pull", "checkin", "bootstrap", "list-remote-branches", "cleanup"} {
		cmd, ok := registry.Lookup(name)
		require.True(t, ok, "command %s not registered", name)
		require.Equal(t, name, cmd.Name())
	}

	_, ok := registry.Lookup("push")
	require.False(t, ok)
}

func TestRequiresRepo(t *testing.T) {
	registry := cmds.NewRegistry()

	exempt := map[string]bool{"help": true, "version": true, "init": true, "clone": true}
	for _, cmd := range registry.Commands() {
		require.Equal(t, !exempt[cmd.Name()], cmd.RequiresRepo(),
			"unexpected RequiresRepo for %s", cmd.Name())
	}
}
