package app

import (
	"context"
	"fmt"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
	"github.com/gius/git-tfs/internal/output"
	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

// autoDetectRemote decides which tfs-remote the command operates on when
// the user asked for auto-detection. Every branch either selects a remote
// or fails; there is no silent fall-through.
func autoDetectRemote(ctx context.Context, g *runtime.Globals) error {
	// Mutually exclusive with an explicit remote id; checked before any
	// history is read.
	if g.RemoteIdSetByUser {
		return fmt.Errorf("%w: -i and --auto-tfs-remote cannot be combined", gitfserrors.ErrConfigConflict)
	}
	if g.Repository == nil {
		return gitfserrors.ErrRepositoryNotFound
	}

	configured, err := tfs.AllRemotes(ctx, g.Repository)
	if err != nil {
		return err
	}

	entry, err := tfs.RemoteFromHistory(g.Repository, "", configured)
	if err != nil {
		return err
	}

	if entry == nil {
		// Nothing in history; fall back to configuration.
		switch len(configured) {
		case 0:
			return gitfserrors.ErrNoRemoteDefined
		case 1:
			g.Splog.Info("using the only tfs remote: %s", output.RemoteId(configured[0].Id))
			return selectRemote(g, configured[0])
		default:
			ids := make([]string, len(configured))
			for i, remote := range configured {
				ids[i] = remote.Id
			}
			return gitfserrors.NewAmbiguousRemoteError(ids)
		}
	}

	if entry.Remote.IsDerived {
		g.Splog.Info("tfs remote %s was found in history but is not configured; run `git tfs bootstrap` before fetching",
			output.RemoteId(entry.Remote.Id))
	}
	g.Splog.Info("detected tfs remote %s from commit %s (C%d)",
		output.RemoteId(entry.Remote.Id), entry.Commit[:12], entry.Ref.Changeset)
	return selectRemote(g, entry.Remote)
}

func selectRemote(g *runtime.Globals, remote *tfs.Remote) error {
	g.RemoteId = remote.Id
	g.ResolvedRemote = remote
	return nil
}
