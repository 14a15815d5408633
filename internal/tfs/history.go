package tfs

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gius/git-tfs/internal/git"
)

// HistoryEntry pairs a remote association with the commit it was found on
type HistoryEntry struct {
	Remote *Remote
	Commit string
	Ref    ChangesetRef
}

// RemoteFromHistory walks history from ref (HEAD when empty), nearest
// commits first, and returns the first TFVC association found, or nil when
// no commit carries git-tfs metadata. Associations matching a configured
// remote resolve to it; anything else yields a derived remote.
func RemoteFromHistory(repo *git.Repository, ref string, configured []*Remote) (*HistoryEntry, error) {
	var entry *HistoryEntry
	err := repo.WalkHistory(ref, func(commit *object.Commit) (bool, error) {
		csRef, ok := ParseTrailer(commit.Message)
		if !ok {
			return true, nil
		}
		entry = &HistoryEntry{
			Remote: matchRemote(csRef, configured),
			Commit: commit.Hash.String(),
			Ref:    csRef,
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AllRemotesFromHistory walks the full history from ref and returns one
// entry per distinct server URL + path association, nearest first. Used by
// the bootstrap command.
func AllRemotesFromHistory(repo *git.Repository, ref string, configured []*Remote) ([]*HistoryEntry, error) {
	seen := map[string]bool{}
	var entries []*HistoryEntry
	err := repo.WalkHistory(ref, func(commit *object.Commit) (bool, error) {
		csRef, ok := ParseTrailer(commit.Message)
		if !ok {
			return true, nil
		}
		key := strings.ToLower(csRef.ServerURL + "|" + csRef.ServerPath)
		if seen[key] {
			return true, nil
		}
		seen[key] = true
		entries = append(entries, &HistoryEntry{
			Remote: matchRemote(csRef, configured),
			Commit: commit.Hash.String(),
			Ref:    csRef,
		})
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func matchRemote(ref ChangesetRef, configured []*Remote) *Remote {
	for _, remote := range configured {
		if strings.EqualFold(remote.URL, ref.ServerURL) &&
			strings.EqualFold(remote.Repository, ref.ServerPath) {
			return remote
		}
	}
	return &Remote{
		Id:         DeriveRemoteId(ref.ServerPath),
		URL:        ref.ServerURL,
		Repository: ref.ServerPath,
		IsDerived:  true,
	}
}
