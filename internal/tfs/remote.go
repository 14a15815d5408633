// Package tfs implements the TFVC side of git-tfs: remote configuration,
// commit metadata, the identity map, the server client, and the changeset
// import/export plumbing.
package tfs

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gius/git-tfs/internal/git"
)

// DefaultRemoteId is the id used when no tfs-remote is named explicitly
const DefaultRemoteId = "default"

const configSection = "tfs-remote"

// Remote identifies a TFVC tracking configuration: a server collection URL
// plus a server path within it.
type Remote struct {
	Id          string
	URL         string
	Repository  string // TFVC server path, e.g. $/Project/Trunk
	Username    string
	IgnorePaths string

	// IsDerived is set when the remote was inferred from commit metadata
	// rather than read from git config.
	IsDerived bool
}

// TrackingRef returns the git ref the remote's imported history lives on
func (r *Remote) TrackingRef() string {
	return "refs/remotes/tfs/" + r.Id
}

func (r *Remote) String() string {
	return fmt.Sprintf("%s -> %s%s", r.Id, r.URL, r.Repository)
}

// AllRemotes enumerates the tfs-remotes configured in the repository,
// sorted by id.
func AllRemotes(ctx context.Context, repo *git.Repository) ([]*Remote, error) {
	values, err := repo.ConfigGetRegexp(ctx, `^tfs-remote\.`)
	if err != nil {
		return nil, err
	}

	byId := map[string]*Remote{}
	for key, value := range values {
		id, field, ok := splitConfigKey(key)
		if !ok {
			continue
		}
		remote := byId[id]
		if remote == nil {
			remote = &Remote{Id: id}
			byId[id] = remote
		}
		switch field {
		case "url":
			remote.URL = value
		case "repository":
			remote.Repository = value
		case "username":
			remote.Username = value
		case "ignore-paths":
			remote.IgnorePaths = value
		}
	}

	remotes := make([]*Remote, 0, len(byId))
	for _, remote := range byId {
		remotes = append(remotes, remote)
	}
	sort.Slice(remotes, func(i, j int) bool { return remotes[i].Id < remotes[j].Id })
	return remotes, nil
}

// RemoteById looks up a configured tfs-remote
func RemoteById(ctx context.Context, repo *git.Repository, id string) (*Remote, error) {
	remotes, err := AllRemotes(ctx, repo)
	if err != nil {
		return nil, err
	}
	for _, remote := range remotes {
		if remote.Id == id {
			return remote, nil
		}
	}
	return nil, nil
}

// SaveRemote writes the remote's configuration into the repository's git
// config under tfs-remote.<id>.
func SaveRemote(ctx context.Context, repo *git.Repository, remote *Remote) error {
	settings := map[string]string{
		"url":          remote.URL,
		"repository":   remote.Repository,
		"username":     remote.Username,
		"ignore-paths": remote.IgnorePaths,
	}
	for field, value := range settings {
		if value == "" {
			continue
		}
		key := fmt.Sprintf("%s.%s.%s", configSection, remote.Id, field)
		if err := repo.ConfigSet(ctx, key, value); err != nil {
			return fmt.Errorf("failed to save tfs-remote %q: %w", remote.Id, err)
		}
	}
	return nil
}

// splitConfigKey splits "tfs-remote.<id>.<field>" into id and field. The id
// itself may contain dots, so the field is taken from the last segment.
func splitConfigKey(key string) (id, field string, ok bool) {
	rest, found := strings.CutPrefix(key, configSection+".")
	if !found {
		return "", "", false
	}
	idx := strings.LastIndex(rest, ".")
	if idx <= 0 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

// DeriveRemoteId synthesizes a remote id from a TFVC server path, used for
// remotes discovered in history but absent from git config.
func DeriveRemoteId(serverPath string) string {
	id := strings.TrimPrefix(serverPath, "$/")
	id = strings.ToLower(id)
	id = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, id)
	id = strings.Trim(id, "-")
	if id == "" {
		return DefaultRemoteId
	}
	return id
}
