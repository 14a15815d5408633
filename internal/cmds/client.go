package cmds

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

// resolveRemote returns the remote the command should operate on: the one
// picked by auto-detection when it ran, otherwise the configured remote
// named by the -i flag (or "default").
func resolveRemote(ctx context.Context, g *runtime.Globals) (*tfs.Remote, error) {
	if g.ResolvedRemote != nil {
		return g.ResolvedRemote, nil
	}
	remote, err := tfs.RemoteById(ctx, g.Repository, g.RemoteId)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, fmt.Errorf("tfs remote %q is not configured; run `git tfs init` or `git tfs bootstrap`", g.RemoteId)
	}
	return remote, nil
}

// remoteClient builds a TFVC client for the remote. Credentials come from
// TFS_TOKEN (OAuth bearer), or TFS_USERNAME/TFS_PASSWORD with the remote's
// configured username as fallback (personal access tokens go in
// TFS_PASSWORD with an empty username).
func remoteClient(ctx context.Context, remote *tfs.Remote) (*tfs.Client, error) {
	if token := os.Getenv("TFS_TOKEN"); token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		return tfs.NewClient(remote.URL, tfs.WithTokenSource(ctx, source))
	}

	username := os.Getenv("TFS_USERNAME")
	if username == "" {
		username = remote.Username
	}
	return tfs.NewClient(remote.URL, tfs.WithBasicAuth(username, os.Getenv("TFS_PASSWORD")))
}
