package app

import (
	"errors"
	"io/fs"

	"github.com/gius/git-tfs/internal/runtime"
	"github.com/gius/git-tfs/internal/tfs"
)

// loadIdentityMap loads the authors file, if there is one to load. A file
// the user pointed at must load or the run aborts; a failure at the
// conventional cached path only warns, so a stale or mangled cache never
// blocks unrelated commands.
func loadIdentityMap(g *runtime.Globals) error {
	path := g.AuthorsFilePath
	userSpecified := g.AuthorsSetByUser
	if path == "" {
		path = g.DefaultAuthorsPath()
	}
	if path == "" {
		return nil
	}

	authors, err := tfs.LoadAuthors(path)
	if err != nil {
		if userSpecified {
			return err
		}
		// A missing cache is the normal state for repositories that never
		// used an authors file; only complain about files that exist.
		if !errors.Is(err, fs.ErrNotExist) {
			g.Splog.Warn("could not parse authors file %s; continuing without an identity map", path)
		}
		g.Authors = tfs.EmptyAuthorMap()
		return nil
	}

	g.Authors = authors
	g.Splog.Debug("loaded %d identities from %s", authors.Len(), path)
	return nil
}
