package tfs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChangesetRef locates a TFVC changeset: the collection URL, the server
// path, and the changeset number.
type ChangesetRef struct {
	ServerURL  string
	ServerPath string
	Changeset  int
}

func (c ChangesetRef) String() string {
	return fmt.Sprintf("[%s]%s;C%d", c.ServerURL, c.ServerPath, c.Changeset)
}

// Commits imported from TFVC carry a trailer line of the form
//
//	git-tfs-id: [http://tfs:8080/tfs/Collection]$/Project/Trunk;C12345
//
// which is how history-based remote detection works.
var trailerRe = regexp.MustCompile(`(?m)^git-tfs-id:\s*\[(.+)\](.+);C(\d+)\s*$`)

// FormatTrailer renders the metadata line appended to imported commits
func FormatTrailer(ref ChangesetRef) string {
	return fmt.Sprintf("git-tfs-id: %s", ref)
}

// ParseTrailer extracts the changeset reference from a commit message.
// When a message carries several trailer lines the last one wins.
func ParseTrailer(message string) (ChangesetRef, bool) {
	matches := trailerRe.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return ChangesetRef{}, false
	}
	m := matches[len(matches)-1]
	changeset, err := strconv.Atoi(m[3])
	if err != nil {
		return ChangesetRef{}, false
	}
	return ChangesetRef{
		ServerURL:  strings.TrimSpace(m[1]),
		ServerPath: strings.TrimSpace(m[2]),
		Changeset:  changeset,
	}, true
}
