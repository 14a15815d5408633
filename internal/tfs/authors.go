package tfs

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
)

// AuthorsFileName is the conventional cached authors file under .git
const AuthorsFileName = "git-tfs_authors"

// Identity is a git author signature
type Identity struct {
	Name  string
	Email string
}

func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// AuthorMap translates TFVC logins to git identities and back. Lines in the
// authors file look like
//
//	DOMAIN\jsmith = John Smith <jsmith@example.com>
//
// with '#' starting a comment.
type AuthorMap struct {
	byLogin map[string]Identity
	byEmail map[string]string
}

// EmptyAuthorMap returns a map with no entries
func EmptyAuthorMap() *AuthorMap {
	return &AuthorMap{
		byLogin: map[string]Identity{},
		byEmail: map[string]string{},
	}
}

var authorLineRe = regexp.MustCompile(`^(.+?)\s*=\s*(.+?)\s*<(.+?)>$`)

// LoadAuthors parses the authors file at path. Any read or parse failure is
// reported as an IdentityMapError; the caller decides whether that is fatal.
func LoadAuthors(path string) (*AuthorMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, gitfserrors.NewIdentityMapError(path, err)
	}
	defer file.Close()

	authors := EmptyAuthorMap()
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := authorLineRe.FindStringSubmatch(line)
		if m == nil {
			return nil, gitfserrors.NewIdentityMapError(path,
				fmt.Errorf("malformed line %d: %q", lineNo, line))
		}
		login := m[1]
		identity := Identity{Name: m[2], Email: m[3]}
		authors.byLogin[strings.ToLower(login)] = identity
		authors.byEmail[strings.ToLower(identity.Email)] = login
	}
	if err := scanner.Err(); err != nil {
		return nil, gitfserrors.NewIdentityMapError(path, err)
	}
	return authors, nil
}

// Len returns the number of mapped identities
func (a *AuthorMap) Len() int {
	return len(a.byLogin)
}

// Lookup resolves a TFVC login to a git identity
func (a *AuthorMap) Lookup(login string) (Identity, bool) {
	identity, ok := a.byLogin[strings.ToLower(login)]
	return identity, ok
}

// LookupLogin resolves a git author email back to a TFVC login
func (a *AuthorMap) LookupLogin(email string) (string, bool) {
	login, ok := a.byEmail[strings.ToLower(email)]
	return login, ok
}
