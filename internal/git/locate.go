package git

import (
	"context"
	"strings"
)

// GitDirName is the conventional name of the git control directory
const GitDirName = ".git"

// ShowPrefix returns the path of the current directory relative to the
// repository root, e.g. "sub/dir/". Empty at the root.
func ShowPrefix(ctx context.Context, dir string) (string, error) {
	return NewCommandRunner(dir).Run(ctx, "rev-parse", "--show-prefix")
}

// ShowCdup returns the relative path from the current directory up to the
// repository root, e.g. "../../". Empty at the root. Fails when dir is not
// inside a git worktree.
func ShowCdup(ctx context.Context, dir string) (string, error) {
	return NewCommandRunner(dir).Run(ctx, "rev-parse", "--show-cdup")
}

// CdupLevels converts a --show-cdup result into the number of ancestor
// levels between the current directory and the repository root.
func CdupLevels(cdup string) int {
	cdup = strings.Trim(cdup, "/")
	if cdup == "" {
		return 0
	}
	return strings.Count(cdup, "..")
}
