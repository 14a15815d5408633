package git

import (
	"context"
	"errors"
	"strings"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
)

// ConfigGet reads a single value from the repository's local git config.
// Returns "" without error when the key is unset.
func (r *Repository) ConfigGet(ctx context.Context, key string) (string, error) {
	value, err := r.runner.Run(ctx, "config", "--local", "--get", key)
	if err != nil {
		var cmdErr *gitfserrors.GitCommandError
		// git config exits 1 for a missing key
		if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// ConfigSet writes a value into the repository's local git config
func (r *Repository) ConfigSet(ctx context.Context, key, value string) error {
	_, err := r.runner.Run(ctx, "config", "--local", key, value)
	return err
}

// ConfigUnset removes a key from the repository's local git config
func (r *Repository) ConfigUnset(ctx context.Context, key string) error {
	_, err := r.runner.Run(ctx, "config", "--local", "--unset-all", key)
	return err
}

// ConfigGetRegexp returns all key/value pairs whose keys match pattern,
// in config order.
func (r *Repository) ConfigGetRegexp(ctx context.Context, pattern string) (map[string]string, error) {
	lines, err := r.runner.RunLines(ctx, "config", "--local", "--get-regexp", pattern)
	if err != nil {
		var cmdErr *gitfserrors.GitCommandError
		if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
			return map[string]string{}, nil
		}
		return nil, err
	}

	values := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, _ := strings.Cut(line, " ")
		values[key] = value
	}
	return values, nil
}
