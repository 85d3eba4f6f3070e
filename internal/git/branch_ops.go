package git

import (
	"context"
	"errors"
	"fmt"

	landerrors "land.dev/land/internal/errors"
)

// CurrentBranch returns the branch HEAD currently points at.
// Returns ErrNotOnBranch in detached HEAD state.
func (r *realRunner) CurrentBranch(_ context.Context) (string, error) {
	return headBranch(r.cmd.workingDir)
}

// BranchExists reports whether a local branch exists
func (r *realRunner) BranchExists(ctx context.Context, branchName string) (bool, error) {
	_, err := r.cmd.Run(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+branchName)
	if err != nil {
		// rev-parse --verify exits non-zero for unknown refs
		return false, nil
	}
	return true, nil
}

// CheckoutBranch checks out an existing branch
func (r *realRunner) CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := r.cmd.Run(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch deletes a local branch
func (r *realRunner) DeleteBranch(ctx context.Context, branchName string) error {
	_, err := r.cmd.Run(ctx, "branch", "-D", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// Revision returns the commit SHA a ref resolves to
func (r *realRunner) Revision(ctx context.Context, ref string) (string, error) {
	sha, err := r.cmd.Run(ctx, "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return sha, nil
}

// StatusPaths returns the paths of all uncommitted modifications and
// untracked files, in porcelain order. An empty slice means a clean tree.
func (r *realRunner) StatusPaths(ctx context.Context) ([]string, error) {
	lines, err := r.cmd.RunLines(ctx, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to query status: %w", err)
	}

	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		// porcelain format: two status columns, a space, then the path
		if len(line) > 3 {
			paths = append(paths, line[3:])
		}
	}
	return paths, nil
}

// ConfigGet reads a git config value. Returns an empty string when the
// key is unset rather than an error.
func (r *realRunner) ConfigGet(ctx context.Context, key string) (string, error) {
	value, err := r.cmd.Run(ctx, "config", "--get", key)
	if err != nil {
		var cmdErr *landerrors.GitCommandError
		// git config --get exits 1 with no output for unset keys
		if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return value, nil
}
