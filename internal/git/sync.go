package git

import (
	"context"
	"fmt"

	landerrors "land.dev/land/internal/errors"
)

// Fetch fetches a single branch from a remote
func (r *realRunner) Fetch(ctx context.Context, remote, branchName string) error {
	_, err := r.cmd.Run(ctx, "fetch", remote, branchName)
	if err != nil {
		return fmt.Errorf("failed to fetch %s from %s: %w", branchName, remote, err)
	}
	return nil
}

// MergeFastForward merges ref into the current branch, fast-forward only.
// Returns ErrFastForward when the histories have diverged.
func (r *realRunner) MergeFastForward(ctx context.Context, ref string) error {
	_, err := r.cmd.Run(ctx, "merge", "--ff-only", ref)
	if err != nil {
		return fmt.Errorf("%w: %s (%v)", landerrors.ErrFastForward, ref, err)
	}
	return nil
}

// HardReset performs a hard reset of the current branch to a specific SHA
func (r *realRunner) HardReset(ctx context.Context, sha string) error {
	_, err := r.cmd.Run(ctx, "reset", "--hard", sha)
	if err != nil {
		return fmt.Errorf("failed to hard reset to %s: %w", sha, err)
	}
	return nil
}
