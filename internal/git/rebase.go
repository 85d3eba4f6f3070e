package git

import (
	"context"
	"fmt"
	"os"

	landerrors "land.dev/land/internal/errors"
)

// Rebase replays the current branch onto another branch.
// Returns ErrRebaseConflict when the rebase stops on a conflict; the
// conflicted rebase is left in progress for the caller to abort.
func (r *realRunner) Rebase(ctx context.Context, onto string) error {
	_, err := r.cmd.Run(ctx, "rebase", onto)
	if err != nil {
		if r.isRebaseInProgress(ctx) {
			return fmt.Errorf("%w: rebasing onto %s", landerrors.ErrRebaseConflict, onto)
		}
		return fmt.Errorf("rebase onto %s failed: %w", onto, err)
	}
	return nil
}

// RebaseAbort aborts an in-progress rebase, restoring the pre-rebase tip
func (r *realRunner) RebaseAbort(ctx context.Context) error {
	_, err := r.cmd.Run(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// isRebaseInProgress checks if a rebase is currently in progress.
// Checking the rebase-merge/rebase-apply directories is more reliable
// than REBASE_HEAD, which can persist after a rebase finishes.
func (r *realRunner) isRebaseInProgress(ctx context.Context) bool {
	gitDir, err := r.cmd.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return false
	}

	if _, err := os.Stat(gitDir + "/rebase-merge"); err == nil {
		return true
	}
	if _, err := os.Stat(gitDir + "/rebase-apply"); err == nil {
		return true
	}
	return false
}
