package git

import (
	"context"
	"fmt"

	landerrors "land.dev/land/internal/errors"
)

// SquashMerge applies a branch's full change-set onto the current branch
// as a single staged change-set, without committing.
// Returns ErrSquashConflict when the merge cannot apply cleanly; any
// partial staging is left for the caller to reset.
func (r *realRunner) SquashMerge(ctx context.Context, branchName string) error {
	_, err := r.cmd.Run(ctx, "merge", "--squash", "--no-commit", branchName)
	if err != nil {
		return fmt.Errorf("%w: merging %s", landerrors.ErrSquashConflict, branchName)
	}
	return nil
}

// Commit commits the staged changes with the given message.
// GIT_EDITOR is forced off so a commit never blocks on an editor.
func (r *realRunner) Commit(ctx context.Context, message string) error {
	_, err := r.cmd.RunWithEnv(ctx, []string{"GIT_EDITOR=true"}, "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
