package git

import (
	"context"
	"fmt"
)

// Push pushes a branch to a remote
func (r *realRunner) Push(ctx context.Context, remote, branchName string) error {
	_, err := r.cmd.Run(ctx, "push", remote, branchName)
	if err != nil {
		return fmt.Errorf("failed to push branch %s to %s: %w", branchName, remote, err)
	}
	return nil
}

// PushDelete deletes a branch on a remote
func (r *realRunner) PushDelete(ctx context.Context, remote, branchName string) error {
	_, err := r.cmd.Run(ctx, "push", remote, "--delete", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s on %s: %w", branchName, remote, err)
	}
	return nil
}
