package workflow

import (
	"context"
	"errors"
	"fmt"

	landerrors "land.dev/land/internal/errors"
	"land.dev/land/internal/git"
	"land.dev/land/internal/lock"
	"land.dev/land/internal/output"
)

// Engine executes the landing algorithm as an ordered sequence of guarded
// steps against the repository, enforcing an all-or-nothing outcome per step
// and a defined rollback on first failure.
type Engine struct {
	config  Config
	git     git.Runner
	splog   *output.Splog
	confirm Confirmer
	guard   *lock.Guard
}

// New creates a workflow engine. repoRoot is where the advisory marker lives.
func New(cfg Config, runner git.Runner, splog *output.Splog, confirm Confirmer, repoRoot string) *Engine {
	splog.SetVerbose(cfg.Verbose)
	return &Engine{
		config:  cfg,
		git:     runner,
		splog:   splog,
		confirm: confirm,
		guard:   lock.New(repoRoot),
	}
}

// Run lands the configured branch onto the target branch.
// On failure the repository is returned to a known-good state before the
// error is reported; the advisory marker is removed on every exit path.
func (e *Engine) Run(ctx context.Context) error {
	cfg := e.config

	// Landing the target onto itself is a no-op, not a failure
	if cfg.LandingBranch == cfg.TargetBranch {
		e.splog.Info("Branch %s is the target branch; nothing to land.", cfg.LandingBranch)
		return nil
	}

	exists, err := e.git.BranchExists(ctx, cfg.LandingBranch)
	if err != nil {
		return err
	}
	if !exists {
		return landerrors.NewBranchNotFoundError(cfg.LandingBranch)
	}

	stale, err := e.guard.Acquire()
	if err != nil {
		return err
	}
	if stale != "" {
		e.splog.Warn("%s; another landing may be in progress", stale)
	}
	defer func() {
		if releaseErr := e.guard.Release(); releaseErr != nil {
			e.splog.Warn("%v", releaseErr)
		}
	}()

	startingBranch, err := e.git.CurrentBranch(ctx)
	if err != nil {
		// Detached HEAD: fall back to the landing branch as the restore point
		startingBranch = cfg.LandingBranch
	}

	// The cleanliness gate runs before the first checkout: a dirty tree
	// must abort before any ref is touched.
	if err := e.checkCleanliness(ctx); err != nil {
		return e.abort(ctx, startingBranch, err)
	}

	if startingBranch != cfg.LandingBranch {
		e.splog.Step("Checking out %s", cfg.LandingBranch)
		if err := e.confirmStep(fmt.Sprintf("Check out branch %s", cfg.LandingBranch)); err != nil {
			return e.abort(ctx, startingBranch, err)
		}
		if err := e.git.CheckoutBranch(ctx, cfg.LandingBranch); err != nil {
			return e.abort(ctx, startingBranch, err)
		}
	}

	if err := e.fastForwardTarget(ctx); err != nil {
		return e.abort(ctx, startingBranch, err)
	}

	if err := e.rebaseLanding(ctx); err != nil {
		return e.abort(ctx, startingBranch, err)
	}

	if err := e.squashMerge(ctx); err != nil {
		return e.abort(ctx, startingBranch, err)
	}

	if err := e.commitSquash(ctx); err != nil {
		return e.abort(ctx, startingBranch, err)
	}

	// From here on the land has happened: failures warn but never flip
	// the verdict back to failure.
	e.deleteLandingBranch(ctx)

	if cfg.Push {
		e.pushPhase(ctx)
	}

	e.splog.Success("Landed %s onto %s.", output.ColorBranchName(cfg.LandingBranch), output.ColorBranchName(cfg.TargetBranch))
	return nil
}

// checkCleanliness refuses to start with uncommitted modifications or
// untracked files. The advisory marker itself is excluded.
func (e *Engine) checkCleanliness(ctx context.Context) error {
	e.splog.Step("Checking that the working tree is clean")
	paths, err := e.git.StatusPaths(ctx)
	if err != nil {
		return err
	}

	dirty := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == lock.MarkerName {
			continue
		}
		dirty = append(dirty, p)
	}
	if len(dirty) > 0 {
		return landerrors.NewDirtyWorkingTreeError(dirty)
	}
	return nil
}

// fastForwardTarget updates the target branch from the remote with a
// fast-forward-only merge
func (e *Engine) fastForwardTarget(ctx context.Context) error {
	cfg := e.config

	e.splog.Step("Checking out %s", cfg.TargetBranch)
	if err := e.git.CheckoutBranch(ctx, cfg.TargetBranch); err != nil {
		return err
	}

	e.splog.Step("Fetching %s from %s", cfg.TargetBranch, cfg.Remote)
	if err := e.git.Fetch(ctx, cfg.Remote, cfg.TargetBranch); err != nil {
		return err
	}

	remoteRef := fmt.Sprintf("%s/%s", cfg.Remote, cfg.TargetBranch)
	e.splog.Step("Fast-forwarding %s to %s", cfg.TargetBranch, remoteRef)
	if err := e.confirmStep(fmt.Sprintf("Fast-forward %s to %s", cfg.TargetBranch, remoteRef)); err != nil {
		return err
	}
	return e.git.MergeFastForward(ctx, remoteRef)
}

// rebaseLanding replays the landing branch onto the updated target.
// A conflict triggers an explicit rebase-abort, returning the landing
// branch to its pre-rebase tip, before the failure is reported.
func (e *Engine) rebaseLanding(ctx context.Context) error {
	cfg := e.config

	e.splog.Step("Checking out %s", cfg.LandingBranch)
	if err := e.git.CheckoutBranch(ctx, cfg.LandingBranch); err != nil {
		return err
	}

	e.splog.Step("Rebasing %s onto %s", cfg.LandingBranch, cfg.TargetBranch)
	if err := e.confirmStep(fmt.Sprintf("Rebase %s onto %s", cfg.LandingBranch, cfg.TargetBranch)); err != nil {
		return err
	}

	err := e.git.Rebase(ctx, cfg.TargetBranch)
	if err == nil {
		return nil
	}
	if errors.Is(err, landerrors.ErrRebaseConflict) {
		if abortErr := e.git.RebaseAbort(ctx); abortErr != nil {
			e.splog.Warn("failed to abort conflicted rebase: %v", abortErr)
		}
	}
	return err
}

// squashMerge applies the landing branch's change-set to the target as a
// single staged change-set. The target tip is checkpointed immediately
// before, and restored by hard reset if the squash fails.
func (e *Engine) squashMerge(ctx context.Context) error {
	cfg := e.config

	e.splog.Step("Checking out %s", cfg.TargetBranch)
	if err := e.git.CheckoutBranch(ctx, cfg.TargetBranch); err != nil {
		return err
	}

	checkpoint, err := e.git.Revision(ctx, cfg.TargetBranch)
	if err != nil {
		return err
	}

	e.splog.Step("Squash-merging %s into %s", cfg.LandingBranch, cfg.TargetBranch)
	if err := e.confirmStep(fmt.Sprintf("Squash-merge %s into %s", cfg.LandingBranch, cfg.TargetBranch)); err != nil {
		return err
	}

	if err := e.git.SquashMerge(ctx, cfg.LandingBranch); err != nil {
		// Undo any partial staging
		if resetErr := e.git.HardReset(ctx, checkpoint); resetErr != nil {
			e.splog.Warn("failed to reset %s to %s: %v", cfg.TargetBranch, checkpoint, resetErr)
		}
		return err
	}
	return nil
}

// commitSquash commits the staged squash with the configured message
func (e *Engine) commitSquash(ctx context.Context) error {
	message := e.config.ResolvedMessage()

	e.splog.Step("Committing: %s", message)
	if err := e.confirmStep("Commit the squashed changes"); err != nil {
		return err
	}
	return e.git.Commit(ctx, message)
}

// deleteLandingBranch removes the landed branch locally. Failure here is
// tolerated: the land has already happened.
func (e *Engine) deleteLandingBranch(ctx context.Context) {
	cfg := e.config

	e.splog.Step("Deleting branch %s", cfg.LandingBranch)
	if err := e.confirmStep(fmt.Sprintf("Delete branch %s", cfg.LandingBranch)); err != nil {
		e.splog.Warn("Skipped deleting %s: %v", cfg.LandingBranch, err)
		e.splog.Tip("Delete it manually with: git branch -D %s", cfg.LandingBranch)
		return
	}
	if err := e.git.DeleteBranch(ctx, cfg.LandingBranch); err != nil {
		e.splog.Warn("Could not delete branch %s: %v", cfg.LandingBranch, err)
		e.splog.Tip("Delete it manually with: git branch -D %s", cfg.LandingBranch)
	}
}

// pushPhase pushes the target branch and the landing-branch deletion.
// Failures are tolerated and reported with manual-recovery instructions.
func (e *Engine) pushPhase(ctx context.Context) {
	cfg := e.config

	e.splog.Step("Pushing %s to %s", cfg.TargetBranch, cfg.Remote)
	pushTarget := func() error {
		if err := e.confirmStep(fmt.Sprintf("Push %s to %s", cfg.TargetBranch, cfg.Remote)); err != nil {
			return err
		}
		return e.git.Push(ctx, cfg.Remote, cfg.TargetBranch)
	}
	if err := pushTarget(); err != nil {
		e.splog.Warn("Could not push %s: %v", cfg.TargetBranch, err)
		e.splog.Tip("Push manually with: git push %s %s", cfg.Remote, cfg.TargetBranch)
	}

	e.splog.Step("Deleting %s on %s", cfg.LandingBranch, cfg.Remote)
	pushDeletion := func() error {
		if err := e.confirmStep(fmt.Sprintf("Delete %s on %s", cfg.LandingBranch, cfg.Remote)); err != nil {
			return err
		}
		return e.git.PushDelete(ctx, cfg.Remote, cfg.LandingBranch)
	}
	if err := pushDeletion(); err != nil {
		e.splog.Warn("Could not delete %s on %s: %v", cfg.LandingBranch, cfg.Remote, err)
		e.splog.Tip("Delete it manually with: git push %s --delete %s", cfg.Remote, cfg.LandingBranch)
	}
}

// confirmStep gates a mutating operation in paranoid mode.
// Declining is reported as ErrDeclined and handled like a failure of the
// step it guards.
func (e *Engine) confirmStep(description string) error {
	if !e.config.Paranoid {
		return nil
	}
	ok, err := e.confirm.Confirm(description + "?")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", landerrors.ErrDeclined, description)
	}
	return nil
}

// abort returns the repository to its starting branch, falling back to the
// target branch, then gives up with the original error.
func (e *Engine) abort(ctx context.Context, startingBranch string, cause error) error {
	if startingBranch != "" {
		if err := e.git.CheckoutBranch(ctx, startingBranch); err != nil {
			e.splog.Warn("Could not return to %s: %v", startingBranch, err)
			if err := e.git.CheckoutBranch(ctx, e.config.TargetBranch); err != nil {
				e.splog.Warn("Could not return to %s either; the repository is on an unexpected branch", e.config.TargetBranch)
			}
		}
	}
	return cause
}
