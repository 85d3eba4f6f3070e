package git

import (
	"context"
	"fmt"

	landerrors "land.dev/land/internal/errors"
)

// FakeRunner is an in-memory Runner for exercising the workflow engine
// without a real repository. Failure fields inject the failure modes the
// engine must roll back from.
type FakeRunner struct {
	// Branches maps local branch names to commit SHAs
	Branches map[string]string
	// RemoteBranches maps "remote/branch" refs to commit SHAs
	RemoteBranches map[string]string
	// Current is the checked-out branch
	Current string
	// Dirty holds the paths reported by StatusPaths
	Dirty []string
	// Config holds git config values served by ConfigGet
	Config map[string]string

	// Failure injection
	FailFetch       bool
	FailFastForward bool
	RebaseConflict  bool
	SquashConflict  bool
	FailCommit      bool
	FailDelete      bool
	FailPush        bool
	FailPushDelete  bool

	// Ops records every mutating operation in order
	Ops []string
	// Commits records commit messages in order
	Commits []string

	rebaseInProgress bool
	stagedBranch     string
	seq              int
}

// NewFakeRunner creates a fake repository with the given branches checked
// out at distinct SHAs, with the first branch current.
func NewFakeRunner(branches ...string) *FakeRunner {
	f := &FakeRunner{
		Branches:       make(map[string]string),
		RemoteBranches: make(map[string]string),
		Config:         make(map[string]string),
	}
	for i, b := range branches {
		f.Branches[b] = fmt.Sprintf("sha-%s-0", b)
		if i == 0 {
			f.Current = b
		}
	}
	return f
}

func (f *FakeRunner) record(format string, args ...interface{}) {
	f.Ops = append(f.Ops, fmt.Sprintf(format, args...))
}

func (f *FakeRunner) newSHA(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

// MutationCount returns how many mutating operations have run
func (f *FakeRunner) MutationCount() int {
	return len(f.Ops)
}

func (f *FakeRunner) CurrentBranch(context.Context) (string, error) {
	if f.Current == "" {
		return "", landerrors.ErrNotOnBranch
	}
	return f.Current, nil
}

func (f *FakeRunner) BranchExists(_ context.Context, branchName string) (bool, error) {
	_, ok := f.Branches[branchName]
	return ok, nil
}

func (f *FakeRunner) StatusPaths(context.Context) ([]string, error) {
	return f.Dirty, nil
}

func (f *FakeRunner) Revision(_ context.Context, ref string) (string, error) {
	if sha, ok := f.Branches[ref]; ok {
		return sha, nil
	}
	if sha, ok := f.RemoteBranches[ref]; ok {
		return sha, nil
	}
	return "", fmt.Errorf("unknown ref %s", ref)
}

func (f *FakeRunner) CheckoutBranch(_ context.Context, branchName string) error {
	if _, ok := f.Branches[branchName]; !ok {
		return landerrors.NewBranchNotFoundError(branchName)
	}
	if f.Current != branchName {
		f.record("checkout %s", branchName)
	}
	f.Current = branchName
	return nil
}

func (f *FakeRunner) DeleteBranch(_ context.Context, branchName string) error {
	f.record("branch -D %s", branchName)
	if f.FailDelete {
		return fmt.Errorf("failed to delete branch %s", branchName)
	}
	delete(f.Branches, branchName)
	return nil
}

func (f *FakeRunner) Fetch(_ context.Context, remote, branchName string) error {
	f.record("fetch %s %s", remote, branchName)
	if f.FailFetch {
		return fmt.Errorf("failed to fetch %s from %s", branchName, remote)
	}
	return nil
}

func (f *FakeRunner) MergeFastForward(_ context.Context, ref string) error {
	f.record("merge --ff-only %s", ref)
	if f.FailFastForward {
		return fmt.Errorf("%w: %s", landerrors.ErrFastForward, ref)
	}
	if sha, ok := f.RemoteBranches[ref]; ok {
		f.Branches[f.Current] = sha
	}
	return nil
}

func (f *FakeRunner) Rebase(_ context.Context, onto string) error {
	f.record("rebase %s", onto)
	if f.RebaseConflict {
		f.rebaseInProgress = true
		return fmt.Errorf("%w: rebasing onto %s", landerrors.ErrRebaseConflict, onto)
	}
	f.Branches[f.Current] = f.newSHA("rebased-" + f.Current)
	return nil
}

func (f *FakeRunner) RebaseAbort(context.Context) error {
	f.record("rebase --abort")
	if !f.rebaseInProgress {
		return fmt.Errorf("no rebase in progress")
	}
	f.rebaseInProgress = false
	return nil
}

func (f *FakeRunner) SquashMerge(_ context.Context, branchName string) error {
	f.record("merge --squash --no-commit %s", branchName)
	if f.SquashConflict {
		// A conflicted squash leaves partial staging behind
		f.stagedBranch = ""
		f.Branches[f.Current] = f.newSHA("partial-" + f.Current)
		return fmt.Errorf("%w: merging %s", landerrors.ErrSquashConflict, branchName)
	}
	f.stagedBranch = branchName
	return nil
}

func (f *FakeRunner) Commit(_ context.Context, message string) error {
	f.record("commit -m %q", message)
	if f.FailCommit {
		return fmt.Errorf("failed to commit")
	}
	f.stagedBranch = ""
	f.Commits = append(f.Commits, message)
	f.Branches[f.Current] = f.newSHA("landed-" + f.Current)
	return nil
}

func (f *FakeRunner) HardReset(_ context.Context, sha string) error {
	f.record("reset --hard %s", sha)
	f.Branches[f.Current] = sha
	f.stagedBranch = ""
	return nil
}

func (f *FakeRunner) Push(_ context.Context, remote, branchName string) error {
	f.record("push %s %s", remote, branchName)
	if f.FailPush {
		return fmt.Errorf("failed to push %s", branchName)
	}
	f.RemoteBranches[remote+"/"+branchName] = f.Branches[branchName]
	return nil
}

func (f *FakeRunner) PushDelete(_ context.Context, remote, branchName string) error {
	f.record("push %s --delete %s", remote, branchName)
	if f.FailPushDelete {
		return fmt.Errorf("failed to delete %s on %s", branchName, remote)
	}
	delete(f.RemoteBranches, remote+"/"+branchName)
	return nil
}

func (f *FakeRunner) ConfigGet(_ context.Context, key string) (string, error) {
	return f.Config[key], nil
}
