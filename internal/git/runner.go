package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	landerrors "land.dev/land/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, true, args...)
}

// runInternal is the internal implementation that handles timeout and trimming
func (r *CommandRunner) runInternal(ctx context.Context, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", landerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", landerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// RunLines executes a git command and returns the output as lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// RunWithEnv executes a git command with extra environment variables
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", landerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Runner defines the interface for git operations used by the workflow engine.
// This allows the engine to be used with both real git and fake implementations.
type Runner interface {
	// Repository state
	CurrentBranch(ctx context.Context) (string, error)
	BranchExists(ctx context.Context, branchName string) (bool, error)
	StatusPaths(ctx context.Context) ([]string, error)
	Revision(ctx context.Context, ref string) (string, error)

	// Branch management
	CheckoutBranch(ctx context.Context, branchName string) error
	DeleteBranch(ctx context.Context, branchName string) error

	// Landing operations
	Fetch(ctx context.Context, remote, branchName string) error
	MergeFastForward(ctx context.Context, ref string) error
	Rebase(ctx context.Context, onto string) error
	RebaseAbort(ctx context.Context) error
	SquashMerge(ctx context.Context, branchName string) error
	Commit(ctx context.Context, message string) error
	HardReset(ctx context.Context, sha string) error

	// Remote operations
	Push(ctx context.Context, remote, branchName string) error
	PushDelete(ctx context.Context, remote, branchName string) error

	// Configuration
	ConfigGet(ctx context.Context, key string) (string, error)
}

// realRunner implements Runner by executing git commands in a repository
type realRunner struct {
	cmd *CommandRunner
}

// NewRunner returns a Runner that executes git commands in the given directory.
// An empty dir means the current working directory.
func NewRunner(dir string) Runner {
	return &realRunner{cmd: NewCommandRunner(dir)}
}
