package workflow_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	landerrors "land.dev/land/internal/errors"
	"land.dev/land/internal/git"
	"land.dev/land/internal/lock"
	"land.dev/land/internal/output"
	"land.dev/land/internal/workflow"
)

// scriptedConfirmer approves every prompt except those containing declineOn
type scriptedConfirmer struct {
	declineOn string
	prompts   []string
}

func (c *scriptedConfirmer) Confirm(prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	if c.declineOn != "" && strings.Contains(prompt, c.declineOn) {
		return false, nil
	}
	return true, nil
}

type testEngine struct {
	engine   *workflow.Engine
	fake     *git.FakeRunner
	out      *bytes.Buffer
	repoRoot string
}

func newTestEngine(t *testing.T, fake *git.FakeRunner, cfg workflow.Config, confirm workflow.Confirmer) *testEngine {
	t.Helper()
	if confirm == nil {
		confirm = &scriptedConfirmer{}
	}
	repoRoot := t.TempDir()
	out := &bytes.Buffer{}
	eng := workflow.New(cfg, fake, output.NewSplogWithWriter(out), confirm, repoRoot)
	return &testEngine{engine: eng, fake: fake, out: out, repoRoot: repoRoot}
}

func (te *testEngine) markerAbsent(t *testing.T) {
	t.Helper()
	_, err := os.Stat(filepath.Join(te.repoRoot, lock.MarkerName))
	require.True(t, os.IsNotExist(err), "marker file should be absent after the workflow exits")
}

func landConfig() workflow.Config {
	return workflow.Config{
		LandingBranch: "feature",
		TargetBranch:  "main",
		Remote:        "origin",
	}
}

func TestLandNoOp(t *testing.T) {
	cfg := landConfig()
	cfg.LandingBranch = "main"
	fake := git.NewFakeRunner("main")
	te := newTestEngine(t, fake, cfg, nil)

	err := te.engine.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, fake.MutationCount(), "no-op landing must not mutate the repository")
	te.markerAbsent(t)
}

func TestLandUnknownBranch(t *testing.T) {
	cfg := landConfig()
	cfg.LandingBranch = "missing"
	fake := git.NewFakeRunner("main")
	te := newTestEngine(t, fake, cfg, nil)

	err := te.engine.Run(context.Background())
	require.ErrorIs(t, err, landerrors.ErrBranchNotFound)
	require.Zero(t, fake.MutationCount())
}

func TestCleanlinessGate(t *testing.T) {
	t.Run("dirty tree aborts before any mutation", func(t *testing.T) {
		fake := git.NewFakeRunner("feature", "main")
		fake.Dirty = []string{"uncommitted.txt", "untracked.txt"}
		te := newTestEngine(t, fake, landConfig(), nil)

		err := te.engine.Run(context.Background())
		require.ErrorIs(t, err, landerrors.ErrDirtyWorkingTree)
		require.Contains(t, err.Error(), "uncommitted.txt")
		require.Zero(t, fake.MutationCount())
		te.markerAbsent(t)
	})

	t.Run("the landing marker itself is excluded", func(t *testing.T) {
		fake := git.NewFakeRunner("feature", "main")
		fake.Dirty = []string{lock.MarkerName}
		te := newTestEngine(t, fake, landConfig(), nil)

		err := te.engine.Run(context.Background())
		require.NoError(t, err)
	})
}

func TestFastForwardRollback(t *testing.T) {
	fake := git.NewFakeRunner("feature", "main")
	fake.FailFastForward = true
	te := newTestEngine(t, fake, landConfig(), nil)

	err := te.engine.Run(context.Background())
	require.ErrorIs(t, err, landerrors.ErrFastForward)
	require.Equal(t, "feature", fake.Current, "the starting branch must be checked out again after the abort")
	te.markerAbsent(t)
}

func TestRebaseConflictRollback(t *testing.T) {
	fake := git.NewFakeRunner("feature", "main")
	fake.RebaseConflict = true
	preRebaseTip := fake.Branches["feature"]
	te := newTestEngine(t, fake, landConfig(), nil)

	err := te.engine.Run(context.Background())
	require.ErrorIs(t, err, landerrors.ErrRebaseConflict)
	require.Contains(t, fake.Ops, "rebase --abort", "a conflicted rebase must be explicitly aborted")
	require.Equal(t, preRebaseTip, fake.Branches["feature"], "the landing branch tip must equal its pre-rebase tip")
	require.Equal(t, "feature", fake.Current)
	te.markerAbsent(t)
}

func TestSquashConflictRollback(t *testing.T) {
	fake := git.NewFakeRunner("feature", "main")
	fake.SquashConflict = true
	preSquashTip := fake.Branches["main"]
	te := newTestEngine(t, fake, landConfig(), nil)

	err := te.engine.Run(context.Background())
	require.ErrorIs(t, err, landerrors.ErrSquashConflict)
	require.Equal(t, preSquashTip, fake.Branches["main"], "the target branch must be hard-reset to its checkpoint")
	require.Equal(t, "feature", fake.Current)
	te.markerAbsent(t)
}

func TestCommitMessage(t *testing.T) {
	t.Run("defaults to Landed branch <branch>", func(t *testing.T) {
		fake := git.NewFakeRunner("feature", "main")
		te := newTestEngine(t, fake, landConfig(), nil)

		err := te.engine.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"Landed branch feature"}, fake.Commits)
	})

	t.Run("uses the configured comment", func(t *testing.T) {
		cfg := landConfig()
		cfg.Message = "Ship the widget"
		fake := git.NewFakeRunner("feature", "main")
		te := newTestEngine(t, fake, cfg, nil)

		err := te.engine.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"Ship the widget"}, fake.Commits)
	})
}

func TestSuccessfulLand(t *testing.T) {
	fake := git.NewFakeRunner("feature", "main")
	te := newTestEngine(t, fake, landConfig(), nil)

	err := te.engine.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "main", fake.Current, "a successful land finishes on the target branch")
	require.NotContains(t, fake.Branches, "feature", "the landed branch is deleted locally")
	te.markerAbsent(t)
}

func TestToleratedFailures(t *testing.T) {
	t.Run("branch deletion failure still reports success", func(t *testing.T) {
		fake := git.NewFakeRunner("feature", "main")
		fake.FailDelete = true
		te := newTestEngine(t, fake, landConfig(), nil)

		err := te.engine.Run(context.Background())
		require.NoError(t, err, "a failed branch deletion must not flip the verdict")
		require.Contains(t, fake.Branches, "feature")
		require.Contains(t, te.out.String(), "git branch -D feature")
		te.markerAbsent(t)
	})

	t.Run("push failure reports manual instructions", func(t *testing.T) {
		cfg := landConfig()
		cfg.Push = true
		fake := git.NewFakeRunner("feature", "main")
		fake.FailPush = true
		fake.FailPushDelete = true
		te := newTestEngine(t, fake, cfg, nil)

		err := te.engine.Run(context.Background())
		require.NoError(t, err)
		require.Contains(t, te.out.String(), "git push origin main")
		require.Contains(t, te.out.String(), "git push origin --delete feature")
	})

	t.Run("push succeeds when enabled", func(t *testing.T) {
		cfg := landConfig()
		cfg.Push = true
		fake := git.NewFakeRunner("feature", "main")
		te := newTestEngine(t, fake, cfg, nil)

		err := te.engine.Run(context.Background())
		require.NoError(t, err)
		require.Contains(t, fake.Ops, "push origin main")
		require.Contains(t, fake.Ops, "push origin --delete feature")
	})
}

func TestParanoidMode(t *testing.T) {
	t.Run("approving every prompt lands normally", func(t *testing.T) {
		cfg := landConfig()
		cfg.Paranoid = true
		fake := git.NewFakeRunner("feature", "main")
		confirm := &scriptedConfirmer{}
		te := newTestEngine(t, fake, cfg, confirm)

		err := te.engine.Run(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, confirm.prompts)
		require.Equal(t, "main", fake.Current)
	})

	t.Run("declining the squash matches the natural failure rollback", func(t *testing.T) {
		cfg := landConfig()
		cfg.Paranoid = true
		fake := git.NewFakeRunner("feature", "main")
		preSquashTip := fake.Branches["main"]
		te := newTestEngine(t, fake, cfg, &scriptedConfirmer{declineOn: "Squash-merge"})

		err := te.engine.Run(context.Background())
		require.ErrorIs(t, err, landerrors.ErrDeclined)
		require.Equal(t, preSquashTip, fake.Branches["main"])
		require.Equal(t, "feature", fake.Current)
		te.markerAbsent(t)
	})

	t.Run("declining the fast-forward restores the starting branch", func(t *testing.T) {
		cfg := landConfig()
		cfg.Paranoid = true
		fake := git.NewFakeRunner("feature", "main")
		te := newTestEngine(t, fake, cfg, &scriptedConfirmer{declineOn: "Fast-forward"})

		err := te.engine.Run(context.Background())
		require.ErrorIs(t, err, landerrors.ErrDeclined)
		require.Equal(t, "feature", fake.Current)
	})

	t.Run("declining the branch deletion is tolerated", func(t *testing.T) {
		cfg := landConfig()
		cfg.Paranoid = true
		fake := git.NewFakeRunner("feature", "main")
		te := newTestEngine(t, fake, cfg, &scriptedConfirmer{declineOn: "Delete branch"})

		err := te.engine.Run(context.Background())
		require.NoError(t, err, "declining a tolerated step must not flip the verdict")
		require.Contains(t, fake.Branches, "feature")
	})
}

func TestLandWithExplicitBranch(t *testing.T) {
	// Landing a branch other than the current one checks it out first
	fake := git.NewFakeRunner("other", "feature", "main")
	te := newTestEngine(t, fake, landConfig(), nil)

	err := te.engine.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, fake.Ops, "checkout feature")
	require.Equal(t, "main", fake.Current)
}

func TestStaleMarkerWarning(t *testing.T) {
	fake := git.NewFakeRunner("feature", "main")
	te := newTestEngine(t, fake, landConfig(), nil)

	// Simulate a marker left behind by a previous run
	markerPath := filepath.Join(te.repoRoot, lock.MarkerName)
	require.NoError(t, os.WriteFile(markerPath, []byte("4242\n"), 0600))

	err := te.engine.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, te.out.String(), "4242")
	te.markerAbsent(t)
}

func TestVerboseNarration(t *testing.T) {
	cfg := landConfig()
	cfg.Verbose = true
	fake := git.NewFakeRunner("feature", "main")
	te := newTestEngine(t, fake, cfg, nil)

	err := te.engine.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, te.out.String(), "Rebasing feature onto main")
	require.Contains(t, te.out.String(), "Squash-merging feature into main")
}
