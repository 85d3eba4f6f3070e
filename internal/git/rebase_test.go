package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	landerrors "land.dev/land/internal/errors"
	"land.dev/land/internal/git"
	"land.dev/land/testhelpers"
)

func TestRebase(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	runner := git.NewRunner(scene.Dir)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("feature change", "feature"))

	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("main change", "main"))

	require.NoError(t, scene.Repo.CheckoutBranch("feature"))
	require.NoError(t, runner.Rebase(ctx, "main"))

	// After the rebase, main's tip is an ancestor of feature
	mainTip, err := scene.Repo.RevParse("main")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.RunGitCommand("merge-base", "--is-ancestor", mainTip, "feature"))
}

func TestRebaseConflict(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	runner := git.NewRunner(scene.Dir)
	ctx := context.Background()

	// Both branches modify the same file in conflicting ways
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("feature version", "same"))

	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("main version", "same"))

	require.NoError(t, scene.Repo.CheckoutBranch("feature"))
	preRebaseTip, err := scene.Repo.RevParse("feature")
	require.NoError(t, err)

	err = runner.Rebase(ctx, "main")
	require.ErrorIs(t, err, landerrors.ErrRebaseConflict)

	require.NoError(t, runner.RebaseAbort(ctx))

	tip, err := scene.Repo.RevParse("feature")
	require.NoError(t, err)
	require.Equal(t, preRebaseTip, tip, "aborting the rebase restores the pre-rebase tip")
}
