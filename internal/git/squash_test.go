package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	landerrors "land.dev/land/internal/errors"
	"land.dev/land/internal/git"
	"land.dev/land/testhelpers"
)

func TestSquashMergeAndCommit(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	runner := git.NewRunner(scene.Dir)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("first", "a"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("second", "b"))

	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	preSquashTip, err := scene.Repo.RevParse("main")
	require.NoError(t, err)

	require.NoError(t, runner.SquashMerge(ctx, "feature"))

	// The squash stages the change-set without creating a commit
	tip, err := scene.Repo.RevParse("main")
	require.NoError(t, err)
	require.Equal(t, preSquashTip, tip)

	require.NoError(t, runner.Commit(ctx, "Landed branch feature"))

	message, err := scene.Repo.CommitMessage("main")
	require.NoError(t, err)
	require.Equal(t, "Landed branch feature", message)

	// The two branch commits arrive as a single commit
	count, err := scene.Repo.RunGitCommandAndGetOutput("rev-list", "--count", preSquashTip+"..main")
	require.NoError(t, err)
	require.Equal(t, "1", count)
}

func TestSquashMergeConflict(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	runner := git.NewRunner(scene.Dir)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("feature version", "same"))

	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("main version", "same"))

	checkpoint, err := scene.Repo.RevParse("main")
	require.NoError(t, err)

	err = runner.SquashMerge(ctx, "feature")
	require.ErrorIs(t, err, landerrors.ErrSquashConflict)

	// Hard reset to the checkpoint undoes the partial staging
	require.NoError(t, runner.HardReset(ctx, checkpoint))

	paths, err := runner.StatusPaths(ctx)
	require.NoError(t, err)
	require.Empty(t, paths)

	tip, err := scene.Repo.RevParse("main")
	require.NoError(t, err)
	require.Equal(t, checkpoint, tip)
}
