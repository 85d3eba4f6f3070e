// Package cli provides the land command surface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"land.dev/land/internal/config"
	"land.dev/land/internal/git"
	"land.dev/land/internal/output"
	"land.dev/land/internal/workflow"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		push     bool
		verbose  bool
		paranoid bool
	)

	rootCmd := &cobra.Command{
		Use:   "land [flags] [<comment> [<branch>]]",
		Short: "Land a feature branch onto the target branch",
		Long: `Land a feature branch onto the target branch.

Landing fast-forwards the target branch from the remote, rebases the feature
branch onto it, squash-merges the branch as a single commit, and deletes the
branch locally. Any failure rolls the repository back to a known-good state.

The commit message defaults to "Landed branch <branch>" and the branch
defaults to the currently checked-out branch. The remote and target branch
are read from git config (land.remote, land.target).`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repoRoot, err := git.GetRepoRoot("")
			if err != nil {
				return err
			}
			runner := git.NewRunner(repoRoot)

			landing := ""
			message := ""
			if len(args) >= 1 {
				message = args[0]
			}
			if len(args) == 2 {
				landing = args[1]
			}
			if landing == "" {
				landing, err = runner.CurrentBranch(ctx)
				if err != nil {
					return fmt.Errorf("no branch given and %w", err)
				}
			}

			cfg := workflow.Config{
				LandingBranch: landing,
				TargetBranch:  config.GetTarget(ctx, runner),
				Remote:        config.GetRemote(ctx, runner),
				Message:       message,
				Push:          push,
				Verbose:       verbose,
				Paranoid:      paranoid,
			}

			eng := workflow.New(cfg, runner, output.NewSplog(), workflow.NewConfirmer(), repoRoot)
			return eng.Run(ctx)
		},
	}

	rootCmd.Flags().BoolVar(&push, "push", false, "After landing, push the target branch and the branch deletion to the remote")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Narrate each step before executing it")
	rootCmd.Flags().BoolVar(&paranoid, "paranoid", false, "Require confirmation before each mutating step")

	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// HandleHelp prints usage when -h/--help was requested and returns true.
// Help is treated as a usage error so the caller exits non-zero.
func HandleHelp(args []string, rootCmd *cobra.Command) bool {
	for _, arg := range args[1:] {
		if arg == "--" {
			return false
		}
		if arg == "-h" || arg == "--help" || strings.HasPrefix(arg, "--help=") {
			_ = rootCmd.Help()
			return true
		}
	}
	return false
}

// newVersionCmd creates the version command
func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("land %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
