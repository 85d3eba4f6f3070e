// Package config manages repository-scoped land configuration.
//
// Settings are read from git config so they live with the repository:
//   - land.remote: the remote used for fetch/push (default "origin")
//   - land.target: the branch landed onto (default "main")
package config

import (
	"context"

	"land.dev/land/internal/git"
)

// Defaults used when the repository has no explicit configuration
const (
	DefaultRemote = "origin"
	DefaultTarget = "main"
)

// Git config keys
const (
	remoteKey = "land.remote"
	targetKey = "land.target"
)

// GetRemote returns the configured remote, or "origin"
func GetRemote(ctx context.Context, runner git.Runner) string {
	value, err := runner.ConfigGet(ctx, remoteKey)
	if err != nil || value == "" {
		return DefaultRemote
	}
	return value
}

// GetTarget returns the configured target branch, or "main"
func GetTarget(ctx context.Context, runner git.Runner) string {
	value, err := runner.ConfigGet(ctx, targetKey)
	if err != nil || value == "" {
		return DefaultTarget
	}
	return value
}
