// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Branch management (checkout, delete, existence checks)
//   - Working tree state queries (dirty and untracked paths)
//   - Landing operations (fetch, fast-forward merge, rebase, squash-merge,
//     commit, hard reset, push)
//   - Repository-scoped configuration reads
//
// This package should be the only place where direct git commands are executed.
package git
