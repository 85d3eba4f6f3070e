// Package workflow implements the land workflow engine.
//
// Landing is an ordered sequence of guarded git operations: fast-forward the
// target branch from the remote, rebase the landing branch onto it, squash-
// merge, commit, delete the landing branch, and optionally push. Each step
// either completes fully or rolls back exactly the state it began to mutate
// (checkout restoration, rebase abort, or hard reset to a checkpoint) before
// the failure is reported.
//
// Key patterns:
//   - All repository access goes through git.Runner, so the engine runs
//     against real git or an in-memory fake
//   - Failures after the squash commit (branch deletion, push) are tolerated:
//     they warn but do not flip the verdict
//   - Paranoid mode gates every mutating operation behind a confirmation;
//     declining routes through the same rollback as a natural failure
package workflow
