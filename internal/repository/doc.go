// Package repository acquires pending changes from local git workspaces.
//
// Two complementary mechanisms live here:
//
//   - Collector shells out to the git binary to produce the unstaged and
//     staged diff text for a workspace. Diff computation stays in git;
//     this package only transports its output. Every subprocess runs with
//     an explicit working directory, so acquisition never mutates the
//     server's own working directory and concurrent calls need no locking.
//   - DetectWorkspace and InspectWorkspace use go-git to resolve the
//     working-tree root and summarize per-file staging/worktree states
//     without spawning a process.
//
// Acquisition is forgiving: a directory outside version control or a
// failing git subprocess degrades to empty diff text with the cause
// logged. Callers treat empty diffs as "no pending changes" instead of
// failing the request.
//
// Usage:
//
//	collector := repository.NewCollector(logger)
//	diffs := collector.CollectDiffs(ctx, workspaceRoot, "")
//	if diffs.Empty() { /* nothing to analyze */ }
//
//	status, err := repository.InspectWorkspace(workspaceRoot)
//	if err != nil { /* not a workspace */ }
package repository
