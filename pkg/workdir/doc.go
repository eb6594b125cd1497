// Package workdir manages the scoped output directory for rendering.
//
// The working directory is process-wide shared mutable state, so this
// package reframes the ambient chdir as an explicit scope: [Enter]
// creates the target directory, records the prior location, and moves
// into it; [Handle.Exit] restores the prior location unconditionally.
// Exit is guaranteed-release, not best-effort cleanup: callers defer it
// so it runs whether the scoped work succeeded, failed, or panicked, and
// a failed restore surfaces as [ErrRestore] instead of being swallowed.
//
// Because the scope is process-global, at most one scope should be in
// flight at a time; callers that need concurrency should serialize or
// use absolute output paths instead.
package workdir
