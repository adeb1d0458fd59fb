// Package workflows contains the core operations behind lockbox commands.
//
// Each workflow takes an Options struct and returns a Result struct plus an
// error, keeping the cmd layer free of vault logic. Workflows never prompt:
// passwords and confirmations arrive fully resolved from the caller, and
// policy re-prompting happens above this layer.
//
// All workflows are synchronous and single-threaded. Rotate is the only one
// with a multi-step on-disk protocol; see its doc comment for the ordering
// that guarantees the live vault survives any failure untouched.
package workflows
