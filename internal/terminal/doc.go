// Package terminal provides interactive prompt handling for lockbox.
//
// The Prompt type is an explicit capability object over the process's
// controlling terminal. Password entry runs in raw mode with masked echo and
// guarantees the terminal is restored to cooked mode on success, error, or
// interrupt. An interrupt (Ctrl-C) during entry terminates the whole process;
// there is no partial return.
//
// Retry logic does not live here. Callers decide whether to re-prompt on a
// weak password or a confirmation mismatch.
package terminal
