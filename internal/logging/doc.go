// Package logger provides leveled, colored logging for lockbox CLI commands.
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows all messages including debug details
//
// Without flags, only user-facing warnings and errors are shown. Secret
// material (passwords, derived keys, plaintext credentials) must never be
// passed to any log method.
//
// Commands create a logger in their PersistentPreRun:
//
//	Logger = logger.Logger{Verbose: verbose, Debug: debug}
//	Logger.Infof("vault path: %s", path)
package logger
