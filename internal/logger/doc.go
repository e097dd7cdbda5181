// Package logger wraps zap for the packager binaries:
//   - a global sugared logger writing console-encoded lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration,
//   - shortcuts such as Infof and WarnKV that pull the logger from a context.
//
// Stdout is left free for command output (resolved paths, metadata tables),
// so scripts can capture it without filtering log lines.
package logger
