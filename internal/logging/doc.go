// Package logging provides the two output channels of toadbox-ctl:
//
//   - Debug logging: structured logs for debugging (via slog)
//   - User output: plain messages for the operator (stdout/stderr)
//
// Debug logs are written using slog and controlled by verbosity settings:
// Setup(verbose, json, w) installs the package-level Logger.
package logging
