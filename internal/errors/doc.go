// Package errors defines the error taxonomy for toadbox-ctl.
//
// Every error that reaches main carries an exit code. Validation failures
// (duplicate names, port conflicts) are rejected before any state changes;
// control-plane and compose invocation failures are surfaced with captured
// diagnostics and never retried automatically.
package errors
