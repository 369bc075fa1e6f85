// Package lifecycle issues idempotent start/stop/remove operations against
// the compose control plane, one instance at a time, and reconciles the
// resulting live status back into the registry.
//
// Every operation rebuilds the shared manifest from the registry before
// touching the runtime and resolves the control-plane binding fresh. The
// driver serializes concurrent actions on the same instance with a named
// lock; actions on different instances interleave freely because every
// invocation is scoped to a single service. There are no timeouts and no
// automatic retries: every retry is a fresh operator action.
package lifecycle
