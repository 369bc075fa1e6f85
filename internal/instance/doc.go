// Package instance defines the record for one managed toadbox sandbox:
// its identity, resource limits, port assignments, and lifecycle status.
//
// The status field is advisory cached state. Operator-driven transitions go
// through an explicit transition table (Transition); reconciliation against
// the live runtime applies observed state unconditionally (Reconcile),
// because the runtime is always authoritative.
package instance
