// Package compose renders the instance registry into the shared
// docker-compose manifest and resolves the compose control-plane binding.
//
// Rendering is a pure, total function of the registry and always rebuilds
// the manifest in full. That full rebuild is a design invariant, not an
// optimization target: it is what guarantees the manifest can never
// reference a stale or deleted instance, as long as it runs before every
// lifecycle operation.
package compose
