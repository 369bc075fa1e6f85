// Package registry is the durable desired-state store: a JSON file mapping
// instance names to their records.
//
// Loading fails empty, not loud: a missing or unparseable registry file
// yields an empty registry so the tool stays available. Every save rewrites
// the whole file and then rebuilds the full compose manifest, so the two can
// never drift.
package registry
