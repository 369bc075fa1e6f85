// Package health probes a single instance: is the container running, and
// does its SSH daemon answer. Checks are read-only and never change the
// registry; the refresh path owns reconciliation.
package health
