// Package testutil provides a mock-backed application environment for
// command and integration tests.
package testutil
