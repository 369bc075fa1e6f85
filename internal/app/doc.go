// Package app wires the application dependencies for toadbox-ctl. It
// allows dependency injection for testing.
package app
