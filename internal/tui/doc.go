// Package tui provides the interactive instance picker for toadbox-ctl.
package tui
