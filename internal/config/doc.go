// Package config holds the fixed filesystem layout of toadbox-ctl (registry
// file, state directory, generated manifest path) and optional operator
// settings loaded from a TOML file.
package config
