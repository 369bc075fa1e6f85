// Package ssh builds and runs SSH connections into instance containers.
// Containers publish their SSH daemon on a per-instance localhost port, so
// host key checking is disabled and nothing is recorded in known_hosts:
// the same port legitimately presents a new key after every rebuild.
package ssh

import (
	"context"
	"fmt"

	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// Default SSH configuration values.
const (
	DefaultUser           = "agent"
	DefaultHost           = "localhost"
	DefaultConnectTimeout = 2
)

// Options configures SSH connection parameters.
type Options struct {
	Port               int
	User               string
	Host               string
	StrictHostKeyCheck bool
	KnownHostsFile     string
	ConnectTimeout     int
	BatchMode          bool
	RequestTTY         bool
}

// DefaultOptions returns Options suited to instance connections.
func DefaultOptions(port int) Options {
	return Options{
		Port:               port,
		User:               DefaultUser,
		Host:               DefaultHost,
		StrictHostKeyCheck: false,
		KnownHostsFile:     "/dev/null",
		ConnectTimeout:     DefaultConnectTimeout,
	}
}

// WithUser returns a copy connecting as the given user.
func (o Options) WithUser(user string) Options {
	if user != "" {
		o.User = user
	}
	return o
}

// WithBatchMode returns a copy with batch mode enabled.
func (o Options) WithBatchMode() Options {
	o.BatchMode = true
	return o
}

// WithTTY returns a copy with TTY requested.
func (o Options) WithTTY() Options {
	o.RequestTTY = true
	return o
}

// WithTimeout returns a copy with the specified connect timeout.
func (o Options) WithTimeout(seconds int) Options {
	o.ConnectTimeout = seconds
	return o
}

// BaseArgs returns the common SSH arguments (options only, no user@host).
func (o Options) BaseArgs() []string {
	args := []string{
		"-p", fmt.Sprintf("%d", o.Port),
	}

	if !o.StrictHostKeyCheck {
		args = append(args, "-o", "StrictHostKeyChecking=no")
	}

	if o.KnownHostsFile != "" {
		args = append(args, "-o", fmt.Sprintf("UserKnownHostsFile=%s", o.KnownHostsFile))
	}

	if o.BatchMode {
		args = append(args, "-o", "BatchMode=yes")
	}

	if o.ConnectTimeout > 0 {
		args = append(args, "-o", fmt.Sprintf("ConnectTimeout=%d", o.ConnectTimeout))
	}

	if o.RequestTTY {
		args = append(args, "-t")
	}

	return args
}

// Destination returns the user@host string.
func (o Options) Destination() string {
	return fmt.Sprintf("%s@%s", o.User, o.Host)
}

// BuildArgs returns complete SSH arguments for executing a command.
func (o Options) BuildArgs(command ...string) []string {
	args := o.BaseArgs()
	args = append(args, o.Destination())
	args = append(args, command...)
	return args
}

// Exec runs a command inside the instance and returns its combined output.
func Exec(ctx context.Context, exec system.CommandExecutor, opts Options, command ...string) ([]byte, error) {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	out, err := exec.Execute(ctx, "ssh", opts.WithBatchMode().BuildArgs(command...)...)
	if err != nil {
		return out, errors.SSHError("remote command failed", err)
	}
	return out, nil
}

// Interactive runs a command with the terminal attached, returning control
// to the caller when the session ends.
func Interactive(ctx context.Context, exec system.CommandExecutor, opts Options, command ...string) error {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	if err := exec.ExecuteInteractive(ctx, "ssh", opts.WithTTY().BuildArgs(command...)...); err != nil {
		return errors.SSHError("interactive session failed", err)
	}
	return nil
}

// ReplaceWithSession hands the current process over to an SSH session.
// On success it does not return.
func ReplaceWithSession(exec system.CommandExecutor, opts Options, command ...string) error {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	if err := exec.ReplaceProcess("ssh", opts.WithTTY().BuildArgs(command...)...); err != nil {
		return errors.SSHError("failed to start ssh session", err)
	}
	return nil
}

// CheckConnection reports whether the instance's SSH daemon accepts a
// connection within the option's timeout.
func CheckConnection(ctx context.Context, exec system.CommandExecutor, opts Options) bool {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	_, err := exec.Execute(ctx, "ssh", opts.WithBatchMode().BuildArgs("true")...)
	return err == nil
}
