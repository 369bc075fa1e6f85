// Package rdp launches a desktop session against an instance's published
// RDP port. It shells out to whichever client is installed rather than
// speaking the protocol itself.
package rdp

import (
	"context"
	"fmt"

	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// DefaultUser is the account the desktop session logs in as.
const DefaultUser = "agent"

// Options configures the RDP client invocation.
type Options struct {
	Port int
	User string
}

// DefaultOptions returns Options for a localhost instance port.
func DefaultOptions(port int) Options {
	return Options{Port: port, User: DefaultUser}
}

// WithUser returns a copy logging in as the given user.
func (o Options) WithUser(user string) Options {
	if user != "" {
		o.User = user
	}
	return o
}

// Connect opens an RDP session. xfreerdp is preferred when installed; the
// system URL handler is the fallback. Clients are tried in order and the
// first one that launches wins.
func Connect(ctx context.Context, exec system.CommandExecutor, opts Options) error {
	if exec == nil {
		exec = system.DefaultExecutor()
	}

	target := fmt.Sprintf("localhost:%d", opts.Port)

	if path, err := exec.LookPath("xfreerdp"); err == nil {
		logging.Debug("rdp client", "client", "xfreerdp", "target", target)
		args := []string{
			fmt.Sprintf("/v:%s", target),
			fmt.Sprintf("/u:%s", opts.User),
			"/p:",
		}
		if err := exec.ExecuteInteractive(ctx, path, args...); err != nil {
			return errors.RDPError("xfreerdp session failed", err)
		}
		return nil
	}

	if path, err := exec.LookPath("open"); err == nil {
		logging.Debug("rdp client", "client", "open", "target", target)
		if err := exec.ExecuteInteractive(ctx, path, fmt.Sprintf("rdp://%s", target)); err != nil {
			return errors.RDPError("failed to open rdp url", err)
		}
		return nil
	}

	return errors.New(errors.ExitRDPError, "no RDP client found (install xfreerdp)")
}
