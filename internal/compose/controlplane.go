package compose

import (
	"context"

	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// Binding is a resolved compose control-plane invocation: either the modern
// `docker compose` subcommand or the legacy standalone `docker-compose`
// binary, scoped to the shared manifest and project namespace.
type Binding struct {
	binary       string
	prefix       []string
	manifestPath string
	project      string
}

// Name returns a human-readable identifier for the binding.
func (b *Binding) Name() string {
	if len(b.prefix) > 0 {
		return b.binary + " " + b.prefix[0]
	}
	return b.binary
}

// Command builds the full invocation for a compose subcommand, always scoped
// with the manifest path and project namespace.
func (b *Binding) Command(args ...string) (string, []string) {
	full := append([]string{}, b.prefix...)
	full = append(full, "-f", b.manifestPath, "-p", b.project)
	full = append(full, args...)
	return b.binary, full
}

// ResolveBinding finds an available compose control plane. The modern docker
// binary is preferred when it responds to a `compose version` probe; the
// legacy docker-compose binary is the fallback. Resolution happens once per
// operation and is never cached, so installing or removing the tooling
// between operations is tolerated.
func ResolveBinding(ctx context.Context, exec system.CommandExecutor, manifestPath, project string) (*Binding, error) {
	if docker, err := exec.LookPath("docker"); err == nil {
		if _, probeErr := exec.Execute(ctx, docker, "compose", "version"); probeErr == nil {
			logging.Debug("resolved control plane", "binding", "docker compose")
			return &Binding{
				binary:       docker,
				prefix:       []string{"compose"},
				manifestPath: manifestPath,
				project:      project,
			}, nil
		}
	}

	if legacy, err := exec.LookPath("docker-compose"); err == nil {
		logging.Debug("resolved control plane", "binding", "docker-compose")
		return &Binding{
			binary:       legacy,
			manifestPath: manifestPath,
			project:      project,
		}, nil
	}

	return nil, errors.ControlPlaneUnavailable()
}
