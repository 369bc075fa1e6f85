package health

import (
	"context"

	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/ssh"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// Status summarizes a check result.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusStopped   Status = "stopped"
)

// CheckResult holds the outcome of the individual probes.
type CheckResult struct {
	ContainerRunning bool
	SSHReachable     bool
}

// Summary collapses the probes into a single status. A running container
// whose SSH daemon does not answer is unhealthy; a stopped container is
// just stopped, not a failure.
func (r CheckResult) Summary() Status {
	switch {
	case !r.ContainerRunning:
		return StatusStopped
	case !r.SSHReachable:
		return StatusUnhealthy
	default:
		return StatusHealthy
	}
}

// Observer reports the live container status for an instance.
type Observer interface {
	Observe(ctx context.Context, name string) (instance.Status, error)
}

// Check probes one instance. The SSH probe only runs when the container is
// up; a connection refused against a stopped container tells us nothing new.
func Check(ctx context.Context, observer Observer, exec system.CommandExecutor, inst *instance.Instance) CheckResult {
	var result CheckResult

	observed, err := observer.Observe(ctx, inst.Name)
	if err != nil {
		return result
	}
	result.ContainerRunning = observed == instance.StatusRunning

	if result.ContainerRunning {
		result.SSHReachable = ssh.CheckConnection(ctx, exec, ssh.DefaultOptions(inst.SSHPort))
	}
	return result
}
