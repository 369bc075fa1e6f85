package lifecycle

import (
	"context"
	"strings"

	"github.com/toadworks/toadbox-ctl/internal/compose"
	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// Reconciler polls live runtime state and normalizes it into the instance
// status enumeration. This is the only path that corrects a mis-tracked
// status.
type Reconciler struct {
	exec         system.CommandExecutor
	fs           system.FileSystem
	manifestPath string
	project      string
}

// NewReconciler returns a Reconciler querying the given control plane scope.
func NewReconciler(exec system.CommandExecutor, fs system.FileSystem, manifestPath, project string) *Reconciler {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Reconciler{exec: exec, fs: fs, manifestPath: manifestPath, project: project}
}

// Observe returns the live status of one instance. No manifest on disk means
// stopped, unconditionally. An unresolvable control plane means error; it
// cannot be distinguished from a stopped container without the tooling.
func (r *Reconciler) Observe(ctx context.Context, inst *instance.Instance) instance.Status {
	if !r.fs.Exists(r.manifestPath) {
		return instance.StatusStopped
	}

	binding, err := compose.ResolveBinding(ctx, r.exec, r.manifestPath, r.project)
	if err != nil {
		return instance.StatusError
	}

	serviceID := inst.ServiceID()
	bin, args := binding.Command("ps", "--services", "--filter", "status=running", serviceID)

	stdout, _, err := r.exec.ExecuteStreams(ctx, bin, args...)
	if err != nil {
		logging.Debug("status query failed", "instance", inst.Name, "error", err)
		return instance.StatusStopped
	}

	for _, line := range strings.Split(string(stdout), "\n") {
		if strings.TrimSpace(line) == serviceID {
			return instance.StatusRunning
		}
	}
	return instance.StatusStopped
}
