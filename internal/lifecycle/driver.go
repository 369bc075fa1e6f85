package lifecycle

import (
	"context"
	"strings"
	"sync"

	"github.com/toadworks/toadbox-ctl/internal/audit"
	"github.com/toadworks/toadbox-ctl/internal/compose"
	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/registry"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// Driver executes lifecycle actions against the compose control plane and
// keeps the registry's cached status in step with the outcome.
type Driver struct {
	store      *registry.Store
	renderer   *compose.Renderer
	reconciler *Reconciler
	exec       system.CommandExecutor
	audit      *audit.Log

	manifestPath string
	project      string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDriver wires a Driver over the given store, renderer and reconciler.
func NewDriver(store *registry.Store, renderer *compose.Renderer, reconciler *Reconciler, exec system.CommandExecutor, auditLog *audit.Log, manifestPath, project string) *Driver {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Driver{
		store:        store,
		renderer:     renderer,
		reconciler:   reconciler,
		exec:         exec,
		audit:        auditLog,
		manifestPath: manifestPath,
		project:      project,
		locks:        make(map[string]*sync.Mutex),
	}
}

// lock serializes actions on one instance. Actions on distinct instances
// interleave freely; every compose invocation is scoped to a single service.
func (d *Driver) lock(name string) func() {
	d.mu.Lock()
	l, ok := d.locks[name]
	if !ok {
		l = &sync.Mutex{}
		d.locks[name] = l
	}
	d.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// prepare rebuilds the shared manifest from the full registry and resolves
// the control-plane binding. An unresolvable binding abandons the action
// before any status change.
func (d *Driver) prepare(ctx context.Context) (*compose.Binding, error) {
	if err := d.renderer.Write(d.store.List()); err != nil {
		return nil, errors.ConfigError("failed to write compose manifest", err)
	}
	return compose.ResolveBinding(ctx, d.exec, d.manifestPath, d.project)
}

// invoke runs one scoped compose command. The diagnostic is trimmed stderr,
// falling back to trimmed stdout when stderr is empty.
func (d *Driver) invoke(ctx context.Context, binding *compose.Binding, args ...string) (bool, string) {
	bin, full := binding.Command(args...)
	logging.Debug("compose invocation", "binding", binding.Name(), "args", full)

	stdout, stderr, err := d.exec.ExecuteStreams(ctx, bin, full...)
	diagnostic := strings.TrimSpace(string(stderr))
	if diagnostic == "" {
		diagnostic = strings.TrimSpace(string(stdout))
	}
	return err == nil, diagnostic
}

// transition applies an operator-driven status change through the store,
// surfacing state-machine rejections as validation errors.
func (d *Driver) transition(name string, next instance.Status) error {
	err := d.store.Mutate(name, func(i *instance.Instance) error {
		return i.Transition(next)
	})
	var invalid *instance.InvalidTransitionError
	if errors.As(err, &invalid) {
		return errors.ValidationError(invalid.Error())
	}
	return err
}

// markError force-sets the record to error after a failed invocation.
func (d *Driver) markError(name string) {
	err := d.store.Mutate(name, func(i *instance.Instance) error {
		i.Reconcile(instance.StatusError)
		return nil
	})
	if err != nil {
		logging.Warn("status not persisted after failure", "instance", name, "error", err)
	}
}

// Start brings the named instance's container up and settles the record on
// the observed status.
func (d *Driver) Start(ctx context.Context, name string) error {
	defer d.lock(name)()

	inst, ok := d.store.Get(name)
	if !ok {
		return errors.InstanceNotFound(name)
	}
	if !inst.Status.CanTransition(instance.StatusStarting) {
		return errors.ValidationError((&instance.InvalidTransitionError{From: inst.Status, To: instance.StatusStarting}).Error())
	}

	binding, err := d.prepare(ctx)
	if err != nil {
		return err
	}

	if err := d.transition(name, instance.StatusStarting); err != nil {
		return err
	}

	ok, diagnostic := d.invoke(ctx, binding, "up", "-d", inst.ServiceID())
	if !ok {
		d.markError(name)
		d.audit.Record(name, audit.ActionError, diagnostic)
		return errors.ComposeFailed("start instance", diagnostic)
	}

	observed := d.reconciler.Observe(ctx, &inst)
	if err := d.store.Mutate(name, func(i *instance.Instance) error {
		i.Reconcile(observed)
		return nil
	}); err != nil {
		return err
	}

	d.audit.Record(name, audit.ActionStart, "")
	logging.Info("instance started", "instance", name, "status", observed)
	return nil
}

// Stop stops the named instance's container.
func (d *Driver) Stop(ctx context.Context, name string) error {
	defer d.lock(name)()
	return d.stopLocked(ctx, name)
}

func (d *Driver) stopLocked(ctx context.Context, name string) error {
	inst, ok := d.store.Get(name)
	if !ok {
		return errors.InstanceNotFound(name)
	}
	if !inst.Status.CanTransition(instance.StatusStopping) {
		return errors.ValidationError((&instance.InvalidTransitionError{From: inst.Status, To: instance.StatusStopping}).Error())
	}

	binding, err := d.prepare(ctx)
	if err != nil {
		return err
	}

	if err := d.transition(name, instance.StatusStopping); err != nil {
		return err
	}

	ok, diagnostic := d.invoke(ctx, binding, "stop", inst.ServiceID())
	if !ok {
		d.markError(name)
		d.audit.Record(name, audit.ActionError, diagnostic)
		return errors.ComposeFailed("stop instance", diagnostic)
	}

	if err := d.transition(name, instance.StatusStopped); err != nil {
		return err
	}

	d.audit.Record(name, audit.ActionStop, "")
	logging.Info("instance stopped", "instance", name)
	return nil
}

// Delete stops the instance if it is running, removes its container, and
// drops the record. A failed stop aborts the whole deletion; the record is
// only removed once the runtime side is gone. Volumes are removed with the
// container unless keepVolumes is set.
func (d *Driver) Delete(ctx context.Context, name string, keepVolumes bool) error {
	defer d.lock(name)()

	inst, ok := d.store.Get(name)
	if !ok {
		return errors.InstanceNotFound(name)
	}

	if inst.Status == instance.StatusRunning {
		if err := d.stopLocked(ctx, name); err != nil {
			return err
		}
	}

	binding, err := d.prepare(ctx)
	if err != nil {
		return err
	}

	args := []string{"rm", "-s", "-f"}
	if !keepVolumes {
		args = append(args, "-v")
	}
	args = append(args, inst.ServiceID())

	ok, diagnostic := d.invoke(ctx, binding, args...)
	if !ok {
		d.markError(name)
		d.audit.Record(name, audit.ActionError, diagnostic)
		return errors.ComposeFailed("delete instance", diagnostic)
	}

	if err := d.store.Delete(name); err != nil {
		return err
	}

	d.audit.Record(name, audit.ActionDelete, "")
	logging.Info("instance deleted", "instance", name, "kept_volumes", keepVolumes)
	return nil
}

// Refresh re-observes every registered instance and persists any status
// drift. Observation bypasses the transition table; the runtime wins.
func (d *Driver) Refresh(ctx context.Context) error {
	for _, inst := range d.store.List() {
		observed := d.reconciler.Observe(ctx, inst)
		if observed == inst.Status {
			continue
		}

		logging.Debug("status drift", "instance", inst.Name, "cached", inst.Status, "observed", observed)
		err := d.store.Mutate(inst.Name, func(i *instance.Instance) error {
			i.Reconcile(observed)
			return nil
		})
		if err != nil {
			return err
		}
		d.audit.Record(inst.Name, audit.ActionRefresh, string(observed))
	}
	return nil
}

// Observe returns the live status of the named instance without persisting.
func (d *Driver) Observe(ctx context.Context, name string) (instance.Status, error) {
	inst, ok := d.store.Get(name)
	if !ok {
		return "", errors.InstanceNotFound(name)
	}
	return d.reconciler.Observe(ctx, &inst), nil
}
