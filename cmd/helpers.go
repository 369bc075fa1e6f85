package cmd

import (
	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/config"
	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/instance"
)

// paths returns the application path configuration.
func paths() *config.Paths {
	return app.Default().Paths
}

// settings returns the loaded operator settings.
func settings() *config.Settings {
	return app.Default().Settings
}

// loadInstance loads a registry record or returns an InstanceNotFound error.
func loadInstance(name string) (instance.Instance, error) {
	inst, ok := app.Default().Store.Get(name)
	if !ok {
		return instance.Instance{}, errors.InstanceNotFound(name)
	}
	return inst, nil
}

// loadRunningInstance loads a record and verifies its cached status is
// running. Returns InstanceNotFound if the instance doesn't exist, or
// InstanceNotRunning if it exists but isn't running.
func loadRunningInstance(name string) (instance.Instance, error) {
	inst, err := loadInstance(name)
	if err != nil {
		return inst, err
	}
	if inst.Status != instance.StatusRunning {
		return inst, errors.InstanceNotRunning(name)
	}
	return inst, nil
}

// listInstances lists all registry records sorted by name.
func listInstances() []*instance.Instance {
	return app.Default().Store.List()
}
