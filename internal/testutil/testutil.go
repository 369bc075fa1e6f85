package testutil

import (
	"strings"
	"testing"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/config"
	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// Canonical test locations, kept absolute so mock filesystem lookups are
// unambiguous.
const (
	RegistryPath = "/home/test/.toadbox-manager.json"
	StateDir     = "/home/test/.toadbox-manager"
	ManifestPath = "/home/test/.toadbox-manager/docker-compose.yml"
	SettingsPath = "/home/test/.config/toadbox/config.toml"
	DockerPath   = "/usr/bin/docker"
)

// TestEnv holds the test environment.
type TestEnv struct {
	T        *testing.T
	Paths    *config.Paths
	Settings *config.Settings
	FS       *system.MockFS
	Exec     *system.MockExecutor
	App      *app.App
}

// NewTestEnv builds an App over mock host abstractions with a resolvable
// modern compose binding, and installs it as the process default until the
// test ends.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	fs := system.NewMockFS()
	exec := system.NewMockExecutor()
	exec.AddBinary("docker", DockerPath)

	paths := &config.Paths{
		RegistryPath: RegistryPath,
		StateDir:     StateDir,
		ManifestPath: ManifestPath,
		SettingsPath: SettingsPath,
	}
	settings := config.DefaultSettings()

	testApp := app.New(
		app.WithPaths(paths),
		app.WithSettings(settings),
		app.WithFS(fs),
		app.WithExecutor(exec),
	)
	app.SetDefault(testApp)
	t.Cleanup(app.ResetDefault)

	return &TestEnv{
		T:        t,
		Paths:    paths,
		Settings: settings,
		FS:       fs,
		Exec:     exec,
		App:      testApp,
	}
}

// NewInstance returns a valid instance record for tests. Ports derive from
// the name length so multiple calls in one test do not collide unless names
// share a length.
func NewInstance(name string, status instance.Status) *instance.Instance {
	return &instance.Instance{
		Name:      name,
		Workspace: "/home/test/" + name,
		CPUCores:  2,
		MemoryMB:  4096,
		Priority:  instance.PriorityLow,
		SSHPort:   2222 + len(name),
		RDPPort:   3390 + len(name),
		UID:       1000,
		GID:       1000,
		Status:    status,
	}
}

// AddInstance registers an instance through the real store.
func (e *TestEnv) AddInstance(inst *instance.Instance) {
	e.T.Helper()
	if err := e.App.Store.Create(inst); err != nil {
		e.T.Fatalf("failed to add instance %s: %v", inst.Name, err)
	}
}

// ComposeLine returns the full command line for a scoped compose invocation
// against this environment's manifest and project.
func ComposeLine(args ...string) string {
	return DockerPath + " compose -f " + ManifestPath + " -p " + config.Project + " " + strings.Join(args, " ")
}

// MarkRunning makes the control plane report the named service as running.
func (e *TestEnv) MarkRunning(serviceID string) {
	e.Exec.AddResponse(
		ComposeLine("ps", "--services", "--filter", "status=running", serviceID),
		system.MockResponse{Stdout: []byte(serviceID + "\n")},
	)
}
