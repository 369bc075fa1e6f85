package app

import (
	"path/filepath"

	"github.com/toadworks/toadbox-ctl/internal/audit"
	"github.com/toadworks/toadbox-ctl/internal/compose"
	"github.com/toadworks/toadbox-ctl/internal/config"
	"github.com/toadworks/toadbox-ctl/internal/lifecycle"
	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/registry"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// App holds the application dependencies.
type App struct {
	// Paths holds the configured file locations.
	Paths *config.Paths

	// Settings are the loaded operator settings.
	Settings *config.Settings

	// FS and Exec are the host-facing abstractions shared by every
	// component below.
	FS   system.FileSystem
	Exec system.CommandExecutor

	// Store is the instance registry.
	Store *registry.Store

	// Driver executes lifecycle actions.
	Driver *lifecycle.Driver

	// Reconciler observes live container status.
	Reconciler *lifecycle.Reconciler

	// Audit is the per-instance event trail.
	Audit *audit.Log
}

// Option is a function that configures the App.
type Option func(*App)

// WithPaths sets custom paths.
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets custom settings.
func WithSettings(settings *config.Settings) Option {
	return func(a *App) {
		a.Settings = settings
	}
}

// WithFS sets a custom filesystem.
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Exec = exec
	}
}

// New creates a new App with the given options. Anything not injected is
// built from the defaults: real filesystem, real executor, settings loaded
// from the default path.
func New(opts ...Option) *App {
	a := &App{
		Paths: config.DefaultPaths(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.FS == nil {
		a.FS = system.DefaultFS()
	}
	if a.Exec == nil {
		a.Exec = system.DefaultExecutor()
	}

	if a.Settings == nil {
		settings, err := config.LoadSettings(a.Paths.SettingsPath)
		if err != nil {
			logging.Warn("settings file unusable, using defaults", "path", a.Paths.SettingsPath, "error", err)
			settings = config.DefaultSettings()
		}
		a.Settings = settings
	}

	renderer := compose.NewRenderer(a.Paths.ManifestPath, a.Settings.Image, a.FS)
	a.Store = registry.Open(a.Paths.RegistryPath, a.FS, renderer)
	a.Audit = audit.NewLog(filepath.Join(a.Paths.StateDir, "audit"), a.FS)
	a.Reconciler = lifecycle.NewReconciler(a.Exec, a.FS, a.Paths.ManifestPath, config.Project)
	a.Driver = lifecycle.NewDriver(a.Store, renderer, a.Reconciler, a.Exec, a.Audit, a.Paths.ManifestPath, config.Project)

	return a
}

// Default is the default application instance, built lazily so tests can
// inject before first use.
var defaultApp *App

// Default returns the process-wide App, building it on first use.
func Default() *App {
	if defaultApp == nil {
		defaultApp = New()
	}
	return defaultApp
}

// SetDefault sets the default application instance (used for testing).
func SetDefault(a *App) {
	defaultApp = a
}

// ResetDefault discards the default instance; the next Default call
// rebuilds it.
func ResetDefault() {
	defaultApp = nil
}
