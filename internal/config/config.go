package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/toadworks/toadbox-ctl/internal/instance"
)

const (
	// Project is the compose project namespace; it keeps repeated compose
	// invocations idempotent and isolated from unrelated workloads.
	Project = "toadbox-manager"

	// ManifestFile is the generated compose file name inside the state dir.
	ManifestFile = "docker-compose.yml"

	// RegistryFile is the registry file name inside the home directory.
	RegistryFile = ".toadbox-manager.json"

	// StateDirName is the state directory name inside the home directory.
	StateDirName = ".toadbox-manager"
)

// Paths holds the configured file locations.
type Paths struct {
	// RegistryPath is the durable instance registry (JSON).
	RegistryPath string

	// StateDir holds the generated manifest and per-instance event logs.
	StateDir string

	// ManifestPath is the generated compose manifest.
	ManifestPath string

	// SettingsPath is the optional operator settings file (TOML).
	SettingsPath string
}

// DefaultPaths returns the default path configuration rooted at $HOME.
func DefaultPaths() *Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(home, ".config")
	}

	stateDir := filepath.Join(home, StateDirName)
	return &Paths{
		RegistryPath: filepath.Join(home, RegistryFile),
		StateDir:     stateDir,
		ManifestPath: filepath.Join(stateDir, ManifestFile),
		SettingsPath: filepath.Join(configDir, "toadbox", "config.toml"),
	}
}

// Settings are operator-tunable defaults. Every field has a baked-in default
// so the settings file is optional.
type Settings struct {
	// Image is the base container image for every instance service.
	Image string `toml:"image"`

	// SSHBasePort and RDPBasePort seed the port allocator's linear scan.
	SSHBasePort int `toml:"ssh_base_port"`
	RDPBasePort int `toml:"rdp_base_port"`

	// Defaults applied to newly created instances.
	DefaultCPUCores int               `toml:"default_cpu_cores"`
	DefaultMemoryMB int               `toml:"default_memory_mb"`
	DefaultPriority instance.Priority `toml:"default_priority"`

	// User is the account inside the container for SSH/RDP sessions.
	User string `toml:"user"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Image:           "toadbox",
		SSHBasePort:     2222,
		RDPBasePort:     3390,
		DefaultCPUCores: 2,
		DefaultMemoryMB: 4096,
		DefaultPriority: instance.PriorityLow,
		User:            "agent",
	}
}

// LoadSettings reads the settings file, falling back to defaults when the
// file is missing. A malformed file is an error; missing fields keep their
// defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, err
	}

	if settings.SSHBasePort <= 0 {
		settings.SSHBasePort = 2222
	}
	if settings.RDPBasePort <= 0 {
		settings.RDPBasePort = 3390
	}
	if settings.DefaultCPUCores <= 0 {
		settings.DefaultCPUCores = 2
	}
	if settings.DefaultMemoryMB <= 0 {
		settings.DefaultMemoryMB = 4096
	}
	if !instance.ValidPriority(settings.DefaultPriority) {
		settings.DefaultPriority = instance.PriorityLow
	}
	if settings.User == "" {
		settings.User = "agent"
	}

	return settings, nil
}

// HostIdentity is the numeric identity forwarded into containers.
type HostIdentity struct {
	UID int
	GID int
}

// ResolveHostIdentity looks up the current user's UID/GID, falling back to
// 1000/1000 when the lookup fails or values do not parse.
func ResolveHostIdentity() HostIdentity {
	id := HostIdentity{UID: 1000, GID: 1000}

	u, err := user.Current()
	if err != nil {
		return id
	}

	if uid, err := strconv.Atoi(u.Uid); err == nil && uid > 0 {
		id.UID = uid
	}
	if gid, err := strconv.Atoi(u.Gid); err == nil && gid > 0 {
		id.GID = gid
	}

	return id
}
