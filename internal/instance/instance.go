package instance

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// HostnamePrefix namespaces container and host names derived from instances.
const HostnamePrefix = "toadbox-"

// Priority is an advisory scheduling hint; nothing in this tool enforces it.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// nameRegex validates instance names: start with a lowercase letter or
// digit, then lowercase letters, digits, underscores, or hyphens, at most
// 63 characters (common container name limit).
var nameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateName checks if an instance name is valid.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid instance name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// Instance is the record for one managed sandbox.
type Instance struct {
	Name      string   `json:"name"`
	Workspace string   `json:"workspace"`
	CPUCores  int      `json:"cpu_cores"`
	MemoryMB  int      `json:"memory_mb"`
	Priority  Priority `json:"priority"`
	SSHPort   int      `json:"ssh_port"`
	RDPPort   int      `json:"rdp_port"`
	UID       int      `json:"uid"`
	GID       int      `json:"gid"`
	Status    Status   `json:"status"`
}

// Validate checks the record's creation-time invariants. Port uniqueness
// across the registry is the store's job, not the record's.
func (i *Instance) Validate() error {
	if err := ValidateName(i.Name); err != nil {
		return err
	}
	if !filepath.IsAbs(i.Workspace) {
		return fmt.Errorf("workspace must be an absolute path (got %q)", i.Workspace)
	}
	if i.CPUCores <= 0 {
		return fmt.Errorf("cpu_cores must be positive (got %d)", i.CPUCores)
	}
	if i.MemoryMB <= 0 {
		return fmt.Errorf("memory_mb must be positive (got %d)", i.MemoryMB)
	}
	if !ValidPriority(i.Priority) {
		return fmt.Errorf("invalid priority %q (must be low, medium, or high)", i.Priority)
	}
	if i.SSHPort <= 0 || i.RDPPort <= 0 {
		return fmt.Errorf("ssh_port and rdp_port must be positive")
	}
	return nil
}

var (
	serviceIDStrip = regexp.MustCompile(`[^0-9a-zA-Z]+`)
)

func sanitize(base, sep string) string {
	s := serviceIDStrip.ReplaceAllString(base, sep)
	s = strings.Trim(s, sep)
	return strings.ToLower(s)
}

// ServiceID returns the compose service identifier for this instance:
// lowercase alphanumerics and underscores only, runs of other characters
// collapsed, trimmed of leading/trailing underscores. Falls back to the
// workspace folder's basename when the name sanitizes to nothing.
func (i *Instance) ServiceID() string {
	if id := sanitize(i.Name, "_"); id != "" {
		return id
	}
	return sanitize(filepath.Base(i.Workspace), "_")
}

// Hostname returns the container and host name for this instance,
// hyphen-sanitized and namespaced under the toadbox prefix.
func (i *Instance) Hostname() string {
	base := i.Name
	if sanitize(base, "-") == "" {
		base = filepath.Base(i.Workspace)
	}
	return HostnamePrefix + sanitize(base, "-")
}

// instanceJSON is the wire form of an Instance. It exists to absorb legacy
// field names on read without leaking them into the in-memory record.
type instanceJSON struct {
	Name      string   `json:"name"`
	Workspace string   `json:"workspace"`
	CPUCores  int      `json:"cpu_cores"`
	MemoryMB  int      `json:"memory_mb"`
	Priority  Priority `json:"priority"`
	SSHPort   int      `json:"ssh_port"`
	RDPPort   int      `json:"rdp_port"`
	VNCPort   int      `json:"vnc_port,omitempty"` // legacy name for rdp_port
	UID       int      `json:"uid"`
	GID       int      `json:"gid"`
	Status    *Status  `json:"status"`
}

// UnmarshalJSON decodes a record, renaming the legacy vnc_port field to
// rdp_port and defaulting a missing status to stopped. Unknown fields are
// tolerated.
func (i *Instance) UnmarshalJSON(data []byte) error {
	var w instanceJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	i.Name = w.Name
	i.Workspace = w.Workspace
	i.CPUCores = w.CPUCores
	i.MemoryMB = w.MemoryMB
	i.Priority = w.Priority
	i.SSHPort = w.SSHPort
	i.RDPPort = w.RDPPort
	if i.RDPPort == 0 && w.VNCPort != 0 {
		i.RDPPort = w.VNCPort
	}
	i.UID = w.UID
	i.GID = w.GID

	if w.Status != nil {
		if !ValidStatus(*w.Status) {
			return fmt.Errorf("invalid status %q", *w.Status)
		}
		i.Status = *w.Status
	} else {
		i.Status = StatusStopped
	}

	return nil
}
