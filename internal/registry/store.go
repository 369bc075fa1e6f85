package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/toadworks/toadbox-ctl/internal/compose"
	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// registryFile is the on-disk envelope. Unknown top-level fields are
// tolerated on read.
type registryFile struct {
	Instances map[string]*instance.Instance `json:"instances"`
}

// Store owns the in-memory registry and its persistence boundary. All
// mutations go through methods that persist before returning.
type Store struct {
	path     string
	fs       system.FileSystem
	renderer *compose.Renderer

	mu        sync.Mutex
	instances map[string]*instance.Instance
}

// Open loads the registry from path. A missing file or a parse failure both
// yield an empty registry; registry data is not considered recoverable and
// availability wins over strictness on the load path.
func Open(path string, fs system.FileSystem, renderer *compose.Renderer) *Store {
	if fs == nil {
		fs = system.DefaultFS()
	}

	s := &Store{
		path:      path,
		fs:        fs,
		renderer:  renderer,
		instances: make(map[string]*instance.Instance),
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		logging.Debug("registry file not read, starting empty", "path", path, "error", err)
		return s
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		logging.Warn("registry file unparseable, starting empty", "path", path, "error", err)
		return s
	}

	for name, inst := range file.Instances {
		if inst == nil {
			continue
		}
		// The map key is authoritative for identity.
		inst.Name = name
		s.instances[name] = inst
	}

	return s
}

// Len returns the number of registered instances.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

// Get returns a copy of the named record.
func (s *Store) Get(name string) (instance.Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[name]
	if !ok {
		return instance.Instance{}, false
	}
	return *inst, true
}

// List returns copies of all records, sorted by name.
func (s *Store) List() []*instance.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

func (s *Store) listLocked() []*instance.Instance {
	names := make([]string, 0, len(s.instances))
	for name := range s.instances {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*instance.Instance, 0, len(names))
	for _, name := range names {
		copied := *s.instances[name]
		out = append(out, &copied)
	}
	return out
}

// Create validates and registers a new instance, then persists. Name and
// port conflicts are rejected before any persisted or rendered state
// changes, naming the clashing instance and role(s).
func (s *Store) Create(inst *instance.Instance) error {
	if err := inst.Validate(); err != nil {
		return errors.ValidationError(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.instances[inst.Name]; exists {
		return errors.DuplicateName(inst.Name)
	}

	// Sorted scan so a multi-conflict rejection is deterministic.
	names := make([]string, 0, len(s.instances))
	for name := range s.instances {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		existing := s.instances[name]
		var roles []string
		if existing.SSHPort == inst.SSHPort {
			roles = append(roles, "SSH")
		}
		if existing.RDPPort == inst.RDPPort {
			roles = append(roles, "RDP")
		}
		if len(roles) > 0 {
			return errors.PortConflict(name, roles)
		}
	}

	copied := *inst
	s.instances[inst.Name] = &copied
	return s.saveLocked()
}

// Delete removes the named record and persists. The caller is responsible
// for stopping and removing the container first.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[name]; !ok {
		return errors.InstanceNotFound(name)
	}

	delete(s.instances, name)
	return s.saveLocked()
}

// Mutate applies fn to a copy of the named record and commits it with a
// save; if fn fails, nothing changes. This is the explicit mutate-then-
// persist transaction boundary.
func (s *Store) Mutate(name string, fn func(*instance.Instance) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[name]
	if !ok {
		return errors.InstanceNotFound(name)
	}

	scratch := *inst
	if err := fn(&scratch); err != nil {
		return err
	}
	scratch.Name = name // identity is immutable

	s.instances[name] = &scratch
	return s.saveLocked()
}

// Save persists the registry and rebuilds the manifest.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	file := registryFile{Instances: s.instances}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}

	// Keep the shared manifest in sync with every save.
	if s.renderer != nil {
		if err := s.renderer.Write(s.listLocked()); err != nil {
			return err
		}
	}

	return nil
}
