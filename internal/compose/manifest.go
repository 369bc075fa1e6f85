package compose

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// NetworkName is the single shared bridge network all instances join.
const NetworkName = "toadbox_network"

// Manifest is the generated compose file: one service per instance, two
// named volumes per instance, one shared network.
type Manifest struct {
	Version  string             `yaml:"version"`
	Services map[string]Service `yaml:"services"`
	Volumes  map[string]Volume  `yaml:"volumes"`
	Networks map[string]Network `yaml:"networks"`
}

// Service is one instance's container definition.
type Service struct {
	Image         string   `yaml:"image"`
	ContainerName string   `yaml:"container_name"`
	Hostname      string   `yaml:"hostname"`
	Restart       string   `yaml:"restart"`
	Environment   []string `yaml:"environment"`
	Ports         []string `yaml:"ports"`
	Volumes       []string `yaml:"volumes"`
	Networks      []string `yaml:"networks"`
	Privileged    bool     `yaml:"privileged"`
	Deploy        Deploy   `yaml:"deploy"`
}

// Deploy carries the resource ceilings copied from the instance record.
type Deploy struct {
	Resources Resources `yaml:"resources"`
}

type Resources struct {
	Limits Limits `yaml:"limits"`
}

type Limits struct {
	CPUs   string `yaml:"cpus"`
	Memory string `yaml:"memory"`
}

// Volume is a named per-service volume declaration.
type Volume struct {
	Name string `yaml:"name"`
}

// Network declares the shared bridge network.
type Network struct {
	Driver string `yaml:"driver"`
}

// Render builds the manifest for the given instances. Pure and total: the
// same input always produces an identical manifest, and an empty registry
// still declares the shared network.
func Render(image string, instances []*instance.Instance) *Manifest {
	services := make(map[string]Service, len(instances))
	volumes := make(map[string]Volume, 2*len(instances))

	for _, inst := range instances {
		serviceID := inst.ServiceID()
		hostname := inst.Hostname()
		dataVolume := serviceID + "_docker_data"
		homeVolume := serviceID + "_home"

		services[serviceID] = Service{
			Image:         image,
			ContainerName: hostname,
			Hostname:      hostname,
			Restart:       "unless-stopped",
			Environment: []string{
				fmt.Sprintf("PUID=%d", inst.UID),
				fmt.Sprintf("PGID=%d", inst.GID),
				"TERM=xterm-256color",
				"DISPLAY=:1",
			},
			Ports: []string{
				fmt.Sprintf("%d:22", inst.SSHPort),
				fmt.Sprintf("%d:3389", inst.RDPPort),
			},
			Volumes: []string{
				inst.Workspace + ":/workspace",
				dataVolume + ":/var/lib/docker",
				homeVolume + ":/home/agent",
			},
			Networks:   []string{NetworkName},
			Privileged: true,
			Deploy: Deploy{
				Resources: Resources{
					Limits: Limits{
						CPUs:   fmt.Sprintf("%d", inst.CPUCores),
						Memory: fmt.Sprintf("%dM", inst.MemoryMB),
					},
				},
			},
		}

		volumes[dataVolume] = Volume{Name: dataVolume}
		volumes[homeVolume] = Volume{Name: homeVolume}
	}

	return &Manifest{
		Version:  "3.8",
		Services: services,
		Volumes:  volumes,
		Networks: map[string]Network{
			NetworkName: {Driver: "bridge"},
		},
	}
}

// Renderer writes rendered manifests to their fixed path.
type Renderer struct {
	Path  string
	Image string
	FS    system.FileSystem
}

// NewRenderer returns a Renderer writing to path with the given base image.
func NewRenderer(path, image string, fs system.FileSystem) *Renderer {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Renderer{Path: path, Image: image, FS: fs}
}

// Write renders the instances and overwrites the manifest file. The yaml
// encoder sorts map keys, so equal registries produce byte-identical files.
func (r *Renderer) Write(instances []*instance.Instance) error {
	manifest := Render(r.Image, instances)

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := r.FS.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	if err := r.FS.WriteFile(r.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
