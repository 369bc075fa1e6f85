package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/audit"
	"github.com/toadworks/toadbox-ctl/internal/config"
	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/port"
)

var (
	createWorkspace string
	createCPUs      int
	createMemoryMB  int
	createPriority  string
	createSSHPort   int
	createRDPPort   int
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a new sandbox instance",
	Long: `Registers a new instance and rewrites the shared compose manifest.
The instance starts out stopped; bring it up with: toadbox-ctl start <name>.

Unset ports are picked automatically, scanning upward from the configured
base ports past every registered instance.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createWorkspace, "workspace", "w", "", "Host directory to mount as the instance workspace (required)")
	createCmd.Flags().IntVar(&createCPUs, "cpus", 0, "CPU core limit (default from settings)")
	createCmd.Flags().IntVar(&createMemoryMB, "memory", 0, "Memory limit in MB (default from settings)")
	createCmd.Flags().StringVar(&createPriority, "priority", "", "Scheduling priority: low, medium or high")
	createCmd.Flags().IntVar(&createSSHPort, "ssh-port", 0, "Host port for SSH (default: first free)")
	createCmd.Flags().IntVar(&createRDPPort, "rdp-port", 0, "Host port for RDP (default: first free)")
	_ = createCmd.MarkFlagRequired("workspace")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := instance.ValidateName(name); err != nil {
		return errors.ValidationError(err.Error())
	}

	cfg := settings()

	cpus := createCPUs
	if cpus == 0 {
		cpus = cfg.DefaultCPUCores
	}
	memoryMB := createMemoryMB
	if memoryMB == 0 {
		memoryMB = cfg.DefaultMemoryMB
	}
	priority := cfg.DefaultPriority
	if createPriority != "" {
		priority = instance.Priority(createPriority)
		if !instance.ValidPriority(priority) {
			return errors.ValidationError("invalid priority: " + createPriority)
		}
	}

	sshPort, rdpPort := createSSHPort, createRDPPort
	if sshPort == 0 || rdpPort == 0 {
		usedSSH, usedRDP := port.UsedPorts(listInstances())
		suggestedSSH, suggestedRDP := port.Suggest(cfg.SSHBasePort, cfg.RDPBasePort, usedSSH, usedRDP)
		if sshPort == 0 {
			sshPort = suggestedSSH
		}
		if rdpPort == 0 {
			rdpPort = suggestedRDP
		}
	}

	identity := config.ResolveHostIdentity()
	inst := &instance.Instance{
		Name:      name,
		Workspace: createWorkspace,
		CPUCores:  cpus,
		MemoryMB:  memoryMB,
		Priority:  priority,
		SSHPort:   sshPort,
		RDPPort:   rdpPort,
		UID:       identity.UID,
		GID:       identity.GID,
		Status:    instance.StatusStopped,
	}

	if err := app.Default().Store.Create(inst); err != nil {
		return err
	}
	app.Default().Audit.Record(name, audit.ActionCreate, "")

	logSuccess("Created instance %s (ssh :%d, rdp :%d)", name, sshPort, rdpPort)
	logInfo("Start it with: toadbox-ctl start %s", name)
	return nil
}
