package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/health"
	"github.com/toadworks/toadbox-ctl/internal/instance"
)

var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show detailed status for an instance",
	Long: `Shows the registry record alongside live probes: the observed
container state and SSH reachability. The cached status is not modified;
use refresh to persist observed state.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	name := args[0]

	inst, err := loadInstance(name)
	if err != nil {
		return err
	}

	result := health.Check(cmd.Context(), app.Default().Driver, app.Default().Exec, &inst)

	fmt.Printf("Instance:   %s\n", inst.Name)
	fmt.Printf("Workspace:  %s\n", inst.Workspace)
	fmt.Printf("Service:    %s\n", inst.ServiceID())
	fmt.Printf("Hostname:   %s\n", inst.Hostname())
	fmt.Printf("Resources:  %d cpus, %d MB, priority %s\n", inst.CPUCores, inst.MemoryMB, inst.Priority)
	fmt.Printf("Ports:      ssh :%d, rdp :%d\n", inst.SSHPort, inst.RDPPort)
	fmt.Printf("Cached:     %s\n", formatStatus(inst.Status))
	fmt.Printf("Live:       %s\n", formatHealth(result))

	if result.ContainerRunning && inst.Status != instance.StatusRunning {
		logWarning("Cached status is stale; run: toadbox-ctl refresh")
	}
	return nil
}

func formatHealth(result health.CheckResult) string {
	switch result.Summary() {
	case health.StatusHealthy:
		return "✓ healthy (container up, ssh reachable)"
	case health.StatusUnhealthy:
		return "⚠ unhealthy (container up, ssh unreachable)"
	default:
		return "● stopped"
	}
}
