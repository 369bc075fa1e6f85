package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/instance"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List all instances",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
}

func runPs(cmd *cobra.Command, args []string) error {
	instances := listInstances()

	if len(instances) == 0 {
		logInfo("No instances found. Create one with: toadbox-ctl create <name> --workspace <dir>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tSSH\tRDP\tCPUS\tMEM\tPRIORITY\tWORKSPACE")
	fmt.Fprintln(w, "----\t------\t---\t---\t----\t---\t--------\t---------")

	for _, inst := range instances {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%dM\t%s\t%s\n",
			inst.Name, formatStatus(inst.Status), inst.SSHPort, inst.RDPPort,
			inst.CPUCores, inst.MemoryMB, inst.Priority, inst.Workspace)
	}

	return w.Flush()
}

func formatStatus(status instance.Status) string {
	switch status {
	case instance.StatusRunning:
		return "✓ running"
	case instance.StatusStopped:
		return "● stopped"
	case instance.StatusError:
		return "✗ error"
	case instance.StatusStarting:
		return "… starting"
	case instance.StatusStopping:
		return "… stopping"
	default:
		return string(status)
	}
}
