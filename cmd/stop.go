package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/instance"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a running instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	name := args[0]

	inst, err := loadInstance(name)
	if err != nil {
		return err
	}
	if inst.Status == instance.StatusStopped {
		logInfo("Instance %s is already stopped", name)
		return nil
	}

	if err := app.Default().Driver.Stop(cmd.Context(), name); err != nil {
		return err
	}

	logSuccess("Stopped instance %s", name)
	return nil
}
