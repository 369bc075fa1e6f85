package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/instance"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a stopped instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	name := args[0]

	inst, err := loadInstance(name)
	if err != nil {
		return err
	}
	if inst.Status == instance.StatusRunning {
		logInfo("Instance %s is already running", name)
		return nil
	}

	if err := app.Default().Driver.Start(cmd.Context(), name); err != nil {
		return err
	}

	logSuccess("Started instance %s", name)
	logInfo("Connect with: toadbox-ctl ssh %s", name)
	return nil
}
