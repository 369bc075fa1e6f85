package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/ssh"
	"github.com/toadworks/toadbox-ctl/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive instance picker",
	Long: `Opens an interactive TUI for selecting and connecting to instances.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - SSH into selected instance
  s      - Start selected instance
  x      - Stop selected instance
  q/Esc  - Quit`,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	logging.Debug("picker mode started")

	instances := listInstances()
	if len(instances) == 0 {
		logInfo("No instances found. Create one with: toadbox-ctl create <name> --workspace <dir>")
		return nil
	}

	result, err := tui.RunPicker(instances)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionAttach:
		if result.Instance != nil {
			inst, err := loadRunningInstance(result.Instance.Name)
			if err != nil {
				return err
			}
			opts := ssh.DefaultOptions(inst.SSHPort).WithUser(settings().User)
			return ssh.ReplaceWithSession(app.Default().Exec, opts)
		}

	case tui.ActionStart:
		if result.Instance != nil {
			if err := app.Default().Driver.Start(cmd.Context(), result.Instance.Name); err != nil {
				return err
			}
			logSuccess("Started instance %s", result.Instance.Name)
		}

	case tui.ActionStop:
		if result.Instance != nil {
			if err := app.Default().Driver.Stop(cmd.Context(), result.Instance.Name); err != nil {
				return err
			}
			logSuccess("Stopped instance %s", result.Instance.Name)
		}

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil
}
