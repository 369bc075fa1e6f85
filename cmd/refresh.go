package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reconcile cached statuses with the live runtime",
	Long: `Queries the container runtime for every registered instance and
persists any drift between cached and observed status. Observed state always
wins, including recovery out of the error status.`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if err := app.Default().Driver.Refresh(cmd.Context()); err != nil {
		return err
	}

	logSuccess("Refreshed %d instance(s)", app.Default().Store.Len())
	return nil
}
