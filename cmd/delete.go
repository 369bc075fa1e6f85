package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
)

var deleteKeepVolumes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove an instance, its container and its volumes",
	Long: `Stops the instance if it is running, removes the container, and drops
the record from the registry. Named volumes (home, docker data) are removed
too unless --keep-volumes is given; the host workspace directory is never
touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteKeepVolumes, "keep-volumes", false, "Keep the instance's named volumes")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	if _, err := loadInstance(name); err != nil {
		return err
	}

	if err := app.Default().Driver.Delete(cmd.Context(), name, deleteKeepVolumes); err != nil {
		return err
	}

	logSuccess("Deleted instance %s", name)
	return nil
}
