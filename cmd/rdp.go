package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/rdp"
)

var rdpCmd = &cobra.Command{
	Use:   "rdp <name>",
	Short: "Open a desktop session into a running instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runRDP,
}

func init() {
	rootCmd.AddCommand(rdpCmd)
}

func runRDP(cmd *cobra.Command, args []string) error {
	inst, err := loadRunningInstance(args[0])
	if err != nil {
		return err
	}

	opts := rdp.DefaultOptions(inst.RDPPort).WithUser(settings().User)
	return rdp.Connect(cmd.Context(), app.Default().Exec, opts)
}
