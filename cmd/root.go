package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "toadbox-ctl",
	Short: "Toadbox sandbox instance management CLI",
	Long: `toadbox-ctl manages named, containerized sandbox instances on the
local machine.

Each instance is one service in a shared compose manifest with:
  - A bind-mounted host workspace
  - Persistent home and docker-data volumes
  - SSH and RDP published on dedicated localhost ports
  - CPU and memory limits`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
