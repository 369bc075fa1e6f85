package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/ssh"
)

var sshCmd = &cobra.Command{
	Use:   "ssh <name>",
	Short: "SSH into a running instance",
	Long: `Replaces the current process with an SSH session into the instance.
Host key checking is disabled: the container regenerates its host key on
every rebuild, so recording it would only produce spurious mismatches.`,
	Args: cobra.ExactArgs(1),
	RunE: runSSH,
}

func init() {
	rootCmd.AddCommand(sshCmd)
}

func runSSH(cmd *cobra.Command, args []string) error {
	inst, err := loadRunningInstance(args[0])
	if err != nil {
		return err
	}

	opts := ssh.DefaultOptions(inst.SSHPort).WithUser(settings().User)
	return ssh.ReplaceWithSession(app.Default().Exec, opts)
}
