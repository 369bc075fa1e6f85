package cmd

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/toadworks/toadbox-ctl/internal/app"
	"github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/ssh"
)

var execCmd = &cobra.Command{
	Use:   "exec <name> -- <command>",
	Short: "Execute a command in a running instance",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	inst, err := loadRunningInstance(args[0])
	if err != nil {
		return err
	}

	execArgs := args[1:]
	if len(execArgs) == 0 {
		return errors.ValidationError("usage: toadbox-ctl exec <name> -- <command>")
	}

	// Quote so the remote shell sees the arguments exactly as given.
	remote := shellquote.Join(execArgs...)

	opts := ssh.DefaultOptions(inst.SSHPort).WithUser(settings().User)
	out, err := ssh.Exec(cmd.Context(), app.Default().Exec, opts, remote)
	if len(out) > 0 {
		fmt.Print(string(out))
	}
	return err
}
