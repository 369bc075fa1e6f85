package main

import (
	"os"

	"github.com/toadworks/toadbox-ctl/cmd"
	"github.com/toadworks/toadbox-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
