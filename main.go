package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/agentx-labs/create-jslib/internal/cli"
	"github.com/agentx-labs/create-jslib/internal/output"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, output.Failure(err.Error()))
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, output.Failure(err.Error()))
		os.Exit(1)
	}
}
