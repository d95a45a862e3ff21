package main

import (
	"os"

	"github.com/rdc-cli/rdc/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
