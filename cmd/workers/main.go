// Command workers stores and queries worker records in a SQLite database.
package main

import (
	"os"

	"github.com/roach88/workers/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
