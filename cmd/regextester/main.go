// Command regextester runs many synthregex instances under a bounded
// process pool and reports aggregated timing/enumeration statistics,
// the Go counterpart to scripts/run_tests.py + scripts/tester.py.
package main

import (
	"os"

	"github.com/hashicorp/cli"
)

func main() {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	cmd := &Command{Ui: ui}
	os.Exit(cmd.Run(os.Args[1:]))
}
