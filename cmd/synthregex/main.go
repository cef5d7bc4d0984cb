// Command synthregex synthesizes a regular expression from labeled
// examples using counterexample-guided inductive synthesis, the way
// tyrell/synthesizer/multitree_synthesizer.py drove its CEGIS loop.
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
