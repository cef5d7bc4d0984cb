package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/cli"

	"github.com/marghrid/forest/internal/harness"
)

var methods = []string{"multitree", "funny", "ktree", "nopruning", "compare-times"}

// Command runs a batch of synthregex instances found under one or more
// directories.
type Command struct {
	Ui cli.Ui
}

func (c *Command) Synopsis() string {
	return "Run synthregex over a batch of example-file instances"
}

func (c *Command) Help() string {
	return strings.TrimSpace(`
Usage: regextester [options] <dir> [dir...]

  Runs cmd/synthregex once per *.txt instance file found under each
  directory, in a bounded process pool, and reports per-instance
  timing and enumeration statistics.

Options:

  -p, --processes <n>   number of concurrent processes (default 1)
  -r, --run-each <n>     times to run each instance (default 1)
  -t, --timeout <secs>   per-run timeout in seconds (default 120)
  -o, --out              show each child's stdout as it completes
  -m, --method <method>  multitree, funny, ktree, nopruning, or compare-times
  --resnax               read instances in resnax format
  --synthregex <path>    path to the synthregex binary (default: look up PATH)
  --answers <path>       non-interactive oracle answers file, fed to any
                         instance without a sibling "<name>.gt" file
`)
}

func (c *Command) Run(args []string) int {
	var processes, runEach, timeoutSecs int
	var showOutput, resnax bool
	var method, synthregexPath, answersFile string

	flags := flag.NewFlagSet("regextester", flag.ContinueOnError)
	flags.IntVar(&processes, "p", 1, "number of concurrent processes")
	flags.IntVar(&processes, "processes", 1, "number of concurrent processes")
	flags.IntVar(&runEach, "r", 1, "times to run each instance")
	flags.IntVar(&runEach, "run-each", 1, "times to run each instance")
	flags.IntVar(&timeoutSecs, "t", 120, "per-run timeout in seconds")
	flags.IntVar(&timeoutSecs, "timeout", 120, "per-run timeout in seconds")
	flags.BoolVar(&showOutput, "o", false, "show child output")
	flags.BoolVar(&showOutput, "out", false, "show child output")
	flags.StringVar(&method, "m", "multitree", "synthesis method")
	flags.StringVar(&method, "method", "multitree", "synthesis method")
	flags.BoolVar(&resnax, "resnax", false, "read resnax i/o examples format")
	flags.StringVar(&synthregexPath, "synthregex", "synthregex", "path to the synthregex binary")
	flags.StringVar(&answersFile, "answers", "", "non-interactive oracle answers file")
	flags.Usage = func() { c.Ui.Output(c.Help()) }

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if !validMethod(method) {
		c.Ui.Error(fmt.Sprintf("unknown method %q, want one of %s", method, strings.Join(methods, ", ")))
		return 1
	}
	if flags.NArg() == 0 {
		c.Ui.Error("expected at least one instance directory")
		return 1
	}

	tester, err := harness.New(harness.Config{
		Directories:   flags.Args(),
		Method:        method,
		Resnax:        resnax,
		NumProcesses:  processes,
		RunEach:       runEach,
		Timeout:       time.Duration(timeoutSecs) * time.Second,
		ShowOutput:    showOutput,
		SynthregexBin: synthregexPath,
		AnswersFile:   answersFile,
	}, os.Stdout)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			c.Ui.Info("\nSIGINT or CTRL-C detected. Exiting gracefully.")
			tester.TerminateAll()
		case <-done:
		}
	}()

	runErr := tester.Test()
	close(done)
	if runErr != nil {
		c.Ui.Error(runErr.Error())
		return 1
	}

	if method == "compare-times" {
		tester.PrintTimeComparison(os.Stdout)
	} else {
		tester.PrintResults(os.Stdout)
	}
	return 0
}

func validMethod(m string) bool {
	for _, v := range methods {
		if m == v {
			return true
		}
	}
	return false
}
