package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"

	"github.com/marghrid/forest/internal/decide"
	"github.com/marghrid/forest/internal/decompose"
	"github.com/marghrid/forest/internal/dslbuild"
	"github.com/marghrid/forest/internal/examplefile"
	"github.com/marghrid/forest/internal/interp"
	"github.com/marghrid/forest/internal/oracle"
	"github.com/marghrid/forest/internal/synth"
	"github.com/marghrid/forest/internal/synthlog"
)

var methods = []string{"multitree", "funny", "ktree", "nopruning", "compare-times"}

// Command is the single synthregex verb: synthesize a regex from the
// examples file given as its sole positional argument.
type Command struct {
	Ui cli.Ui
}

func (c *Command) Synopsis() string {
	return "Synthesize a regular expression from labeled examples"
}

func (c *Command) Help() string {
	return strings.TrimSpace(`
Usage: synthregex [options] <examples-file>

  Synthesizes a regular expression consistent with a file of labeled
  examples, using counterexample-guided inductive synthesis.

Options:

  -m, --method <method>   multitree, funny, ktree, nopruning, or
                           compare-times (default: multitree)
  --resnax                read the examples file in resnax format
  --ground-truth <regex>  answer oracle queries automatically against
                           this pattern instead of prompting on stdin
  -v, --verbose           enable debug-level logging
`)
}

func (c *Command) Run(args []string) int {
	var method string
	var resnax bool
	var groundTruth string
	var verbose bool

	flags := flag.NewFlagSet("synthregex", flag.ContinueOnError)
	flags.StringVar(&method, "m", "multitree", "synthesis method")
	flags.StringVar(&method, "method", "multitree", "synthesis method")
	flags.BoolVar(&resnax, "resnax", false, "read resnax i/o examples format")
	flags.StringVar(&groundTruth, "ground-truth", "", "automated ground-truth pattern")
	flags.BoolVar(&verbose, "v", false, "verbose logging")
	flags.BoolVar(&verbose, "verbose", false, "verbose logging")
	flags.Usage = func() { c.Ui.Output(c.Help()) }

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if !validMethod(method) {
		c.Ui.Error(fmt.Sprintf("unknown method %q, want one of %s", method, strings.Join(methods, ", ")))
		return 1
	}
	if flags.NArg() != 1 {
		c.Ui.Error("expected exactly one examples-file argument")
		return 1
	}

	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	logger := synthlog.New(os.Stderr, level)

	path := flags.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("opening %s: %v", path, err))
		return 1
	}
	defer f.Close()

	var examples []examplefile.Example
	if resnax {
		examples, err = examplefile.ParseResnax(f)
	} else {
		examples, err = examplefile.ParseDefault(f)
	}
	if err != nil {
		c.Ui.Error(fmt.Sprintf("parsing %s: %v", path, err))
		return 1
	}
	valid, invalid := examplefile.Split(examples)

	var o oracle.Oracle
	if groundTruth != "" {
		o, err = oracle.NewGroundTruth(groundTruth)
		if err != nil {
			c.Ui.Error(fmt.Sprintf("compiling --ground-truth pattern: %v", err))
			return 1
		}
	} else {
		o = oracle.NewStdin(os.Stdin, os.Stdout)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	switch method {
	case "compare-times":
		return c.runCompareTimes(ctx, sigCh, logger, valid, invalid, o)
	default:
		return c.runSingle(ctx, sigCh, logger, method, valid, invalid, o)
	}
}

func validMethod(m string) bool {
	for _, v := range methods {
		if m == v {
			return true
		}
	}
	return false
}

// buildConfig builds a synth.Config for method (one of multitree, funny,
// ktree, nopruning), per SPEC_FULL.md's reading that ktree/nopruning are
// synonyms for multitree/funny respectively with pruning forced off.
func buildConfig(method string, valid, invalid []string, dec *decide.Decider, o oracle.Oracle) synth.Config {
	decomposed := method == "multitree" || method == "ktree"
	pruning := method == "multitree" || method == "funny"

	fields, alphabet := dslsFor(decomposed, valid, invalid)

	return synth.Config{
		DSLs:     dslbuild.Build(fields),
		Alphabet: alphabet,
		Decider:  dec,
		Oracle:   o,
		Pruning:  pruning,
		MaxDepth: 10,
	}
}

// dslsFor returns the decompose.Field set (and merged alphabet) a
// config should enumerate over, honoring the method's decomposed flag.
func dslsFor(decomposed bool, valid, invalid []string) ([]decompose.Field, []rune) {
	if decomposed {
		res, err := decompose.Decompose(valid, invalid)
		if err == nil && len(res.Fields) > 0 {
			var alphabet []rune
			for _, f := range res.Fields {
				alphabet = append(alphabet, f.Alphabet...)
			}
			return res.Fields, alphabet
		}
	}
	f := decompose.SingleField(valid)
	return []decompose.Field{f}, f.Alphabet
}

func newDecider(valid, invalid []string) *decide.Decider {
	dec := decide.NewDecider()
	for _, v := range valid {
		dec.AddExample(v, true)
	}
	for _, iv := range invalid {
		dec.AddExample(iv, false)
	}
	return dec
}

func (c *Command) runSingle(ctx context.Context, sigCh chan os.Signal, logger hclog.Logger, method string, valid, invalid []string, o oracle.Oracle) int {
	dec := newDecider(valid, invalid)
	cfg := buildConfig(method, valid, invalid, dec, o)

	driver := synth.New(cfg)
	go func() {
		select {
		case <-sigCh:
			logger.Info("signal received, finishing up")
			driver.Stop()
		case <-ctx.Done():
		}
	}()

	stats, err := driver.Run(ctx)
	if err != nil && stats.Solution == nil {
		c.Ui.Error(err.Error())
		return 1
	}

	solutionText := ""
	if stats.Solution != nil {
		solutionText = interp.Print(stats.Solution)
	}
	synthlog.WriteStats(os.Stdout, stats, solutionText)
	return 0
}

func (c *Command) runCompareTimes(ctx context.Context, sigCh chan os.Signal, logger hclog.Logger, valid, invalid []string, o oracle.Oracle) int {
	dec1 := newDecider(valid, invalid)
	cfgMultitree := buildConfig("multitree", valid, invalid, dec1, o)
	multitreeDriver := synth.New(cfgMultitree)

	dec2 := newDecider(valid, invalid)
	cfgFunny := buildConfig("funny", valid, invalid, dec2, o)
	funnyDriver := synth.New(cfgFunny)

	stop := func() {
		multitreeDriver.Stop()
		funnyDriver.Stop()
	}
	go func() {
		select {
		case <-sigCh:
			logger.Info("signal received, finishing up")
			stop()
		case <-ctx.Done():
		}
	}()

	multitreeStats, err1 := multitreeDriver.Run(ctx)
	funnyStats, err2 := funnyDriver.Run(ctx)
	if err1 != nil && multitreeStats.Solution == nil && err2 != nil && funnyStats.Solution == nil {
		c.Ui.Error(fmt.Sprintf("multitree: %v; funny: %v", err1, err2))
		return 1
	}

	solutionText := ""
	if multitreeStats.Solution != nil {
		solutionText = interp.Print(multitreeStats.Solution)
	}
	synthlog.WriteStats(os.Stdout, multitreeStats, solutionText)
	synthlog.WriteCompared(os.Stdout, fmt.Sprintf("multitree=%.6fs funny=%.6fs",
		multitreeStats.ElapsedTime.Seconds(), funnyStats.ElapsedTime.Seconds()))
	return 0
}
