// Package harness runs many cmd/synthregex instances under a bounded
// process pool, mirroring scripts/tester.py and scripts/run_tests.py:
// discover *.txt instance files under a set of directories, run each
// (optionally several times) with a timeout, and report aggregated
// timing/enumeration statistics once every task finishes.
package harness

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	colorRunning     = color.New(color.FgBlue).SprintfFunc()
	colorProgress    = color.New(color.FgMagenta).SprintfFunc()
	colorTerminating = color.New(color.FgRed).SprintFunc()
)

// Config configures one test run.
type Config struct {
	Directories   []string // each scanned (non-recursively) for *.txt instance files
	Method        string   // forwarded to cmd/synthregex as -m
	Resnax        bool     // forwarded as --resnax
	NumProcesses  int      // concurrent child processes; default 1
	RunEach       int      // times to run each instance; default 1
	Timeout       time.Duration
	ShowOutput    bool
	SynthregexBin string // path to the cmd/synthregex binary to exec

	// AnswersFile, when set, is fed as stdin to every instance that
	// doesn't have a sibling "<name>.gt" ground-truth file, standing in
	// for the original test harness's int_no.txt convention. Left
	// unset, such instances get a fixed "no\n"-repeating stream.
	AnswersFile string

	// PollInterval overrides the 10-second polling cadence
	// scripts/tester.py's test loop uses; defaults to 10s when zero.
	// Test callers set this low to avoid slow test runs.
	PollInterval time.Duration

	// Rand is the source used to shuffle the task order, as
	// scripts/tester.py does to avoid biasing timing results by
	// instance-file ordering. Tasks are always shuffled; nil means a
	// time-seeded source. Deterministic test callers set this to a
	// fixed *rand.Rand instead of leaving it nil.
	Rand *rand.Rand
}

// Tester owns a pool of instances discovered from Config.Directories
// and drives their tasks to completion.
type Tester struct {
	cfg       Config
	instances []*Instance
	tasks     []*Task
	toRun     []*Task
	running   []*Task
	out       io.Writer
}

// New discovers instance files under cfg.Directories and builds one
// Task per (instance, run) pair. Instances are sorted by name;
// the to-run queue is then shuffled, matching scripts/tester.py.
func New(cfg Config, out io.Writer) (*Tester, error) {
	if cfg.NumProcesses <= 0 {
		cfg.NumProcesses = 1
	}
	if cfg.RunEach <= 0 {
		cfg.RunEach = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	t := &Tester{cfg: cfg, out: out}

	for _, dir := range cfg.Directories {
		paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
		if err != nil {
			return nil, fmt.Errorf("harness: scanning %s: %w", dir, err)
		}
		for _, p := range paths {
			name := strings.TrimSuffix(filepath.Base(p), ".txt")
			groundTruth := readGroundTruthFile(p)
			t.instances = append(t.instances, newInstance(name, p, groundTruth))
		}
	}
	sort.Slice(t.instances, func(i, j int) bool { return t.instances[i].Name < t.instances[j].Name })

	fmt.Fprintln(t.out, colorProgress("Found %d instances.", len(t.instances)))

	for _, inst := range t.instances {
		command := t.commandFor(inst)
		for i := 0; i < cfg.RunEach; i++ {
			full := append(append([]string{}, command...), inst.Path)
			task := NewTask(full, inst, cfg.Timeout)
			task.AnswersFile = cfg.AnswersFile
			if inst.GroundTruth != "" {
				task.AnswersFile = "" // ground-truth mode needs no interactive stdin
			}
			t.tasks = append(t.tasks, task)
		}
	}

	t.toRun = append([]*Task{}, t.tasks...)
	cfg.Rand.Shuffle(len(t.toRun), func(i, j int) { t.toRun[i], t.toRun[j] = t.toRun[j], t.toRun[i] })

	return t, nil
}

func (t *Tester) commandFor(inst *Instance) []string {
	cmd := []string{t.cfg.SynthregexBin, "-m", t.cfg.Method}
	if t.cfg.Resnax {
		cmd = append(cmd, "--resnax")
	}
	if inst.GroundTruth != "" {
		cmd = append(cmd, "--ground-truth", inst.GroundTruth)
	}
	return cmd
}

// readGroundTruthFile reads the trimmed contents of path's sibling
// ".gt" file, if one exists, e.g. "phone.txt" -> "phone.gt". Any error
// (including a missing file, the common case) yields an empty string.
func readGroundTruthFile(path string) string {
	gtPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".gt"
	data, err := os.ReadFile(gtPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Test runs every task to completion, respecting the configured
// process pool size, polling every Config.PollInterval (10 seconds by
// default, as in scripts/tester.py's test loop).
func (t *Tester) Test() error {
	for len(t.toRun) > 0 || len(t.running) > 0 {
		remaining := t.running[:0]
		for _, task := range t.running {
			if task.isDone() {
				task.readOutput()
				if t.cfg.ShowOutput {
					fmt.Fprint(t.out, task.Stdout())
				}
			} else {
				remaining = append(remaining, task)
			}
		}
		t.running = remaining

		for len(t.running) < t.cfg.NumProcesses && len(t.toRun) > 0 {
			next := t.toRun[len(t.toRun)-1]
			t.toRun = t.toRun[:len(t.toRun)-1]
			fmt.Fprintln(t.out, colorRunning("Running %s.", next.Instance))
			if err := next.run(); err != nil {
				return fmt.Errorf("harness: starting %s: %w", next.Instance, err)
			}
			t.running = append(t.running, next)
		}

		fmt.Fprintln(t.out, colorProgress("%d done, %d to go.",
			len(t.tasks)-len(t.toRun)-len(t.running), len(t.toRun)+len(t.running)))

		if len(t.toRun) == 0 && len(t.running) == 0 {
			break
		}
		time.Sleep(t.cfg.PollInterval)
	}
	return nil
}

// TerminateAll stops every task still in flight or queued, used from a
// SIGINT/SIGTERM handler.
func (t *Tester) TerminateAll() {
	fmt.Fprintln(t.out, colorTerminating("Terminating all tasks"))
	t.toRun = nil
	for _, task := range t.running {
		task.terminate()
		task.isDone()
	}
	t.running = nil
}

// PrintResults writes the per-instance summary table scripts/tester.py
// prints at the end of a run: average time, interactions, enumerator,
// enumerated count, node count, and the synthesized solution, with a
// note when repeated runs of the same instance disagree.
func (t *Tester) PrintResults(w io.Writer) {
	fmt.Fprintln(w, "instance, time, interactions, enumerator, enumerated, nodes, solution")
	for _, inst := range t.instances {
		var times []float64
		var enumerated, interactions, nodes []int
		var enumerators []string
		for _, task := range inst.Tasks {
			if task.Time >= 0 {
				times = append(times, task.Time)
			}
			if task.Enumerated > 0 {
				enumerated = append(enumerated, task.Enumerated)
			}
			if task.Interactions >= 0 {
				interactions = append(interactions, task.Interactions)
			}
			if task.Nodes >= 0 {
				nodes = append(nodes, task.Nodes)
			}
			enumerators = append(enumerators, task.Enumerator)
		}

		if len(times) == 0 {
			fmt.Fprintf(w, "%s: timed out\n", inst.Name)
			continue
		}
		if !allEqual(enumerated) {
			fmt.Fprintf(w, "%s: does not always enumerate the same number of programs\n", inst.Name)
			continue
		}
		if !allEqualStr(enumerators) {
			fmt.Fprintf(w, "%s: does not always use the same enumerator\n", inst.Name)
			continue
		}
		if !allEqual(interactions) {
			fmt.Fprintf(w, "%s: has different number of interactions\n", inst.Name)
			continue
		}
		if !allEqual(nodes) {
			fmt.Fprintf(w, "%s: has different number of nodes\n", inst.Name)
			continue
		}

		avg := sum(times) / float64(len(times))
		fmt.Fprintf(w, "%s: %.2f, %d, %s, %d, %d, %q\n",
			inst.Name, avg, interactions[0], enumerators[0], enumerated[0], nodes[0], inst.Tasks[0].Solution)
	}
}

// PrintTimeComparison writes the multitree-vs-funny comparison line
// each instance's first task produced, for -m compare-times runs.
// Mirrors run_tests.py's call to tester.print_time_comparison, whose
// implementation wasn't in the retained original source.
func (t *Tester) PrintTimeComparison(w io.Writer) {
	fmt.Fprintln(w, "instance, comparison")
	for _, inst := range t.instances {
		if len(inst.Tasks) == 0 || inst.Tasks[0].Compared == "" {
			fmt.Fprintf(w, "%s: timed out\n", inst.Name)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", inst.Name, inst.Tasks[0].Compared)
	}
}

func allEqual(xs []int) bool {
	for _, x := range xs {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func allEqualStr(xs []string) bool {
	for _, x := range xs {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
