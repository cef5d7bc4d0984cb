package harness

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/marghrid/forest/internal/synthlog"
)

// noAnswers is the stdin fed to a synthregex child that isn't running
// against a ground-truth oracle: an endless stream of "no\n" lines, the
// same fixed non-interactive answer scripts/tester.py fed its children
// via int_no.txt. It exists so timing/enumeration runs are reproducible
// without requiring a real interactive operator.
type noAnswers struct{}

func (noAnswers) Read(p []byte) (int, error) {
	n := copy(p, []byte("no\n"))
	return n, nil
}

// Task is one child-process run of cmd/synthregex against an Instance.
// Mirrors scripts/tester.py's Task class: the command line, the
// instance it belongs to, a timeout, and the parsed results once the
// process exits.
type Task struct {
	Command  []string
	Instance *Instance
	Timeout  time.Duration

	// AnswersFile, when set and the instance has no ground-truth file
	// of its own, is opened fresh for each run and given to the child
	// as stdin instead of the default noAnswers stream.
	AnswersFile string

	cmd       *exec.Cmd
	stdin     io.Closer
	startTime time.Time
	stdout    bytes.Buffer
	stderr    bytes.Buffer
	done      chan error

	// Result fields, populated by readOutput once the process exits.
	// NewTask sets Time, Enumerated, Interactions and Nodes to -1;
	// readOutput then overwrites all of them with the parsed values,
	// which are zero for any tagged line the process never printed.
	Time         float64
	Enumerator   string
	Enumerated   int
	Interactions int
	Nodes        int
	Solution     string
	Compared     string
	TimedOut     bool
}

// NewTask builds a task for one instance run and registers itself on
// the instance so Tester can reach every run of an instance via
// Instance.Tasks once they finish.
func NewTask(command []string, inst *Instance, timeout time.Duration) *Task {
	t := &Task{Command: command, Instance: inst, Timeout: timeout, Enumerated: -1, Interactions: -1, Nodes: -1, Time: -1}
	inst.addTask(t)
	return t
}

// run starts the child process in its own process group, so
// terminate's signal cascade reaches any grandchildren too.
func (t *Task) run() error {
	t.cmd = exec.Command(t.Command[0], t.Command[1:]...)
	if t.AnswersFile != "" {
		f, err := os.Open(t.AnswersFile)
		if err != nil {
			return err
		}
		t.cmd.Stdin = f
		t.stdin = f
	} else {
		t.cmd.Stdin = noAnswers{}
	}
	t.cmd.Stdout = &t.stdout
	t.cmd.Stderr = &t.stderr
	t.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := t.cmd.Start(); err != nil {
		if t.stdin != nil {
			t.stdin.Close()
		}
		return err
	}
	t.startTime = time.Now()
	t.done = make(chan error, 1)
	go func() {
		err := t.cmd.Wait()
		if t.stdin != nil {
			t.stdin.Close()
		}
		t.done <- err
	}()
	return nil
}

// terminate sends SIGTERM to the whole process group, not just the
// direct child, so a synthregex process that itself spawned helpers
// doesn't leave them running.
func (t *Task) terminate() {
	if t.cmd == nil || t.cmd.Process == nil {
		return
	}
	pgid, err := unix.Getpgid(t.cmd.Process.Pid)
	if err != nil {
		_ = t.cmd.Process.Kill()
		return
	}
	_ = unix.Kill(-pgid, unix.SIGTERM)
}

// isDone reports whether the task has exited or timed out, without
// blocking. A timeout terminates the process as a side effect,
// matching scripts/tester.py's is_done; either way, once true the
// caller should call readOutput to collect results.
func (t *Task) isDone() bool {
	if time.Since(t.startTime) >= t.Timeout {
		t.TimedOut = true
		t.terminate()
		<-t.done
		return true
	}
	select {
	case err := <-t.done:
		t.done <- err // leave it readable for a subsequent isDone/readOutput call
		return true
	default:
		return false
	}
}

func (t *Task) readOutput() {
	parsed, err := synthlog.ParseStats(strings.NewReader(t.stdout.String()))
	if err != nil || parsed == nil {
		return
	}
	t.Time = parsed.ElapsedTime
	t.Enumerator = parsed.Enumerator
	t.Enumerated = parsed.Enumerated
	t.Interactions = parsed.Interactions
	t.Nodes = parsed.Nodes
	if parsed.HasSolution {
		t.Solution = parsed.Solution
	}
	t.Compared = parsed.Compared
}

// Stdout returns the captured stdout of the child process,
// for -o/--out "show output" mode.
func (t *Task) Stdout() string {
	return t.stdout.String()
}
