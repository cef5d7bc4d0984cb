package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hashicorp/cli"
)

func TestCommandImplements(t *testing.T) {
	var _ cli.Command = &Command{}
}

func TestCommandFailsOnMissingFile(t *testing.T) {
	ui := cli.NewMockUi()
	cmd := &Command{Ui: ui}

	code := cmd.Run([]string{"-m", "funny", "/no/such/examples.txt"})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestCommandFailsOnUnknownMethod(t *testing.T) {
	ui := cli.NewMockUi()
	cmd := &Command{Ui: ui}

	path := writeExamples(t, "+42\n-abc\n")

	code := cmd.Run([]string{"-m", "bogus", path})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(ui.ErrorWriter.String(), "unknown method") {
		t.Fatalf("expected unknown method error, got: %s", ui.ErrorWriter.String())
	}
}

func TestCommandSynthesizesWithGroundTruth(t *testing.T) {
	ui := cli.NewMockUi()
	cmd := &Command{Ui: ui}

	path := writeExamples(t, "+42\n+100\n+7\n-abc\n-\n")

	stdout := captureStdout(t, func() {
		code := cmd.Run([]string{"-m", "funny", "--ground-truth", `\d+`, path})
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d; stderr: %s", code, ui.ErrorWriter.String())
		}
	})
	if !strings.Contains(stdout, "Solution:") {
		t.Fatalf("expected a Solution line in stdout, got:\n%s", stdout)
	}
}

func writeExamples(t *testing.T, content string) string {
	t.Helper()
	path := t.TempDir() + "/examples.txt"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// captureStdout temporarily redirects os.Stdout while fn runs, since
// the command writes its tagged stats lines there directly rather than
// through cli.Ui.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(out)
}
