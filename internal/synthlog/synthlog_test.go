package synthlog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/synth"
)

func TestWriteAndParseStatsRoundTrip(t *testing.T) {
	stats := &synth.Stats{
		ElapsedTime:  1500 * time.Millisecond,
		Enumerator:   synth.EnumeratorFunny,
		Enumerated:   42,
		Interactions: 2,
		Nodes:        7,
		Solution:     nil,
	}
	// Give Solution a non-nil placeholder so WriteStats emits the line;
	// the actual *ast.Node value isn't inspected by WriteStats.
	var buf bytes.Buffer
	stats.Solution = dummyNode()
	WriteStats(&buf, stats, `\d+`)

	parsed, err := ParseStats(&buf)
	if err != nil {
		t.Fatalf("ParseStats: %v", err)
	}
	if parsed.Enumerator != "funny" {
		t.Errorf("Enumerator = %q, want funny", parsed.Enumerator)
	}
	if parsed.Enumerated != 42 {
		t.Errorf("Enumerated = %d, want 42", parsed.Enumerated)
	}
	if parsed.Interactions != 2 {
		t.Errorf("Interactions = %d, want 2", parsed.Interactions)
	}
	if parsed.Nodes != 7 {
		t.Errorf("Nodes = %d, want 7", parsed.Nodes)
	}
	if !parsed.HasSolution || parsed.Solution != `\d+` {
		t.Errorf("Solution = %q (HasSolution=%v), want \\d+", parsed.Solution, parsed.HasSolution)
	}
	if parsed.ElapsedTime < 1.4 || parsed.ElapsedTime > 1.6 {
		t.Errorf("ElapsedTime = %v, want ~1.5", parsed.ElapsedTime)
	}
}

func TestParseStatsIgnoresUntaggedLines(t *testing.T) {
	input := "some unrelated child output\n[info] Enumerator: multitree\nmore noise\n"
	parsed, err := ParseStats(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseStats: %v", err)
	}
	if parsed.Enumerator != "multitree" {
		t.Errorf("Enumerator = %q, want multitree", parsed.Enumerator)
	}
	if parsed.HasSolution {
		t.Error("did not expect a solution to be parsed")
	}
}

func dummyNode() *ast.Node {
	return &ast.Node{}
}
