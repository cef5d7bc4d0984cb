package synth

import (
	"context"
	"testing"

	"github.com/marghrid/forest/internal/decide"
	"github.com/marghrid/forest/internal/decompose"
	"github.com/marghrid/forest/internal/dslbuild"
	"github.com/marghrid/forest/internal/interp"
	"github.com/marghrid/forest/internal/oracle"
)

// runScenario decomposes valid/invalid, builds per-field DSLs, and drives
// a synthesis session to completion using a ground-truth oracle so the
// session never blocks on interactive input.
func runScenario(t *testing.T, valid, invalid []string, groundTruth string, maxDepth int) *Stats {
	t.Helper()

	res, err := decompose.Decompose(valid, invalid)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	dsls := dslbuild.Build(res.Fields)

	dec := decide.NewDecider()
	for _, v := range valid {
		dec.AddExample(v, true)
	}
	for _, iv := range invalid {
		dec.AddExample(iv, false)
	}

	g, err := oracle.NewGroundTruth(groundTruth)
	if err != nil {
		t.Fatalf("NewGroundTruth: %v", err)
	}

	var alphabet []rune
	for _, f := range res.Fields {
		alphabet = append(alphabet, f.Alphabet...)
	}

	d := New(Config{
		DSLs:     dsls,
		Alphabet: alphabet,
		Decider:  dec,
		Oracle:   g,
		Pruning:  true,
		MaxDepth: maxDepth,
	})

	stats, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Solution == nil {
		t.Fatal("expected a solution")
	}
	return stats
}

// TestDriverSolutionSatisfiesAllExamples covers invariants 1 and 2 of the
// testable properties: the returned solution fully matches every initial
// valid example and rejects every initial invalid example.
func TestDriverSolutionSatisfiesAllExamples(t *testing.T) {
	valid := []string{"42", "100", "7"}
	invalid := []string{"abc", ""}

	stats := runScenario(t, valid, invalid, `\d+`, 6)

	p, err := interp.Compile(stats.Solution)
	if err != nil {
		t.Fatalf("Compile solution: %v", err)
	}
	for _, v := range valid {
		if !p.FullMatchString(v) {
			t.Errorf("solution %q rejects valid example %q", interp.Print(stats.Solution), v)
		}
	}
	for _, iv := range invalid {
		if p.FullMatchString(iv) {
			t.Errorf("solution %q accepts invalid example %q", interp.Print(stats.Solution), iv)
		}
	}
}

// TestDriverDecomposedFields covers scenario 3: a multi-field example set
// drives the MultiTree enumerator and the composed solution still
// satisfies every example.
func TestDriverDecomposedFields(t *testing.T) {
	valid := []string{"(123) 456", "(999) 000"}
	invalid := []string{"123 456", "(abc) def"}

	stats := runScenario(t, valid, invalid, `\(\d+\) \d+`, 5)
	if stats.Enumerator != EnumeratorMultiTree {
		t.Errorf("Enumerator = %v, want multitree", stats.Enumerator)
	}

	p, err := interp.Compile(stats.Solution)
	if err != nil {
		t.Fatalf("Compile solution: %v", err)
	}
	for _, v := range valid {
		if !p.FullMatchString(v) {
			t.Errorf("solution rejects valid example %q", v)
		}
	}
	for _, iv := range invalid {
		if p.FullMatchString(iv) {
			t.Errorf("solution accepts invalid example %q", iv)
		}
	}
}
