package dslbuild

import (
	"testing"

	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/decompose"
)

func TestBuildAddsCharPerAlphabetRune(t *testing.T) {
	fields := []decompose.Field{
		{Values: []string{"abc", "bca"}, Alphabet: []rune{'a', 'b', 'c'}, MaxLen: 3},
	}
	dsls := Build(fields)
	if len(dsls) != 1 {
		t.Fatalf("got %d DSLs, want 1", len(dsls))
	}
	d := dsls[0]
	if d.Start != ast.TypeRegex {
		t.Errorf("Start = %v, want TypeRegex", d.Start)
	}
	names := make(map[string]bool)
	for _, p := range d.ProductionsOf(ast.TypeRegex) {
		names[p.Name] = true
	}
	for _, want := range []string{"a", "b", "c", "concat2", "union2", "kleene", "option", "posit", "copies"} {
		if !names[want] {
			t.Errorf("missing production %q", want)
		}
	}
}

func TestBuildAddsDigitAtomOnlyWhenCompatible(t *testing.T) {
	digitField := decompose.Field{Values: []string{"123"}, Alphabet: []rune{'1', '2', '3'}, MaxLen: 3}
	letterField := decompose.Field{Values: []string{"abc"}, Alphabet: []rune{'a', 'b', 'c'}, MaxLen: 3}

	dsls := Build([]decompose.Field{digitField, letterField})

	hasDigitAtom := func(d *ast.DSL) bool {
		for _, p := range d.ProductionsOf(ast.TypeRegex) {
			if p.Name == `\d` {
				return true
			}
		}
		return false
	}
	if !hasDigitAtom(dsls[0]) {
		t.Error("expected \\d atom for a digit-only alphabet")
	}
	if hasDigitAtom(dsls[1]) {
		t.Error("did not expect \\d atom for a letter-only alphabet")
	}
}

func TestBuildBoundsNumberTerminalsByMaxLen(t *testing.T) {
	fields := []decompose.Field{
		{Values: []string{"42"}, Alphabet: []rune{'4', '2'}, MaxLen: 2},
	}
	d := Build(fields)[0]
	nums := d.ProductionsOf(ast.TypeNumber)
	if len(nums) != 2 {
		t.Fatalf("got %d number terminals, want 2", len(nums))
	}
	if d.MaxNumber != 2 {
		t.Errorf("MaxNumber = %d, want 2", d.MaxNumber)
	}
}
