package decide

import (
	"testing"

	"github.com/marghrid/forest/internal/ast"
)

func digitPlus() (*ast.DSL, *ast.Node) {
	d := ast.NewDSL(ast.TypeRegex)
	digit := d.Add(`\d`, ast.KindRegexAtom, ast.TypeRegex, nil, `\d`)
	posit := d.Add("posit", ast.KindPosit, ast.TypeRegex, []ast.Type{ast.TypeRegex}, nil)
	return d, ast.NewNode(posit, ast.NewNode(digit))
}

func TestAnalyzeAcceptsConsistentCandidate(t *testing.T) {
	_, tree := digitPlus()
	dec := NewDecider()
	dec.AddExample("42", true)
	dec.AddExample("abc", false)

	res := dec.Analyze(tree)
	if !res.OK() {
		t.Fatalf("expected candidate to be accepted, got predicates %v", res.Predicates())
	}
}

func TestAnalyzeRejectsCandidateMatchingInvalidExample(t *testing.T) {
	_, tree := digitPlus()
	dec := NewDecider()
	dec.AddExample("42", true)
	dec.AddExample("7", false) // \d+ matches "7", so this must be rejected

	res := dec.Analyze(tree)
	if res.OK() {
		t.Fatal("expected candidate to be rejected")
	}
	if len(res.Predicates()) == 0 {
		t.Error("expected at least one blocking predicate")
	}
}

func TestAnalyzeRejectsCandidateMissingValidExample(t *testing.T) {
	_, tree := digitPlus()
	dec := NewDecider()
	dec.AddExample("abc", true) // \d+ cannot match "abc"

	res := dec.Analyze(tree)
	if res.OK() {
		t.Fatal("expected candidate to be rejected")
	}
}

func TestAnalyzeDerivesBlockRangeFromBadRepetitionBound(t *testing.T) {
	d := ast.NewDSL(ast.TypeRegex)
	a := d.Add("a", ast.KindChar, ast.TypeRegex, nil, 'a')
	copies := d.Add("copies", ast.KindCopies, ast.TypeRegex, []ast.Type{ast.TypeRegex, ast.TypeNumber}, nil)
	negLit := &ast.Production{ID: -1, Name: "neg", Kind: ast.KindNumber, ResultType: ast.TypeNumber, Literal: -1}
	tree := ast.NewNode(copies, ast.NewNode(a), ast.NewNode(negLit))

	dec := NewDecider()
	dec.AddExample("a", true)

	res := dec.Analyze(tree)
	if res.OK() {
		t.Fatal("expected rejection for a negative repetition bound")
	}
	found := false
	for _, p := range res.Predicates() {
		if br, ok := p.(BlockRange); ok && br.Lo == -1 && br.Hi == -1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a BlockRange{-1,-1} predicate, got %v", res.Predicates())
	}
}

func TestBlockSubtreeBlocksStructurallyEqualNode(t *testing.T) {
	_, tree := digitPlus()
	pred := BlockSubtree{Node: tree}
	if !pred.Blocks(tree) {
		t.Error("expected BlockSubtree to block an identical node")
	}

	d2 := ast.NewDSL(ast.TypeRegex)
	a := d2.Add("a", ast.KindChar, ast.TypeRegex, nil, 'a')
	other := ast.NewNode(a)
	if pred.Blocks(other) {
		t.Error("did not expect BlockSubtree to block an unrelated node")
	}
}
