package distinguish

import (
	"testing"

	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/interp"
)

// aPlus returns a+, aPlusBOpt returns a+b?, both over alphabet {a, b}.
func aPlus() *ast.Node {
	d := ast.NewDSL(ast.TypeRegex)
	a := d.Add("a", ast.KindChar, ast.TypeRegex, nil, 'a')
	posit := d.Add("posit", ast.KindPosit, ast.TypeRegex, []ast.Type{ast.TypeRegex}, nil)
	return ast.NewNode(posit, ast.NewNode(a))
}

func aPlusBOpt() *ast.Node {
	d := ast.NewDSL(ast.TypeRegex)
	a := d.Add("a", ast.KindChar, ast.TypeRegex, nil, 'a')
	b := d.Add("b", ast.KindChar, ast.TypeRegex, nil, 'b')
	posit := d.Add("posit", ast.KindPosit, ast.TypeRegex, []ast.Type{ast.TypeRegex}, nil)
	option := d.Add("option", ast.KindOption, ast.TypeRegex, []ast.Type{ast.TypeRegex}, nil)
	concat := d.Add("concat2", ast.KindConcat, ast.TypeRegex, []ast.Type{ast.TypeRegex, ast.TypeRegex}, nil)
	return ast.NewNode(concat, ast.NewNode(posit, ast.NewNode(a)), ast.NewNode(option, ast.NewNode(b)))
}

func TestDistinguishFindsSoundDisagreement(t *testing.T) {
	p1 := aPlus()
	p2 := aPlusBOpt()

	s, ok := Distinguish(p1, p2, []rune{'a', 'b'}, 4)
	if !ok {
		t.Fatal("expected a distinguishing input")
	}

	m1, err := interp.Compile(p1)
	if err != nil {
		t.Fatalf("Compile p1: %v", err)
	}
	m2, err := interp.Compile(p2)
	if err != nil {
		t.Fatalf("Compile p2: %v", err)
	}
	if m1.FullMatchString(s) == m2.FullMatchString(s) {
		t.Fatalf("returned input %q does not actually distinguish the two patterns", s)
	}
}

func TestDistinguishReportsIndistinguishableForEqualPatterns(t *testing.T) {
	p1 := aPlus()
	p2 := aPlus()
	_, ok := Distinguish(p1, p2, []rune{'a', 'b'}, 4)
	if ok {
		t.Fatal("expected indistinguishable result for structurally-equal patterns")
	}
}
