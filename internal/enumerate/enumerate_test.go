package enumerate

import (
	"testing"

	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/decide"
	"github.com/marghrid/forest/internal/decompose"
	"github.com/marghrid/forest/internal/dslbuild"
)

func abDSL() *ast.DSL {
	return dslbuild.Build([]decompose.Field{
		{Values: []string{"a", "b"}, Alphabet: []rune{'a', 'b'}, MaxLen: 1},
	})[0]
}

func TestFunnyEnumeratorNoRepetition(t *testing.T) {
	e := NewFunny(abDSL(), 4)
	seen := []*ast.Node{}
	for {
		n, ok := e.Next()
		if !ok {
			break
		}
		for _, s := range seen {
			if s.Equal(n) {
				t.Fatalf("enumerator repeated a structurally equal node")
			}
		}
		seen = append(seen, n)
	}
	if len(seen) == 0 {
		t.Fatal("expected at least one enumerated tree")
	}
}

func TestFunnyEnumeratorSmallerFirst(t *testing.T) {
	e := NewFunny(abDSL(), 3)
	prevSize := 0
	for {
		n, ok := e.Next()
		if !ok {
			break
		}
		if n.Size() < prevSize {
			t.Errorf("tree of size %d returned after size %d", n.Size(), prevSize)
		}
		prevSize = n.Size()
	}
}

func TestFunnyEnumeratorHonorsBlockSubtree(t *testing.T) {
	e := NewFunny(abDSL(), 2)
	first, ok := e.Next()
	if !ok {
		t.Fatal("expected at least one candidate")
	}
	e2 := NewFunny(abDSL(), 2)
	e2.Update([]decide.Predicate{decide.BlockSubtree{Node: first}})
	for {
		n, ok := e2.Next()
		if !ok {
			break
		}
		if n.Equal(first) {
			t.Fatal("blocked subtree was still produced")
		}
	}
}

func TestMultiTreeEnumeratesTuples(t *testing.T) {
	dsls := []*ast.DSL{abDSL(), abDSL()}
	e := NewMultiTree(dsls, 2, 5)
	count := 0
	for {
		n, ok := e.Next()
		if !ok {
			break
		}
		if n.ResultType() != ast.TypeRegex {
			t.Errorf("composed tuple has type %v, want Regex", n.ResultType())
		}
		count++
		if count > 1000 {
			t.Fatal("enumerator did not terminate")
		}
	}
	if count == 0 {
		t.Fatal("expected at least one composed tuple")
	}
}
