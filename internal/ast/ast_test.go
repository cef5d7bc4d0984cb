package ast

import "testing"

func allKinds() []Kind {
	return []Kind{
		KindChar, KindNumber, KindRegexAtom, KindKleene, KindOption, KindPosit,
		KindConcat, KindUnion, KindCopies, KindMatch, KindPartialMatch,
		KindLen, KindLe, KindGe, KindConj, KindInput,
	}
}

func TestKindStringIsExhaustive(t *testing.T) {
	for _, k := range allKinds() {
		if k.String() == "" {
			t.Errorf("Kind(%d).String() is empty", k)
		}
	}
}

func TestNewNodeValidatesArity(t *testing.T) {
	dsl := NewDSL(TypeRegex)
	a := dsl.Add("a", KindChar, TypeRegex, nil, 'a')

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on arity mismatch")
		}
	}()
	NewNode(a, NewNode(a))
}

func TestNewNodeValidatesArgTypes(t *testing.T) {
	dsl := NewDSL(TypeRegex)
	a := dsl.Add("a", KindChar, TypeRegex, nil, 'a')
	kleene := dsl.Add("kleene", KindKleene, TypeRegex, []Type{TypeRegex}, nil)
	num := dsl.Add("one", KindNumber, TypeNumber, nil, 1)

	// kleene expects a Regex child; passing a Number child must panic.
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on arg type mismatch")
		}
	}()
	NewNode(kleene, NewNode(num))
	_ = a
}

func TestNodeEqual(t *testing.T) {
	dsl := NewDSL(TypeRegex)
	a := dsl.Add("a", KindChar, TypeRegex, nil, 'a')
	b := dsl.Add("b", KindChar, TypeRegex, nil, 'b')
	concat := dsl.Add("concat", KindConcat, TypeRegex, []Type{TypeRegex, TypeRegex}, nil)

	n1 := NewNode(concat, NewNode(a), NewNode(b))
	n2 := NewNode(concat, NewNode(a), NewNode(b))
	n3 := NewNode(concat, NewNode(b), NewNode(a))

	if !n1.Equal(n2) {
		t.Error("structurally identical nodes should be equal")
	}
	if n1.Equal(n3) {
		t.Error("structurally different nodes should not be equal")
	}
}

func TestNodeSize(t *testing.T) {
	dsl := NewDSL(TypeRegex)
	a := dsl.Add("a", KindChar, TypeRegex, nil, 'a')
	kleene := dsl.Add("kleene", KindKleene, TypeRegex, []Type{TypeRegex}, nil)

	leaf := NewNode(a)
	tree := NewNode(kleene, leaf)
	if leaf.Size() != 1 {
		t.Errorf("leaf size = %d, want 1", leaf.Size())
	}
	if tree.Size() != 2 {
		t.Errorf("tree size = %d, want 2", tree.Size())
	}
}

func TestDSLProductionsOf(t *testing.T) {
	dsl := NewDSL(TypeRegex)
	dsl.Add("a", KindChar, TypeRegex, nil, 'a')
	dsl.Add("b", KindChar, TypeRegex, nil, 'b')
	dsl.Add("one", KindNumber, TypeNumber, nil, 1)

	if got := len(dsl.ProductionsOf(TypeRegex)); got != 2 {
		t.Errorf("len(ProductionsOf(TypeRegex)) = %d, want 2", got)
	}
	if got := len(dsl.ProductionsOf(TypeNumber)); got != 1 {
		t.Errorf("len(ProductionsOf(TypeNumber)) = %d, want 1", got)
	}
}
