package interp

import (
	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/nfa"
	"github.com/marghrid/forest/internal/rx"
)

// Compile builds a matcher for a Regex-typed AST node, a direct Thompson
// construction from the node's own structure rather than a round trip
// through regex text.
func Compile(root *ast.Node) (*rx.Pattern, error) {
	if root.ResultType() != ast.TypeRegex {
		return nil, &Error{Reason: ErrBadRepetitionBound, Node: root}
	}

	b := nfa.NewBuilder()
	match := b.AddMatch()
	start, err := compileNode(b, root, match)
	if err != nil {
		return nil, err
	}
	b.SetStart(start)

	n, buildErr := b.Build()
	if buildErr != nil {
		return nil, buildErr
	}
	return rx.New(n), nil
}

// compileNode recursively compiles n, threading through the state to
// transition to once n has matched (its continuation), and returns the
// entry state for n.
func compileNode(b *nfa.Builder, n *ast.Node, next nfa.StateID) (nfa.StateID, error) {
	switch n.Kind() {
	case ast.KindChar:
		c := byte(n.Production.Literal.(rune))
		return b.AddByteRange(c, c, next), nil

	case ast.KindRegexAtom:
		return compileAtom(b, n, next)

	case ast.KindConcat:
		cont := next
		for i := len(n.Children) - 1; i >= 0; i-- {
			entry, err := compileNode(b, n.Children[i], cont)
			if err != nil {
				return nfa.InvalidState, err
			}
			cont = entry
		}
		return cont, nil

	case ast.KindUnion:
		if len(n.Children) == 1 {
			return compileNode(b, n.Children[0], next)
		}
		starts := make([]nfa.StateID, len(n.Children))
		for i, c := range n.Children {
			entry, err := compileNode(b, c, next)
			if err != nil {
				return nfa.InvalidState, err
			}
			starts[i] = entry
		}
		result := starts[len(starts)-1]
		for i := len(starts) - 2; i >= 0; i-- {
			result = b.AddSplit(starts[i], result)
		}
		return result, nil

	case ast.KindKleene:
		split := b.AddSplit(nfa.InvalidState, next)
		bodyStart, err := compileNode(b, n.Children[0], split)
		if err != nil {
			return nfa.InvalidState, err
		}
		if err := b.PatchSplit(split, bodyStart, next); err != nil {
			return nfa.InvalidState, err
		}
		return split, nil

	case ast.KindOption:
		bodyStart, err := compileNode(b, n.Children[0], next)
		if err != nil {
			return nfa.InvalidState, err
		}
		return b.AddSplit(bodyStart, next), nil

	case ast.KindPosit:
		split := b.AddSplit(nfa.InvalidState, next)
		bodyStart, err := compileNode(b, n.Children[0], split)
		if err != nil {
			return nfa.InvalidState, err
		}
		if err := b.PatchSplit(split, bodyStart, next); err != nil {
			return nfa.InvalidState, err
		}
		return bodyStart, nil

	case ast.KindCopies:
		count, ok := n.Children[1].Production.Literal.(int)
		if !ok || count < 0 {
			return nfa.InvalidState, &Error{Reason: ErrBadRepetitionBound, Node: n}
		}
		cont := next
		for i := 0; i < count; i++ {
			entry, err := compileNode(b, n.Children[0], cont)
			if err != nil {
				return nfa.InvalidState, err
			}
			cont = entry
		}
		return cont, nil

	default:
		return nfa.InvalidState, &Error{Reason: ErrBadRepetitionBound, Node: n}
	}
}

// compileAtom compiles a predefined character class or a field-alphabet
// class into one or more byte-range transitions.
func compileAtom(b *nfa.Builder, n *ast.Node, next nfa.StateID) (nfa.StateID, error) {
	switch lit := n.Production.Literal.(type) {
	case string:
		switch lit {
		case `\d`:
			return b.AddByteRange('0', '9', next), nil
		case `\w`:
			return b.AddSparse([]nfa.Transition{
				{Lo: 'a', Hi: 'z', Next: next},
				{Lo: 'A', Hi: 'Z', Next: next},
				{Lo: '0', Hi: '9', Next: next},
				{Lo: '_', Hi: '_', Next: next},
			}), nil
		case `\s`:
			return b.AddSparse([]nfa.Transition{
				{Lo: '\t', Hi: '\r', Next: next},
				{Lo: ' ', Hi: ' ', Next: next},
			}), nil
		case `.`:
			return b.AddSparse([]nfa.Transition{
				{Lo: 0, Hi: '\n' - 1, Next: next},
				{Lo: '\n' + 1, Hi: 255, Next: next},
			}), nil
		default:
			return nfa.InvalidState, &Error{Reason: ErrEmptyCharClass, Node: n}
		}
	case []rune:
		if len(lit) == 0 {
			return nfa.InvalidState, &Error{Reason: ErrEmptyCharClass, Node: n}
		}
		trans := make([]nfa.Transition, len(lit))
		for i, r := range lit {
			trans[i] = nfa.Transition{Lo: byte(r), Hi: byte(r), Next: next}
		}
		return b.AddSparse(trans), nil
	default:
		return nfa.InvalidState, &Error{Reason: ErrEmptyCharClass, Node: n}
	}
}
