// Package rx is a thin facade over internal/nfa, choosing between the
// bounded backtracker and the PikeVM fallback the way a larger matching
// engine would choose between its search strategies, simplified here to
// two engines since candidate evaluation never needs literal prefiltering
// or a lazy DFA: inputs are short CEGIS examples, not bulk text.
package rx

import "github.com/marghrid/forest/internal/nfa"

// Pattern wraps a compiled NFA with both matching engines, lazily
// building the PikeVM only if an evaluation ever exceeds the
// backtracker's bit-vector budget.
type Pattern struct {
	n  *nfa.NFA
	bt *nfa.BoundedBacktracker
	vm *nfa.PikeVM
}

// New wraps a compiled NFA for matching.
func New(n *nfa.NFA) *Pattern {
	return &Pattern{n: n, bt: nfa.NewBoundedBacktracker(n)}
}

type matcher interface {
	FullMatch([]byte) bool
	PartialMatch([]byte) bool
}

func (p *Pattern) engine(haystackLen int) matcher {
	if p.bt.CanHandle(haystackLen) {
		return p.bt
	}
	if p.vm == nil {
		p.vm = nfa.NewPikeVM(p.n)
	}
	return p.vm
}

// FullMatchString returns true iff s is matched in its entirety.
func (p *Pattern) FullMatchString(s string) bool {
	b := []byte(s)
	return p.engine(len(b)).FullMatch(b)
}

// PartialMatchString returns true iff some prefix of s, anchored at the
// start, matches.
func (p *Pattern) PartialMatchString(s string) bool {
	b := []byte(s)
	return p.engine(len(b)).PartialMatch(b)
}

// States returns the number of NFA states backing this pattern.
func (p *Pattern) States() int {
	return p.n.States()
}
