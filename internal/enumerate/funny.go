package enumerate

import (
	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/decide"
)

// Funny enumerates single Regex trees over one DSL, used when a
// decomposed example set has exactly one field. The original's
// enumerator is parametrized by a pair (depth, length) — length bounding
// the number of alternatives in a union or children in a concat, the
// pair iterated in order of increasing (2^depth-1)*length — but this
// implementation collapses that to a single node-count bound, maxSize,
// the driver's depth counter passed straight through. See DESIGN.md's
// internal/enumerate entry for what that simplification gives up and why
// it was made.
type Funny struct {
	m       *memo
	maxSize int

	size   int
	idx    int
	active []decide.Predicate
}

// NewFunny creates a Funny enumerator bounded by maxSize nodes.
func NewFunny(dsl *ast.DSL, maxSize int) *Funny {
	return &Funny{m: newMemo(dsl), maxSize: maxSize, size: 1}
}

// Next returns the next unblocked tree in increasing-size order, or
// (nil, false) once every tree up to maxSize has been produced.
func (e *Funny) Next() (*ast.Node, bool) {
	for e.size <= e.maxSize {
		trees := e.m.byType(ast.TypeRegex, e.size)
		for e.idx < len(trees) {
			t := trees[e.idx]
			e.idx++
			if !blocked(t, e.active) {
				return t, true
			}
		}
		e.size++
		e.idx = 0
	}
	return nil, false
}

// Update accumulates blocking predicates; a nil/empty preds is a no-op
// advance signal.
func (e *Funny) Update(preds []decide.Predicate) {
	e.active = append(e.active, preds...)
}
