package enumerate

import (
	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/decide"
)

// MultiTree enumerates tuples of trees, one per decomposed field,
// composed under a fixed outer concat, used when a decomposed example
// set has more than one field. Per-field candidate pools are generated
// once up front (bounded by maxPerField) and combined with a mixed-radix
// counter so every combination is produced exactly once.
type MultiTree struct {
	candidates [][]*ast.Node
	concat     *ast.Production
	counter    []int
	active     []decide.Predicate
	exhausted  bool
}

// NewMultiTree creates a MultiTree enumerator over one DSL per field.
// depth bounds the node count of each per-field candidate (mirroring
// Funny's maxSize); maxPerField caps how many candidates are generated
// per field before combining, keeping the cartesian product finite.
func NewMultiTree(dsls []*ast.DSL, depth, maxPerField int) *MultiTree {
	candidates := make([][]*ast.Node, len(dsls))
	for i, d := range dsls {
		candidates[i] = generateUpTo(d, depth, maxPerField)
	}

	var concat *ast.Production
	for _, p := range dsls[0].ProductionsOf(ast.TypeRegex) {
		if p.Kind == ast.KindConcat {
			concat = p
			break
		}
	}

	return &MultiTree{
		candidates: candidates,
		concat:     concat,
		counter:    make([]int, len(dsls)),
	}
}

// generateUpTo flattens a DSL's trees of increasing size into a single
// slice, stopping once maxCount trees have been collected or sizeCap is
// reached.
func generateUpTo(dsl *ast.DSL, sizeCap, maxCount int) []*ast.Node {
	m := newMemo(dsl)
	var out []*ast.Node
	for size := 1; size <= sizeCap && len(out) < maxCount; size++ {
		out = append(out, m.byType(ast.TypeRegex, size)...)
	}
	if len(out) > maxCount {
		out = out[:maxCount]
	}
	return out
}

// compose folds a per-field tuple into one tree via right-associative
// concat, e.g. fields [f0, f1, f2] -> concat(f0, concat(f1, f2)).
func (e *MultiTree) compose(nodes []*ast.Node) *ast.Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	result := nodes[len(nodes)-1]
	for i := len(nodes) - 2; i >= 0; i-- {
		result = ast.NewNode(e.concat, nodes[i], result)
	}
	return result
}

// advance steps the mixed-radix counter to the next tuple, marking the
// enumerator exhausted once the most significant digit would overflow.
func (e *MultiTree) advance() {
	for i := len(e.counter) - 1; i >= 0; i-- {
		e.counter[i]++
		if e.counter[i] < len(e.candidates[i]) {
			return
		}
		e.counter[i] = 0
		if i == 0 {
			e.exhausted = true
		}
	}
}

// Next returns the next unblocked field-tuple composition, or
// (nil, false) once every combination has been produced.
func (e *MultiTree) Next() (*ast.Node, bool) {
	for !e.exhausted {
		nodes := make([]*ast.Node, len(e.candidates))
		for i, c := range e.counter {
			if c >= len(e.candidates[i]) {
				e.exhausted = true
				return nil, false
			}
			nodes[i] = e.candidates[i][c]
		}
		tree := e.compose(nodes)
		e.advance()
		if !blocked(tree, e.active) {
			return tree, true
		}
	}
	return nil, false
}

// Update accumulates blocking predicates; a nil/empty preds is a no-op
// advance signal.
func (e *MultiTree) Update(preds []decide.Predicate) {
	e.active = append(e.active, preds...)
}
