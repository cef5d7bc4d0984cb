// Package enumerate provides the DSL-guided tree enumerators: a single
// re-enterable iterator contract (Next/Update) satisfied by two concrete
// strategies, MultiTree (tuples of per-field trees) and Funny (single
// trees, bounded by node count rather than the original's (depth,
// length) pair — see DESIGN.md).
package enumerate

import (
	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/decide"
)

// Enumerator yields candidate ASTs of a given DSL, smallest first, and
// accepts blocking predicates from the decider to prune future output.
// Next returns (nil, false) once exhausted. Update(nil) means "no new
// constraint, just keep advancing"; active predicates accumulate and are
// never removed within one enumerator's lifetime.
type Enumerator interface {
	Next() (*ast.Node, bool)
	Update(preds []decide.Predicate)
}

// blocked reports whether n, or any of its subtrees, is ruled out by any
// predicate in preds — implementing "the exact subtree is forbidden at
// the same position" wherever that subtree occurs in a larger candidate.
func blocked(n *ast.Node, preds []decide.Predicate) bool {
	if n == nil {
		return false
	}
	for _, p := range preds {
		if p.Blocks(n) {
			return true
		}
	}
	for _, c := range n.Children {
		if blocked(c, preds) {
			return true
		}
	}
	return false
}
