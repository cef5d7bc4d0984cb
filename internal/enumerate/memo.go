package enumerate

import "github.com/marghrid/forest/internal/ast"

// memo generates every well-typed AST of a given exact node count over one
// DSL, caching results by (type, size) so larger sizes reuse smaller
// subtrees instead of rebuilding them.
type memo struct {
	dsl   *ast.DSL
	cache map[ast.Type]map[int][]*ast.Node
}

func newMemo(dsl *ast.DSL) *memo {
	return &memo{dsl: dsl, cache: make(map[ast.Type]map[int][]*ast.Node)}
}

// byType returns every tree of result type t with exactly size nodes.
func (m *memo) byType(t ast.Type, size int) []*ast.Node {
	if size < 1 {
		return nil
	}
	bucket, ok := m.cache[t]
	if !ok {
		bucket = make(map[int][]*ast.Node)
		m.cache[t] = bucket
	}
	if trees, ok := bucket[size]; ok {
		return trees
	}

	var out []*ast.Node
	for _, p := range m.dsl.ProductionsOf(t) {
		if p.Arity() == 0 {
			if size == 1 {
				out = append(out, ast.NewNode(p))
			}
			continue
		}
		for _, children := range m.compositions(size-1, p.ArgTypes) {
			out = append(out, ast.NewNode(p, children...))
		}
	}
	bucket[size] = out
	return out
}

// compositions returns every way to build one subtree per entry of
// argTypes such that their sizes sum to total, in deterministic order.
func (m *memo) compositions(total int, argTypes []ast.Type) [][]*ast.Node {
	if len(argTypes) == 0 {
		if total == 0 {
			return [][]*ast.Node{{}}
		}
		return nil
	}

	var out [][]*ast.Node
	maxFirst := total - (len(argTypes) - 1)
	for firstSize := 1; firstSize <= maxFirst; firstSize++ {
		firstCandidates := m.byType(argTypes[0], firstSize)
		if len(firstCandidates) == 0 {
			continue
		}
		rest := m.compositions(total-firstSize, argTypes[1:])
		if len(rest) == 0 {
			continue
		}
		for _, fc := range firstCandidates {
			for _, r := range rest {
				children := make([]*ast.Node, 0, len(argTypes))
				children = append(children, fc)
				children = append(children, r...)
				out = append(out, children)
			}
		}
	}
	return out
}
