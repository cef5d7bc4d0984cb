// Package distinguish finds an input two candidate regex ASTs disagree
// on, by bounded sampling over a field alphabet and length cap.
package distinguish

import (
	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/interp"
)

// DefaultMaxLength bounds the length of searched candidate strings when
// Distinguish is called with maxLength <= 0.
const DefaultMaxLength = 6

// Distinguish returns a string s with match(p1, s) != match(p2, s), and
// true, or ("", false) if no such string is found within the sampling
// budget (the two candidates are treated as indistinguishable).
//
// Soundness only requires that a returned string truly distinguishes;
// completeness is bounded by budget, consistent with the "permitted to
// sample" clause governing this component.
func Distinguish(p1, p2 *ast.Node, alphabet []rune, maxLength int) (string, bool) {
	m1, err := interp.Compile(p1)
	if err != nil {
		return "", false
	}
	m2, err := interp.Compile(p2)
	if err != nil {
		return "", false
	}

	if len(alphabet) == 0 {
		alphabet = []rune{'a', 'b', 'c', '0', '1'}
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	return disagree(m1.FullMatchString, m2.FullMatchString, alphabet, maxLength)
}

// disagree performs a bounded breadth-first walk over strings built from
// alphabet, shortest first, returning the first one the two full-match
// predicates disagree on.
func disagree(f1, f2 func(string) bool, alphabet []rune, maxLength int) (string, bool) {
	queue := []string{""}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if f1(s) != f2(s) {
			return s, true
		}
		if len(s) >= maxLength {
			continue
		}
		for _, r := range alphabet {
			queue = append(queue, s+string(r))
		}
	}
	return "", false
}
