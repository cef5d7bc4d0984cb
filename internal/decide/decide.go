// Package decide classifies a candidate regex AST against the current
// example set, and when it is rejected, attempts to derive a blocking
// predicate the enumerator can use to avoid regenerating equivalent
// failures.
package decide

import (
	"errors"

	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/interp"
)

// Predicate is a structural constraint on future candidates: the
// enumerator skips any AST that some active predicate blocks.
// Blocks reports whether n is ruled out by this predicate.
type Predicate interface {
	Blocks(n *ast.Node) bool
}

// BlockSubtree forbids the exact subtree (by structural equality) at any
// position a future candidate might place it.
type BlockSubtree struct {
	Node *ast.Node
}

// Blocks reports whether n is structurally identical to the forbidden subtree.
func (b BlockSubtree) Blocks(n *ast.Node) bool {
	return n.Equal(b.Node)
}

// BlockRange forbids a Number literal from falling within [Lo, Hi].
type BlockRange struct {
	Lo, Hi int
}

// Blocks reports whether n is a Number terminal whose literal lies in range.
func (b BlockRange) Blocks(n *ast.Node) bool {
	if n.Kind() != ast.KindNumber {
		return false
	}
	v, ok := n.Production.Literal.(int)
	return ok && v >= b.Lo && v <= b.Hi
}

// Result is the outcome of analyzing one candidate.
type Result struct {
	ok         bool
	predicates []Predicate
}

// OK reports whether the candidate is consistent with every example.
func (r Result) OK() bool { return r.ok }

// Predicates returns the blocking predicates derived from a rejection.
// Empty when OK() is true.
func (r Result) Predicates() []Predicate { return r.predicates }

// Decider owns the growing example set for one synthesis session.
type Decider struct {
	valid   []string
	invalid []string
}

// NewDecider creates an empty decider.
func NewDecider() *Decider {
	return &Decider{}
}

// AddExample grows the example set. Examples are immutable once added;
// the set only ever grows during a session.
func (d *Decider) AddExample(value string, valid bool) {
	if valid {
		d.valid = append(d.valid, value)
	} else {
		d.invalid = append(d.invalid, value)
	}
}

// Valid returns the current valid example set.
func (d *Decider) Valid() []string { return d.valid }

// Invalid returns the current invalid example set.
func (d *Decider) Invalid() []string { return d.invalid }

// Analyze classifies p against the current example set. Interpreter
// errors raised while compiling p (e.g. a negative copies bound, an
// empty character class) are absorbed here and turned into blocking
// predicates rather than propagated as a Go error, per the interpreter
// error taxonomy.
func (d *Decider) Analyze(p *ast.Node) Result {
	pattern, err := interp.Compile(p)
	if err != nil {
		return Result{ok: false, predicates: predicatesFromError(p, err)}
	}

	for _, v := range d.valid {
		if !pattern.FullMatchString(v) {
			return Result{ok: false, predicates: []Predicate{BlockSubtree{Node: p}}}
		}
	}
	for _, inv := range d.invalid {
		if pattern.FullMatchString(inv) {
			return Result{ok: false, predicates: []Predicate{BlockSubtree{Node: p}}}
		}
	}
	return Result{ok: true}
}

// predicatesFromError maps an absorbed interpreter fault to a blocking
// predicate. A bad repetition bound blocks exactly the offending count
// wherever it appears as a Number terminal; any other reason falls back
// to blocking the exact subtree.
func predicatesFromError(p *ast.Node, err error) []Predicate {
	var ierr *interp.Error
	if errors.As(err, &ierr) && errors.Is(ierr.Reason, interp.ErrBadRepetitionBound) {
		if ierr.Node.Kind() == ast.KindCopies && len(ierr.Node.Children) == 2 {
			if n, ok := ierr.Node.Children[1].Production.Literal.(int); ok {
				return []Predicate{BlockRange{Lo: n, Hi: n}}
			}
		}
	}
	return []Predicate{BlockSubtree{Node: p}}
}
