// Package interp evaluates regex-DSL abstract syntax trees: compiling
// Regex-typed nodes to an NFA for matching, evaluating predicate nodes
// against a string under test, and pretty-printing with minimal
// parentheses.
package interp

import (
	"errors"
	"fmt"

	"github.com/marghrid/forest/internal/ast"
)

// Sentinel reasons for Error. The decider maps these to blocking
// predicates instead of propagating them to the driver.
var (
	// ErrBadRepetitionBound indicates a copies node whose bound is negative
	// or not an int. Compile and Eval also return it for a root that is not
	// Regex-typed, for a node kind they do not handle, and EvalBool for a
	// result that is not a bool.
	ErrBadRepetitionBound = errors.New("bad repetition bound")
	// ErrEmptyCharClass indicates a regex atom whose character class has
	// no members, e.g. a field-alphabet class intersected down to nothing.
	ErrEmptyCharClass = errors.New("empty character class")
)

// Error wraps an interpreter fault with the node that triggered it.
type Error struct {
	Reason error
	Node   *ast.Node
}

func (e *Error) Error() string {
	return fmt.Sprintf("interp: %v at node %d (%s)", e.Reason, e.Node.ID(), e.Node.Production.Name)
}

// Unwrap exposes the sentinel reason for errors.Is.
func (e *Error) Unwrap() error {
	return e.Reason
}
