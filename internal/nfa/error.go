// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// implementation for regex matching.
//
// States are built incrementally through Builder and compiled directly
// from a typed AST, not from regexp/syntax — the synthesizer's candidate
// programs are their own source of truth and never round-trip through
// regex text during evaluation.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors.
var (
	// ErrInvalidState indicates an invalid NFA state ID was encountered.
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrNoMatch indicates no match was found. No code in this package returns it.
	ErrNoMatch = errors.New("no match found")
)

// BuildError represents an error during NFA construction via the Builder API.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}
