package nfa

import (
	"fmt"

	"github.com/marghrid/forest/internal/conv"
)

// nextID returns the ID the next appended state will receive.
func (b *Builder) nextID() StateID {
	return StateID(conv.IntToUint32(len(b.states)))
}

// Builder constructs NFAs incrementally using a low-level API. This gives
// the interpreter full control over Thompson construction when compiling
// a DSL AST node by node.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates a new NFA builder with default capacity.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

// AddMatch adds a match (accepting) state and returns its ID.
func (b *Builder) AddMatch() StateID {
	id := b.nextID()
	b.states = append(b.states, State{id: id, kind: StateMatch})
	return id
}

// AddByteRange adds a state that transitions on a single byte or byte
// range [lo, hi]. For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	id := b.nextID()
	b.states = append(b.states, State{
		id:   id,
		kind: StateByteRange,
		lo:   lo,
		hi:   hi,
		next: next,
	})
	return id
}

// AddSparse adds a state with multiple byte range transitions (character
// class). The transitions slice is copied to avoid aliasing issues.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	id := b.nextID()
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{
		id:          id,
		kind:        StateSparse,
		transitions: trans,
	})
	return id
}

// AddSplit adds a state with epsilon transitions to two states, used for
// union, kleene, option and posit.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := b.nextID()
	b.states = append(b.states, State{
		id:    id,
		kind:  StateSplit,
		left:  left,
		right: right,
	})
	return id
}

// AddEpsilon adds a state with a single epsilon transition (no input consumed).
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := b.nextID()
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// AddFail adds a dead state with no transitions.
func (b *Builder) AddFail() StateID {
	id := b.nextID()
	b.states = append(b.states, State{id: id, kind: StateFail})
	return id
}

// Patch updates a state's target, for resolving forward references
// during construction (kleene loops use PatchSplit). Only works for states
// with a single 'next' target (ByteRange, Epsilon).
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon:
		s.next = target
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// PatchSplit updates the left or right target of a Split state.
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}

	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}

	s.left = left
	s.right = right
	return nil
}

// SetStart sets the NFA's start state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states.
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed: the start state is set
// and in range, and every state's references point to valid states.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set"}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}

	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateByteRange, StateEpsilon:
			if s.next != InvalidState && int(s.next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: id,
				}
			}
		case StateSplit:
			if s.left != InvalidState && int(s.left) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid left state %d", s.left),
					StateID: id,
				}
			}
			if s.right != InvalidState && int(s.right) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid right state %d", s.right),
					StateID: id,
				}
			}
		case StateSparse:
			for j, t := range s.transitions {
				if t.Next != InvalidState && int(t.Next) >= len(b.states) {
					return &BuildError{
						Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next),
						StateID: id,
					}
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA{states: b.states, start: b.start}, nil
}
