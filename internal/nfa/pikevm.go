package nfa

import "github.com/marghrid/forest/internal/sparse"

// PikeVM implements the Pike VM algorithm for NFA execution. It simulates
// the NFA by maintaining a set of active states and advancing all of them
// on each input byte, giving linear-time matching with no backtracking
// blowup. Used as the fallback engine when BoundedBacktracker.CanHandle
// reports the input too large for its bit vector.
type PikeVM struct {
	nfa *NFA

	queue     []StateID
	nextQueue []StateID

	// visited tracks which states have already been added to the current
	// generation's queue, so epsilon closures never enqueue a state twice.
	visited *sparse.SparseSet
}

// NewPikeVM creates a new PikeVM for executing the given NFA.
func NewPikeVM(n *NFA) *PikeVM {
	capacity := n.States()
	if capacity < 16 {
		capacity = 16
	}
	return &PikeVM{
		nfa:       n,
		queue:     make([]StateID, 0, capacity),
		nextQueue: make([]StateID, 0, capacity),
		//nolint:gosec // G115: StateID is uint32, safe for realistic NFA sizes
		visited: sparse.NewSparseSet(uint32(capacity)),
	}
}

// addThread follows epsilon/split closures from state, enqueueing every
// reachable byte-consuming or match state exactly once.
func (p *PikeVM) addThread(queue *[]StateID, state StateID) {
	if state == InvalidState {
		return
	}
	//nolint:gosec // G115: StateID is uint32
	if !p.visited.Insert(uint32(state)) {
		return
	}

	s := p.nfa.State(state)
	if s == nil {
		return
	}

	switch s.Kind() {
	case StateEpsilon:
		p.addThread(queue, s.Epsilon())
	case StateSplit:
		left, right := s.Split()
		p.addThread(queue, left)
		p.addThread(queue, right)
	case StateFail:
		// dead end, nothing to enqueue
	default:
		*queue = append(*queue, state)
	}
}

// FullMatch returns true if the pattern matches the entire haystack.
func (p *PikeVM) FullMatch(haystack []byte) bool {
	return p.run(haystack, true)
}

// PartialMatch returns true if the pattern matches a prefix of haystack.
func (p *PikeVM) PartialMatch(haystack []byte) bool {
	return p.run(haystack, false)
}

func (p *PikeVM) run(haystack []byte, requireFull bool) bool {
	p.queue = p.queue[:0]
	p.nextQueue = p.nextQueue[:0]
	p.visited.Clear()

	p.addThread(&p.queue, p.nfa.Start())

	for pos := 0; ; pos++ {
		matched := false
		for _, st := range p.queue {
			if p.nfa.IsMatch(st) {
				matched = true
				break
			}
		}
		if matched {
			if !requireFull {
				return true
			}
			if pos == len(haystack) {
				return true
			}
		}

		if pos >= len(haystack) || len(p.queue) == 0 {
			return false
		}

		b := haystack[pos]
		p.visited.Clear()
		p.nextQueue = p.nextQueue[:0]
		for _, st := range p.queue {
			s := p.nfa.State(st)
			if s == nil {
				continue
			}
			switch s.Kind() {
			case StateByteRange:
				lo, hi, next := s.ByteRange()
				if b >= lo && b <= hi {
					p.addThread(&p.nextQueue, next)
				}
			case StateSparse:
				for _, tr := range s.Transitions() {
					if b >= tr.Lo && b <= tr.Hi {
						p.addThread(&p.nextQueue, tr.Next)
						break
					}
				}
			}
		}
		p.queue, p.nextQueue = p.nextQueue, p.queue
	}
}
