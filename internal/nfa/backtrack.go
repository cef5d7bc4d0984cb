package nfa

// BoundedBacktracker implements a bounded backtracking matcher. It uses a
// bit vector to track visited (state, position) pairs, giving O(1) lookup
// with low constant overhead. Candidate programs in the synthesis loop are
// evaluated against short example strings, so the backtracker is the
// default engine; PikeVM exists as the linear-time fallback for the rare
// pathological candidate (see CanHandle).
type BoundedBacktracker struct {
	nfa *NFA

	// visited is a bit vector tracking (state, position) pairs.
	// Layout: bit at index (state * (inputLen+1) + pos) indicates visited.
	visited []uint64

	inputLen  int
	numStates int

	// maxVisitedSize limits memory usage, in bits.
	maxVisitedSize int
}

// NewBoundedBacktracker creates a new bounded backtracker for the given NFA.
func NewBoundedBacktracker(n *NFA) *BoundedBacktracker {
	return &BoundedBacktracker{
		nfa:            n,
		numStates:      n.States(),
		maxVisitedSize: 256 * 1024 * 8, // 256KB = 2M bits
	}
}

// CanHandle returns true if this engine can handle the given input size
// without exceeding maxVisitedSize.
func (b *BoundedBacktracker) CanHandle(haystackLen int) bool {
	bitsNeeded := b.numStates * (haystackLen + 1)
	return bitsNeeded <= b.maxVisitedSize
}

func (b *BoundedBacktracker) reset(haystackLen int) {
	b.inputLen = haystackLen

	bitsNeeded := b.numStates * (haystackLen + 1)
	wordsNeeded := (bitsNeeded + 63) / 64

	if cap(b.visited) >= wordsNeeded {
		b.visited = b.visited[:wordsNeeded]
		for i := range b.visited {
			b.visited[i] = 0
		}
	} else {
		b.visited = make([]uint64, wordsNeeded)
	}
}

func (b *BoundedBacktracker) shouldVisit(state StateID, pos int) bool {
	idx := int(state)*(b.inputLen+1) + pos
	word := idx / 64
	bit := uint64(1) << (idx % 64)

	if b.visited[word]&bit != 0 {
		return false
	}
	b.visited[word] |= bit
	return true
}

// FullMatch returns true if the pattern matches the entire haystack.
func (b *BoundedBacktracker) FullMatch(haystack []byte) bool {
	if !b.CanHandle(len(haystack)) {
		return false
	}
	b.reset(len(haystack))
	return b.backtrack(haystack, 0, b.nfa.Start(), true)
}

// PartialMatch returns true if the pattern matches a prefix of haystack,
// i.e. some state reachable from the start matches before consuming all
// of haystack or exactly at its end.
func (b *BoundedBacktracker) PartialMatch(haystack []byte) bool {
	if !b.CanHandle(len(haystack)) {
		return false
	}
	b.reset(len(haystack))
	return b.backtrack(haystack, 0, b.nfa.Start(), false)
}

// backtrack performs recursive backtracking search.
// requireFull, when true, only accepts a match state reached at
// pos == len(haystack); otherwise any reachable match state accepts.
//
//nolint:gocyclo,cyclop // complexity is inherent to state machine dispatch
func (b *BoundedBacktracker) backtrack(haystack []byte, pos int, state StateID, requireFull bool) bool {
	if state == InvalidState || int(state) >= b.numStates {
		return false
	}
	if !b.shouldVisit(state, pos) {
		return false
	}

	s := b.nfa.State(state)
	if s == nil {
		return false
	}

	switch s.Kind() {
	case StateMatch:
		if requireFull {
			return pos == len(haystack)
		}
		return true

	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if pos < len(haystack) {
			c := haystack[pos]
			if c >= lo && c <= hi {
				return b.backtrack(haystack, pos+1, next, requireFull)
			}
		}
		return false

	case StateSparse:
		if pos >= len(haystack) {
			return false
		}
		c := haystack[pos]
		for _, tr := range s.Transitions() {
			if c >= tr.Lo && c <= tr.Hi {
				return b.backtrack(haystack, pos+1, tr.Next, requireFull)
			}
		}
		return false

	case StateSplit:
		left, right := s.Split()
		return b.backtrack(haystack, pos, left, requireFull) || b.backtrack(haystack, pos, right, requireFull)

	case StateEpsilon:
		return b.backtrack(haystack, pos, s.Epsilon(), requireFull)

	case StateFail:
		return false
	}

	return false
}
