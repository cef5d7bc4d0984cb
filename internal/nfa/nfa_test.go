package nfa

import "testing"

// buildLiteral builds an NFA matching the exact byte string s.
func buildLiteral(s string) *NFA {
	b := NewBuilder()
	match := b.AddMatch()
	next := match
	for i := len(s) - 1; i >= 0; i-- {
		next = b.AddByteRange(s[i], s[i], next)
	}
	b.SetStart(next)
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}

// buildStar builds an NFA matching c* for a single byte c.
func buildStar(c byte) *NFA {
	b := NewBuilder()
	match := b.AddMatch()
	split := b.AddSplit(InvalidState, match)
	body := b.AddByteRange(c, c, split)
	if err := b.PatchSplit(split, body, match); err != nil {
		panic(err)
	}
	b.SetStart(split)
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}

func TestBoundedBacktrackerFullMatch(t *testing.T) {
	n := buildLiteral("abc")
	bt := NewBoundedBacktracker(n)

	tests := []struct {
		input string
		want  bool
	}{
		{"abc", true},
		{"ab", false},
		{"abcd", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := bt.FullMatch([]byte(tc.input)); got != tc.want {
			t.Errorf("FullMatch(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestBoundedBacktrackerPartialMatch(t *testing.T) {
	n := buildLiteral("abc")
	bt := NewBoundedBacktracker(n)

	tests := []struct {
		input string
		want  bool
	}{
		{"abc", true},
		{"abcd", true}, // partial match means a prefix of the haystack matches: "abc" is a prefix of "abcd"
		{"ab", false},
	}
	for _, tc := range tests {
		if got := bt.PartialMatch([]byte(tc.input)); got != tc.want {
			t.Errorf("PartialMatch(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestBoundedBacktrackerStar(t *testing.T) {
	n := buildStar('a')
	bt := NewBoundedBacktracker(n)

	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"a", true},
		{"aaaa", true},
		{"aaab", false},
		{"b", false},
	}
	for _, tc := range tests {
		if got := bt.FullMatch([]byte(tc.input)); got != tc.want {
			t.Errorf("FullMatch(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPikeVMAgreesWithBacktracker(t *testing.T) {
	n := buildStar('a')
	bt := NewBoundedBacktracker(n)
	vm := NewPikeVM(n)

	inputs := []string{"", "a", "aaaa", "aaab", "b", "ba"}
	for _, in := range inputs {
		wantFull := bt.FullMatch([]byte(in))
		wantPartial := bt.PartialMatch([]byte(in))
		if got := vm.FullMatch([]byte(in)); got != wantFull {
			t.Errorf("PikeVM.FullMatch(%q) = %v, want %v", in, got, wantFull)
		}
		if got := vm.PartialMatch([]byte(in)); got != wantPartial {
			t.Errorf("PikeVM.PartialMatch(%q) = %v, want %v", in, got, wantPartial)
		}
	}
}

func TestBuilderValidateRejectsMissingStart(t *testing.T) {
	b := NewBuilder()
	b.AddMatch()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for unset start state")
	}
}

func TestBuilderValidateRejectsOutOfBoundsTarget(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch()
	bad := b.AddByteRange('a', 'a', StateID(99))
	b.SetStart(bad)
	_ = match
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for out-of-bounds target")
	}
}

func TestStateKindString(t *testing.T) {
	kinds := []StateKind{StateMatch, StateByteRange, StateSparse, StateSplit, StateEpsilon, StateFail}
	for _, k := range kinds {
		if k.String() == "" {
			t.Errorf("StateKind(%d).String() returned empty", k)
		}
	}
}
