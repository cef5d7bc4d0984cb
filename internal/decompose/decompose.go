// Package decompose splits flat example strings into aligned tuples of
// fields that share structure, by repeatedly discovering a common
// substring present in every example of a column and splitting each
// example around its first occurrence.
package decompose

import (
	"sort"
	"strings"

	"github.com/coregx/ahocorasick"
)

// Field is one column of the decomposition: one value per valid example,
// plus the alphabet and maximum length observed for that column.
type Field struct {
	Values   []string
	Alphabet []rune
	MaxLen   int
}

// Result is the outcome of decomposing a set of valid and invalid examples.
type Result struct {
	Fields []Field

	// InvalidValues[i] holds the per-field values for the i-th retained
	// invalid example, in the same field order as Fields.
	InvalidValues [][]string
}

// node is one point in the recursive split tree built over the valid
// examples. A leaf has no children; a split node records the substring
// it split on and three children: prefix, matched substring, suffix.
type node struct {
	values    []string
	substring string
	children  []*node
}

// SingleField builds one Field spanning the whole of valid without
// splitting it into columns, for callers that want FunnyEnumerator's
// merged-alphabet, undecomposed strategy instead of MultiTree's
// per-column one.
func SingleField(valid []string) Field {
	return Field{Values: valid, Alphabet: alphabetOf(valid), MaxLen: maxLen(valid)}
}

// Decompose runs the fixed-point column-splitting algorithm over valid
// and invalid examples, returning the aligned fields and the retained
// invalid examples (those whose structure matches the discovered field
// count).
func Decompose(valid, invalid []string) (*Result, error) {
	if len(valid) == 0 {
		return &Result{}, nil
	}

	root := buildTree(valid)
	leaves := collectLeaves(root)

	// Drop columns uniformly empty across all valid examples.
	var keep []*node
	var keepIdx []int
	for i, leaf := range leaves {
		nonEmpty := false
		for _, v := range leaf.values {
			if v != "" {
				nonEmpty = true
				break
			}
		}
		if nonEmpty {
			keep = append(keep, leaf)
			keepIdx = append(keepIdx, i)
		}
	}

	fields := make([]Field, len(keep))
	for i, leaf := range keep {
		fields[i] = Field{
			Values:   leaf.values,
			Alphabet: alphabetOf(leaf.values),
			MaxLen:   maxLen(leaf.values),
		}
	}

	var invalidValues [][]string
	for _, inv := range invalid {
		all, ok := applyTree(root, inv)
		if !ok || len(all) != len(leaves) {
			continue // not alignable against the discovered structure; redundant
		}
		row := make([]string, len(keep))
		for i, idx := range keepIdx {
			row[i] = all[idx]
		}
		invalidValues = append(invalidValues, row)
	}

	return &Result{Fields: fields, InvalidValues: invalidValues}, nil
}

// buildTree recursively splits values on common substrings until no
// further split is found, mirroring the transpose/split fixed-point loop.
// The matched column is kept as a leaf: its values are runs of the split
// substring, which would only split into themselves again.
func buildTree(values []string) *node {
	n := &node{values: values}
	cs, ok := findSplittableSubstring(values)
	if !ok {
		return n
	}
	n.substring = cs
	pre, mid, suf := splitValuesOn(values, cs)
	n.children = []*node{buildTree(pre), {values: mid}, buildTree(suf)}
	return n
}

func collectLeaves(n *node) []*node {
	if n.children == nil {
		return []*node{n}
	}
	var out []*node
	for _, c := range n.children {
		out = append(out, collectLeaves(c)...)
	}
	return out
}

// applyTree replays the split tree built over the valid examples against
// a single (typically invalid) string, returning its leaf values in the
// same order as collectLeaves(root), or ok=false if s cannot be aligned
// (the discovered substring is missing at some node).
func applyTree(n *node, s string) ([]string, bool) {
	if n.children == nil {
		return []string{s}, true
	}
	idx := strings.Index(s, n.substring)
	if idx < 0 {
		return nil, false
	}
	parts := []string{s[:idx], n.substring, s[idx+len(n.substring):]}

	var result []string
	for i, child := range n.children {
		sub, ok := applyTree(child, parts[i])
		if !ok {
			return nil, false
		}
		result = append(result, sub...)
	}
	return result, true
}

// findSplittableSubstring returns a common substring whose occurrence
// count is equal across every value, longest candidate first, or
// ok=false if no column split is available.
func findSplittableSubstring(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	for _, cs := range commonSubstrings(values) {
		counts := occurrenceCounts(values, cs)
		if counts[0] == 0 {
			continue
		}
		equal := true
		for _, c := range counts[1:] {
			if c != counts[0] {
				equal = false
				break
			}
		}
		if equal {
			return cs, true
		}
	}
	return "", false
}

// commonSubstrings returns the maximal non-empty substrings that occur
// in every value, longest first. Maximal means no other returned
// substring contains it.
func commonSubstrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	candidates := distinctSubstrings(values[0])

	var common []string
	for _, cs := range candidates {
		if occursInAll(values, cs) {
			common = append(common, cs)
		}
	}

	return filterMaximal(common)
}

func distinctSubstrings(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < len(s); i++ {
		for j := i + 1; j <= len(s); j++ {
			sub := s[i:j]
			if !seen[sub] {
				seen[sub] = true
				out = append(out, sub)
			}
		}
	}
	return out
}

func filterMaximal(common []string) []string {
	sort.Slice(common, func(i, j int) bool { return len(common[i]) > len(common[j]) })

	var maximal []string
	for _, cs := range common {
		dominated := false
		for _, kept := range maximal {
			if len(kept) > len(cs) && strings.Contains(kept, cs) {
				dominated = true
				break
			}
		}
		if !dominated {
			maximal = append(maximal, cs)
		}
	}
	return maximal
}

// occursInAll reports whether cs occurs at least once in every value,
// using a single-pattern Aho-Corasick automaton (the same multi-pattern
// matcher used for occurrence counting, specialized to one pattern here).
func occursInAll(values []string, cs string) bool {
	auto, err := buildAutomaton(cs)
	if err != nil {
		return false
	}
	for _, v := range values {
		if !auto.IsMatch([]byte(v)) {
			return false
		}
	}
	return true
}

// occurrenceCounts returns, for each value, the number of matches of the
// regex `(?:cs)+` against it: adjacent, back-to-back repetitions of cs
// merge into a single run, the same way `(?:aa)+` greedily matches all
// of "aaaa" as one match rather than two.
func occurrenceCounts(values []string, cs string) []int {
	auto, err := buildAutomaton(cs)
	if err != nil {
		counts := make([]int, len(values))
		return counts
	}
	counts := make([]int, len(values))
	for i, v := range values {
		counts[i] = len(runsOf(auto, v))
	}
	return counts
}

// run is a maximal span of one or more adjacent, back-to-back matches of
// the same pattern, i.e. what `(?:cs)+` would match as a single group.
type run struct {
	start, end int
}

// runsOf finds the non-overlapping occurrences of auto's pattern in v and
// merges any that are adjacent (the next occurrence starts exactly where
// the previous one ended) into a single run, mirroring `(?:cs)+`'s greedy
// repetition.
func runsOf(auto *ahocorasick.Automaton, v string) []run {
	haystack := []byte(v)
	var runs []run
	at := 0
	for at <= len(haystack) {
		m := auto.Find(haystack, at)
		if m == nil {
			break
		}
		if n := len(runs); n > 0 && runs[n-1].end == m.Start {
			runs[n-1].end = m.End
		} else {
			runs = append(runs, run{start: m.Start, end: m.End})
		}
		at = m.End
		if m.End == m.Start {
			at++ // guard against zero-width matches looping forever
		}
	}
	return runs
}

func buildAutomaton(pattern string) (*ahocorasick.Automaton, error) {
	builder := ahocorasick.NewBuilder()
	builder.AddPattern([]byte(pattern))
	return builder.Build()
}

// splitValuesOn splits each value around the first run of cs, where a
// run is the full back-to-back repetition `(?:cs)+` would match, not
// just the single literal copy of cs found first. For cs="aa" and
// v="3aaaa4" the run spans "aaaa", not just the first "aa".
func splitValuesOn(values []string, cs string) (pre, mid, suf []string) {
	auto, err := buildAutomaton(cs)
	pre = make([]string, len(values))
	mid = make([]string, len(values))
	suf = make([]string, len(values))
	for i, v := range values {
		if err != nil {
			idx := strings.Index(v, cs)
			pre[i], mid[i], suf[i] = v[:idx], cs, v[idx+len(cs):]
			continue
		}
		runs := runsOf(auto, v)
		r := runs[0]
		pre[i] = v[:r.start]
		mid[i] = v[r.start:r.end]
		suf[i] = v[r.end:]
	}
	return pre, mid, suf
}

func alphabetOf(values []string) []rune {
	seen := make(map[rune]bool)
	var alphabet []rune
	for _, v := range values {
		for _, r := range v {
			if !seen[r] {
				seen[r] = true
				alphabet = append(alphabet, r)
			}
		}
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	return alphabet
}

func maxLen(values []string) int {
	m := 0
	for _, v := range values {
		if len(v) > m {
			m = len(v)
		}
	}
	return m
}
