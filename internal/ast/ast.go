// Package ast defines the typed production schema and abstract syntax
// trees for the regex DSL: terminals, unary and variadic operators over
// regexes, and predicates over strings.
package ast

import "fmt"

// Type identifies the result type of a production. Each per-field DSL
// owns its own set of productions, so Type values are not qualified by
// field index; the enumerator composes independently-built trees from
// separate DSL instances under a fixed outer concat.
type Type uint8

const (
	// TypeRegex is the type of any node denoting a regular expression.
	TypeRegex Type = iota
	// TypeNumber is the type of bounded integer literals, e.g. copies counts.
	TypeNumber
	// TypeBool is the type of predicate results (match, le, ge, conj, ...).
	TypeBool
	// TypeStr is the type of the string under test, produced only by the
	// Input terminal and consumed only by predicates.
	TypeStr
)

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeRegex:
		return "Regex"
	case TypeNumber:
		return "Number"
	case TypeBool:
		return "Bool"
	case TypeStr:
		return "Str"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Kind is a closed tagged union of production kinds. Every Kind must have
// an exhaustive case in the interpreter's evaluator and, where it produces
// a Regex, in the pretty-printer.
type Kind uint8

const (
	// KindChar is a terminal: a single literal character.
	KindChar Kind = iota
	// KindNumber is a terminal: a bounded integer literal.
	KindNumber
	// KindRegexAtom is a terminal: a predefined character class (\d, \w, \s, .).
	KindRegexAtom
	// KindKleene is the unary '*' operator.
	KindKleene
	// KindOption is the unary '?' operator.
	KindOption
	// KindPosit is the unary '+' operator.
	KindPosit
	// KindConcat is the variadic concatenation operator.
	KindConcat
	// KindUnion is the variadic '|' operator.
	KindUnion
	// KindCopies is the binary '{n}' operator: (Regex, Number) -> Regex.
	KindCopies
	// KindMatch is the full-match predicate: (Regex, Str) -> Bool.
	KindMatch
	// KindPartialMatch is the prefix-match predicate: (Regex, Str) -> Bool.
	KindPartialMatch
	// KindLen is the length predicate: (Str) -> Number.
	KindLen
	// KindLe is the less-or-equal predicate: (Number, Number) -> Bool.
	KindLe
	// KindGe is the greater-or-equal predicate: (Number, Number) -> Bool.
	KindGe
	// KindConj is the conjunction predicate: (Bool, Bool) -> Bool.
	KindConj
	// KindInput is a terminal: the string currently under test.
	KindInput
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindNumber:
		return "number"
	case KindRegexAtom:
		return "regex_atom"
	case KindKleene:
		return "kleene"
	case KindOption:
		return "option"
	case KindPosit:
		return "posit"
	case KindConcat:
		return "concat"
	case KindUnion:
		return "union"
	case KindCopies:
		return "copies"
	case KindMatch:
		return "match"
	case KindPartialMatch:
		return "partial_match"
	case KindLen:
		return "len"
	case KindLe:
		return "le"
	case KindGe:
		return "ge"
	case KindConj:
		return "conj"
	case KindInput:
		return "input"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsTerminal reports whether productions of this kind take no children.
func (k Kind) IsTerminal() bool {
	switch k {
	case KindChar, KindNumber, KindRegexAtom, KindInput:
		return true
	default:
		return false
	}
}

// Precedence returns the printer precedence for regex-producing kinds.
// Non-regex kinds (predicates, terminals outside Regex) return 0 and are
// never consulted by the printer.
func (k Kind) Precedence() int {
	switch k {
	case KindChar, KindRegexAtom:
		return 4
	case KindKleene, KindOption, KindPosit, KindCopies:
		return 3
	case KindConcat:
		return 2
	case KindUnion:
		return 1
	default:
		return 0
	}
}

// Production is a named DSL rule: a result type and an ordered list of
// argument types. Terminal productions carry a Literal and have no
// argument types. Each production has a stable ID unique within its DSL.
type Production struct {
	ID         int
	Name       string
	Kind       Kind
	ResultType Type
	ArgTypes   []Type

	// Literal holds the terminal's value: rune for KindChar, int for
	// KindNumber, string (e.g. `\d`) for KindRegexAtom. Unused otherwise.
	Literal any
}

// Arity returns the number of children a node built from this production must have.
func (p *Production) Arity() int {
	return len(p.ArgTypes)
}

func (p *Production) String() string {
	return p.Name
}

var nextNodeID uint64

// Node is an immutable AST node: a production applied to an ordered list
// of already-built children. Every node carries a unique identifier
// assigned at construction, used by the interpreter to key a transient
// precedence map during pretty-printing.
type Node struct {
	Production *Production
	Children   []*Node
	id         uint64
}

// NewNode builds a node from a production and children, validating arity
// and argument types against the production's signature. A mismatch here
// indicates a bug in an enumerator or builder — never reachable with
// correct callers — so it panics rather than returning an error.
func NewNode(p *Production, children ...*Node) *Node {
	if len(children) != p.Arity() {
		panic(fmt.Sprintf("ast: production %s expects %d children, got %d", p.Name, p.Arity(), len(children)))
	}
	for i, c := range children {
		if c.Production.ResultType != p.ArgTypes[i] {
			panic(fmt.Sprintf("ast: production %s argument %d expects type %s, got %s",
				p.Name, i, p.ArgTypes[i], c.Production.ResultType))
		}
	}
	nextNodeID++
	return &Node{Production: p, Children: children, id: nextNodeID}
}

// ID returns the node's unique identifier.
func (n *Node) ID() uint64 {
	return n.id
}

// Kind is a shorthand for n.Production.Kind.
func (n *Node) Kind() Kind {
	return n.Production.Kind
}

// ResultType is a shorthand for n.Production.ResultType.
func (n *Node) ResultType() Type {
	return n.Production.ResultType
}

// Size returns the number of nodes in the subtree rooted at n; the
// driver reports it as the solution's Nodes statistic.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Equal reports whether two nodes are structurally equal: same
// production and pairwise-equal children. Used by the enumerator's
// non-repetition invariant and by distinguish/decide equality checks.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Production != other.Production {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// DSL is a collection of productions partitioned by result type, plus a
// designated start type. A per-field DSL additionally carries an
// alphabet and an upper bound for numeric literals.
type DSL struct {
	Productions map[Type][]*Production
	Start       Type

	// Alphabet is the set of characters permitted in Char and
	// alphabet-constrained RegexAtom productions for this field.
	Alphabet []rune

	// MaxNumber bounds Number terminals, derived from the maximum
	// observed field length.
	MaxNumber int

	nextID int
}

// NewDSL creates an empty DSL with the given start type.
func NewDSL(start Type) *DSL {
	return &DSL{Productions: make(map[Type][]*Production), Start: start}
}

// Add registers a production under its result type, assigning it the
// next stable ID within this DSL.
func (d *DSL) Add(name string, kind Kind, resultType Type, argTypes []Type, literal any) *Production {
	p := &Production{
		ID:         d.nextID,
		Name:       name,
		Kind:       kind,
		ResultType: resultType,
		ArgTypes:   argTypes,
		Literal:    literal,
	}
	d.nextID++
	d.Productions[resultType] = append(d.Productions[resultType], p)
	return p
}

// ProductionsOf returns the productions whose result type is t.
func (d *DSL) ProductionsOf(t Type) []*Production {
	return d.Productions[t]
}
