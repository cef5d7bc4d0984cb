package interp

import (
	"fmt"
	"strings"

	"github.com/marghrid/forest/internal/ast"
)

// regexMeta are the characters escaped in a literal Char when printed,
// so the printed form round-trips through a standard regex parser.
const regexMeta = `.^$*+?()[]{}|\`

func escapeChar(r rune) string {
	if strings.ContainsRune(regexMeta, r) {
		return "\\" + string(r)
	}
	return string(r)
}

// Printer pretty-prints a Regex-typed AST with minimal parentheses. It
// keeps a precedence map keyed by node identity, built during the same
// post-order traversal that produces the printed strings, rather than
// mutating nodes — the map is local to one Print call and discarded
// afterward.
type Printer struct {
	prec map[uint64]int
}

// NewPrinter creates a fresh printer. A Printer is not safe for reuse
// across unrelated trees if those trees reuse node IDs is a possibility;
// in practice node IDs are assigned from a single global counter and
// never reused, so one Printer may be reused freely, but a fresh one per
// Print call keeps the precedence map small.
func NewPrinter() *Printer {
	return &Printer{prec: make(map[uint64]int)}
}

// Print renders a Regex-typed node to its minimal-parenthesization form.
func Print(root *ast.Node) string {
	p := NewPrinter()
	return p.Print(root)
}

// Print renders n using this printer's precedence map.
func (p *Printer) Print(n *ast.Node) string {
	return p.print(n)
}

//nolint:gocyclo,cyclop // exhaustive dispatch over a closed kind set
func (p *Printer) print(n *ast.Node) string {
	switch n.Kind() {
	case ast.KindChar:
		p.prec[n.ID()] = ast.KindChar.Precedence()
		return escapeChar(n.Production.Literal.(rune))

	case ast.KindRegexAtom:
		p.prec[n.ID()] = ast.KindRegexAtom.Precedence()
		switch lit := n.Production.Literal.(type) {
		case string:
			return lit
		case []rune:
			var b strings.Builder
			b.WriteByte('[')
			for _, r := range lit {
				b.WriteString(escapeChar(r))
			}
			b.WriteByte(']')
			return b.String()
		default:
			return ""
		}

	case ast.KindKleene:
		child := n.Children[0]
		s := p.wrap(child, ast.KindKleene.Precedence())
		p.prec[n.ID()] = ast.KindKleene.Precedence()
		return s + "*"

	case ast.KindOption:
		child := n.Children[0]
		s := p.wrap(child, ast.KindOption.Precedence())
		p.prec[n.ID()] = ast.KindOption.Precedence()
		return s + "?"

	case ast.KindPosit:
		child := n.Children[0]
		s := p.wrap(child, ast.KindPosit.Precedence())
		p.prec[n.ID()] = ast.KindPosit.Precedence()
		return s + "+"

	case ast.KindCopies:
		child := n.Children[0]
		s := p.wrap(child, ast.KindCopies.Precedence())
		count := n.Children[1].Production.Literal.(int)
		p.prec[n.ID()] = ast.KindCopies.Precedence()
		return fmt.Sprintf("%s{%d}", s, count)

	case ast.KindConcat:
		var b strings.Builder
		for _, c := range n.Children {
			b.WriteString(p.wrap(c, ast.KindConcat.Precedence()))
		}
		p.prec[n.ID()] = ast.KindConcat.Precedence()
		return b.String()

	case ast.KindUnion:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = p.wrap(c, ast.KindUnion.Precedence())
		}
		p.prec[n.ID()] = ast.KindUnion.Precedence()
		return strings.Join(parts, "|")

	default:
		return ""
	}
}

// wrap prints child and parenthesizes it iff its precedence is strictly
// less than parentPrec. Ties bind without parentheses.
func (p *Printer) wrap(child *ast.Node, parentPrec int) string {
	s := p.print(child)
	if p.prec[child.ID()] < parentPrec {
		return "(" + s + ")"
	}
	return s
}
