// Package dslbuild constructs a per-field regex sub-DSL from a decomposed
// field: one Char production per alphabet character, the regex atoms
// compatible with that alphabet, the fixed operator set, and Number
// terminals bounded by the field's observed maximum length.
package dslbuild

import (
	"fmt"
	"sort"

	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/decompose"
)

// isDigit, isWord and isSpace classify bytes the same way the compiled
// NFA atoms for \d, \w and \s do, so a field's alphabet and its atom set
// never disagree about what an atom can match.
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isWord(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
func isSpace(r rune) bool { return r == ' ' || (r >= '\t' && r <= '\r') }
func isDot(r rune) bool   { return r != '\n' }

func anyRune(alphabet []rune, pred func(rune) bool) bool {
	for _, r := range alphabet {
		if pred(r) {
			return true
		}
	}
	return false
}

// Build produces one sub-DSL per decomposed field, in field order.
func Build(fields []decompose.Field) []*ast.DSL {
	dsls := make([]*ast.DSL, len(fields))
	for i, f := range fields {
		dsls[i] = buildField(f)
	}
	return dsls
}

func buildField(f decompose.Field) *ast.DSL {
	d := ast.NewDSL(ast.TypeRegex)

	alphabet := make([]rune, len(f.Alphabet))
	copy(alphabet, f.Alphabet)
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	for _, r := range alphabet {
		d.Add(string(r), ast.KindChar, ast.TypeRegex, nil, r)
	}

	if anyRune(alphabet, isDigit) {
		d.Add(`\d`, ast.KindRegexAtom, ast.TypeRegex, nil, `\d`)
	}
	if anyRune(alphabet, isWord) {
		d.Add(`\w`, ast.KindRegexAtom, ast.TypeRegex, nil, `\w`)
	}
	if anyRune(alphabet, isSpace) {
		d.Add(`\s`, ast.KindRegexAtom, ast.TypeRegex, nil, `\s`)
	}
	if anyRune(alphabet, isDot) {
		d.Add(`.`, ast.KindRegexAtom, ast.TypeRegex, nil, `.`)
	}
	if len(alphabet) > 0 {
		d.Add("alphabet_class", ast.KindRegexAtom, ast.TypeRegex, nil, alphabet)
	}

	d.Add("kleene", ast.KindKleene, ast.TypeRegex, []ast.Type{ast.TypeRegex}, nil)
	d.Add("option", ast.KindOption, ast.TypeRegex, []ast.Type{ast.TypeRegex}, nil)
	d.Add("posit", ast.KindPosit, ast.TypeRegex, []ast.Type{ast.TypeRegex}, nil)
	d.Add("concat2", ast.KindConcat, ast.TypeRegex, []ast.Type{ast.TypeRegex, ast.TypeRegex}, nil)
	d.Add("union2", ast.KindUnion, ast.TypeRegex, []ast.Type{ast.TypeRegex, ast.TypeRegex}, nil)
	d.Add("copies", ast.KindCopies, ast.TypeRegex, []ast.Type{ast.TypeRegex, ast.TypeNumber}, nil)

	maxNumber := f.MaxLen
	if maxNumber < 1 {
		maxNumber = 1
	}
	for n := 1; n <= maxNumber; n++ {
		d.Add(fmt.Sprintf("num_%d", n), ast.KindNumber, ast.TypeNumber, nil, n)
	}
	d.MaxNumber = maxNumber
	d.Alphabet = alphabet

	return d
}
