package interp

import "github.com/marghrid/forest/internal/ast"

// Eval evaluates a predicate (Bool-typed), numeric, or string-typed node
// against the string s currently under test. Regex-typed subtrees reached
// through match/partial_match are compiled on demand; for repeated
// evaluation of the same candidate against many examples, prefer
// compiling once with Compile and calling the decider's cached pattern
// directly instead of re-evaluating the whole tree per call.
func Eval(n *ast.Node, s string) (any, error) {
	switch n.Kind() {
	case ast.KindInput:
		return s, nil

	case ast.KindLen:
		v, err := Eval(n.Children[0], s)
		if err != nil {
			return nil, err
		}
		return len(v.(string)), nil

	case ast.KindLe:
		a, err := Eval(n.Children[0], s)
		if err != nil {
			return nil, err
		}
		bVal, err := Eval(n.Children[1], s)
		if err != nil {
			return nil, err
		}
		return a.(int) <= bVal.(int), nil

	case ast.KindGe:
		a, err := Eval(n.Children[0], s)
		if err != nil {
			return nil, err
		}
		bVal, err := Eval(n.Children[1], s)
		if err != nil {
			return nil, err
		}
		return a.(int) >= bVal.(int), nil

	case ast.KindConj:
		a, err := Eval(n.Children[0], s)
		if err != nil {
			return nil, err
		}
		bVal, err := Eval(n.Children[1], s)
		if err != nil {
			return nil, err
		}
		return a.(bool) && bVal.(bool), nil

	case ast.KindNumber:
		return n.Production.Literal.(int), nil

	case ast.KindMatch:
		pattern, err := Compile(n.Children[0])
		if err != nil {
			return nil, err
		}
		input, err := Eval(n.Children[1], s)
		if err != nil {
			return nil, err
		}
		return pattern.FullMatchString(input.(string)), nil

	case ast.KindPartialMatch:
		pattern, err := Compile(n.Children[0])
		if err != nil {
			return nil, err
		}
		input, err := Eval(n.Children[1], s)
		if err != nil {
			return nil, err
		}
		return pattern.PartialMatchString(input.(string)), nil

	default:
		return nil, &Error{Reason: ErrBadRepetitionBound, Node: n}
	}
}

// EvalBool is a convenience wrapper for Bool-typed predicate roots.
func EvalBool(n *ast.Node, s string) (bool, error) {
	v, err := Eval(n, s)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &Error{Reason: ErrBadRepetitionBound, Node: n}
	}
	return b, nil
}
