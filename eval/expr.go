package eval

import (
	"github.com/gopathic/jsonpath/ast"
	"github.com/gopathic/jsonpath/jvalue"
)

// evaluateExpr evaluates expr against current, the "current" JSON value a
// filter predicate is being tested against (spec.md §4.5).
func evaluateExpr(current jvalue.Value, expr ast.Expression) (jvalue.Value, error) {
	switch e := expr.(type) {
	case ast.JSONQuery:
		// Resolved open question (spec.md §9): a nested "$" is rooted at the
		// current filter node, the same as "@", not at the outermost document.
		return Evaluate(current, e.Steps)

	case ast.Literal:
		return e.Value, nil

	case ast.Not:
		v, err := evaluateExpr(current, e.Inner)
		if err != nil {
			return jvalue.Value{}, err
		}
		return jvalue.NewBool(!coerceBool(v)), nil

	case ast.Array:
		items := make([]jvalue.Value, len(e.Items))
		for i, it := range e.Items {
			v, err := evaluateExpr(current, it)
			if err != nil {
				return jvalue.Value{}, err
			}
			items[i] = v
		}
		return jvalue.NewArray(items...), nil

	case ast.Compare:
		return evalCompare(current, e)

	default:
		return jvalue.Value{}, errorf("unsupported filter expression %T", expr)
	}
}
