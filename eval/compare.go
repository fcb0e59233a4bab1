package eval

import (
	"strings"

	"github.com/gopathic/jsonpath/ast"
	"github.com/gopathic/jsonpath/jvalue"
)

// evalCompare evaluates both operands of a Compare and combines them
// according to the comparator table in spec.md §4.5.
func evalCompare(current jvalue.Value, c ast.Compare) (jvalue.Value, error) {
	l, err := evaluateExpr(current, c.Left)
	if err != nil {
		return jvalue.Value{}, err
	}
	r, err := evaluateExpr(current, c.Right)
	if err != nil {
		return jvalue.Value{}, err
	}

	switch c.Op {
	case ast.OpEq:
		return jvalue.NewBool(l.Equal(r)), nil
	case ast.OpNe:
		return jvalue.NewBool(!l.Equal(r)), nil
	case ast.OpGt, ast.OpGe, ast.OpLt, ast.OpLe:
		return compareOrdering(c.Op, l, r), nil
	case ast.OpAnd:
		return jvalue.NewBool(coerceBool(l) && coerceBool(r)), nil
	case ast.OpOr:
		return jvalue.NewBool(coerceBool(l) || coerceBool(r)), nil
	case ast.OpIn:
		return compareIn(l, r)
	case ast.OpNin:
		v, err := compareIn(l, r)
		if err != nil {
			return jvalue.Value{}, err
		}
		return jvalue.NewBool(!v.Bool()), nil
	case ast.OpSubsetOf:
		return compareSubsetOf(l, r)
	case ast.OpAnyOf:
		return compareAnyOf(l, r)
	case ast.OpNoneOf:
		v, err := compareAnyOf(l, r)
		if err != nil {
			return jvalue.Value{}, err
		}
		return jvalue.NewBool(!v.Bool()), nil
	case ast.OpContains:
		return compareContains(l, r)
	case ast.OpSize:
		return compareSize(l, r)
	case ast.OpEmpty:
		return compareEmpty(l, r)
	case ast.OpRegexMatch:
		// spec.md §9: parsed but not evaluated; surfaced as a dedicated
		// evaluation error rather than a silent structural-false result.
		return jvalue.Value{}, errorf("the =~ operator is not implemented")
	default:
		return jvalue.Value{}, errorf("unsupported comparator %s", c.Op)
	}
}

// compareOrdering implements <, <=, >, >=: both sides must be numeric, else
// the comparison is false (spec.md §4.5).
func compareOrdering(op ast.CompareOp, l, r jvalue.Value) jvalue.Value {
	if l.Kind() != jvalue.KindNumber || r.Kind() != jvalue.KindNumber {
		return jvalue.NewBool(false)
	}
	lf, rf := l.Number().Float64(), r.Number().Float64()
	switch op {
	case ast.OpGt:
		return jvalue.NewBool(lf > rf)
	case ast.OpGe:
		return jvalue.NewBool(lf >= rf)
	case ast.OpLt:
		return jvalue.NewBool(lf < rf)
	default: // ast.OpLe
		return jvalue.NewBool(lf <= rf)
	}
}

// compareIn implements in: the right side must be an array, membership by
// structural equality. A non-array right-hand side is not an error: per
// spec.md §7/§8, comparators treat an operand of the wrong shape as false
// rather than failing the whole query.
func compareIn(l, r jvalue.Value) (jvalue.Value, error) {
	if r.Kind() != jvalue.KindArray {
		return jvalue.NewBool(false), nil
	}
	for _, e := range r.Array() {
		if l.Equal(e) {
			return jvalue.NewBool(true), nil
		}
	}
	return jvalue.NewBool(false), nil
}

// compareSubsetOf implements subsetof: both sides must be arrays, every
// element of the left must appear in the right. Either side being a
// non-array (e.g. a missing property evaluating to Null) is false, not an
// evaluation error (spec.md §7/§8).
func compareSubsetOf(l, r jvalue.Value) (jvalue.Value, error) {
	if l.Kind() != jvalue.KindArray || r.Kind() != jvalue.KindArray {
		return jvalue.NewBool(false), nil
	}
	for _, e := range l.Array() {
		if !arrayContains(r, e) {
			return jvalue.NewBool(false), nil
		}
	}
	return jvalue.NewBool(true), nil
}

// compareAnyOf implements anyof: both sides must be arrays, their
// intersection must be non-empty. Either side being a non-array is false,
// not an evaluation error (spec.md §7/§8).
func compareAnyOf(l, r jvalue.Value) (jvalue.Value, error) {
	if l.Kind() != jvalue.KindArray || r.Kind() != jvalue.KindArray {
		return jvalue.NewBool(false), nil
	}
	for _, e := range l.Array() {
		if arrayContains(r, e) {
			return jvalue.NewBool(true), nil
		}
	}
	return jvalue.NewBool(false), nil
}

func arrayContains(arr jvalue.Value, v jvalue.Value) bool {
	for _, e := range arr.Array() {
		if e.Equal(v) {
			return true
		}
	}
	return false
}

// compareContains implements contains: a left array containing the right
// element, or a left string containing the right substring. An operand of
// the wrong shape (e.g. a missing property evaluating to Null) is false,
// not an evaluation error (spec.md §7/§8).
func compareContains(l, r jvalue.Value) (jvalue.Value, error) {
	switch l.Kind() {
	case jvalue.KindArray:
		return jvalue.NewBool(arrayContains(l, r)), nil
	case jvalue.KindString:
		if r.Kind() != jvalue.KindString {
			return jvalue.NewBool(false), nil
		}
		return jvalue.NewBool(strings.Contains(l.Str(), r.Str())), nil
	default:
		return jvalue.NewBool(false), nil
	}
}

// compareSize implements size: the length of the left (array or string)
// must equal the right numeric integer. An operand of the wrong shape is
// false, not an evaluation error (spec.md §7/§8).
func compareSize(l, r jvalue.Value) (jvalue.Value, error) {
	if r.Kind() != jvalue.KindNumber {
		return jvalue.NewBool(false), nil
	}
	switch l.Kind() {
	case jvalue.KindArray, jvalue.KindString:
		return jvalue.NewBool(float64(l.Len()) == r.Number().Float64()), nil
	default:
		return jvalue.NewBool(false), nil
	}
}

// compareEmpty implements empty: whether the left is empty must match the
// right boolean; a Null left with a true right yields true. A non-boolean
// right-hand side is false, not an evaluation error (spec.md §7/§8).
func compareEmpty(l, r jvalue.Value) (jvalue.Value, error) {
	if r.Kind() != jvalue.KindBool {
		return jvalue.NewBool(false), nil
	}
	var isEmpty bool
	switch l.Kind() {
	case jvalue.KindNull:
		isEmpty = true
	case jvalue.KindArray, jvalue.KindString, jvalue.KindObject:
		isEmpty = l.Len() == 0
	default:
		isEmpty = false
	}
	return jvalue.NewBool(isEmpty == r.Bool()), nil
}
