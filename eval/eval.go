package eval

import (
	"github.com/gopathic/jsonpath/ast"
	"github.com/gopathic/jsonpath/jvalue"
)

// Evaluate walks path against doc and returns the selected JSON value: the
// single matched value (or Null) for a scalar-selecting path, or an Array
// collecting every match in traversal order once any step is multi-valued
// (spec.md §4.4).
func Evaluate(doc jvalue.Value, path ast.Path) (jvalue.Value, error) {
	if len(path) == 0 {
		return jvalue.Value{}, errorf("empty compiled path")
	}
	if _, ok := path[0].(ast.Root); !ok {
		return jvalue.Value{}, errorf("compiled path does not begin with a root step")
	}

	s := newSink()
	if err := walkSteps(s, doc, path[1:]); err != nil {
		return jvalue.Value{}, err
	}
	return s.result(), nil
}

// walkSteps consumes the first of steps against current and recurses with
// the remainder; an empty steps means current is itself the result.
func walkSteps(s *sink, current jvalue.Value, steps ast.Path) error {
	if len(steps) == 0 {
		return s.accept(current, true)
	}

	rest := steps[1:]
	switch step := steps[0].(type) {
	case ast.Property:
		return evalProperty(s, current, step, rest)
	case ast.ArrayIndex:
		return evalArrayIndex(s, current, step, rest)
	case ast.ArraySlice:
		return evalArraySlice(s, current, step, rest)
	case ast.Wildcard:
		return evalWildcard(s, current, rest)
	case ast.Scan:
		return evalScan(s, current, rest)
	case ast.Predicate:
		return evalPredicate(s, current, step, rest)
	case ast.Function:
		return errorf("function calls are not supported: %s(...)", step.Name)
	case ast.Root:
		return errorf("unexpected root step mid-path")
	default:
		return errorf("unsupported path step %T", step)
	}
}

// evalProperty implements Property(names) (spec.md §4.4).
func evalProperty(s *sink, current jvalue.Value, p ast.Property, rest ast.Path) error {
	if current.Kind() != jvalue.KindObject {
		return nil
	}

	if len(p.Names) == 1 {
		v, ok := current.Find(p.Names[0])
		if !ok {
			return s.accept(jvalue.Value{}, false)
		}
		return walkSteps(s, v, rest)
	}

	if len(rest) == 0 {
		members := make([]jvalue.Member, len(p.Names))
		for i, name := range p.Names {
			v, ok := current.Find(name)
			if !ok {
				v = jvalue.Null
			}
			members[i] = jvalue.Member{Key: name, Value: v}
		}
		return s.accept(jvalue.NewObject(members...), true)
	}

	s.upgrade()
	for _, name := range p.Names {
		v, ok := current.Find(name)
		if !ok {
			if err := s.accept(jvalue.Value{}, false); err != nil {
				return err
			}
			continue
		}
		if err := walkSteps(s, v, rest); err != nil {
			return err
		}
	}
	return nil
}

// evalArrayIndex implements ArrayIndex(indices) (spec.md §4.4).
func evalArrayIndex(s *sink, current jvalue.Value, a ast.ArrayIndex, rest ast.Path) error {
	if current.Kind() != jvalue.KindArray {
		return errorf("array index applied to a non-array value")
	}
	if len(a.Indices) == 0 {
		return errorf("empty index list")
	}

	if len(a.Indices) == 1 {
		v, ok := resolveIndex(current, a.Indices[0])
		if !ok {
			return s.accept(jvalue.Value{}, false)
		}
		return walkSteps(s, v, rest)
	}

	s.upgrade()
	for _, idx := range a.Indices {
		v, ok := resolveIndex(current, idx)
		if !ok {
			if err := s.accept(jvalue.Value{}, false); err != nil {
				return err
			}
			continue
		}
		if err := walkSteps(s, v, rest); err != nil {
			return err
		}
	}
	return nil
}

// resolveIndex resolves idx (negative counts from the end) against arr,
// reporting false when out of range.
func resolveIndex(arr jvalue.Value, idx int) (jvalue.Value, bool) {
	elems := arr.Array()
	n := len(elems)
	i := idx
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return jvalue.Value{}, false
	}
	return elems[i], true
}

// evalArraySlice implements ArraySlice(variant) (spec.md §4.4).
func evalArraySlice(s *sink, current jvalue.Value, sl ast.ArraySlice, rest ast.Path) error {
	if current.Kind() != jvalue.KindArray {
		return errorf("slice applied to a non-array value")
	}
	s.upgrade()

	elems := current.Array()
	n := len(elems)
	start, end := resolveSliceBounds(sl, n)
	for i := start; i < end; i++ {
		if err := walkSteps(s, elems[i], rest); err != nil {
			return err
		}
	}
	return nil
}

func resolveBound(b, n int) int {
	if b < 0 {
		b += n
	}
	if b < 0 {
		return 0
	}
	if b > n {
		return n
	}
	return b
}

// resolveSliceBounds resolves sl's signed bounds against an array of
// length n into a half-open [start, end) interval, clamped to the array
// (spec.md §4.4, §8 boundary case "empty slice yields empty array").
func resolveSliceBounds(sl ast.ArraySlice, n int) (start, end int) {
	switch sl.Kind {
	case ast.SliceFrom:
		start, end = resolveBound(sl.From, n), n
	case ast.SliceTo:
		start, end = 0, resolveBound(sl.To, n)
	default:
		start, end = resolveBound(sl.From, n), resolveBound(sl.To, n)
	}
	if end < start {
		end = start
	}
	return start, end
}

// evalWildcard implements Wildcard (spec.md §4.4).
func evalWildcard(s *sink, current jvalue.Value, rest ast.Path) error {
	switch current.Kind() {
	case jvalue.KindArray:
		s.upgrade()
		for _, e := range current.Array() {
			if err := walkSteps(s, e, rest); err != nil {
				return err
			}
		}
		return nil
	case jvalue.KindObject:
		s.upgrade()
		for _, m := range current.Object() {
			if err := walkSteps(s, m.Value, rest); err != nil {
				return err
			}
		}
		return nil
	default:
		return errorf("wildcard applied to a scalar value")
	}
}

// evalScan implements Scan (spec.md §4.4): it applies rest at every node of
// the subtree rooted at current, current included, before recursing into
// children — so a step dispatch on rest never itself re-triggers the scan.
func evalScan(s *sink, current jvalue.Value, rest ast.Path) error {
	if current.Kind() != jvalue.KindArray && current.Kind() != jvalue.KindObject {
		return errorf("recursive descent applied to a scalar value")
	}
	s.upgrade()
	return scanNode(s, current, rest)
}

func scanNode(s *sink, node jvalue.Value, rest ast.Path) error {
	if err := walkSteps(s, node, rest); err != nil {
		return err
	}
	switch node.Kind() {
	case jvalue.KindArray:
		for _, e := range node.Array() {
			if err := scanNode(s, e, rest); err != nil {
				return err
			}
		}
	case jvalue.KindObject:
		for _, m := range node.Object() {
			if err := scanNode(s, m.Value, rest); err != nil {
				return err
			}
		}
	}
	return nil
}

// evalPredicate implements Predicate(expr) (spec.md §4.4).
func evalPredicate(s *sink, current jvalue.Value, p ast.Predicate, rest ast.Path) error {
	result, err := evaluateExpr(current, p.Expr)
	if err != nil {
		return err
	}
	if !coerceBool(result) {
		return nil
	}
	if len(rest) == 0 {
		return s.accept(current, true)
	}
	return walkSteps(s, current, rest)
}

// coerceBool is the boolean coercion rule shared by Predicate, Not, &&,
// and || (spec.md §4.4, §4.5): Bool(b) -> b, Null -> false, anything else
// -> true.
func coerceBool(v jvalue.Value) bool {
	switch v.Kind() {
	case jvalue.KindBool:
		return v.Bool()
	case jvalue.KindNull:
		return false
	default:
		return true
	}
}
