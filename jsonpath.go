/*
Package jsonpath provides JSONPath parsing and query evaluation over
arbitrary JSON documents. It compiles a JSONPath string once with [Parse]
or [MustParse], then applies the resulting [Path] to any number of
documents with [Path.Query].

# Example

	p := jsonpath.MustParse(`$.data[*][?(@.id == 10)].m`)
	result, err := p.Query(doc)

A [Path] is safe for concurrent use: it holds only the compiled,
read-only step sequence, and every query walks it independently.
*/
package jsonpath

import (
	"errors"
	"fmt"

	"github.com/gopathic/jsonpath/ast"
	"github.com/gopathic/jsonpath/eval"
	"github.com/gopathic/jsonpath/jvalue"
	"github.com/gopathic/jsonpath/parser"
)

// ErrQuery is the sentinel error wrapped by every error this package
// returns, from either compiling a path or evaluating one (spec.md §7).
var ErrQuery = errors.New("jsonpath: query error")

// A Path is a compiled JSONPath expression, ready to be evaluated against
// any number of JSON documents.
type Path struct {
	steps ast.Path
}

// Parse compiles expr into a Path. The returned error wraps both ErrQuery
// and, more specifically, [parser.ErrParse].
func Parse(expr string) (*Path, error) {
	steps, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return &Path{steps: steps}, nil
}

// MustParse is like Parse but panics if expr does not compile. It is
// intended for use in package-level variable initializers.
func MustParse(expr string) *Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders p in a form resembling the JSONPath syntax it was
// compiled from.
func (p *Path) String() string { return p.steps.String() }

// Query evaluates p against doc and returns the selected JSON value: the
// matched value (or [jvalue.Null] if nothing matched) when every step is
// scalar-selecting, or a JSON array collecting every match in traversal
// order once any step is multi-valued (spec.md §4.4). The returned error
// wraps both ErrQuery and, more specifically, [eval.ErrEvaluation].
func (p *Path) Query(doc jvalue.Value) (jvalue.Value, error) {
	result, err := eval.Evaluate(doc, p.steps)
	if err != nil {
		return jvalue.Value{}, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return result, nil
}

// QueryAny is a convenience wrapper around Query for callers working with
// the plain Go values produced by encoding/json: it converts doc with
// [jvalue.FromAny], evaluates the path, and converts the result back with
// [jvalue.ToAny].
func QueryAny(expr string, doc any) (any, error) {
	p, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	v, err := jvalue.FromAny(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	result, err := p.Query(v)
	if err != nil {
		return nil, err
	}
	return jvalue.ToAny(result), nil
}
