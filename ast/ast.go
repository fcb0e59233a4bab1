// Package ast defines the compiled form of a JSONPath expression: the
// ordered sequence of Path Steps produced by the parser, and the
// Expression tree used inside filter predicates.
//
// Steps and Expressions are immutable once built and are read-only from the
// evaluator's point of view; nothing here performs any I/O or evaluation.
package ast

import (
	"fmt"
	"strings"

	"github.com/gopathic/jsonpath/jvalue"
)

// A Step is one component of a compiled Path. The concrete types are
// Root, Property, ArrayIndex, ArraySlice, Wildcard, Scan, Predicate, and
// Function (spec.md §3).
type Step interface {
	// String renders the step in a form resembling the JSONPath syntax it
	// was parsed from. Used only for error messages and debugging.
	String() string

	step()
}

// Path is a compiled JSONPath: an ordered sequence of Steps that always
// begins with exactly one Root (spec.md §3, "Invariants").
type Path []Step

func (p Path) String() string {
	var sb strings.Builder
	for _, s := range p {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Root is the leading "$" or "@" of a path.
type Root struct {
	// Sigil is '$' or '@', the character that started the path.
	Sigil byte
}

func (r Root) String() string { return string(r.Sigil) }
func (Root) step()            {}

// Property is a dotted or bracket-quoted property selection. Names has
// length >= 1; length > 1 denotes multi-property selection
// (spec.md §3, §4.4).
type Property struct {
	Names []string
}

func (p Property) String() string {
	if len(p.Names) == 1 {
		return "." + p.Names[0]
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, n := range p.Names {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%q", n)
	}
	sb.WriteByte(']')
	return sb.String()
}
func (Property) step() {}

// ArrayIndex is one or more numeric indices; Indices has length >= 1.
// Negative values count from the end of the array.
type ArrayIndex struct {
	Indices []int
}

func (a ArrayIndex) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, idx := range a.Indices {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", idx)
	}
	sb.WriteByte(']')
	return sb.String()
}
func (ArrayIndex) step() {}

// SliceKind identifies which bounds an ArraySlice carries.
type SliceKind int

const (
	// SliceFrom selects [From:] — every index from From to the end.
	SliceFrom SliceKind = iota
	// SliceTo selects [:To] — every index from 0 up to (excluding) To.
	SliceTo
	// SliceBetween selects [From:To], half-open, start inclusive.
	SliceBetween
)

// ArraySlice is a half-open array slice. Sign resolution against the
// array's length happens only at evaluation time (spec.md §3).
type ArraySlice struct {
	Kind SliceKind
	From int // valid when Kind != SliceTo
	To   int // valid when Kind != SliceFrom
}

func (s ArraySlice) String() string {
	switch s.Kind {
	case SliceFrom:
		return fmt.Sprintf("[%d:]", s.From)
	case SliceTo:
		return fmt.Sprintf("[:%d]", s.To)
	default:
		return fmt.Sprintf("[%d:%d]", s.From, s.To)
	}
}
func (ArraySlice) step() {}

// Wildcard matches every array element or every object value.
type Wildcard struct{}

func (Wildcard) String() string { return "[*]" }
func (Wildcard) step()          {}

// Scan is the recursive-descent marker: the next step is applied at every
// node in the subtree rooted at the current value.
type Scan struct{}

func (Scan) String() string { return ".." }
func (Scan) step()          {}

// Predicate is a filter step: it retains the current value if Expr
// evaluates truthy.
type Predicate struct {
	Expr Expression
}

func (p Predicate) String() string { return "[?(" + p.Expr.String() + ")]" }
func (Predicate) step()            {}

// Function is a reserved, unimplemented function-call step (spec.md §9):
// the parser accepts "name(...)" in dotted context and records the name,
// but the evaluator always rejects it.
type Function struct {
	Name string
}

func (f Function) String() string { return "." + f.Name + "()" }
func (Function) step()            {}

// An Expression is a node of the tree of filter sub-expressions
// (spec.md §3). The concrete types are JSONQuery, Literal, Not, Array, and
// Compare. Expressions never hold Root or Property steps directly; nested
// paths are always wrapped in JSONQuery.
type Expression interface {
	String() string

	expr()
}

// JSONQuery is a nested path query appearing inside a filter, rooted at
// either "@" (the current node) or "$" (spec.md §9: a "$" sub-path is
// rooted at the current filter node, not the outermost document — the
// resolution adopted for the open question in spec.md §9).
type JSONQuery struct {
	Steps Path
}

func (q JSONQuery) String() string { return q.Steps.String() }
func (JSONQuery) expr()            {}

// Literal is a literal JSON value: string, number, boolean, or an array of
// literals built via Array.
type Literal struct {
	Value jvalue.Value
}

func (l Literal) String() string { return fmt.Sprintf("%v", jvalue.ToAny(l.Value)) }
func (Literal) expr()            {}

// Not is boolean negation of Inner.
type Not struct {
	Inner Expression
}

func (n Not) String() string { return "!(" + n.Inner.String() + ")" }
func (Not) expr()            {}

// Array is an array constructor, used as the right-hand side of in, nin,
// subsetof, anyof, and noneof.
type Array struct {
	Items []Expression
}

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, it := range a.Items {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(it.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
func (Array) expr() {}

// CompareOp identifies a binary filter operator.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpRegexMatch // =~, reserved, not implemented (spec.md §9)
	OpAnd
	OpOr
	OpIn
	OpNin
	OpSubsetOf
	OpAnyOf
	OpNoneOf
	OpContains
	OpSize
	OpEmpty
)

// Compare is a binary filter operation: Left Op Right.
type Compare struct {
	Op    CompareOp
	Left  Expression
	Right Expression
}

func (c Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}
func (Compare) expr() {}
