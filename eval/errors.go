// Package eval walks a compiled ast.Path against a jvalue.Value document,
// producing the selected JSON value or an array of matches, and evaluates
// the filter Expression tree used by Predicate steps.
package eval

import (
	"errors"
	"fmt"
)

// ErrEvaluation is the sentinel error wrapped by every error eval returns
// (spec.md §7, EvaluationError).
var ErrEvaluation = errors.New("jsonpath: evaluation error")

// An Error reports a problem encountered while walking a path or
// evaluating a filter expression against a JSON document.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return ErrEvaluation }

func errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
