package parser

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel error wrapped by every error the parser returns
// (spec.md §7, InvalidJsonPath).
var ErrParse = errors.New("jsonpath: invalid path")

// A ParseError reports a malformed JSONPath, with a best-effort character
// offset into the source text for diagnostics (spec.md §4.2).
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Msg, e.Offset)
}

func (e *ParseError) Unwrap() error { return ErrParse }
