// Package parser compiles a JSONPath string into an ast.Path.
//
// It implements the descent-order grammar of spec.md §4.2 over a
// cursor.Cursor, choosing among the bracket forms by the first significant
// character after "[", and recursing into the Pratt expression parser (expr.go) for
// filter predicates.
package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/gopathic/jsonpath/ast"
	"github.com/gopathic/jsonpath/internal/cursor"
)

// Parse compiles path into an ast.Path. It returns an error wrapping
// ErrParse if path is not a well-formed JSONPath expression. The returned
// Path always begins with exactly one ast.Root (spec.md §3).
func Parse(path string) (ast.Path, error) {
	c := cursor.New(path)
	p, err := parsePathFrom(c)
	if err != nil {
		if !errors.Is(err, ErrParse) {
			// Errors from the cursor's string and number readers are plain
			// errors; wrap them so they carry ErrParse and an offset too.
			err = &ParseError{Offset: c.Offset(), Msg: err.Error()}
		}
		return nil, err
	}
	c.SkipSpace()
	if !c.AtEnd() {
		return nil, newParseError(c, "trailing characters after a complete path")
	}
	return p, nil
}

// parsePathFrom parses a "$" or "@" followed by a sequence of steps,
// starting at the cursor's current position. Used both for the top-level
// path and for nested JsonQuery paths inside filter expressions.
func parsePathFrom(c *cursor.Cursor) (ast.Path, error) {
	c.SkipSpace()
	ch, ok := c.Next()
	if !ok || (ch != '$' && ch != '@') {
		return nil, newParseError(c, "path must start with '$' or '@'")
	}
	steps := ast.Path{ast.Root{Sigil: byte(ch)}}
	rest, err := parseSteps(c)
	if err != nil {
		return nil, err
	}
	return append(steps, rest...), nil
}

// parseSteps consumes step after step until it finds a character that does
// not start a step. It never errors on such a character: the caller
// decides whether stopping there is fine (a nested path inside a filter
// just ends) or an error (trailing garbage after a top-level path).
func parseSteps(c *cursor.Cursor) (ast.Path, error) {
	var steps ast.Path
	for {
		c.SkipSpace()
		ch, ok := c.Peek()
		if !ok {
			return steps, nil
		}
		switch {
		case ch == '[':
			step, err := parseBracket(c)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		case ch == '.':
			more, err := parseDotStep(c)
			if err != nil {
				return nil, err
			}
			steps = append(steps, more...)
		case ch == '*':
			c.Next()
			steps = append(steps, ast.Wildcard{})
		default:
			return steps, nil
		}
	}
}

// parseDotStep parses either ".name", "..name" (recursive descent), or one
// of the two recursive-descent extensions this implementation accepts:
// "..*" and "..[...]" (spec.md §4.2, "`.` → ... `..` → recursive descent
// ... ", exercised by end-to-end scenario 10 in spec.md §8: "$..[?(@>=1)]").
func parseDotStep(c *cursor.Cursor) ([]ast.Step, error) {
	c.Next() // first '.'
	if ch, ok := c.Peek(); ok && ch == '.' {
		c.Next() // second '.'
		if ch2, ok := c.Peek(); ok {
			switch {
			case ch2 == '*':
				c.Next()
				return []ast.Step{ast.Scan{}, ast.Wildcard{}}, nil
			case ch2 == '[':
				step, err := parseBracket(c)
				if err != nil {
					return nil, err
				}
				return []ast.Step{ast.Scan{}, step}, nil
			}
		}
		name, err := parseDottedName(c)
		if err != nil {
			return nil, err
		}
		return []ast.Step{ast.Scan{}, name}, nil
	}
	if ch, ok := c.Peek(); ok && ch == '*' {
		c.Next()
		return []ast.Step{ast.Wildcard{}}, nil
	}
	name, err := parseDottedName(c)
	if err != nil {
		return nil, err
	}
	return []ast.Step{name}, nil
}

// dotStop reports whether ch terminates an unquoted dotted property name
// (spec.md §4.2, "Dotted property").
func dotStop(ch rune) bool {
	switch ch {
	case '.', '[', '(', ')', ']', '&', '|', '>', '<', '=', '!', '~':
		return true
	}
	return unicode.IsSpace(ch)
}

// parseDottedName reads a run of characters up to the next stop character
// (spec.md §4.2) and emits either a single-name Property step or, if an
// open paren immediately follows, a reserved Function step.
func parseDottedName(c *cursor.Cursor) (ast.Step, error) {
	start := c.Offset()
	var sb strings.Builder
	for {
		ch, ok := c.Peek()
		if !ok || dotStop(ch) {
			break
		}
		c.Next()
		sb.WriteRune(ch)
	}
	name := sb.String()
	if name == "" {
		return nil, newParseError(c, "expected a property name")
	}

	if ch, ok := c.Peek(); ok && ch == '(' {
		c.Next()
		depth := 1
		for depth > 0 {
			n, ok := c.Next()
			if !ok {
				return nil, &ParseError{Offset: start, Msg: "unterminated function call"}
			}
			switch n {
			case '(':
				depth++
			case ')':
				depth--
			}
		}
		return ast.Function{Name: name}, nil
	}

	return ast.Property{Names: []string{name}}, nil
}

// parseBracket parses the contents of a "[...]" step. The first significant
// character after "[" selects the form: a quote starts a quoted-property
// list, "*" a wildcard, "?" a filter, and "-", a digit or ":" a numeric
// index/slice; anything else is an error.
func parseBracket(c *cursor.Cursor) (ast.Step, error) {
	start := c.Offset()
	c.Next() // consume '['
	c.SkipSpace()
	ch, ok := c.Peek()
	if !ok {
		return nil, &ParseError{Offset: start, Msg: "unterminated '['"}
	}

	switch {
	case ch == '\'' || ch == '"':
		return parseQuotedPropertyList(c)
	case ch == '*':
		c.Next()
		c.SkipSpace()
		if err := expect(c, ']'); err != nil {
			return nil, err
		}
		return ast.Wildcard{}, nil
	case ch == '?':
		return parseFilter(c)
	case ch == '-' || isDigit(ch) || ch == ':':
		return parseIndexOrSlice(c, start)
	default:
		return nil, newParseError(c, "invalid bracket content")
	}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// parseQuotedPropertyList parses "[ 'a', 'b', ... ]" (spec.md §4.2,
// "Bracket-property list"). The delimiter established by the first quoted
// run must be used uniformly for every subsequent name.
func parseQuotedPropertyList(c *cursor.Cursor) (ast.Step, error) {
	open, _ := c.Peek()
	first, err := c.ReadQuotedString()
	if err != nil {
		return nil, err
	}
	names := []string{first}

	for {
		c.SkipSpace()
		ch, ok := c.Peek()
		if !ok {
			return nil, newParseError(c, "unterminated bracket-property list")
		}
		switch ch {
		case ']':
			c.Next()
			return ast.Property{Names: names}, nil
		case ',':
			c.Next()
			c.SkipSpace()
			if ch2, ok := c.Peek(); !ok || ch2 != open {
				return nil, newParseError(c, "expected matching quote delimiter")
			}
			s, err := c.ReadQuotedString()
			if err != nil {
				return nil, err
			}
			names = append(names, s)
		default:
			return nil, newParseError(c, "expected ',' or ']'")
		}
	}
}

// parseIndexOrSlice accumulates the raw text of "[ ... ]" up to the
// closing bracket, then classifies it as an index list or a slice
// depending on whether it contains a colon (spec.md §4.2, "Numeric
// index / slice").
func parseIndexOrSlice(c *cursor.Cursor, start int) (ast.Step, error) {
	var sb strings.Builder
	for {
		ch, ok := c.Peek()
		if !ok {
			return nil, &ParseError{Offset: start, Msg: "unterminated '['"}
		}
		if ch == ']' {
			c.Next()
			break
		}
		c.Next()
		sb.WriteRune(ch)
	}
	text := sb.String()
	if strings.Contains(text, ":") {
		return parseSliceText(text, start)
	}
	return parseIndexListText(text, start)
}

func parseSliceText(text string, start int) (ast.Step, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		// spec.md §9 notes the source's "!parts.len() == 2" check always
		// evaluates false, so it never rejects slices with more than one
		// colon. This implementation deliberately fixes that bug instead of
		// porting it: more than one colon is a parse error.
		return nil, &ParseError{Offset: start, Msg: "invalid slice: expected exactly one ':'"}
	}
	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])

	switch {
	case left == "" && right == "":
		return nil, &ParseError{Offset: start, Msg: "invalid slice: at least one bound is required"}
	case left == "":
		n, err := strconv.Atoi(right)
		if err != nil {
			return nil, &ParseError{Offset: start, Msg: "invalid slice end: " + err.Error()}
		}
		return ast.ArraySlice{Kind: ast.SliceTo, To: n}, nil
	case right == "":
		n, err := strconv.Atoi(left)
		if err != nil {
			return nil, &ParseError{Offset: start, Msg: "invalid slice start: " + err.Error()}
		}
		return ast.ArraySlice{Kind: ast.SliceFrom, From: n}, nil
	default:
		lo, err := strconv.Atoi(left)
		if err != nil {
			return nil, &ParseError{Offset: start, Msg: "invalid slice start: " + err.Error()}
		}
		hi, err := strconv.Atoi(right)
		if err != nil {
			return nil, &ParseError{Offset: start, Msg: "invalid slice end: " + err.Error()}
		}
		return ast.ArraySlice{Kind: ast.SliceBetween, From: lo, To: hi}, nil
	}
}

func parseIndexListText(text string, start int) (ast.Step, error) {
	parts := strings.Split(text, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, &ParseError{Offset: start, Msg: "invalid index list: empty index"}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, &ParseError{Offset: start, Msg: "invalid index: " + err.Error()}
		}
		indices = append(indices, n)
	}
	if len(indices) == 0 {
		return nil, &ParseError{Offset: start, Msg: "invalid index list: empty"}
	}
	return ast.ArrayIndex{Indices: indices}, nil
}

// parseFilter parses "?( expr )" (spec.md §4.2, "Filter"). The leading '?'
// is the current character; parseBracket has already consumed '['.
func parseFilter(c *cursor.Cursor) (ast.Step, error) {
	c.Next() // consume '?'
	if err := expect(c, '('); err != nil {
		return nil, err
	}
	expr, err := parseExpression(c, 0)
	if err != nil {
		return nil, err
	}
	c.SkipSpace()
	if err := expect(c, ')'); err != nil {
		return nil, err
	}
	c.SkipSpace()
	if err := expect(c, ']'); err != nil {
		return nil, err
	}
	return ast.Predicate{Expr: expr}, nil
}

// expect consumes ch if it is next, or returns a ParseError.
func expect(c *cursor.Cursor, ch rune) error {
	got, ok := c.Peek()
	if !ok || got != ch {
		return newParseError(c, "expected "+strconv.QuoteRune(ch))
	}
	c.Next()
	return nil
}

func newParseError(c *cursor.Cursor, msg string) error {
	return &ParseError{Offset: c.Offset(), Msg: msg}
}
