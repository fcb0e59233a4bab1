package parser

import (
	"github.com/gopathic/jsonpath/ast"
	"github.com/gopathic/jsonpath/internal/cursor"
	"github.com/gopathic/jsonpath/jvalue"
)

// operator describes one comparator recognized by the Pratt parser
// (spec.md §4.3).
type operator struct {
	op   ast.CompareOp
	text string
	bp   int
	word bool // true for alphabetic operators like "in", matched at an identifier boundary
}

// operators is tried in order; ">=" and "<=" are listed before their
// one-character prefixes ">" and "<". A bare "!" is not in the table at all
// (it is only a prefix operator, handled in parseNullDenotation), so "!="
// is always matched as one comparator (spec.md §9, the `!` vs `!=`
// disambiguation).
var operators = []operator{
	{ast.OpEq, "==", 10, false},
	{ast.OpNe, "!=", 10, false},
	{ast.OpGe, ">=", 10, false},
	{ast.OpLe, "<=", 10, false},
	{ast.OpGt, ">", 10, false},
	{ast.OpLt, "<", 10, false},
	{ast.OpRegexMatch, "=~", 10, false},
	{ast.OpAnd, "&&", 3, false},
	{ast.OpOr, "||", 2, false},
	{ast.OpSubsetOf, "subsetof", 10, true},
	{ast.OpAnyOf, "anyof", 10, true},
	{ast.OpNoneOf, "noneof", 10, true},
	{ast.OpContains, "contains", 10, true},
	{ast.OpSize, "size", 10, true},
	{ast.OpEmpty, "empty", 10, true},
	{ast.OpNin, "nin", 10, true},
	{ast.OpIn, "in", 10, true},
}

const prefixNotBP = 1000

// parseExpression is the Pratt entry point: it parses one null-denotation
// expression and then repeatedly extends it with left-denotations whose
// binding power exceeds minBP (spec.md §4.3).
func parseExpression(c *cursor.Cursor, minBP int) (ast.Expression, error) {
	left, err := parseNullDenotation(c)
	if err != nil {
		return nil, err
	}

	for {
		c.SkipSpace()
		op, ok := peekOperator(c)
		if !ok || op.bp <= minBP {
			return left, nil
		}
		consumeOperator(c, op)

		right, err := parseExpression(c, op.bp)
		if err != nil {
			return nil, err
		}
		left = ast.Compare{Op: op.op, Left: left, Right: right}
	}
}

// peekOperator reports the longest matching operator at the cursor's
// current position without consuming anything.
func peekOperator(c *cursor.Cursor) (operator, bool) {
	for _, op := range operators {
		if op.word {
			if matchesWordOperator(c, op.text) {
				return op, true
			}
			continue
		}
		if matchesSymbolOperator(c, op.text) {
			return op, true
		}
	}
	return operator{}, false
}

func consumeOperator(c *cursor.Cursor, op operator) {
	for range []rune(op.text) {
		c.Next()
	}
}

// matchesSymbolOperator reports whether text appears literally at the
// cursor's current position.
func matchesSymbolOperator(c *cursor.Cursor, text string) bool {
	for i, want := range []rune(text) {
		got, ok := c.PeekAt(i)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// matchesWordOperator reports whether the case-insensitive keyword text
// appears at the cursor's current position and is not itself the prefix of
// a longer identifier (spec.md §4.3, "case-insensitive for word
// operators").
func matchesWordOperator(c *cursor.Cursor, text string) bool {
	runes := []rune(text)
	for i, want := range runes {
		got, ok := c.PeekAt(i)
		if !ok || lower(got) != lower(want) {
			return false
		}
	}
	next, ok := c.PeekAt(len(runes))
	if ok && cursor.IsIdentContinue(next) {
		return false
	}
	return true
}

func lower(ch rune) rune {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}

// parseNullDenotation parses one prefix/primary expression (spec.md §4.3,
// "Null-denotation").
func parseNullDenotation(c *cursor.Cursor) (ast.Expression, error) {
	c.SkipSpace()
	ch, ok := c.Peek()
	if !ok {
		return nil, newParseError(c, "unexpected end of filter expression")
	}

	switch {
	case ch == '$' || ch == '@':
		p, err := parsePathFrom(c)
		if err != nil {
			return nil, err
		}
		return ast.JSONQuery{Steps: p}, nil

	case ch == '(':
		c.Next()
		inner, err := parseExpression(c, 0)
		if err != nil {
			return nil, err
		}
		c.SkipSpace()
		if err := expect(c, ')'); err != nil {
			return nil, err
		}
		return inner, nil

	case ch == '!':
		c.Next()
		inner, err := parseExpression(c, prefixNotBP)
		if err != nil {
			return nil, err
		}
		return ast.Not{Inner: inner}, nil

	case ch == '[':
		return parseLiteralArray(c)

	case ch == '\'' || ch == '"':
		s, err := c.ReadQuotedString()
		if err != nil {
			return nil, err
		}
		return ast.Literal{Value: jvalue.NewString(s)}, nil

	case ch == '-' || isDigit(ch):
		return parseLiteralNumber(c)

	case ch == 't' || ch == 'T':
		if c.PeekMatchesKeyword("true") {
			c.Commit()
			return ast.Literal{Value: jvalue.NewBool(true)}, nil
		}
		return nil, newParseError(c, "expected 'true'")

	case ch == 'f' || ch == 'F':
		if c.PeekMatchesKeyword("false") {
			c.Commit()
			return ast.Literal{Value: jvalue.NewBool(false)}, nil
		}
		return nil, newParseError(c, "expected 'false'")

	default:
		return nil, newParseError(c, "unexpected character "+string(ch)+" in filter expression")
	}
}

// parseLiteralArray parses "[ literal (',' literal)* ]" (spec.md §4.3). Each
// item is itself a literal expression, so the result doubles as the Array
// constructor used on the right-hand side of in/nin/subsetof/anyof/noneof
// (spec.md §3, glossary "Array(items)").
func parseLiteralArray(c *cursor.Cursor) (ast.Expression, error) {
	c.Next() // consume '['
	c.SkipSpace()

	var items []ast.Expression
	if ch, ok := c.Peek(); ok && ch == ']' {
		c.Next()
		return ast.Array{Items: items}, nil
	}

	for {
		c.SkipSpace()
		item, err := parseLiteralValue(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		c.SkipSpace()
		ch, ok := c.Peek()
		if !ok {
			return nil, newParseError(c, "unterminated array literal")
		}
		switch ch {
		case ',':
			c.Next()
		case ']':
			c.Next()
			return ast.Array{Items: items}, nil
		default:
			return nil, newParseError(c, "expected ',' or ']' in array literal")
		}
	}
}

// parseLiteralValue parses a single scalar literal: a quoted string, a
// number, or a true/false keyword.
func parseLiteralValue(c *cursor.Cursor) (ast.Expression, error) {
	ch, ok := c.Peek()
	if !ok {
		return nil, newParseError(c, "expected a literal value")
	}
	switch {
	case ch == '\'' || ch == '"':
		s, err := c.ReadQuotedString()
		if err != nil {
			return nil, err
		}
		return ast.Literal{Value: jvalue.NewString(s)}, nil
	case ch == '-' || isDigit(ch):
		return parseLiteralNumber(c)
	case ch == 't' || ch == 'T':
		if c.PeekMatchesKeyword("true") {
			c.Commit()
			return ast.Literal{Value: jvalue.NewBool(true)}, nil
		}
	case ch == 'f' || ch == 'F':
		if c.PeekMatchesKeyword("false") {
			c.Commit()
			return ast.Literal{Value: jvalue.NewBool(false)}, nil
		}
	}
	return nil, newParseError(c, "expected a literal value")
}

func parseLiteralNumber(c *cursor.Cursor) (ast.Expression, error) {
	n, err := c.ReadNumber()
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case cursor.NumberFloat:
		return ast.Literal{Value: jvalue.NewNumber(jvalue.Float(n.Float))}, nil
	default:
		return ast.Literal{Value: jvalue.NewNumber(jvalue.Int(n.Int))}, nil
	}
}
