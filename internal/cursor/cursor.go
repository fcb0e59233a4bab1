// Package cursor implements a forward, speculative-lookahead cursor over
// the Unicode characters of a JSONPath source string.
//
// The path parser has to tell apart several bracket forms — quoted-name
// lists, numeric indices, slices, wildcards, filters — that all share the
// same "[" opener (spec.md §4.2), and has to recognize keywords such as
// "true" without consuming them on a mismatch. Cursor supports looking
// ahead without committing through an explicit save/commit/rewind
// discipline: Peek* and Advance move only a lookahead mark; Commit collapses
// the mark into the read pointer, and Rewind discards it.
package cursor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/smasher164/xid"
)

// A Cursor is a forward cursor over the runes of a source string, with the
// save/commit/rewind discipline described in spec.md §4.1.
type Cursor struct {
	src  []rune
	pos  int // committed read position
	mark int // lookahead position; always >= pos
}

// New returns a Cursor positioned at the start of s.
func New(s string) *Cursor {
	return &Cursor{src: []rune(s)}
}

// Offset returns the committed read position, a best-effort character
// offset for error messages (spec.md §4.2, "Error conditions").
func (c *Cursor) Offset() int { return c.pos }

// AtEnd reports whether the cursor has consumed the entire input.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.src) }

// Next advances the cursor by one character and returns it. ok is false at
// end of input, in which case the cursor is not advanced. Any pending
// lookahead is discarded.
func (c *Cursor) Next() (ch rune, ok bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	ch = c.src[c.pos]
	c.pos++
	c.mark = c.pos
	return ch, true
}

// Peek returns the next character without consuming it. ok is false at end
// of input.
func (c *Cursor) Peek() (ch rune, ok bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos], true
}

// PeekAt returns the character n positions past the committed read
// pointer, without consuming anything. ok is false past end of input.
func (c *Cursor) PeekAt(n int) (ch rune, ok bool) {
	i := c.pos + n
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

// Advance moves the lookahead mark forward by n characters without
// committing; Peek and Next are unaffected until Commit is called. It is a
// no-op once the mark reaches the end of input.
func (c *Cursor) Advance(n int) {
	c.mark += n
	if c.mark > len(c.src) {
		c.mark = len(c.src)
	}
	if c.mark < c.pos {
		c.mark = c.pos
	}
}

// Commit collapses the lookahead mark into the read pointer, making all
// speculatively-advanced characters part of the committed input.
func (c *Cursor) Commit() {
	c.pos = c.mark
}

// Rewind discards any speculative advance, moving the lookahead mark back
// to the committed read pointer.
func (c *Cursor) Rewind() {
	c.mark = c.pos
}

// DropWhile consumes (and commits) characters while pred holds, stopping at
// the first character for which pred is false or at end of input.
func (c *Cursor) DropWhile(pred func(rune) bool) {
	for c.pos < len(c.src) && pred(c.src[c.pos]) {
		c.pos++
	}
	c.mark = c.pos
}

// PeekDropWhile advances the lookahead mark, without committing, while
// pred holds over the characters starting at the mark.
func (c *Cursor) PeekDropWhile(pred func(rune) bool) {
	for c.mark < len(c.src) && pred(c.src[c.mark]) {
		c.mark++
	}
}

// SkipSpace commits past any run of leading whitespace (spec.md §4.2,
// "Skip leading whitespace").
func (c *Cursor) SkipSpace() {
	c.DropWhile(unicode.IsSpace)
}

// PeekMatchesKeyword reports whether the characters starting at the
// lookahead mark match keyword case-insensitively. If they do, the mark is
// advanced past them and true is returned; otherwise the mark is left
// unchanged and false is returned (spec.md §4.1).
func (c *Cursor) PeekMatchesKeyword(keyword string) bool {
	kw := []rune(keyword)
	if c.mark+len(kw) > len(c.src) {
		return false
	}
	for i, want := range kw {
		if unicode.ToLower(c.src[c.mark+i]) != unicode.ToLower(want) {
			return false
		}
	}
	c.mark += len(kw)
	return true
}

// IsIdentStart reports whether ch may begin an unquoted JSONPath name: "_"
// or a Unicode identifier-start (XID_Start) character. A backslash is not
// accepted.
func IsIdentStart(ch rune) bool {
	return ch == '_' || xid.Start(ch)
}

// IsIdentContinue reports whether ch may continue an unquoted JSONPath
// name once started.
func IsIdentContinue(ch rune) bool {
	return ch == '_' || xid.Continue(ch)
}

// ReadQuotedString consumes a leading ' or " and reads up to (and
// including) the matching unescaped quote. A backslash escapes the next
// character; both the backslash and the escaped character are kept
// verbatim in the returned text, which does not include the surrounding
// quotes (spec.md §4.1). Commits on success.
func (c *Cursor) ReadQuotedString() (string, error) {
	open, ok := c.Peek()
	if !ok || (open != '\'' && open != '"') {
		return "", fmt.Errorf("expected a quote character at offset %d", c.pos)
	}
	start := c.pos
	c.Next()

	var sb strings.Builder
	for {
		ch, ok := c.Next()
		if !ok {
			return "", fmt.Errorf("unterminated quoted string starting at offset %d", start)
		}
		if ch == '\\' {
			esc, ok := c.Next()
			if !ok {
				return "", fmt.Errorf("unterminated escape in quoted string starting at offset %d", start)
			}
			sb.WriteRune(ch)
			sb.WriteRune(esc)
			continue
		}
		if ch == open {
			return sb.String(), nil
		}
		sb.WriteRune(ch)
	}
}

// NumberKind identifies the shape ReadNumber found in the source text.
type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberFloat
)

// Number is a numeric literal lexed from the source text.
type Number struct {
	Kind  NumberKind
	Text  string  // the literal source text, e.g. "-12" or "3.5"
	Int   int64   // valid when Kind == NumberInt
	Float float64 // valid when Kind == NumberFloat
}

// ReadNumber consumes a run of digits, an optional leading minus, and an
// optional single embedded period, and classifies the result as an integer
// or a floating-point literal according to the shape of the text
// (spec.md §4.1).
func (c *Cursor) ReadNumber() (Number, error) {
	start := c.pos
	if ch, ok := c.Peek(); ok && ch == '-' {
		c.Next()
	}
	sawDigit := false
	sawDot := false
	for {
		ch, ok := c.Peek()
		if !ok {
			break
		}
		switch {
		case ch >= '0' && ch <= '9':
			sawDigit = true
			c.Next()
		case ch == '.' && !sawDot:
			sawDot = true
			c.Next()
		default:
			goto done
		}
	}
done:
	if !sawDigit {
		c.pos = start
		c.mark = start
		return Number{}, fmt.Errorf("invalid number at offset %d", start)
	}
	text := string(c.src[start:c.pos])
	if sawDot {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Number{}, fmt.Errorf("invalid number %q at offset %d: %w", text, start, err)
		}
		return Number{Kind: NumberFloat, Text: text, Float: f}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q at offset %d: %w", text, start, err)
	}
	return Number{Kind: NumberInt, Text: text, Int: i}, nil
}
