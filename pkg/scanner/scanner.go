// Package scanner checks bracket balance in source text.
//
// Scan walks the text once, keeping a stack of open brackets. Characters
// inside // line comments and /* */ block comments are skipped. The scan
// stops at the first closer that has no opener or that closes the wrong kind;
// otherwise any openers left at end of input are reported oldest first.
// String and character literals are not recognized, so brackets inside them
// count as code.
package scanner

import (
	"unicode/utf8"

	"github.com/praetorian-inc/balance/pkg/types"
)

// Scan checks the bracket balance of text. It has no side effects and keeps no
// state between calls.
func Scan(text string) types.Result {
	result, _ := scan(text)
	return result
}

// scan also returns where an unterminated block comment starts, or nil.
func scan(text string) (types.Result, *types.Position) {
	c := newCursor(text)
	var stack []types.OpenBracket
	var comment *types.Position

	for !c.done() {
		if c.at('/') {
			switch {
			case c.peekIs(1, '/'):
				c.skipLineComment()
				continue
			case c.peekIs(1, '*'):
				start := c.pos()
				if !c.skipBlockComment() {
					comment = &start
				}
				continue
			}
		}

		r := c.current()
		pos := c.pos()

		if kind, ok := types.OpenerKind(r); ok {
			stack = append(stack, types.OpenBracket{Kind: kind, Position: pos})
		} else if kind, ok := types.CloserKind(r); ok {
			if len(stack) == 0 {
				return types.UnexpectedCloser(r, pos), nil
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.Kind != kind {
				return types.Mismatched(r, pos, top), nil
			}
		}

		c.advance()
	}

	if len(stack) > 0 {
		return types.Unclosed(stack), comment
	}
	return types.Balanced(), comment
}

// ScanBytes decodes content as UTF-8 and scans it.
// Content that is not valid UTF-8 yields types.ErrInvalidEncoding.
func ScanBytes(content []byte) (types.Result, error) {
	text, err := decode(content)
	if err != nil {
		return types.Result{}, err
	}
	return Scan(text), nil
}

func decode(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", types.ErrInvalidEncoding
	}
	return string(content), nil
}

// cursor tracks the read position and line/column bookkeeping over decoded runes.
type cursor struct {
	src    []rune
	off    int
	line   int
	column int
}

func newCursor(text string) *cursor {
	return &cursor{src: []rune(text), line: 1, column: 1}
}

func (c *cursor) done() bool {
	return c.off >= len(c.src)
}

func (c *cursor) current() rune {
	return c.src[c.off]
}

func (c *cursor) at(r rune) bool {
	return !c.done() && c.src[c.off] == r
}

// peekIs reports whether the rune n places ahead exists and equals r.
func (c *cursor) peekIs(n int, r rune) bool {
	i := c.off + n
	return i < len(c.src) && c.src[i] == r
}

func (c *cursor) pos() types.Position {
	return types.Position{Offset: c.off, Line: c.line, Column: c.column}
}

// advance consumes one rune. A newline moves to column 1 of the next line.
func (c *cursor) advance() {
	if c.src[c.off] == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.off++
}

// skipLineComment consumes from "//" through the terminating newline, or to
// end of input when there is none.
func (c *cursor) skipLineComment() {
	for !c.done() {
		nl := c.current() == '\n'
		c.advance()
		if nl {
			return
		}
	}
}

// skipBlockComment consumes from "/*" through the next "*/". The search
// starts after the opening delimiter, so "/*/" does not close itself. An
// unterminated comment runs to end of input and reports false.
func (c *cursor) skipBlockComment() bool {
	c.advance()
	c.advance()
	for !c.done() {
		if c.at('*') && c.peekIs(1, '/') {
			c.advance()
			c.advance()
			return true
		}
		c.advance()
	}
	return false
}
