package types

import (
	"strconv"
	"strings"
)

const (
	syntaxEscape      = '\\'
	syntaxDoubleQuote = '"'
	syntaxSingleQuote = '\''
)

// Reader is a cursor over a command line.
type Reader struct {
	input  string
	cursor int
}

// NewReader returns a reader positioned at the start of input.
func NewReader(input string) *Reader {
	return &Reader{input: input}
}

// Clone returns an independent copy of the reader.
func (r *Reader) Clone() *Reader {
	c := *r
	return &c
}

// String returns the full input.
func (r *Reader) String() string { return r.input }

// Cursor returns the current offset.
func (r *Reader) Cursor() int { return r.cursor }

// SetCursor moves the cursor.
func (r *Reader) SetCursor(cursor int) { r.cursor = cursor }

// Read returns the consumed part of the input.
func (r *Reader) Read() string { return r.input[:r.cursor] }

// Remaining returns the unconsumed part of the input.
func (r *Reader) Remaining() string { return r.input[r.cursor:] }

// RemainingLength returns the number of unconsumed bytes.
func (r *Reader) RemainingLength() int { return len(r.input) - r.cursor }

// CanRead reports whether at least one byte is left.
func (r *Reader) CanRead() bool { return r.CanReadN(1) }

// CanReadN reports whether at least n bytes are left.
func (r *Reader) CanReadN(n int) bool { return r.cursor+n <= len(r.input) }

// Peek returns the current byte without consuming it.
func (r *Reader) Peek() byte { return r.input[r.cursor] }

// PeekAt returns the byte offset bytes ahead of the cursor.
func (r *Reader) PeekAt(offset int) byte { return r.input[r.cursor+offset] }

// Next consumes and returns the current byte.
func (r *Reader) Next() byte {
	c := r.input[r.cursor]
	r.cursor++
	return c
}

// Skip consumes one byte.
func (r *Reader) Skip() { r.cursor++ }

// SkipWhitespace consumes spaces.
func (r *Reader) SkipWhitespace() {
	for r.CanRead() && r.Peek() == ' ' {
		r.Skip()
	}
}

// IsAllowedInUnquotedString reports whether c may appear in an unquoted word.
func IsAllowedInUnquotedString(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' || c == '.' || c == '+' || c == ':'
}

func isAllowedNumber(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-'
}

func isQuote(c byte) bool {
	return c == syntaxDoubleQuote || c == syntaxSingleQuote
}

// ReadUnquotedString consumes a word made of IsAllowedInUnquotedString bytes.
func (r *Reader) ReadUnquotedString() string {
	start := r.cursor
	for r.CanRead() && IsAllowedInUnquotedString(r.Peek()) {
		r.Skip()
	}
	return r.input[start:r.cursor]
}

// ReadQuotedString consumes a quoted string, handling escapes.
func (r *Reader) ReadQuotedString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	quote := r.Peek()
	if !isQuote(quote) {
		return "", r.syntaxError("expected quote to start a string")
	}
	r.Skip()
	return r.readUntil(quote)
}

func (r *Reader) readUntil(terminator byte) (string, error) {
	var sb strings.Builder
	escaped := false
	for r.CanRead() {
		c := r.Next()
		switch {
		case escaped:
			if c != terminator && c != syntaxEscape {
				r.cursor--
				return "", r.syntaxError("invalid escape sequence '" + string(c) + "' in quoted string")
			}
			sb.WriteByte(c)
			escaped = false
		case c == syntaxEscape:
			escaped = true
		case c == terminator:
			return sb.String(), nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", r.syntaxError("unclosed quoted string")
}

// ReadString consumes a quoted string or, failing that, an unquoted word.
func (r *Reader) ReadString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	if next := r.Peek(); isQuote(next) {
		r.Skip()
		return r.readUntil(next)
	}
	return r.ReadUnquotedString(), nil
}

// ReadInt consumes a base-10 integer.
func (r *Reader) ReadInt() (int, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, r.syntaxError("expected integer")
	}
	v, err := strconv.Atoi(number)
	if err != nil {
		r.cursor = start
		return 0, r.syntaxError("invalid integer '" + number + "'")
	}
	return v, nil
}

// ReadFloat consumes a decimal number.
func (r *Reader) ReadFloat() (float64, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, r.syntaxError("expected float")
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		r.cursor = start
		return 0, r.syntaxError("invalid float '" + number + "'")
	}
	return v, nil
}

// ReadBool consumes "true" or "false".
func (r *Reader) ReadBool() (bool, error) {
	start := r.cursor
	value, err := r.ReadString()
	if err != nil {
		return false, err
	}
	switch value {
	case "":
		return false, r.syntaxError("expected bool")
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		r.cursor = start
		return false, r.syntaxError("invalid bool, expected true or false but found '" + value + "'")
	}
}

func (r *Reader) syntaxError(reason string) *SyntaxError {
	return &SyntaxError{Reason: reason, Input: r.input, Cursor: r.cursor}
}
