package types

import "fmt"

// contextLength is how much input preceding the cursor a SyntaxError quotes.
const contextLength = 10

// SyntaxError reports input a Type could not parse.
type SyntaxError struct {
	Reason string // Human-readable reason for failure
	Input  string // Full input, empty when not tied to a command line
	Cursor int    // Offset of the failure in Input
}

func (e *SyntaxError) Error() string {
	if e.Input == "" {
		return e.Reason
	}
	cursor := min(e.Cursor, len(e.Input))
	start := max(0, cursor-contextLength)
	prefix := ""
	if start > 0 {
		prefix = "..."
	}
	return fmt.Sprintf("%s at position %d: %s%s<--[HERE]", e.Reason, cursor, prefix, e.Input[start:cursor])
}

// Errorf returns a SyntaxError positioned at the reader's cursor.
func Errorf(r *Reader, format string, args ...any) *SyntaxError {
	return r.syntaxError(fmt.Sprintf(format, args...))
}
