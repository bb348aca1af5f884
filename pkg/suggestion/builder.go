package suggestion

import "strings"

// Builder collects suggestions for the input text starting at a fixed offset.
type Builder struct {
	input          string
	start          int
	remaining      string
	remainingLower string
	result         []Suggestion
}

// NewBuilder returns a builder completing input from start onwards.
// Only the remaining text is case-folded, since folding may change byte lengths.
func NewBuilder(input string, start int) *Builder {
	return &Builder{
		input:          input,
		start:          start,
		remaining:      input[start:],
		remainingLower: strings.ToLower(input[start:]),
	}
}

// Input returns the full (truncated) input being completed.
func (b *Builder) Input() string { return b.input }

// Start returns the offset the suggestions replace from.
func (b *Builder) Start() int { return b.start }

// Remaining returns the text after Start.
func (b *Builder) Remaining() string { return b.remaining }

// RemainingLower returns Remaining in lower case.
func (b *Builder) RemainingLower() string { return b.remainingLower }

// Suggest adds a completion. Text equal to what is already typed is ignored.
func (b *Builder) Suggest(text string) *Builder {
	return b.SuggestTooltip(text, "")
}

// SuggestTooltip adds a completion with a tooltip.
func (b *Builder) SuggestTooltip(text, tooltip string) *Builder {
	if text == b.remaining {
		return b
	}
	b.result = append(b.result, Suggestion{
		Range:   Range{Start: b.start, End: len(b.input)},
		Text:    text,
		Tooltip: tooltip,
	})
	return b
}

// SuggestMatching adds every candidate that starts with the remaining text, ignoring case.
func (b *Builder) SuggestMatching(candidates ...string) *Builder {
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), b.remainingLower) {
			b.Suggest(c)
		}
	}
	return b
}

// Add appends the suggestions collected by other.
func (b *Builder) Add(other *Builder) *Builder {
	b.result = append(b.result, other.result...)
	return b
}

// Offset returns a fresh builder over the same input starting at start.
func (b *Builder) Offset(start int) *Builder {
	return NewBuilder(b.input, start)
}

// Restart returns a fresh builder at the same offset.
func (b *Builder) Restart() *Builder {
	return b.Offset(b.start)
}

// Build returns the collected suggestions.
func (b *Builder) Build() *Suggestions {
	return Create(b.input, b.result)
}
