package suggestion

import (
	"slices"
	"strings"
)

// Range is a half-open byte range [Start, End) of an input string.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// At returns an empty range positioned at pos.
func At(pos int) Range {
	return Range{Start: pos, End: pos}
}

// IsEmpty reports whether the range covers no input.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Get returns the part of input covered by the range.
func (r Range) Get(input string) string {
	return input[r.Start:r.End]
}

// Encompass returns the smallest range covering both a and b.
func Encompass(a, b Range) Range {
	return Range{Start: min(a.Start, b.Start), End: max(a.End, b.End)}
}

// Suggestion is a single completion replacing Range with Text.
type Suggestion struct {
	Range   Range  `json:"range"`
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
}

// Apply returns input with the suggestion applied.
func (s Suggestion) Apply(input string) string {
	if s.Range.Start == 0 && s.Range.End == len(input) {
		return s.Text
	}
	var sb strings.Builder
	if s.Range.Start > 0 {
		sb.WriteString(input[:s.Range.Start])
	}
	sb.WriteString(s.Text)
	if s.Range.End < len(input) {
		sb.WriteString(input[s.Range.End:])
	}
	return sb.String()
}

// Expand widens the suggestion to cover r, copying the surrounding input into its text.
func (s Suggestion) Expand(input string, r Range) Suggestion {
	if r == s.Range {
		return s
	}
	var sb strings.Builder
	if r.Start < s.Range.Start {
		sb.WriteString(input[r.Start:s.Range.Start])
	}
	sb.WriteString(s.Text)
	if r.End > s.Range.End {
		sb.WriteString(input[s.Range.End:r.End])
	}
	return Suggestion{Range: r, Text: sb.String(), Tooltip: s.Tooltip}
}

// Suggestions is the result of one completion request.
type Suggestions struct {
	Range Range        `json:"range"`
	List  []Suggestion `json:"suggestions"`
}

// Empty returns a result with no suggestions.
func Empty() *Suggestions {
	return &Suggestions{List: []Suggestion{}}
}

// IsEmpty reports whether s holds no suggestions.
func (s *Suggestions) IsEmpty() bool {
	return s == nil || len(s.List) == 0
}

// Texts returns the suggestion texts in order.
func (s *Suggestions) Texts() []string {
	if s == nil {
		return nil
	}
	texts := make([]string, 0, len(s.List))
	for _, sg := range s.List {
		texts = append(texts, sg.Text)
	}
	return texts
}

// Create builds a result from raw suggestions, expanding them to a common range.
// Duplicates are dropped and the list is sorted case-insensitively; equal keys keep their order.
func Create(input string, list []Suggestion) *Suggestions {
	if len(list) == 0 {
		return Empty()
	}
	r := list[0].Range
	for _, s := range list[1:] {
		r = Encompass(r, s.Range)
	}

	seen := make(map[string]bool, len(list))
	out := make([]Suggestion, 0, len(list))
	for _, s := range list {
		expanded := s.Expand(input, r)
		if seen[expanded.Text] {
			continue
		}
		seen[expanded.Text] = true
		out = append(out, expanded)
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int {
		return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
	})
	return &Suggestions{Range: r, List: out}
}

// Merge combines several results for the same input.
func Merge(input string, results ...*Suggestions) *Suggestions {
	var nonEmpty []*Suggestions
	for _, r := range results {
		if !r.IsEmpty() {
			nonEmpty = append(nonEmpty, r)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return Empty()
	case 1:
		return nonEmpty[0]
	}

	var all []Suggestion
	for _, r := range nonEmpty {
		all = append(all, r.List...)
	}
	return Create(input, all)
}
