package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/graft/pkg/suggestion"
)

// Type defines how an argument is read from input.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "int", "position").
	Name() string
	// Parse reads a value from r, advancing its cursor past the consumed input.
	Parse(r *Reader) (any, error)
	// Examples returns sample inputs the type accepts.
	Examples() []string
}

// Arguments is the read-only view of an execution context that types and providers consult.
type Arguments interface {
	// Input returns the raw input the context was parsed from.
	Input() string
	// Argument returns the parsed value of a named argument.
	Argument(name string) (any, error)
	// IsPresent reports whether the named argument was parsed.
	IsPresent(name string) bool
}

// Suggester is implemented by types that propose completions for their own input.
type Suggester interface {
	Suggest(args Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error)
}

// Mappable is implemented by types that know their equivalent in another execution domain.
// ok is false when the type has no such equivalent.
type Mappable interface {
	Mapped() (t Type, ok bool)
}

// SuggesterOf returns the Suggester behind t, if t can produce suggestions.
func SuggesterOf(t Type) (Suggester, bool) {
	s, ok := t.(Suggester)
	if !ok {
		return nil, false
	}
	if c, ok := t.(interface{ Suggests() bool }); ok && !c.Suggests() {
		return nil, false
	}
	return s, true
}

// IsPrimitive reports whether t is one of the built-in types shared by every domain.
func IsPrimitive(t Type) bool {
	switch t.(type) {
	case *BoolType, *IntType, *FloatType, *StringType:
		return true
	default:
		return false
	}
}

// --- Built-in Type Implementations ---

// BoolType reads true or false.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Parse(r *Reader) (any, error) { return r.ReadBool() }

func (t *BoolType) Examples() []string { return []string{"true", "false"} }

func (t *BoolType) Suggest(_ Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error) {
	return b.SuggestMatching("true", "false").Build(), nil
}

// IntType reads integers within [Min, Max].
type IntType struct {
	Min, Max int
	bounded  bool
}

func (t *IntType) Name() string {
	if !t.bounded {
		return "int"
	}
	return fmt.Sprintf("int(%d,%d)", t.Min, t.Max)
}

func (t *IntType) Parse(r *Reader) (any, error) {
	start := r.Cursor()
	v, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	if t.bounded && (v < t.Min || v > t.Max) {
		r.SetCursor(start)
		return nil, Errorf(r, "integer must be between %d and %d, found %d", t.Min, t.Max, v)
	}
	return v, nil
}

func (t *IntType) Examples() []string { return []string{"0", "123", "-123"} }

// FloatType reads decimal numbers within [Min, Max].
type FloatType struct {
	Min, Max float64
	bounded  bool
}

func (t *FloatType) Name() string {
	if !t.bounded {
		return "float"
	}
	return fmt.Sprintf("float(%g,%g)", t.Min, t.Max)
}

func (t *FloatType) Parse(r *Reader) (any, error) {
	start := r.Cursor()
	v, err := r.ReadFloat()
	if err != nil {
		return nil, err
	}
	if t.bounded && (v < t.Min || v > t.Max) {
		r.SetCursor(start)
		return nil, Errorf(r, "float must be between %g and %g, found %g", t.Min, t.Max, v)
	}
	return v, nil
}

func (t *FloatType) Examples() []string { return []string{"0", "1.2", ".5", "-1"} }

// StringKind selects how much input a StringType consumes.
type StringKind int

const (
	// SingleWord reads one unquoted word.
	SingleWord StringKind = iota
	// QuotablePhrase reads a quoted phrase or one word.
	QuotablePhrase
	// GreedyPhrase reads the rest of the input.
	GreedyPhrase
)

// StringType reads text.
type StringType struct {
	Kind StringKind
}

func (t *StringType) Name() string {
	switch t.Kind {
	case QuotablePhrase:
		return "string"
	case GreedyPhrase:
		return "greedy"
	default:
		return "word"
	}
}

func (t *StringType) Parse(r *Reader) (any, error) {
	switch t.Kind {
	case GreedyPhrase:
		text := r.Remaining()
		r.SetCursor(len(r.String()))
		return text, nil
	case QuotablePhrase:
		return r.ReadString()
	default:
		return r.ReadUnquotedString(), nil
	}
}

func (t *StringType) Examples() []string {
	switch t.Kind {
	case QuotablePhrase:
		return []string{"\"quoted phrase\"", "word", "\"\""}
	case GreedyPhrase:
		return []string{"word", "words with spaces", "\"and symbols\""}
	default:
		return []string{"word", "words_with_underscores"}
	}
}

// CustomType is a user-defined type with optional suggestions and a mapped equivalent.
type CustomType struct {
	name     string
	parse    func(r *Reader) (any, error)
	examples []string
	suggest  func(args Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error)
	mapped   Type
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Parse(r *Reader) (any, error) { return t.parse(r) }

func (t *CustomType) Examples() []string { return t.examples }

func (t *CustomType) Suggest(args Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error) {
	if t.suggest == nil {
		return b.Build(), nil
	}
	return t.suggest(args, b)
}

// Suggests reports whether the type was given a suggestion function.
func (t *CustomType) Suggests() bool { return t.suggest != nil }

// Mapped returns the equivalent type in another domain, if one was declared.
func (t *CustomType) Mapped() (Type, bool) { return t.mapped, t.mapped != nil }

// CustomOption configures a CustomType.
type CustomOption func(*CustomType)

// WithExamples sets the example inputs.
func WithExamples(examples ...string) CustomOption {
	return func(t *CustomType) { t.examples = examples }
}

// WithSuggest sets the suggestion function.
func WithSuggest(fn func(args Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error)) CustomOption {
	return func(t *CustomType) { t.suggest = fn }
}

// WithMapped declares the equivalent type used when the tree is mapped to another domain.
func WithMapped(mapped Type) CustomOption {
	return func(t *CustomType) { t.mapped = mapped }
}

// --- Factory Functions ---

// Bool creates a boolean type.
func Bool() Type { return &BoolType{} }

// Int creates an unbounded integer type.
func Int() Type { return &IntType{} }

// IntRange creates an integer type accepting [lo, hi].
func IntRange(lo, hi int) Type { return &IntType{Min: lo, Max: hi, bounded: true} }

// Float creates an unbounded float type.
func Float() Type { return &FloatType{} }

// FloatRange creates a float type accepting [lo, hi].
func FloatRange(lo, hi float64) Type { return &FloatType{Min: lo, Max: hi, bounded: true} }

// Word creates a single-word string type.
func Word() Type { return &StringType{Kind: SingleWord} }

// String creates a quotable string type.
func String() Type { return &StringType{Kind: QuotablePhrase} }

// Greedy creates a string type consuming the rest of the input.
func Greedy() Type { return &StringType{Kind: GreedyPhrase} }

// Custom creates a user-defined type.
func Custom(name string, parse func(r *Reader) (any, error), opts ...CustomOption) *CustomType {
	t := &CustomType{name: name, parse: parse}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ParseType converts a type name to a built-in Type.
// Supports "bool", "int", "float", "word", "string", "greedy" and ranges such as "int(0,10)".
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)

	if open := strings.IndexByte(typeStr, '('); open > 0 && strings.HasSuffix(typeStr, ")") {
		base := typeStr[:open]
		lo, hi, ok := strings.Cut(typeStr[open+1:len(typeStr)-1], ",")
		if !ok {
			return nil, fmt.Errorf("unsupported type: %s (expected two bounds)", typeStr)
		}
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		switch base {
		case "int":
			l, errL := strconv.Atoi(lo)
			h, errH := strconv.Atoi(hi)
			if errL != nil || errH != nil || l > h {
				return nil, fmt.Errorf("unsupported type: %s (invalid bounds)", typeStr)
			}
			return IntRange(l, h), nil
		case "float":
			l, errL := strconv.ParseFloat(lo, 64)
			h, errH := strconv.ParseFloat(hi, 64)
			if errL != nil || errH != nil || l > h {
				return nil, fmt.Errorf("unsupported type: %s (invalid bounds)", typeStr)
			}
			return FloatRange(l, h), nil
		default:
			return nil, fmt.Errorf("unsupported type: %s", typeStr)
		}
	}

	switch typeStr {
	case "bool":
		return Bool(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "word":
		return Word(), nil
	case "string":
		return String(), nil
	case "greedy":
		return Greedy(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}
