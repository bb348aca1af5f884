package types

import (
	"testing"

	"github.com/aretw0/graft/pkg/suggestion"
)

func TestIntType(t *testing.T) {
	typ := Int()

	if typ.Name() != "int" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "int")
	}

	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"-7", -7, false},
		{"0 rest", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1-2", 0, true},
	}

	for _, tt := range tests {
		got, err := typ.Parse(NewReader(tt.input))
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIntRange(t *testing.T) {
	typ := IntRange(1, 10)

	if typ.Name() != "int(1,10)" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "int(1,10)")
	}

	r := NewReader("11")
	if _, err := typ.Parse(r); err == nil {
		t.Fatal("Parse(11) expected out of range error")
	}
	if r.Cursor() != 0 {
		t.Errorf("cursor = %d after failed parse, want 0", r.Cursor())
	}
}

func TestFloatType(t *testing.T) {
	typ := Float()

	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"3.14", 3.14, false},
		{"-1", -1, false},
		{".5", 0.5, false},
		{"x", 0, true},
	}

	for _, tt := range tests {
		got, err := typ.Parse(NewReader(tt.input))
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"yes", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		got, err := typ.Parse(NewReader(tt.input))
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	s, ok := SuggesterOf(typ)
	if !ok {
		t.Fatal("bool should suggest")
	}
	got, _ := s.Suggest(nil, suggestion.NewBuilder("t", 0))
	if texts := got.Texts(); len(texts) != 1 || texts[0] != "true" {
		t.Errorf("Suggest(t) = %v, want [true]", texts)
	}
}

func TestStringTypes(t *testing.T) {
	tests := []struct {
		typ   Type
		input string
		want  string
		rest  string
	}{
		{Word(), "hello world", "hello", " world"},
		{String(), `"hello world" x`, "hello world", " x"},
		{String(), `say\"`, "say", `\"`},
		{Greedy(), "hello world", "hello world", ""},
	}

	for _, tt := range tests {
		r := NewReader(tt.input)
		got, err := tt.typ.Parse(r)
		if err != nil {
			t.Errorf("%s.Parse(%q) error = %v", tt.typ.Name(), tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.Parse(%q) = %q, want %q", tt.typ.Name(), tt.input, got, tt.want)
		}
		if r.Remaining() != tt.rest {
			t.Errorf("%s.Parse(%q) left %q, want %q", tt.typ.Name(), tt.input, r.Remaining(), tt.rest)
		}
	}

	if _, err := String().Parse(NewReader(`"open`)); err == nil {
		t.Error("expected unclosed quote error")
	}
}

func TestCustomType(t *testing.T) {
	plain := Custom("color", func(r *Reader) (any, error) { return r.ReadUnquotedString(), nil })
	if _, ok := SuggesterOf(plain); ok {
		t.Error("custom type without suggest func should not be a suggester")
	}
	if _, ok := plain.Mapped(); ok {
		t.Error("custom type without mapping should not be mapped")
	}

	mapped := Custom("color", plain.parse,
		WithSuggest(func(_ Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error) {
			return b.SuggestMatching("red", "green").Build(), nil
		}),
		WithMapped(Word()),
		WithExamples("red"),
	)
	if _, ok := SuggesterOf(mapped); !ok {
		t.Error("custom type with suggest func should be a suggester")
	}
	if m, ok := mapped.Mapped(); !ok || m.Name() != "word" {
		t.Errorf("Mapped() = %v, %v", m, ok)
	}
	if IsPrimitive(mapped) {
		t.Error("custom type reported as primitive")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantErr  bool
	}{
		{"bool", "bool", false},
		{"int", "int", false},
		{"float", "float", false},
		{"word", "word", false},
		{"string", "string", false},
		{"greedy", "greedy", false},
		{"int(0, 64)", "int(0,64)", false},
		{"float(0.5,2)", "float(0.5,2)", false},
		{"int(5,1)", "", true},
		{"int(1)", "", true},
		{"vector", "", true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.Name() != tt.wantName {
			t.Errorf("ParseType(%q).Name() = %q, want %q", tt.input, got.Name(), tt.wantName)
		}
		if !tt.wantErr && !IsPrimitive(got) {
			t.Errorf("ParseType(%q) should be primitive", tt.input)
		}
	}
}

func TestSyntaxError(t *testing.T) {
	r := NewReader("teleport somewhere far")
	r.SetCursor(18)
	err := Errorf(r, "expected %s", "coordinates")

	want := "expected coordinates at position 18: ... somewhere<--[HERE]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
