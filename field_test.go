package hl7v2

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

func TestParseOptionalFieldHandlesAbsent(t *testing.T) {
	d := DefaultSeparators()

	if f := ParseOptionalField("", false, d); f != nil {
		t.Fatalf("absent source should yield nil, got %q", f.Value())
	}
}

func TestParseOptionalFieldHandlesEmptyString(t *testing.T) {
	d := DefaultSeparators()

	// An empty string, as produced between two adjacent delimiters,
	// is conflated with absence.
	if f := ParseOptionalField("", true, d); f != nil {
		t.Fatalf("empty source should yield nil, got %q", f.Value())
	}
}

func TestParseOptionalFieldHandlesValue(t *testing.T) {
	d := DefaultSeparators()

	f := ParseOptionalField("xxx", true, d)
	if f == nil {
		t.Fatal("expected a present field")
	}
	if f.Value() != "xxx" {
		t.Fatalf("Value() = %q; want %q", f.Value(), "xxx")
	}
}

func TestParseMandatoryFieldHandlesValue(t *testing.T) {
	d := DefaultSeparators()

	f, err := ParseMandatoryField("xxx", true, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Value() != "xxx" {
		t.Fatalf("Value() = %q; want %q", f.Value(), "xxx")
	}
}

func TestParseMandatoryFieldFailsOnAbsent(t *testing.T) {
	d := DefaultSeparators()

	_, err := ParseMandatoryField("", false, d)
	if !errors.Is(err, ErrMissingRequiredValue) {
		t.Fatalf("err = %v; want ErrMissingRequiredValue", err)
	}
	if !errors.Is(err, ErrParse) {
		t.Fatal("ErrMissingRequiredValue should wrap ErrParse")
	}
}

func TestFieldRepeats(t *testing.T) {
	d := DefaultSeparators()

	f := ParseField("x&x^y&y~a&a^b&b", d)
	if got := f.RepeatCount(); got != 2 {
		t.Fatalf("RepeatCount() = %d; want 2", got)
	}
}

func TestFieldComponents(t *testing.T) {
	d := DefaultSeparators()

	f := ParseField("xxx^yyy", d)
	if got := f.Component(0, 1); got != "yyy" {
		t.Fatalf("Component(0,1) = %q; want %q", got, "yyy")
	}
}

func TestFieldSubcomponents(t *testing.T) {
	d := DefaultSeparators()

	f := ParseField("xxx^yyy&zzz", d)
	if got := f.Subcomponent(0, 1, 1); got != "zzz" {
		t.Fatalf("Subcomponent(0,1,1) = %q; want %q", got, "zzz")
	}
}

func TestFieldString(t *testing.T) {
	d := DefaultSeparators()

	f := ParseField("xxx^yyy&zzz", d)
	if f.String() != "xxx^yyy&zzz" {
		t.Fatalf("String() = %q; want source text", f.String())
	}
}

func TestFieldClone(t *testing.T) {
	d := DefaultSeparators()

	f := ParseField("x&x^y&y~a&a^b&b", d)
	c := f.Clone()
	if c == f {
		t.Fatal("Clone must return a new Field")
	}
	if c.Value() != f.Value() || c.RepeatCount() != f.RepeatCount() {
		t.Fatal("clone differs structurally from the original")
	}
}

func TestFieldNumericIndexing(t *testing.T) {
	d := DefaultSeparators()

	f := ParseField("xxx^yyy&zzz", d)
	if got := f.Component(0, 1); got != "yyy&zzz" {
		t.Fatalf("Component(0,1) = %q; want %q", got, "yyy&zzz")
	}
	if got := f.Subcomponent(0, 1, 1); got != "zzz" {
		t.Fatalf("Subcomponent(0,1,1) = %q; want %q", got, "zzz")
	}
}

func TestFieldIndexingNeverPanics(t *testing.T) {
	d := DefaultSeparators()
	f := ParseField("x&x^y&y~a&a^b&b", d)

	// Every coordinate combination, including absurd ones, answers
	// the empty sentinel rather than panicking.
	indexes := []int{-1, 0, 1, 2, 5, 1 << 20}
	for _, i := range indexes {
		for _, j := range indexes {
			for _, k := range indexes {
				_ = f.Repeat(i)
				_ = f.Component(i, j)
				_ = f.Subcomponent(i, j, k)
			}
		}
	}
	if got := f.Repeat(99); got != "" {
		t.Fatalf("out-of-range Repeat = %q; want empty", got)
	}
	if got := f.Component(0, 99); got != "" {
		t.Fatalf("out-of-range Component = %q; want empty", got)
	}
	if got := f.Subcomponent(0, 0, 99); got != "" {
		t.Fatalf("out-of-range Subcomponent = %q; want empty", got)
	}
}

func TestFieldQuery(t *testing.T) {
	d := DefaultSeparators()
	f := ParseField("x&x^y&y~a&a^b&b", d)

	tests := []struct {
		path string
		want string
	}{
		{"R2", "a&a^b&b"},
		{"R2.C2", "b&b"},
		{"R2.C3", ""},
		{"R9", ""},
		{"r2.c2", "b&b"},
		{"R1.C1.S1", ""},
		{"R", ""},
		{"bogus", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := f.Query(tt.path); got != tt.want {
			t.Errorf("Query(%q) = %q; want %q", tt.path, got, tt.want)
		}
	}
}

func TestFieldQueryMatchesNumericIndexing(t *testing.T) {
	d := DefaultSeparators()
	f := ParseField("x&x^y&y~a&a^b&b", d)

	for n := 1; n <= f.RepeatCount(); n++ {
		if f.Query("R"+strconv.Itoa(n)) != f.Repeat(n-1) {
			t.Errorf("query R%d disagrees with Repeat(%d)", n, n-1)
		}
		for m := 1; m <= 2; m++ {
			if f.Query(fmt.Sprintf("R%d.C%d", n, m)) != f.Component(n-1, m-1) {
				t.Errorf("query R%d.C%d disagrees with Component(%d,%d)", n, m, n-1, m-1)
			}
		}
	}
}

func TestEmptyFieldSplitsToOneEmptySpan(t *testing.T) {
	d := DefaultSeparators()

	f := ParseField("", d)
	if got := f.RepeatCount(); got != 1 {
		t.Fatalf("RepeatCount() of empty field = %d; want 1", got)
	}
	if got := f.Repeat(0); got != "" {
		t.Fatalf("Repeat(0) = %q; want empty", got)
	}
	if got := f.Subcomponent(0, 0, 0); got != "" {
		t.Fatalf("Subcomponent(0,0,0) = %q; want empty", got)
	}
}

func TestLazyFieldMatchesEager(t *testing.T) {
	d := DefaultSeparators()
	src := "x&x^y&y~a&a^b&b"

	eager := ParseField(src, d)
	lazy := NewField(src, d)

	if eager.RepeatCount() != lazy.RepeatCount() {
		t.Fatal("lazy and eager disagree on repeat count")
	}
	for i := 0; i < eager.RepeatCount(); i++ {
		if eager.Repeat(i) != lazy.Repeat(i) {
			t.Fatalf("lazy and eager disagree at repeat %d", i)
		}
	}
	if eager.Subcomponent(1, 1, 1) != lazy.Subcomponent(1, 1, 1) {
		t.Fatal("lazy and eager disagree at subcomponent rank")
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	// Rejoining the spans of one rank with its delimiter reproduces
	// the source exactly.
	d := DefaultSeparators()
	sources := []string{
		"",
		"plain",
		"a~b~c",
		"~~",
		"x&x^y&y~a&a^b&b",
		"trailing~",
	}
	for _, src := range sources {
		f := ParseField(src, d)
		if got := strings.Join(f.Repeats(), string(d.Repeat)); got != src {
			t.Errorf("join(split(%q)) = %q", src, got)
		}
	}
}
