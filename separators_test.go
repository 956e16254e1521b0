package hl7v2

import "testing"

func TestDefaultSeparators(t *testing.T) {
	s := DefaultSeparators()

	if s.Segment != '\r' || s.Field != '|' || s.Repeat != '~' ||
		s.Component != '^' || s.Subcomponent != '&' || s.Escape != '\\' {
		t.Fatalf("unexpected default separators: %+v", s)
	}
}

func TestSeparatorsFromHeader(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Separators
	}{
		{
			name: "standard header",
			line: "MSH|^~\\&|GHH LAB|ELAB-3",
			want: DefaultSeparators(),
		},
		{
			name: "custom delimiters",
			line: "MSH#!@$%#SENDER",
			want: Separators{
				Segment:      '\r',
				Field:        '#',
				Component:    '!',
				Repeat:       '@',
				Escape:       '$',
				Subcomponent: '%',
			},
		},
		{
			name: "not a header line",
			line: "PID|||555-44-4444",
			want: DefaultSeparators(),
		},
		{
			name: "truncated header falls back",
			line: "MSH|^~",
			want: DefaultSeparators(),
		},
		{
			name: "empty input falls back",
			line: "",
			want: DefaultSeparators(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeparatorsFromHeader(tt.line); got != tt.want {
				t.Errorf("SeparatorsFromHeader(%q) = %+v; want %+v", tt.line, got, tt.want)
			}
		})
	}
}
