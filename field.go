package hl7v2

import "strings"

// Field is a single value between field delimiters. A field nests
// three further ranks: repeats (split on the repeat delimiter), each
// repeat's components, and each component's subcomponents. Every rank
// is a substring of the original message text.
//
// Splitting is exhaustive and total: an empty field still has exactly
// one repeat, one component and one subcomponent, all empty. No
// escape-sequence interpretation occurs; a delimiter preceded by the
// escape character splits like any other.
type Field struct {
	source string
	seps   Separators

	// Materialized hierarchy. nil until materialize runs; splitting
	// is total, so repeats is never empty afterwards.
	repeats       []string
	components    [][]string
	subcomponents [][][]string
}

// NewField wraps src without materializing the repeat/component/
// subcomponent hierarchy; it is split lazily on the first indexed
// access. The first access mutates the Field and must not be raced;
// use ParseField when fields will be read concurrently.
func NewField(src string, seps Separators) *Field {
	return &Field{source: src, seps: seps}
}

// ParseField eagerly splits src into the full three-rank hierarchy.
func ParseField(src string, seps Separators) *Field {
	f := NewField(src, seps)
	f.materialize()
	return f
}

// ParseMandatoryField parses a field that must be present. present
// reports whether the source position existed at all (the map-lookup
// convention); when it is false the result is ErrMissingRequiredValue.
func ParseMandatoryField(src string, present bool, seps Separators) (*Field, error) {
	if !present {
		return nil, ErrMissingRequiredValue
	}
	return ParseField(src, seps), nil
}

// ParseOptionalField parses a field that may be absent, returning nil
// for absence. An empty source string is also treated as absent: the
// common "two adjacent pipes" omission reads back exactly like a
// missing trailing field. This deliberately conflates empty with
// absent, which most string libraries keep distinct; HL7 callers rely
// on the conflation.
func ParseOptionalField(src string, present bool, seps Separators) *Field {
	if !present || src == "" {
		return nil
	}
	return ParseField(src, seps)
}

func (f *Field) materialize() {
	if f.repeats != nil {
		return
	}
	f.repeats = strings.Split(f.source, string(f.seps.Repeat))
	f.components = make([][]string, len(f.repeats))
	f.subcomponents = make([][][]string, len(f.repeats))
	for i, rep := range f.repeats {
		comps := strings.Split(rep, string(f.seps.Component))
		f.components[i] = comps
		subs := make([][]string, len(comps))
		for j, comp := range comps {
			subs[j] = strings.Split(comp, string(f.seps.Subcomponent))
		}
		f.subcomponents[i] = subs
	}
}

// Value returns the field's verbatim source text.
func (f *Field) Value() string { return f.source }

// String returns the field's verbatim source text.
func (f *Field) String() string { return f.source }

// Repeats returns the field's repeats in order.
func (f *Field) Repeats() []string {
	f.materialize()
	return f.repeats
}

// RepeatCount returns the number of repeats.
func (f *Field) RepeatCount() int {
	f.materialize()
	return len(f.repeats)
}

// Repeat returns the repeat at 0-based index i, or "" when i is out
// of range. Out-of-range coordinates return the empty sentinel at
// every rank; a Field never panics on any index combination.
func (f *Field) Repeat(i int) string {
	f.materialize()
	if i < 0 || i >= len(f.repeats) {
		return ""
	}
	return f.repeats[i]
}

// Component returns the component at 0-based (repeat, component), or
// "" when either coordinate is out of range.
func (f *Field) Component(i, j int) string {
	f.materialize()
	if i < 0 || i >= len(f.components) {
		return ""
	}
	if j < 0 || j >= len(f.components[i]) {
		return ""
	}
	return f.components[i][j]
}

// Subcomponent returns the subcomponent at 0-based (repeat,
// component, subcomponent), or "" when any coordinate is out of range.
func (f *Field) Subcomponent(i, j, k int) string {
	f.materialize()
	if i < 0 || i >= len(f.subcomponents) {
		return ""
	}
	if j < 0 || j >= len(f.subcomponents[i]) {
		return ""
	}
	if k < 0 || k >= len(f.subcomponents[i][j]) {
		return ""
	}
	return f.subcomponents[i][j][k]
}

// Clone re-parses the field from its source span rather than deep
// copying the split slices. The clone is structurally identical but
// shares no hierarchy memory with the original.
func (f *Field) Clone() *Field {
	return ParseField(f.source, f.seps)
}

// Query resolves a human dotted-path address against the field.
// Accepted shapes are "R{n}" for a repeat and "R{n}.C{m}" for a
// component, both 1-based the way clinicians count. Non-digit
// characters in a token are ignored, so "r2" and "R2" are equivalent.
// A path with more than two tokens, a token without digits, or an
// out-of-range position resolves to "".
func (f *Field) Query(path string) string {
	parts := strings.Split(path, ".")
	switch len(parts) {
	case 1:
		n, ok := pathIndex(parts[0])
		if !ok {
			return ""
		}
		return f.Repeat(n - 1)
	case 2:
		n, ok := pathIndex(parts[0])
		m, ok2 := pathIndex(parts[1])
		if !ok || !ok2 {
			return ""
		}
		return f.Component(n-1, m-1)
	default:
		return ""
	}
}

// pathIndex extracts the 1-based position from a dotted-path token
// such as "R2" or "C12" by stripping every non-digit character. ok is
// false when the token holds no digits at all.
func pathIndex(token string) (n int, ok bool) {
	for i := 0; i < len(token); i++ {
		if c := token[i]; c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
			ok = true
		}
	}
	return n, ok
}
