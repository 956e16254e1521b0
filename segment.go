package hl7v2

import (
	"strings"

	"github.com/gohl7/hl7v2/pool"
)

// Segment is one terminator-delimited line of a message. It is a
// closed union: *MSHSegment for the typed header and *GenericSegment
// for every other segment type. Dispatch is data driven, on the value
// of the line's first field. Future typed segments extend the union
// without touching splitting or addressing.
//
// Raw token indexing is uniform across both variants: the segment
// code is field 0, exactly as produced by splitting the line on the
// field delimiter. HL7-numbered access, where MSH-1 is the separator
// character itself, is specific to MSHSegment (see FieldByNumber).
type Segment interface {
	// Type returns the segment's code, the value of its first field.
	Type() string
	// Source returns the verbatim line text.
	Source() string
	// Field returns the field at raw token index i, or nil when i is
	// out of range.
	Field(i int) *Field
	// FieldCount returns the number of raw tokens, the segment code
	// included. Every segment has at least one field.
	FieldCount() int

	segment()
}

// GenericSegment is an untyped segment: an ordered bag of fields with
// no per-position grammar applied.
type GenericSegment struct {
	source string
	seps   Separators
	fields []*Field
}

// ParseSegment splits line on the field delimiter and dispatches on
// the first token: the reserved header code yields an *MSHSegment,
// anything else a *GenericSegment. Parsing is all or nothing; the
// first field failure aborts the whole segment.
func ParseSegment(line string, seps Separators) (Segment, error) {
	return parseSegment(line, seps, false)
}

func parseSegment(line string, seps Separators, lazy bool) (Segment, error) {
	// The token container is scratch: the spans it holds survive as
	// field sources, the slice itself goes back to the pool.
	scratch := pool.AcquireStringSlice()
	defer pool.ReleaseStringSlice(scratch)
	tokens := appendSplit(*scratch, line, seps.Field)
	*scratch = tokens[:0]

	if tokens[0] == mshCode {
		return ParseMSHSegment(line, seps)
	}
	fields := make([]*Field, len(tokens))
	for i, tok := range tokens {
		if lazy {
			fields[i] = NewField(tok, seps)
		} else {
			fields[i] = ParseField(tok, seps)
		}
	}
	return &GenericSegment{source: line, seps: seps, fields: fields}, nil
}

func (s *GenericSegment) segment() {}

// Type returns the value of the segment's first field.
func (s *GenericSegment) Type() string { return s.fields[0].Value() }

// Source returns the verbatim line text.
func (s *GenericSegment) Source() string { return s.source }

// String returns the verbatim line text.
func (s *GenericSegment) String() string { return s.source }

// Fields returns the segment's fields in order, the code included.
func (s *GenericSegment) Fields() []*Field { return s.fields }

// FieldCount returns the number of fields, the code included.
func (s *GenericSegment) FieldCount() int { return len(s.fields) }

// Field returns the field at raw token index i, or nil out of range.
func (s *GenericSegment) Field(i int) *Field {
	if i < 0 || i >= len(s.fields) {
		return nil
	}
	return s.fields[i]
}

// FieldValue returns the verbatim text of the field at raw token
// index i, or "" out of range.
func (s *GenericSegment) FieldValue(i int) string {
	f := s.Field(i)
	if f == nil {
		return ""
	}
	return f.Value()
}

// Query resolves a dotted-path address against the segment. The first
// token selects a field, "F3" being raw token index 3; remaining
// tokens are resolved by Field.Query ("F3.R2.C1"). Unresolvable paths
// yield "".
//
// Note the convention mismatch this preserves: F positions are raw
// token indexes while R and C positions are 1-based.
func (s *GenericSegment) Query(path string) string {
	head, rest, chained := strings.Cut(path, ".")
	n, ok := pathIndex(head)
	if !ok {
		return ""
	}
	f := s.Field(n)
	if f == nil {
		return ""
	}
	if !chained {
		return f.Value()
	}
	return f.Query(rest)
}

// Clone re-parses the segment from its source line.
func (s *GenericSegment) Clone() *GenericSegment {
	seg, _ := parseSegment(s.source, s.seps, false)
	return seg.(*GenericSegment)
}
