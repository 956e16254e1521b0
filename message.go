package hl7v2

import "strings"

// Message is an ordered sequence of segments parsed from a single
// HL7 v2 message, with the hierarchy materialized for random access.
// Every value in the tree is a substring of the source text.
//
// A Message is safe for concurrent reads once parsed, unless it was
// built with WithLazyFields; lazy materialization mutates fields on
// first access. Independent Messages share no state and may be parsed
// concurrently.
type Message struct {
	source   string
	seps     Separators
	segments []Segment
}

// ParseMessage parses text into a Message in a single forward scan.
//
// The delimiter set is bootstrapped from the first line before any
// other segment is split: the message header declares the delimiters
// used to parse the message itself. Lines terminate on the segment
// terminator; a bare '\n' is accepted too and CRLF pairs collapse to
// one terminator, since real-world feeds disagree about line endings.
// A final segment without a trailing terminator is still finalized.
//
// Parsing is all or nothing: the first broken segment fails the whole
// message.
func ParseMessage(text string, opts ...Option) (*Message, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	seps := SeparatorsFromHeader(text)
	m := &Message{source: text, seps: seps}

	start := 0
	for pos := 0; pos <= len(text); pos++ {
		if pos < len(text) {
			if c := text[pos]; c != seps.Segment && c != '\n' {
				continue
			}
		}
		line := text[start:pos]
		start = pos + 1
		if line == "" {
			// Zero-length lines come from CRLF pairs, trailing
			// newlines, or the empty input itself.
			if o.SkipEmptySegments || pos == len(text) {
				continue
			}
		}
		seg, err := parseSegment(line, seps, o.LazyFields)
		if err != nil {
			return nil, err
		}
		m.segments = append(m.segments, seg)
	}

	return m, nil
}

// Source returns the verbatim message text.
func (m *Message) Source() string { return m.source }

// String returns the verbatim message text.
func (m *Message) String() string { return m.source }

// Separators returns the delimiter set resolved for this message.
func (m *Message) Separators() Separators { return m.seps }

// Segments returns the message's segments in order.
func (m *Message) Segments() []Segment { return m.segments }

// SegmentCount returns the number of segments.
func (m *Message) SegmentCount() int { return len(m.segments) }

// MSH returns the message's first header segment, or nil if none.
func (m *Message) MSH() *MSHSegment {
	for _, seg := range m.segments {
		if msh, ok := seg.(*MSHSegment); ok {
			return msh
		}
	}
	return nil
}

// SegmentsByType returns all segments whose code equals segmentType,
// in message order.
func (m *Message) SegmentsByType(segmentType string) []Segment {
	var out []Segment
	for _, seg := range m.segments {
		if seg.Type() == segmentType {
			out = append(out, seg)
		}
	}
	return out
}

// segmentByType returns the first segment whose code equals
// segmentType, or nil.
func (m *Message) segmentByType(segmentType string) Segment {
	for _, seg := range m.segments {
		if seg.Type() == segmentType {
			return seg
		}
	}
	return nil
}

// GetField returns the verbatim text of a field addressed by segment
// code and raw token index, the code itself being token 0. The first
// segment of the requested type is consulted. Missing segment or
// out-of-range index returns "". RawMessage.GetField answers the same
// question from unparsed text; the two always agree.
func (m *Message) GetField(segmentType string, fieldIndex int) string {
	seg := m.segmentByType(segmentType)
	if seg == nil {
		return ""
	}
	f := seg.Field(fieldIndex)
	if f == nil {
		return ""
	}
	return f.Value()
}

// Query resolves a message-level dotted path such as "PID.F3" or
// "OBX.F5.R1.C2". The first token names a segment type; the rest is
// resolved by GenericSegment.Query. A path that is just a segment
// code returns that segment's verbatim line. Unresolvable paths
// yield "".
func (m *Message) Query(path string) string {
	code, rest, chained := strings.Cut(path, ".")
	seg := m.segmentByType(code)
	if seg == nil {
		return ""
	}
	if !chained {
		return seg.Source()
	}
	switch s := seg.(type) {
	case *GenericSegment:
		return s.Query(rest)
	case *MSHSegment:
		return s.AsGeneric().Query(rest)
	default:
		return ""
	}
}

// Clone re-parses the message from its source text rather than deep
// copying the tree.
func (m *Message) Clone() *Message {
	dolly, err := ParseMessage(m.source)
	if err != nil {
		// The source already parsed once; re-parsing it cannot fail.
		panic(err)
	}
	return dolly
}
