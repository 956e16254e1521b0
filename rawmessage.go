package hl7v2

// RawMessage holds a message as nothing but its text and re-scans it
// on every lookup. No tree is retained between calls.
//
// This trades lookup speed for construction cost: building the full
// tree pays off after roughly twenty field accesses against the same
// message, and below that a RawMessage is cheaper. It is also the
// self-contained representation the C boundary layer prefers, since
// no interior structure ever needs to cross with it. For identical
// input, GetField here and Message.GetField return identical text.
type RawMessage struct {
	text string
	seps Separators
}

// NewRawMessage wraps text, resolving the delimiter set from its
// header line once up front.
func NewRawMessage(text string) *RawMessage {
	return &RawMessage{text: text, seps: SeparatorsFromHeader(text)}
}

// Text returns the verbatim message text.
func (m *RawMessage) Text() string { return m.text }

// String returns the verbatim message text.
func (m *RawMessage) String() string { return m.text }

// Separators returns the delimiter set resolved for this message.
func (m *RawMessage) Separators() Separators { return m.seps }

// GetField scans for the first line whose first three characters
// equal segmentType, splits it on the field delimiter, and returns
// the token at fieldIndex, the segment code being token 0. Missing
// segment or out-of-range index returns "".
func (m *RawMessage) GetField(segmentType string, fieldIndex int) string {
	line, ok := m.findSegment(segmentType)
	if !ok {
		return ""
	}
	tok, _ := nthToken(line, m.seps.Field, fieldIndex)
	return tok
}

// findSegment returns the first line starting with segmentType.
func (m *RawMessage) findSegment(segmentType string) (string, bool) {
	text := m.text
	start := 0
	for pos := 0; pos <= len(text); pos++ {
		if pos < len(text) {
			if c := text[pos]; c != m.seps.Segment && c != '\n' {
				continue
			}
		}
		line := text[start:pos]
		start = pos + 1
		if len(line) >= len(segmentType) && line[:len(segmentType)] == segmentType {
			return line, true
		}
	}
	return "", false
}
