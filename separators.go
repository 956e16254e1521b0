package hl7v2

// mshCode is the reserved 3-letter code of the header segment.
const mshCode = "MSH"

// Separators holds the six delimiter characters that govern all
// splitting for a message. A message's MSH segment may declare its
// own set, and that set, not the default, is used for every
// subsequent split of that message.
//
// Separators is a small value type and is copied into every structure
// that needs to re-split text.
type Separators struct {
	// Segment terminates a segment line. Always '\r' on the wire.
	Segment byte
	// Field separates fields within a segment.
	Field byte
	// Repeat separates repetitions of a field.
	Repeat byte
	// Component separates components within a repeat.
	Component byte
	// Subcomponent separates subcomponents within a component.
	Subcomponent byte
	// Escape introduces an in-band escape sequence. Recorded but not
	// interpreted: escaped delimiters are split on like any other.
	Escape byte
}

// DefaultSeparators returns the standard HL7 delimiter set:
// '\r' segment, '|' field, '~' repeat, '^' component,
// '&' subcomponent, '\' escape.
func DefaultSeparators() Separators {
	return Separators{
		Segment:      '\r',
		Field:        '|',
		Repeat:       '~',
		Component:    '^',
		Subcomponent: '&',
		Escape:       '\\',
	}
}

// SeparatorsFromHeader derives a delimiter set from the message's own
// MSH line. The character after the code is the field separator and
// the next four are the component, repeat, escape and subcomponent
// separators, in that fixed order (the canonical "MSH|^~\&").
//
// Anything that does not look like an MSH line with at least the
// field separator and the four encoding characters falls back to
// DefaultSeparators. No error is ever signaled: real-world feeds are
// not always conformant and a best-effort default keeps them readable.
func SeparatorsFromHeader(line string) Separators {
	s := DefaultSeparators()
	if len(line) < 8 || line[:3] != mshCode {
		return s
	}
	s.Field = line[3]
	s.Component = line[4]
	s.Repeat = line[5]
	s.Escape = line[6]
	s.Subcomponent = line[7]
	return s
}
