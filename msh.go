package hl7v2

import (
	"fmt"
	"strings"
)

// MSHSegment is the fully typed message header. Almost every HL7
// message carries one, and it drives application behaviour enough to
// earn named positional fields instead of a bag.
//
// MSH-1 and MSH-2 are special: MSH-1 is the field separator character
// itself (it is the delimiter, not split text) and MSH-2 is the
// remaining four delimiter characters. The header therefore both uses
// a Separators value to parse itself and produces the canonical
// Separators for the rest of the message; resolve the delimiters with
// SeparatorsFromHeader before splitting anything else.
//
// Optional fields are nil when absent. Mandatory fields are
// DateTimeOfMessage, MessageType, MessageControlID, ProcessingID and
// VersionID.
type MSHSegment struct {
	source string
	fields []*Field

	FieldSeparator     byte
	EncodingCharacters Separators

	SendingApplication   *Field
	SendingFacility      *Field
	ReceivingApplication *Field
	ReceivingFacility    *Field
	DateTimeOfMessage    *Field
	Security             *Field
	MessageType          *Field
	MessageControlID     *Field
	ProcessingID         *Field
	VersionID            *Field

	SequenceNumber                *Field
	ContinuationPointer           *Field
	AcceptAcknowledgmentType      *Field
	ApplicationAcknowledgmentType *Field
	CountryCode                   *Field
	CharacterSet                  *Field
	PrincipalLanguageOfMessage    *Field
}

// ParseMSHSegment parses a header line into the typed record. The
// line must start with the reserved code; each mandatory position
// missing from the source aborts the parse with
// ErrMissingRequiredValue.
func ParseMSHSegment(line string, seps Separators) (*MSHSegment, error) {
	tokens := strings.Split(line, string(seps.Field))
	if tokens[0] != mshCode {
		return nil, genericErr("segment line does not start with %s", mshCode)
	}

	fields := make([]*Field, len(tokens))
	for i, tok := range tokens {
		fields[i] = ParseField(tok, seps)
	}

	// Token 1 holds the encoding characters and is consumed as
	// delimiters, not as a value; named fields start at token 2.
	pos := 2
	next := func() (string, bool) {
		if pos >= len(tokens) {
			return "", false
		}
		tok := tokens[pos]
		pos++
		return tok, true
	}

	var err error
	mand := func(name string) *Field {
		src, present := next()
		f, ferr := ParseMandatoryField(src, present, seps)
		if ferr != nil && err == nil {
			err = fmt.Errorf("%s: %w", name, ferr)
		}
		return f
	}
	opt := func() *Field {
		src, present := next()
		return ParseOptionalField(src, present, seps)
	}

	m := &MSHSegment{
		source:             line,
		fields:             fields,
		FieldSeparator:     seps.Field,
		EncodingCharacters: seps,
	}
	m.SendingApplication = opt()
	m.SendingFacility = opt()
	m.ReceivingApplication = opt()
	m.ReceivingFacility = opt()
	m.DateTimeOfMessage = mand("MSH-7 date/time of message")
	m.Security = opt()
	m.MessageType = mand("MSH-9 message type")
	m.MessageControlID = mand("MSH-10 message control id")
	m.ProcessingID = mand("MSH-11 processing id")
	m.VersionID = mand("MSH-12 version id")
	m.SequenceNumber = opt()
	m.ContinuationPointer = opt()
	m.AcceptAcknowledgmentType = opt()
	m.ApplicationAcknowledgmentType = opt()
	m.CountryCode = opt()
	m.CharacterSet = opt()
	m.PrincipalLanguageOfMessage = opt()

	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MSHSegment) segment() {}

// Type returns the reserved header code.
func (m *MSHSegment) Type() string { return mshCode }

// Source returns the verbatim line text.
func (m *MSHSegment) Source() string { return m.source }

// String returns the verbatim line text.
func (m *MSHSegment) String() string { return m.source }

// Field returns the field at raw token index i, or nil out of range.
// Token indexing here matches GenericSegment exactly: the code is
// token 0 and the encoding characters are token 1.
func (m *MSHSegment) Field(i int) *Field {
	if i < 0 || i >= len(m.fields) {
		return nil
	}
	return m.fields[i]
}

// FieldCount returns the number of raw tokens, the code included.
func (m *MSHSegment) FieldCount() int { return len(m.fields) }

// FieldByNumber returns the text of the HL7-numbered field MSH-n,
// 1-based: MSH-1 is the field separator character, MSH-2 the four
// encoding characters, MSH-3 the sending application, and so on
// through MSH-19. Absent optional fields and positions outside 1..19
// return "".
func (m *MSHSegment) FieldByNumber(n int) string {
	optVal := func(f *Field) string {
		if f == nil {
			return ""
		}
		return f.Value()
	}
	switch n {
	case 1:
		return string(m.FieldSeparator)
	case 2:
		if len(m.fields) > 1 {
			return m.fields[1].Value()
		}
		return ""
	case 3:
		return optVal(m.SendingApplication)
	case 4:
		return optVal(m.SendingFacility)
	case 5:
		return optVal(m.ReceivingApplication)
	case 6:
		return optVal(m.ReceivingFacility)
	case 7:
		return optVal(m.DateTimeOfMessage)
	case 8:
		return optVal(m.Security)
	case 9:
		return optVal(m.MessageType)
	case 10:
		return optVal(m.MessageControlID)
	case 11:
		return optVal(m.ProcessingID)
	case 12:
		return optVal(m.VersionID)
	case 13:
		return optVal(m.SequenceNumber)
	case 14:
		return optVal(m.ContinuationPointer)
	case 15:
		return optVal(m.AcceptAcknowledgmentType)
	case 16:
		return optVal(m.ApplicationAcknowledgmentType)
	case 17:
		return optVal(m.CountryCode)
	case 18:
		return optVal(m.CharacterSet)
	case 19:
		return optVal(m.PrincipalLanguageOfMessage)
	default:
		return ""
	}
}

// AsGeneric re-parses the header line as an untyped field bag, for
// callers that want uniform bag access across all segments.
func (m *MSHSegment) AsGeneric() *GenericSegment {
	seps := m.EncodingCharacters
	fields := make([]*Field, len(m.fields))
	copy(fields, m.fields)
	return &GenericSegment{source: m.source, seps: seps, fields: fields}
}

// Clone re-parses the header from its source line.
func (m *MSHSegment) Clone() *MSHSegment {
	dolly, err := ParseMSHSegment(m.source, m.EncodingCharacters)
	if err != nil {
		// The source already parsed once; re-parsing it cannot fail.
		panic(err)
	}
	return dolly
}
