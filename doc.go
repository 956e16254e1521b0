// Package hl7v2 decomposes raw HL7 v2 clinical messages into an
// addressable hierarchy of segments, fields, repeats, components and
// subcomponents without copying the underlying text.
//
// Go substrings share their backing array, so every value in the
// parsed tree is a view into the original message text; the tree is
// cheap to build and cheap to discard.
//
// # Quick Start
//
//	msg, err := hl7v2.ParseMessage(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Raw token access: the segment code counts as field 0.
//	ssn := msg.GetField("PID", 3)
//
//	// Dotted-path access, 1-based the way clinicians count.
//	name := msg.Query("PID.F5.R1.C1")
//
// # Delimiter Bootstrap
//
// An HL7 message declares its own delimiters in its MSH segment: the
// character after "MSH" is the field separator, and the next four are
// the component, repeat, escape and subcomponent separators. The
// parser resolves these from the first line before splitting anything
// else; malformed or truncated headers silently fall back to the
// standard set ("|^~\&" with "\r" terminating segments). Real-world
// traffic is not always conformant, and leniency here is deliberate.
//
// # Access Strategies
//
// ParseMessage materializes the full tree up front and is the right
// choice when a message will be interrogated many times. RawMessage
// keeps only the text and re-scans it on every GetField call; it wins
// when just a handful of fields are needed, and it is what the C
// boundary layer (package capi) uses for one-shot lookups. Both
// return identical field text for identical input.
//
// # Sentinel Policy
//
// Out-of-range addressing, numeric or dotted-path, at any rank,
// returns the empty string rather than panicking or erroring. Absent
// and empty are deliberately conflated for optional fields: two
// adjacent delimiters and a missing trailing field both read back as
// absent. Callers that need to distinguish them must do so at a
// higher layer. The only hard failures the package raises are a
// missing mandatory value and a structurally broken segment.
//
// # Limitations
//
// Escape sequences are not decoded: a backslash-escaped delimiter is
// split on like any other occurrence of that character. Only the MSH
// segment is typed; all other segment types are untyped field bags.
package hl7v2
