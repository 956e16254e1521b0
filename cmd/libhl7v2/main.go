// Command libhl7v2 builds the C shared library exposing the parser
// to foreign runtimes (.NET, Java, Python and friends):
//
//	go build -buildmode=c-shared -o libhl7v2.so ./cmd/libhl7v2
//
// All entry points take and return C-standard null-terminated
// strings. Every string returned by hl7v2_get_field and
// hl7v2_get_field_from_message is a fresh allocation the caller must
// release with hl7v2_free_string, and every handle returned by
// hl7v2_build_message must be released exactly once with
// hl7v2_free_message. Null pointers in are checked and answered with
// 0 or null out; non-null invalid pointers are undefined behaviour by
// contract, since the boundary can validate null-ness but not
// provenance.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/gohl7/hl7v2/capi"
)

// hl7v2_build_message parses text into a message tree and returns an
// opaque handle, or 0 when text is null or does not parse.
//
//export hl7v2_build_message
func hl7v2_build_message(text *C.char) C.ulonglong {
	if text == nil {
		return 0
	}
	return C.ulonglong(capi.BuildMessage(C.GoString(text)))
}

// hl7v2_free_message releases a handle returned by
// hl7v2_build_message. The null handle is a no-op.
//
//export hl7v2_free_message
func hl7v2_free_message(handle C.ulonglong) {
	capi.ReleaseMessage(capi.Handle(handle))
}

// hl7v2_get_field returns the field at field_index of the first
// segment of type segment_type, the segment code counting as index 0.
// The result is always a newly allocated string, empty when the
// handle is dead or the address is out of range; null only when
// segment_type is null.
//
//export hl7v2_get_field
func hl7v2_get_field(handle C.ulonglong, segmentType *C.char, fieldIndex C.size_t) *C.char {
	if segmentType == nil {
		return nil
	}
	value := capi.GetField(capi.Handle(handle), C.GoString(segmentType), int(fieldIndex))
	return C.CString(value)
}

// hl7v2_get_field_from_message is the one-shot variant: it scans
// message directly without ever building a handle. Cheaper than
// hl7v2_build_message when only a field or two is needed.
//
//export hl7v2_get_field_from_message
func hl7v2_get_field_from_message(message, segmentType *C.char, fieldIndex C.size_t) *C.char {
	if message == nil || segmentType == nil {
		return nil
	}
	value := capi.GetFieldFromText(C.GoString(message), C.GoString(segmentType), int(fieldIndex))
	return C.CString(value)
}

// hl7v2_free_string releases a string returned by hl7v2_get_field or
// hl7v2_get_field_from_message. Null is a no-op.
//
//export hl7v2_free_string
func hl7v2_free_string(s *C.char) {
	if s == nil {
		return
	}
	C.free(unsafe.Pointer(s))
}

func main() {}
