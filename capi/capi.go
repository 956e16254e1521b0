package capi

import (
	"github.com/gohl7/hl7v2"
	"github.com/gohl7/hl7v2/pkg/logger"
)

// defaultRegistry holds every message built through the package-level
// boundary functions. The C layer has no place to thread a registry
// through, so the boundary shares one.
var defaultRegistry = NewRegistry()

// BuildMessage parses text into a fully materialized tree and returns
// an owning handle. The handle must be released exactly once with
// ReleaseMessage. The null handle is returned when the text does not
// parse.
func BuildMessage(text string) Handle {
	msg, err := hl7v2.ParseMessage(text)
	if err != nil {
		logger.Debug("build_message: %v", err)
		return 0
	}
	return defaultRegistry.Put(msg)
}

// ReleaseMessage releases the handle and the message it owns. The
// null handle is a no-op. Double release of the same handle value is
// a caller error the registry cannot reliably detect once the slot is
// reused; release exactly once.
func ReleaseMessage(h Handle) {
	defaultRegistry.Drop(h)
}

// GetField looks a field up through a handle built by BuildMessage:
// first segment of the requested type, raw token index with the
// segment code as token 0. Dead handles, missing segments and
// out-of-range indexes all answer "".
func GetField(h Handle, segmentType string, fieldIndex int) string {
	msg, ok := defaultRegistry.Get(h)
	if !ok {
		return ""
	}
	return msg.GetField(segmentType, fieldIndex)
}

// GetFieldFromText answers a single lookup directly from text without
// ever minting a handle, by re-scanning the text. When only one or
// two fields are needed this beats BuildMessage; past roughly twenty
// lookups against the same message, building the tree wins.
func GetFieldFromText(text, segmentType string, fieldIndex int) string {
	return hl7v2.NewRawMessage(text).GetField(segmentType, fieldIndex)
}

// LiveHandles reports the number of currently live handles, for leak
// checks in embedding hosts.
func LiveHandles() int {
	return defaultRegistry.Len()
}
