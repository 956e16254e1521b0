// Package worker provides a goroutine pool for parsing batches of
// HL7 messages in parallel. Each message parses independently; the
// core shares no state between messages, so the pool needs no
// coordination beyond job and result channels.
package worker
