package capi

import (
	"sync"

	"github.com/gohl7/hl7v2"
)

// Handle is an opaque reference to a parsed message held by a
// Registry. 0 is the null handle and never refers to a live message.
type Handle uint64

// Registry keeps parsed messages alive while foreign callers hold
// handles to them. Slots are recycled through a free list, so handle
// values stay small and dense.
//
// A handle must be released exactly once. Releasing the null handle
// is a no-op; releasing an already-dead handle is a no-op here too,
// but the single-release discipline remains the caller's contract:
// the registry cannot detect a stale handle whose slot has been
// reused.
type Registry struct {
	mu       sync.RWMutex
	entries  []registryEntry
	freeList []Handle
}

type registryEntry struct {
	msg   *hl7v2.Message
	valid bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make([]registryEntry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Put stores msg and returns its handle.
func (r *Registry) Put(msg *hl7v2.Message) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := registryEntry{msg: msg, valid: true}
	if n := len(r.freeList); n > 0 {
		h := r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
		r.entries[h-1] = e
		return h
	}
	r.entries = append(r.entries, e)
	return Handle(len(r.entries))
}

// Get returns the message for h, or nil, false for the null handle
// and dead or out-of-range handles.
func (r *Registry) Get(h Handle) (*hl7v2.Message, bool) {
	if h == 0 {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := int(h - 1)
	if idx >= len(r.entries) || !r.entries[idx].valid {
		return nil, false
	}
	return r.entries[idx].msg, true
}

// Drop releases h's slot for reuse. It reports whether h referred to
// a live message; the null handle and dead handles return false.
func (r *Registry) Drop(h Handle) bool {
	if h == 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := int(h - 1)
	if idx >= len(r.entries) || !r.entries[idx].valid {
		return false
	}
	r.entries[idx] = registryEntry{}
	r.freeList = append(r.freeList, h)
	return true
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries) - len(r.freeList)
}
