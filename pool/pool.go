// Package pool provides sync.Pool-backed scratch buffers for the
// parser's hot path.
package pool

import "sync"

// stringSlicePool recycles the token scratch used when splitting a
// segment line into fields. The slice is cleared, not reallocated,
// between segments.
var stringSlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, 32)
		return &s
	},
}

// AcquireStringSlice gets an empty string slice from the pool.
func AcquireStringSlice() *[]string {
	s := stringSlicePool.Get().(*[]string)
	*s = (*s)[:0]
	return s
}

// ReleaseStringSlice returns a string slice to the pool. Oversized
// slices are dropped so a single pathological segment cannot pin
// memory for the lifetime of the pool.
func ReleaseStringSlice(s *[]string) {
	if s == nil {
		return
	}
	if cap(*s) <= 1024 {
		stringSlicePool.Put(s)
	}
}
