package hl7v2

import "strings"

// appendSplit appends the d-delimited spans of s to dst and returns
// the extended slice. Splitting is total: an empty s contributes a
// single empty span, never zero. Each span is a substring of s; only
// the container allocates, which lets callers reuse pooled slices.
func appendSplit(dst []string, s string, d byte) []string {
	for {
		i := strings.IndexByte(s, d)
		if i < 0 {
			return append(dst, s)
		}
		dst = append(dst, s[:i])
		s = s[i+1:]
	}
}

// nthToken returns the idx-th d-delimited span of s without splitting
// the rest, and whether that many spans exist. Span 0 is the text
// before the first delimiter.
func nthToken(s string, d byte, idx int) (string, bool) {
	if idx < 0 {
		return "", false
	}
	for n := 0; ; n++ {
		i := strings.IndexByte(s, d)
		tok := s
		if i >= 0 {
			tok = s[:i]
		}
		if n == idx {
			return tok, true
		}
		if i < 0 {
			return "", false
		}
		s = s[i+1:]
	}
}
