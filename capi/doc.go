// Package capi backs the C-compatible boundary of the library.
//
// Foreign runtimes cannot be handed slices into Go memory: the cgo
// pointer rules forbid C code retaining Go pointers across calls, and
// a caller with no borrow discipline could not honor the lifetimes
// anyway. The boundary therefore deals only in two currencies: opaque
// integer handles minted by a registry that keeps the parsed Message
// alive on the Go side, and freshly copied C strings for every value
// that crosses outward.
//
// The exported C symbols live in cmd/libhl7v2, built with
// -buildmode=c-shared; this package holds everything testable without
// cgo. Lookup semantics match the core exactly: missing segments and
// out-of-range indexes answer the empty string, never a fault.
package capi
