package hl7v2

import "runtime"

// Option configures parsing.
type Option func(*Options)

// Options holds all configuration accepted by ParseMessage and by
// engine.Parser.
type Options struct {
	// LazyFields defers splitting each field into repeats, components
	// and subcomponents until the field is first indexed. The read
	// contract is identical either way; lazy wins when most fields of
	// a message are never inspected, but the deferred first access is
	// a mutation and must not be raced.
	LazyFields bool

	// SkipEmptySegments drops zero-length lines (as produced by CRLF
	// terminators or trailing newlines) instead of materializing them
	// as segments with a single empty field.
	SkipEmptySegments bool

	// WorkerCount is the number of goroutines engine.Parser uses for
	// batch parsing.
	WorkerCount int

	// MessageCacheSize enables engine.Parser's LRU of parsed messages
	// when positive. Useful for replayed or repeated traffic.
	MessageCacheSize int

	// TrackMetrics enables metric collection in engine.Parser.
	TrackMetrics bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		LazyFields:        false,
		SkipEmptySegments: true,
		WorkerCount:       runtime.NumCPU(),
		MessageCacheSize:  0,
		TrackMetrics:      false,
	}
}

// WithLazyFields defers field hierarchy materialization to first access.
func WithLazyFields(enable bool) Option {
	return func(o *Options) {
		o.LazyFields = enable
	}
}

// WithSkipEmptySegments controls whether zero-length lines are dropped.
func WithSkipEmptySegments(skip bool) Option {
	return func(o *Options) {
		o.SkipEmptySegments = skip
	}
}

// WithWorkerCount sets the batch parsing concurrency. Values below 1
// fall back to runtime.NumCPU().
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		o.WorkerCount = n
	}
}

// WithMessageCache enables an LRU of parsed messages keyed by source
// text. A size of 0 disables caching.
func WithMessageCache(size int) Option {
	return func(o *Options) {
		o.MessageCacheSize = size
	}
}

// WithMetrics enables metric collection.
func WithMetrics(enable bool) Option {
	return func(o *Options) {
		o.TrackMetrics = enable
	}
}
