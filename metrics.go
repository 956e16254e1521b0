package hl7v2

import (
	"sync/atomic"
	"time"
)

// Metrics tracks parsing activity using lock-free atomic counters.
// All methods are safe for concurrent use. engine.Parser records into
// a Metrics when built with WithMetrics(true).
type Metrics struct {
	messagesParsed atomic.Uint64
	parseFailures  atomic.Uint64
	segmentsParsed atomic.Uint64

	// Timing, stored as nanoseconds.
	parseTimeTotal atomic.Uint64
	parseTimeMin   atomic.Uint64
	parseTimeMax   atomic.Uint64

	fieldLookups atomic.Uint64

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Min starts at max uint64 so the first sample becomes the minimum.
	m.parseTimeMin.Store(^uint64(0))
	return m
}

// RecordParse records a completed parse attempt.
func (m *Metrics) RecordParse(duration time.Duration, segments int, err error) {
	m.messagesParsed.Add(1)
	if err != nil {
		m.parseFailures.Add(1)
	}
	m.segmentsParsed.Add(uint64(segments))

	ns := uint64(duration.Nanoseconds())
	m.parseTimeTotal.Add(ns)

	for {
		old := m.parseTimeMin.Load()
		if ns >= old || m.parseTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.parseTimeMax.Load()
		if ns <= old || m.parseTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordFieldLookup records a field access.
func (m *Metrics) RecordFieldLookup() {
	m.fieldLookups.Add(1)
}

// RecordCacheHit records a message cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a message cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// MessagesParsed returns the total parse attempts.
func (m *Metrics) MessagesParsed() uint64 { return m.messagesParsed.Load() }

// ParseFailures returns the number of failed parses.
func (m *Metrics) ParseFailures() uint64 { return m.parseFailures.Load() }

// SegmentsParsed returns the total segments across all parses.
func (m *Metrics) SegmentsParsed() uint64 { return m.segmentsParsed.Load() }

// FieldLookups returns the total recorded field accesses.
func (m *Metrics) FieldLookups() uint64 { return m.fieldLookups.Load() }

// CacheHits returns the total message cache hits.
func (m *Metrics) CacheHits() uint64 { return m.cacheHits.Load() }

// CacheMisses returns the total message cache misses.
func (m *Metrics) CacheMisses() uint64 { return m.cacheMisses.Load() }

// CacheHitRate returns the cache hit rate from 0.0 to 1.0.
func (m *Metrics) CacheHitRate() float64 {
	hits := m.cacheHits.Load()
	total := hits + m.cacheMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// AverageParseTime returns the mean parse duration.
func (m *Metrics) AverageParseTime() time.Duration {
	total := m.messagesParsed.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.parseTimeTotal.Load() / total)
}

// MinParseTime returns the fastest recorded parse.
func (m *Metrics) MinParseTime() time.Duration {
	minVal := m.parseTimeMin.Load()
	if minVal == ^uint64(0) {
		return 0
	}
	return time.Duration(minVal)
}

// MaxParseTime returns the slowest recorded parse.
func (m *Metrics) MaxParseTime() time.Duration {
	return time.Duration(m.parseTimeMax.Load())
}

// Snapshot is a point-in-time view of all metrics, shaped for JSON
// export.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	MessagesParsed uint64 `json:"messages_parsed"`
	ParseFailures  uint64 `json:"parse_failures"`
	SegmentsParsed uint64 `json:"segments_parsed"`

	AvgParseTimeNs uint64 `json:"avg_parse_time_ns"`
	MinParseTimeNs uint64 `json:"min_parse_time_ns"`
	MaxParseTimeNs uint64 `json:"max_parse_time_ns"`

	FieldLookups uint64 `json:"field_lookups"`

	CacheHits    uint64  `json:"cache_hits"`
	CacheMisses  uint64  `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Timestamp:      time.Now(),
		MessagesParsed: m.MessagesParsed(),
		ParseFailures:  m.ParseFailures(),
		SegmentsParsed: m.SegmentsParsed(),
		AvgParseTimeNs: uint64(m.AverageParseTime().Nanoseconds()),
		MinParseTimeNs: uint64(m.MinParseTime().Nanoseconds()),
		MaxParseTimeNs: uint64(m.MaxParseTime().Nanoseconds()),
		FieldLookups:   m.FieldLookups(),
		CacheHits:      m.CacheHits(),
		CacheMisses:    m.CacheMisses(),
		CacheHitRate:   m.CacheHitRate(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.messagesParsed.Store(0)
	m.parseFailures.Store(0)
	m.segmentsParsed.Store(0)
	m.parseTimeTotal.Store(0)
	m.parseTimeMin.Store(^uint64(0))
	m.parseTimeMax.Store(0)
	m.fieldLookups.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
}
