// Package engine wraps the core parser with configuration, metrics
// and an optional message cache, and drives batch parsing through the
// worker pool. Callers that just need one message parsed can use
// hl7v2.ParseMessage directly; the engine earns its keep on sustained
// traffic.
package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/gohl7/hl7v2"
	"github.com/gohl7/hl7v2/cache"
	"github.com/gohl7/hl7v2/pkg/logger"
	"github.com/gohl7/hl7v2/worker"
)

// Parser parses HL7 messages with a fixed configuration. It is safe
// for concurrent use.
type Parser struct {
	options *hl7v2.Options
	opts    []hl7v2.Option

	metrics *hl7v2.Metrics
	cache   *cache.Cache[string, *hl7v2.Message]
	log     *logger.Logger
}

// New creates a Parser with the given options.
func New(opts ...hl7v2.Option) *Parser {
	options := hl7v2.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	p := &Parser{
		options: options,
		opts:    opts,
		log:     logger.Default(),
	}
	if options.TrackMetrics {
		p.metrics = hl7v2.NewMetrics()
	}
	if options.MessageCacheSize > 0 {
		p.cache = cache.New[string, *hl7v2.Message](options.MessageCacheSize)
	}
	return p
}

// SetLogger replaces the parser's logger.
func (p *Parser) SetLogger(l *logger.Logger) {
	if l != nil {
		p.log = l
	}
}

// Parse parses one message. With a message cache configured,
// identical source text returns the already-parsed Message; callers
// must then treat the tree as shared and read-only.
func (p *Parser) Parse(text string) (*hl7v2.Message, error) {
	if p.cache != nil {
		if msg, ok := p.cache.Get(text); ok {
			if p.metrics != nil {
				p.metrics.RecordCacheHit()
			}
			return msg, nil
		}
		if p.metrics != nil {
			p.metrics.RecordCacheMiss()
		}
	}

	start := time.Now()
	msg, err := hl7v2.ParseMessage(text, p.opts...)

	if p.metrics != nil {
		segments := 0
		if msg != nil {
			segments = msg.SegmentCount()
		}
		p.metrics.RecordParse(time.Since(start), segments, err)
	}
	if err != nil {
		p.log.Debug("parse failed: %v", err)
		return nil, err
	}

	if p.cache != nil {
		p.cache.Set(text, msg)
	}
	p.log.Debug("parsed message: %d segments", msg.SegmentCount())
	return msg, nil
}

// ParseRaw wraps text for scan-on-demand access without building a
// tree. It never fails; a malformed message simply answers "" to
// every lookup.
func (p *Parser) ParseRaw(text string) *hl7v2.RawMessage {
	return hl7v2.NewRawMessage(text)
}

// GetField answers a single field lookup without retaining anything:
// the owned-text scan of RawMessage. Prefer this over Parse when only
// one or two fields of a message are needed.
func (p *Parser) GetField(text, segmentType string, fieldIndex int) string {
	if p.metrics != nil {
		p.metrics.RecordFieldLookup()
	}
	return hl7v2.NewRawMessage(text).GetField(segmentType, fieldIndex)
}

// ParseBatch parses texts in parallel and returns results in job
// order. The context cancels outstanding work; already-parsed results
// are still returned.
func (p *Parser) ParseBatch(ctx context.Context, texts []string) []*worker.JobResult {
	pool := worker.NewPool(p, p.options.WorkerCount)

	go func() {
		for i, text := range texts {
			select {
			case <-ctx.Done():
				return
			default:
			}
			pool.Submit(worker.Job{ID: batchID(i), Text: text})
		}
	}()

	results := make([]*worker.JobResult, 0, len(texts))
	for range texts {
		select {
		case <-ctx.Done():
			pool.Close()
			return results
		case r := <-pool.Results():
			results = append(results, r)
		}
	}
	pool.Close()

	// Pool workers race each other; hand results back in job order.
	byID := make(map[string]*worker.JobResult, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}
	ordered := make([]*worker.JobResult, 0, len(results))
	for i := range texts {
		if r, ok := byID[batchID(i)]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// Metrics returns the parser's metrics, or nil when metrics are
// disabled.
func (p *Parser) Metrics() *hl7v2.Metrics {
	return p.metrics
}

// CacheStats returns message cache statistics; the zero Stats when
// caching is disabled.
func (p *Parser) CacheStats() cache.Stats {
	if p.cache == nil {
		return cache.Stats{}
	}
	return p.cache.Stats()
}

func batchID(i int) string {
	return "batch-" + strconv.Itoa(i)
}
