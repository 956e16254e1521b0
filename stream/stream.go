// Package stream reads multi-message HL7 v2 feeds incrementally.
//
// Batch files carry FHS/BHS envelope segments around a run of
// messages, each beginning with an MSH line. The Reader splits such a
// feed into individual messages, parses each one, and emits results
// on a channel in feed order.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gohl7/hl7v2"
)

// MessageResult is the outcome for a single message of the feed.
type MessageResult struct {
	// Index is the position of the message in the feed, starting at 0.
	// Index -1 marks a feed-level error.
	Index int

	// ControlID is MSH-10 of the message when it parsed.
	ControlID string

	// Message is the parsed message, nil when Err is set.
	Message *hl7v2.Message

	// Err is set when the message failed to parse.
	Err error
}

// ParseFunc parses one message's text.
type ParseFunc func(text string) (*hl7v2.Message, error)

// Reader splits a feed into messages and parses them.
type Reader struct {
	parse       ParseFunc
	bufferSize  int
	workerCount int
}

// NewReader creates a Reader. A nil parseFunc uses hl7v2.ParseMessage
// with default options.
func NewReader(parseFunc ParseFunc) *Reader {
	if parseFunc == nil {
		parseFunc = func(text string) (*hl7v2.Message, error) {
			return hl7v2.ParseMessage(text)
		}
	}
	return &Reader{
		parse:       parseFunc,
		bufferSize:  100,
		workerCount: 4,
	}
}

// WithBufferSize sets the result channel buffer size.
func (r *Reader) WithBufferSize(size int) *Reader {
	if size > 0 {
		r.bufferSize = size
	}
	return r
}

// WithWorkerCount sets the number of parallel workers used by
// ReadStreamParallel.
func (r *Reader) WithWorkerCount(count int) *Reader {
	if count > 0 {
		r.workerCount = count
	}
	return r
}

// envelope reports whether a segment line belongs to the batch or
// file envelope rather than to a message.
func envelope(line string) bool {
	if len(line) < 3 {
		return false
	}
	switch line[:3] {
	case "FHS", "BHS", "BTS", "FTS":
		return true
	}
	return false
}

// scanSegments is a bufio.SplitFunc that terminates lines on '\r',
// '\n', or a CRLF pair, since feeds disagree about line endings.
func scanSegments(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		adv := i + 1
		if data[i] == '\r' && adv < len(data) && data[adv] == '\n' {
			adv++
		} else if data[i] == '\r' && adv == len(data) && !atEOF {
			// The byte after '\r' is not buffered yet; wait for it so
			// a CRLF pair is never split across reads.
			return 0, nil, nil
		}
		return adv, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// splitMessages reads the whole feed and returns one text per
// message. A message begins at each MSH line; envelope segments and
// content before the first MSH are dropped.
func splitMessages(src io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(scanSegments)

	var messages []string
	var current strings.Builder
	open := false

	flush := func() {
		if open {
			messages = append(messages, current.String())
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || envelope(line) {
			continue
		}
		if strings.HasPrefix(line, "MSH") {
			flush()
			open = true
		}
		if !open {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\r')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	flush()
	return messages, nil
}

// ReadStream splits the feed and parses messages one at a time,
// emitting results in feed order. The channel is closed when the feed
// is exhausted or ctx is done.
func (r *Reader) ReadStream(ctx context.Context, src io.Reader) <-chan *MessageResult {
	results := make(chan *MessageResult, r.bufferSize)

	go func() {
		defer close(results)

		messages, err := splitMessages(src)
		if err != nil {
			results <- &MessageResult{Index: -1, Err: err}
			return
		}

		for i, text := range messages {
			select {
			case <-ctx.Done():
				results <- &MessageResult{Index: -1, Err: ctx.Err()}
				return
			default:
			}
			results <- r.parseOne(i, text)
		}
	}()

	return results
}

// ReadStreamParallel parses messages across workerCount goroutines
// while still emitting results in feed order.
func (r *Reader) ReadStreamParallel(ctx context.Context, src io.Reader) <-chan *MessageResult {
	results := make(chan *MessageResult, r.bufferSize)

	go func() {
		defer close(results)

		messages, err := splitMessages(src)
		if err != nil {
			results <- &MessageResult{Index: -1, Err: err}
			return
		}

		type workItem struct {
			index int
			text  string
		}

		workChan := make(chan workItem, r.bufferSize)
		resultChan := make(chan *MessageResult, r.bufferSize)

		var wg sync.WaitGroup
		for i := 0; i < r.workerCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for work := range workChan {
					select {
					case <-ctx.Done():
						return
					default:
					}
					resultChan <- r.parseOne(work.index, work.text)
				}
			}()
		}

		go func() {
			for i, text := range messages {
				select {
				case workChan <- workItem{index: i, text: text}:
				case <-ctx.Done():
				}
			}
			close(workChan)
			wg.Wait()
			close(resultChan)
		}()

		// Reorder: workers finish out of order, the channel stays in
		// feed order.
		pending := make(map[int]*MessageResult)
		nextIndex := 0
		total := len(messages)

		for result := range resultChan {
			pending[result.Index] = result
			for {
				res, ok := pending[nextIndex]
				if !ok {
					break
				}
				results <- res
				delete(pending, nextIndex)
				nextIndex++
			}
			if nextIndex >= total {
				break
			}
		}
		for nextIndex < total {
			if res, ok := pending[nextIndex]; ok {
				results <- res
				delete(pending, nextIndex)
			}
			nextIndex++
		}
	}()

	return results
}

// parseOne parses a single message and fills in its control ID.
func (r *Reader) parseOne(index int, text string) *MessageResult {
	result := &MessageResult{Index: index}
	msg, err := r.parse(text)
	if err != nil {
		result.Err = fmt.Errorf("message %d: %w", index, err)
		return result
	}
	result.Message = msg
	if msh := msg.MSH(); msh != nil && msh.MessageControlID != nil {
		result.ControlID = msh.MessageControlID.Value()
	}
	return result
}

// StreamResult aggregates the outcome of reading a whole feed.
type StreamResult struct {
	// TotalMessages is the number of messages encountered.
	TotalMessages int

	// Failures is the number of messages that failed to parse.
	Failures int

	// Errors maps message index to its parse error.
	Errors map[int]error

	// ProcessingErrors are feed-level errors, not per-message ones.
	ProcessingErrors []error
}

// Aggregate drains a result channel into a StreamResult.
func Aggregate(results <-chan *MessageResult) *StreamResult {
	agg := &StreamResult{Errors: make(map[int]error)}

	for result := range results {
		if result.Index < 0 {
			agg.ProcessingErrors = append(agg.ProcessingErrors, result.Err)
			continue
		}
		agg.TotalMessages++
		if result.Err != nil {
			agg.Failures++
			agg.Errors[result.Index] = result.Err
		}
	}

	return agg
}

// HasFailures reports whether any message or the feed itself failed.
func (r *StreamResult) HasFailures() bool {
	return r.Failures > 0 || len(r.ProcessingErrors) > 0
}

// Summary returns a one-line account of the run.
func (r *StreamResult) Summary() string {
	return fmt.Sprintf("Read %d messages: %d failed", r.TotalMessages, r.Failures)
}
