package worker

import "github.com/gohl7/hl7v2"

// Job is one message to parse.
type Job struct {
	// ID identifies the job in its result.
	ID string

	// Text is the raw HL7 message.
	Text string
}

// JobResult is the outcome of one job.
type JobResult struct {
	// ID echoes the job's ID.
	ID string

	// Message is the parsed message; nil when Err is set.
	Message *hl7v2.Message

	// Err is the parse failure, if any.
	Err error

	// DurationNs is the parse wall time in nanoseconds.
	DurationNs int64
}

// BatchResult aggregates the results of a drained pool.
type BatchResult struct {
	Results         []*JobResult
	TotalJobs       int
	CompletedJobs   int
	TotalDurationNs int64
}

// Failed returns the results that carry an error.
func (b *BatchResult) Failed() []*JobResult {
	var out []*JobResult
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
