package worker

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gohl7/hl7v2"
)

const sampleMSH = "MSH|^~\\&|GHH LAB|ELAB-3|GHH OE|BLDG4|200202150930||ORU^R01|CNTRL-3456|P|2.4"

// countingParser wraps the core parser and counts invocations.
type countingParser struct {
	callCount atomic.Int32
}

func (p *countingParser) Parse(text string) (*hl7v2.Message, error) {
	p.callCount.Add(1)
	return hl7v2.ParseMessage(text)
}

func TestPool_NewPool(t *testing.T) {
	pool := NewPool(&countingParser{}, 2)
	defer pool.Close()

	if pool.workers != 2 {
		t.Errorf("workers = %d; want 2", pool.workers)
	}
}

func TestPool_DefaultWorkers(t *testing.T) {
	pool := NewPool(&countingParser{}, 0)
	defer pool.Close()

	if pool.workers <= 0 {
		t.Errorf("workers = %d; want > 0", pool.workers)
	}
}

func TestPool_SubmitAndReceive(t *testing.T) {
	pool := NewPool(&countingParser{}, 2)
	defer pool.Close()

	if !pool.Submit(Job{ID: "msg-1", Text: sampleMSH}) {
		t.Fatal("expected job to be submitted")
	}

	select {
	case result := <-pool.Results():
		if result.ID != "msg-1" {
			t.Errorf("ID = %q; want %q", result.ID, "msg-1")
		}
		if result.Err != nil {
			t.Errorf("unexpected parse error: %v", result.Err)
		}
		if got := result.Message.GetField("MSH", 3); got != "ELAB-3" {
			t.Errorf("MSH token 3 = %q; want %q", got, "ELAB-3")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for result")
	}
}

func TestPool_SubmitToClosedPool(t *testing.T) {
	pool := NewPool(&countingParser{}, 2)
	pool.Close()

	if pool.Submit(Job{ID: "late", Text: sampleMSH}) {
		t.Error("expected Submit to fail on closed pool")
	}
	if pool.SubmitAsync(Job{ID: "late", Text: sampleMSH}) {
		t.Error("expected SubmitAsync to fail on closed pool")
	}
}

func TestPool_CloseAndWait(t *testing.T) {
	parser := &countingParser{}
	pool := NewPool(parser, 4)

	const n = 20
	for i := 0; i < n; i++ {
		if !pool.Submit(Job{ID: fmt.Sprintf("msg-%d", i), Text: sampleMSH}) {
			t.Fatalf("submit %d failed", i)
		}
	}

	batch := pool.CloseAndWait()
	if len(batch.Results) != n {
		t.Fatalf("got %d results; want %d", len(batch.Results), n)
	}
	if batch.TotalJobs != n || batch.CompletedJobs != n {
		t.Errorf("TotalJobs=%d CompletedJobs=%d; want %d each", batch.TotalJobs, batch.CompletedJobs, n)
	}
	if got := parser.callCount.Load(); got != n {
		t.Errorf("parser invoked %d times; want %d", got, n)
	}
	if failed := batch.Failed(); len(failed) != 0 {
		t.Errorf("unexpected failures: %d", len(failed))
	}
}

func TestPool_ParseErrorsSurfaceInResults(t *testing.T) {
	pool := NewPool(ParserFunc(func(text string) (*hl7v2.Message, error) {
		return hl7v2.ParseMessage(text)
	}), 2)

	// MSH missing all mandatory fields past the delimiters.
	pool.Submit(Job{ID: "bad", Text: "MSH|^~\\&"})
	batch := pool.CloseAndWait()

	if len(batch.Results) != 1 {
		t.Fatalf("got %d results; want 1", len(batch.Results))
	}
	if batch.Results[0].Err == nil {
		t.Fatal("expected parse error for truncated MSH")
	}
	if len(batch.Failed()) != 1 {
		t.Fatal("Failed() should report the broken job")
	}
}

func TestPool_NoParser(t *testing.T) {
	pool := NewPool(nil, 1)
	pool.Submit(Job{ID: "x", Text: sampleMSH})
	batch := pool.CloseAndWait()

	if len(batch.Results) != 1 || batch.Results[0].Err != ErrNoParser {
		t.Fatalf("expected ErrNoParser, got %+v", batch.Results)
	}
}
