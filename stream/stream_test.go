package stream

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohl7/hl7v2"
)

const batchFeed = "FHS|^~\\&|SENDER|FAC\r" +
	"BHS|^~\\&|SENDER|FAC\r" +
	"MSH|^~\\&|GHH LAB|ELAB-3|GHH OE|BLDG4|200202150930||ORU^R01|MSG-1|P|2.4\r" +
	"PID|||555-44-4444\r" +
	"MSH|^~\\&|GHH LAB|ELAB-3|GHH OE|BLDG4|200202150931||ORU^R01|MSG-2|P|2.4\r" +
	"OBX|1|SN|GLU||^182|mg/dl\r" +
	"BTS|2\r" +
	"FTS|1\r"

func TestSplitMessages(t *testing.T) {
	messages, err := splitMessages(strings.NewReader(batchFeed))
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.True(t, strings.HasPrefix(messages[0], "MSH"))
	assert.Contains(t, messages[0], "PID|||555-44-4444")
	assert.Contains(t, messages[1], "MSG-2")
	assert.NotContains(t, messages[0], "BHS")
	assert.NotContains(t, messages[1], "BTS")
}

func TestSplitMessagesLineEndings(t *testing.T) {
	for _, ending := range []string{"\r", "\n", "\r\n"} {
		feed := strings.ReplaceAll(batchFeed, "\r", ending)
		messages, err := splitMessages(strings.NewReader(feed))
		require.NoError(t, err, "ending %q", ending)
		assert.Len(t, messages, 2, "ending %q", ending)
	}
}

func TestSplitMessagesEmpty(t *testing.T) {
	messages, err := splitMessages(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestReadStream(t *testing.T) {
	reader := NewReader(nil)
	results := reader.ReadStream(context.Background(), strings.NewReader(batchFeed))

	var got []*MessageResult
	for result := range results {
		got = append(got, result)
	}

	require.Len(t, got, 2)
	for i, result := range got {
		assert.Equal(t, i, result.Index)
		assert.NoError(t, result.Err)
		require.NotNil(t, result.Message)
	}
	assert.Equal(t, "MSG-1", got[0].ControlID)
	assert.Equal(t, "MSG-2", got[1].ControlID)
	assert.Equal(t, "555-44-4444", got[0].Message.GetField("PID", 3))
}

func TestReadStreamParseFailure(t *testing.T) {
	feed := "MSH|^~\\&|APP\r" + // missing mandatory header fields
		"MSH|^~\\&|GHH LAB|ELAB-3|GHH OE|BLDG4|200202150930||ORU^R01|MSG-2|P|2.4\r"

	reader := NewReader(nil)
	agg := Aggregate(reader.ReadStream(context.Background(), strings.NewReader(feed)))

	assert.Equal(t, 2, agg.TotalMessages)
	assert.Equal(t, 1, agg.Failures)
	assert.True(t, agg.HasFailures())
	assert.Error(t, agg.Errors[0])
	assert.Equal(t, "Read 2 messages: 1 failed", agg.Summary())
}

func TestReadStreamParallelPreservesOrder(t *testing.T) {
	var feed strings.Builder
	feed.WriteString("BHS|^~\\&|SENDER|FAC\r")
	for i := 0; i < 50; i++ {
		feed.WriteString("MSH|^~\\&|GHH LAB|ELAB-3|GHH OE|BLDG4|200202150930||ORU^R01|MSG-")
		feed.WriteString(strings.Repeat("X", i%7))
		feed.WriteString("|P|2.4\rPID|||555-44-4444\r")
	}

	reader := NewReader(nil).WithWorkerCount(4).WithBufferSize(8)
	results := reader.ReadStreamParallel(context.Background(), strings.NewReader(feed.String()))

	next := 0
	for result := range results {
		require.NoError(t, result.Err)
		assert.Equal(t, next, result.Index, "results must arrive in feed order")
		next++
	}
	assert.Equal(t, 50, next)
}

func TestReadStreamCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewReader(nil)
	agg := Aggregate(reader.ReadStream(ctx, strings.NewReader(batchFeed)))
	assert.True(t, agg.HasFailures())
	assert.NotEmpty(t, agg.ProcessingErrors)
}

func TestReaderCustomParseFunc(t *testing.T) {
	calls := 0
	reader := NewReader(func(text string) (*hl7v2.Message, error) {
		calls++
		return hl7v2.ParseMessage(text)
	})

	agg := Aggregate(reader.ReadStream(context.Background(), strings.NewReader(batchFeed)))
	assert.Equal(t, 2, agg.TotalMessages)
	assert.Equal(t, 2, calls)
}
