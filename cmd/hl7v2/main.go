// Command hl7v2 is a small inspection tool for HL7 v2 messages.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/gohl7/hl7v2"
	"github.com/gohl7/hl7v2/pkg/logger"
	"github.com/gohl7/hl7v2/stream"
)

const usage = `hl7v2 - HL7 v2 message inspector

Usage:
  hl7v2 [options] <file>
  hl7v2 [options] -          (read from stdin)

Examples:
  hl7v2 message.hl7
  hl7v2 -query PID.F3 message.hl7
  hl7v2 -output json message.hl7
  hl7v2 -batch feed.hl7
  cat message.hl7 | hl7v2 -

Options:
`

// segmentJSON is the JSON shape of one parsed segment.
type segmentJSON struct {
	Type   string     `json:"type"`
	Fields [][]string `json:"fields"`
}

// messageJSON is the JSON shape of a parsed message.
type messageJSON struct {
	Version  string        `json:"version,omitempty"`
	Segments []segmentJSON `json:"segments"`
}

func main() {
	var (
		query   = flag.String("query", "", "dotted path to resolve, e.g. PID.F3.R1.C2")
		output  = flag.String("output", "text", "output format: text or json")
		batch   = flag.Bool("batch", false, "treat input as a multi-message feed and report per-message outcomes")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		logger.SetLevel(logger.LevelDebug)
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hl7v2: %v\n", err)
		os.Exit(1)
	}

	if *batch {
		if !runBatch(os.Stdout, text, *query) {
			os.Exit(1)
		}
		return
	}

	msg, err := hl7v2.ParseMessage(normalize(text))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hl7v2: %v\n", err)
		os.Exit(1)
	}

	if *query != "" {
		fmt.Println(msg.Query(*query))
		return
	}

	switch *output {
	case "json":
		if err := writeJSON(os.Stdout, msg); err != nil {
			fmt.Fprintf(os.Stderr, "hl7v2: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeText(os.Stdout, msg)
	default:
		fmt.Fprintf(os.Stderr, "hl7v2: unknown output format %q\n", *output)
		os.Exit(2)
	}
}

// runBatch reads the input as a multi-message feed and prints one
// line per message. With a query it prints the resolved value per
// message instead. Returns false when any message failed.
func runBatch(w io.Writer, text, query string) bool {
	reader := stream.NewReader(nil)
	results := reader.ReadStreamParallel(context.Background(), strings.NewReader(text))

	failed := false
	total := 0
	for result := range results {
		if result.Index < 0 {
			fmt.Fprintf(os.Stderr, "hl7v2: %v\n", result.Err)
			failed = true
			continue
		}
		total++
		if result.Err != nil {
			fmt.Fprintf(w, "%d\t%s\tERROR: %v\n", result.Index, result.ControlID, result.Err)
			failed = true
			continue
		}
		if query != "" {
			fmt.Fprintf(w, "%d\t%s\t%s\n", result.Index, result.ControlID, result.Message.Query(query))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d segments\n", result.Index, result.ControlID, result.Message.SegmentCount())
	}
	fmt.Fprintf(w, "%d messages\n", total)
	return !failed
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// normalize maps editor-friendly line endings onto the wire
// terminator so files saved with plain newlines still parse.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\r")
	return strings.ReplaceAll(text, "\n", "\r")
}

func writeText(w io.Writer, msg *hl7v2.Message) {
	for _, seg := range msg.Segments() {
		fmt.Fprintf(w, "%s  (%d fields)\n", seg.Type(), seg.FieldCount())
		for i := 0; i < seg.FieldCount(); i++ {
			f := seg.Field(i)
			if f == nil || f.Value() == "" {
				continue
			}
			fmt.Fprintf(w, "  %s-%d: %s\n", seg.Type(), i, f.Value())
		}
	}
}

func writeJSON(w io.Writer, msg *hl7v2.Message) error {
	out := messageJSON{Version: msg.Version().String()}
	for _, seg := range msg.Segments() {
		sj := segmentJSON{Type: seg.Type()}
		for i := 0; i < seg.FieldCount(); i++ {
			sj.Fields = append(sj.Fields, seg.Field(i).Repeats())
		}
		out.Segments = append(out.Segments, sj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
