package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vk/argsweep/internal/trial"
)

// Sink accepts completed trial records. Record is safe for concurrent use;
// Flush is called once, after the scheduler has stopped.
type Sink interface {
	Record(rec trial.Record) error
	Flush() error
}

// Stream writes each trial's command and captured output to the process
// streams as soon as it completes, in completion order. One trial's block is
// never split by another's.
type Stream struct {
	mu   sync.Mutex
	outW io.Writer
	errW io.Writer
}

// NewStream creates a streaming sink over the given standard streams.
func NewStream(outW, errW io.Writer) *Stream {
	return &Stream{outW: outW, errW: errW}
}

// Record implements Sink.
func (s *Stream) Record(rec trial.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.outW, "--- [%d] %s\n", rec.Step, rec.Command); err != nil {
		return err
	}
	if _, err := io.WriteString(s.outW, rec.Stdout); err != nil {
		return err
	}
	if rec.Stderr != "" {
		if _, err := io.WriteString(s.errW, rec.Stderr); err != nil {
			return err
		}
	}
	return nil
}

// Flush implements Sink. Streaming output has nothing left to emit.
func (s *Stream) Flush() error { return nil }

// Buffer accumulates all records and emits them as a single JSON array
// sorted by submission step, regardless of completion order.
type Buffer struct {
	mu      sync.Mutex
	outW    io.Writer
	records []trial.Record
}

// NewBuffer creates a buffered sink writing its final array to outW.
func NewBuffer(outW io.Writer) *Buffer {
	return &Buffer{outW: outW, records: []trial.Record{}}
}

// Record implements Sink.
func (b *Buffer) Record(rec trial.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, rec)
	return nil
}

// Flush implements Sink.
func (b *Buffer) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sort.Slice(b.records, func(i, j int) bool {
		return b.records[i].Step < b.records[j].Step
	})
	data, err := json.Marshal(b.records)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(b.outW, string(data))
	return err
}

// Records returns a copy of everything recorded so far, for tests.
func (b *Buffer) Records() []trial.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]trial.Record, len(b.records))
	copy(out, b.records)
	return out
}
