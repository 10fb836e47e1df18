// Package emitter implements the simulator's event log: the one output
// contract every other component in the core depends on. Every scheduler
// and I/O-worker event is formatted as "%.6f - <message>\n", where the
// float is seconds elapsed since the run's clock start, and written to
// one or both configured sinks.
package emitter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink selects where event lines are written.
type Sink int

const (
	Screen Sink = iota
	File
	Both
)

func (s Sink) String() string {
	switch s {
	case Screen:
		return "Screen"
	case File:
		return "File"
	case Both:
		return "Both"
	default:
		return "Unknown"
	}
}

// Emitter writes timestamped event lines to its configured sink(s).
// Safe for concurrent use: the scheduler goroutine and every spawned I/O
// worker goroutine call Emit on the same instance.
type Emitter struct {
	mu      sync.Mutex
	writers []io.Writer
	closer  io.Closer
}

// New opens an Emitter for the given sink. When sink is File or Both, path
// must name a writable file; it is created/truncated.
func New(sink Sink, path string) (*Emitter, error) {
	e := &Emitter{}
	switch sink {
	case Screen:
		e.writers = []io.Writer{os.Stdout}
	case File:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("emitter: opening log file %q: %w", path, err)
		}
		e.writers = []io.Writer{f}
		e.closer = f
	case Both:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("emitter: opening log file %q: %w", path, err)
		}
		e.writers = []io.Writer{os.Stdout, f}
		e.closer = f
	default:
		return nil, fmt.Errorf("emitter: unrecognized sink %d", sink)
	}
	return e, nil
}

// Emit writes one formatted event line to every configured writer.
func (e *Emitter) Emit(elapsedSeconds float64, message string) {
	buf := getLineBuf()
	buf = appendLine(buf, elapsedSeconds, message)

	e.mu.Lock()
	for _, w := range e.writers {
		_, _ = w.Write(buf)
	}
	e.mu.Unlock()

	putLineBuf(buf)
}

func appendLine(buf []byte, elapsedSeconds float64, message string) []byte {
	b := bytes.NewBuffer(buf)
	fmt.Fprintf(b, "%.6f - %s\n", elapsedSeconds, message)
	return b.Bytes()
}

// Close releases the underlying file handle, if one was opened.
func (e *Emitter) Close() error {
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}
