package cli

import (
	"bytes"
	"io"
	"sync"
)

// StdioWrapper provides a writer for stderr which passes complete lines
// to a terminal, so that output from the log package does not garble the
// status line.
type StdioWrapper struct {
	stderr *lineWriter
}

// NewStdioWrapper initializes a new StdioWrapper for term.
func NewStdioWrapper(term Terminal) *StdioWrapper {
	return &StdioWrapper{
		stderr: newLineWriter(term.Print),
	}
}

// Stderr returns a writer that is safe for concurrent use.
func (w *StdioWrapper) Stderr() io.WriteCloser {
	return w.stderr
}

type lineWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	print func(string)
}

var _ io.WriteCloser = &lineWriter{}

func newLineWriter(print func(string)) *lineWriter {
	return &lineWriter{print: print}
}

func (w *lineWriter) Write(data []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err = w.buf.Write(data)
	if err != nil {
		return n, err
	}

	// look for line breaks, only print complete lines
	i := bytes.LastIndexByte(w.buf.Bytes(), '\n')
	if i < 0 {
		return n, nil
	}

	w.print(string(w.buf.Next(i + 1)))
	return n, nil
}

func (w *lineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.print(w.buf.String() + "\n")
		w.buf.Reset()
	}

	return nil
}
