package logbuf

import (
	"io"
)

// LineWriter wraps an io.Writer and feeds complete output lines into a
// LogBuffer. It is safe to hand to exec.Cmd as Stdout/Stderr.
type LineWriter struct {
	underlying io.Writer
	buffer     *LogBuffer
	source     string
	pending    []byte
}

// NewLineWriter creates a line writer feeding the given buffer. The
// underlying writer may be nil, in which case lines are only captured.
func NewLineWriter(underlying io.Writer, buffer *LogBuffer, source string) *LineWriter {
	return &LineWriter{
		underlying: underlying,
		buffer:     buffer,
		source:     source,
		pending:    make([]byte, 0, 256),
	}
}

func (w *LineWriter) Write(p []byte) (n int, err error) {
	if w.underlying != nil {
		n, err = w.underlying.Write(p)
		if err != nil {
			return n, err
		}
	} else {
		n = len(p)
	}

	for _, b := range p {
		if b == '\n' {
			w.emit()
		} else {
			w.pending = append(w.pending, b)
		}
	}

	return n, nil
}

// Flush pushes any trailing partial line into the buffer. Call after the
// producing process has exited.
func (w *LineWriter) Flush() {
	if len(w.pending) > 0 {
		w.emit()
	}
}

func (w *LineWriter) emit() {
	line := string(w.pending)
	w.pending = w.pending[:0]
	if w.buffer == nil || len(line) == 0 {
		return
	}
	if len(w.source) > 0 {
		w.buffer.AddLine(w.source + ":" + line)
	} else {
		w.buffer.AddLine(line)
	}
}
