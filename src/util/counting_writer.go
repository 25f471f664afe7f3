package util

import (
	"io"
)

// countingWriter wraps a writer and updates progress for bytes written.
type countingWriter struct {
	w        io.Writer
	progress *ProgressLogger
}

// NewCountingWriter returns a writer that forwards to w and reports every
// written byte to the progress logger. progress may be nil.
func NewCountingWriter(w io.Writer, progress *ProgressLogger) io.Writer {
	return &countingWriter{w: w, progress: progress}
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if cw.progress != nil {
		cw.progress.UpdateBytes(int64(n))
	}
	return n, err
}
