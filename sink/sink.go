// Package sink provides blocks that consume elements from a pipe into
// external destinations: POSIX descriptors, caller-owned memory, formatted
// text streams and wav files.
package sink

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// FileWriter writes the raw bytes of readable elements to a file
// descriptor. A write of zero bytes or of a byte count that tears an
// element is fatal; only confirmed elements are consumed.
type FileWriter[T any] struct {
	in pipebuf.Reader[T]
	fd int
}

// NewFileWriter creates a writer bound to an input pipe and a descriptor.
func NewFileWriter[T any](in pipebuf.Reader[T], fd int) *FileWriter[T] {
	return &FileWriter[T]{in: in, fd: fd}
}

// Step writes all currently readable elements in a single call.
func (w *FileWriter[T]) Step() (sdrpipe.Status, error) {
	n := w.in.Readable()
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	width := signal.Width[T]()
	nw, err := unix.Write(w.fd, signal.Bytes(w.in.Rd()[:n]))
	if err != nil {
		return sdrpipe.Blocked, fmt.Errorf("write: %w", err)
	}
	if nw == 0 {
		return sdrpipe.Blocked, fmt.Errorf("write: %w", io.ErrShortWrite)
	}
	if nw%width != 0 {
		return sdrpipe.Blocked, fmt.Errorf("write tore an element: %d bytes of width %d", nw, width)
	}
	w.in.Read(nw / width)
	return sdrpipe.Progress, nil
}

// BufferWriter consumes elements into a caller-owned slice, front to back.
// It never writes past the slice end and never wraps; once the destination
// is full the writer blocks forever.
type BufferWriter[T any] struct {
	in   pipebuf.Reader[T]
	data []T
	pos  int
}

// NewBufferWriter creates a writer over a caller-owned destination slice.
func NewBufferWriter[T any](in pipebuf.Reader[T], data []T) *BufferWriter[T] {
	return &BufferWriter[T]{in: in, data: data}
}

// Pos returns the number of elements written so far.
func (w *BufferWriter[T]) Pos() int {
	return w.pos
}

// Step copies min(readable count, remaining destination) elements and
// advances the cursor.
func (w *BufferWriter[T]) Step() (sdrpipe.Status, error) {
	n := w.in.Readable()
	if remaining := len(w.data) - w.pos; n > remaining {
		n = remaining
	}
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	copy(w.data[w.pos:], w.in.Rd()[:n])
	w.pos += n
	w.in.Read(n)
	return sdrpipe.Progress, nil
}
