// Package source provides blocks that produce elements into a pipe from
// external byte sources: POSIX descriptors, caller-owned memory and wav
// files.
package source

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/log"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// FileReader fills the output pipe with raw elements read from a file
// descriptor. Reads always stop at an element boundary: when the descriptor
// delivers a torn final element, further reads (which may block) complete it
// before anything is committed.
type FileReader[T any] struct {
	fd   int
	out  pipebuf.Writer[T]
	loop bool
	done bool
	log  log.Logger
}

// FileReaderOption provides a way to set functional parameters to FileReader.
type FileReaderOption[T any] func(r *FileReader[T])

// Loop makes the reader seek back to the start of the descriptor on
// end-of-data instead of stopping. The descriptor must be seekable.
func Loop[T any]() FileReaderOption[T] {
	return func(r *FileReader[T]) {
		r.loop = true
	}
}

// WithLogger sets logger to FileReader. If this option is not provided,
// the default logger is used.
func WithLogger[T any](l log.Logger) FileReaderOption[T] {
	return func(r *FileReader[T]) {
		r.log = l
	}
}

// NewFileReader creates a reader bound to a descriptor and an output pipe.
func NewFileReader[T any](fd int, out pipebuf.Writer[T], options ...FileReaderOption[T]) *FileReader[T] {
	r := &FileReader[T]{
		fd:  fd,
		out: out,
		log: log.GetLogger(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Step reads as much as the output pipe can take. End-of-data stops the
// reader for good, or seeks back to the start when looping is enabled.
// Only whole elements are ever committed.
func (r *FileReader[T]) Step() (sdrpipe.Status, error) {
	if r.done {
		return sdrpipe.Blocked, nil
	}
	n := r.out.Writable()
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	width := signal.Width[T]()
	buf := signal.Bytes(r.out.Wr()[:n])

	var nr int
	for {
		var err error
		nr, err = unix.Read(r.fd, buf)
		if err != nil {
			return sdrpipe.Blocked, fmt.Errorf("read: %w", err)
		}
		if nr > 0 {
			break
		}
		if !r.loop {
			r.done = true
			return sdrpipe.Blocked, nil
		}
		r.log.Debugf("file reader looping")
		if _, err := unix.Seek(r.fd, 0, io.SeekStart); err != nil {
			return sdrpipe.Blocked, fmt.Errorf("lseek: %w", err)
		}
	}

	// complete a torn final element; these reads may block
	for partial := nr % width; partial != 0; partial = nr % width {
		r.log.Debugf("completing torn element: %d of %d bytes", partial, width)
		nr2, err := unix.Read(r.fd, buf[nr:nr+width-partial])
		if err != nil {
			return sdrpipe.Blocked, fmt.Errorf("partial read: %w", err)
		}
		if nr2 == 0 {
			return sdrpipe.Blocked, fmt.Errorf("partial read: %w", io.ErrUnexpectedEOF)
		}
		nr += nr2
	}

	r.out.Written(nr / width)
	return sdrpipe.Progress, nil
}

// BufferReader produces elements from a caller-owned slice, front to back.
// Once the slice is exhausted the reader blocks forever; it never loops.
type BufferReader[T any] struct {
	data []T
	out  pipebuf.Writer[T]
	pos  int
}

// NewBufferReader creates a reader over a pre-populated slice. The slice
// stays owned by the caller and is never modified.
func NewBufferReader[T any](data []T, out pipebuf.Writer[T]) *BufferReader[T] {
	return &BufferReader[T]{data: data, out: out}
}

// Step copies min(writable capacity, remaining source) elements and
// advances the cursor.
func (r *BufferReader[T]) Step() (sdrpipe.Status, error) {
	n := r.out.Writable()
	if remaining := len(r.data) - r.pos; n > remaining {
		n = remaining
	}
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	copy(r.out.Wr(), r.data[r.pos:r.pos+n])
	r.pos += n
	r.out.Written(n)
	return sdrpipe.Progress, nil
}
