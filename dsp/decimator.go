// Package dsp provides the transform blocks of the pipeline: decimation,
// element width re-chunking, item counting and rate estimation.
package dsp

import (
	"errors"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
)

// ErrBadFactor is returned when a decimation factor is less than one.
var ErrBadFactor = errors.New("decimation factor must be at least 1")

// Decimator forwards the first element of every group of d, preserving
// order. Groups are consumed whole; a remainder shorter than d stays
// buffered for a future step.
type Decimator[T any] struct {
	d   int
	in  pipebuf.Reader[T]
	out pipebuf.Writer[T]
}

// NewDecimator creates a decimator with a fixed forwarding factor d.
func NewDecimator[T any](d int, in pipebuf.Reader[T], out pipebuf.Writer[T]) (*Decimator[T], error) {
	if d < 1 {
		return nil, ErrBadFactor
	}
	return &Decimator[T]{d: d, in: in, out: out}, nil
}

// Step forwards as many complete groups as input readability and output
// capacity allow.
func (dec *Decimator[T]) Step() (sdrpipe.Status, error) {
	count := dec.in.Readable() / dec.d
	if w := dec.out.Writable(); count > w {
		count = w
	}
	if count == 0 {
		return sdrpipe.Blocked, nil
	}
	in, out := dec.in.Rd(), dec.out.Wr()
	for i := 0; i < count; i++ {
		out[i] = in[i*dec.d]
	}
	dec.in.Read(count * dec.d)
	dec.out.Written(count)
	return sdrpipe.Progress, nil
}
