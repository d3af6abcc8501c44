package sink

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// FilePrinter writes one formatted line per decimation run to a file
// descriptor: the element value multiplied by the scale factor, rendered
// with the configured format template. All readable input is consumed every
// step whether or not it produced output; decimation discards data, it does
// not defer it.
type FilePrinter[T signal.Scalar] struct {
	in         pipebuf.Reader[T]
	fd         int
	format     string
	scale      float64
	decimation int
	phase      int
}

// FilePrinterOption provides a way to set functional parameters to
// FilePrinter.
type FilePrinterOption[T signal.Scalar] func(p *FilePrinter[T])

// WithScale sets the factor every printed value is multiplied by.
func WithScale[T signal.Scalar](scale float64) FilePrinterOption[T] {
	return func(p *FilePrinter[T]) {
		p.scale = scale
	}
}

// WithDecimation makes the printer emit one line per d input elements.
func WithDecimation[T signal.Scalar](d int) FilePrinterOption[T] {
	return func(p *FilePrinter[T]) {
		p.decimation = d
	}
}

// NewFilePrinter creates a printer bound to an input pipe and a descriptor.
// The format template receives a single float64 value.
func NewFilePrinter[T signal.Scalar](in pipebuf.Reader[T], fd int, format string, options ...FilePrinterOption[T]) *FilePrinter[T] {
	p := &FilePrinter[T]{
		in:         in,
		fd:         fd,
		format:     format,
		scale:      1,
		decimation: 1,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Step consumes every readable element, emitting a line for each one that
// completes a decimation run. A short write is fatal.
func (p *FilePrinter[T]) Step() (sdrpipe.Status, error) {
	n := p.in.Readable()
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	for _, v := range p.in.Rd()[:n] {
		p.phase++
		if p.phase < p.decimation {
			continue
		}
		p.phase -= p.decimation
		line := fmt.Sprintf(p.format, float64(v)*p.scale)
		nw, err := unix.Write(p.fd, []byte(line))
		if err != nil {
			return sdrpipe.Blocked, fmt.Errorf("write: %w", err)
		}
		if nw != len(line) {
			return sdrpipe.Blocked, fmt.Errorf("write: %w", io.ErrShortWrite)
		}
	}
	p.in.Read(n)
	return sdrpipe.Progress, nil
}

// CArrayPrinter writes every readable element of a complex-valued stream as
// one aggregate record: a head template receiving the element count, a
// per-element template receiving both scaled components, then a tail, then
// a flush. A nil destination discards output; input is consumed either way —
// output availability never blocks consumption.
type CArrayPrinter[T signal.Cartesian] struct {
	in     pipebuf.Reader[T]
	out    *bufio.Writer
	head   string
	format string
	tail   string
	scale  float64
}

// CArrayPrinterOption provides a way to set functional parameters to
// CArrayPrinter.
type CArrayPrinterOption[T signal.Cartesian] func(p *CArrayPrinter[T])

// WithComponentScale sets the factor both components are multiplied by.
func WithComponentScale[T signal.Cartesian](scale float64) CArrayPrinterOption[T] {
	return func(p *CArrayPrinter[T]) {
		p.scale = scale
	}
}

// NewCArrayPrinter creates an aggregate printer. The head template receives
// the element count, the per-element template receives the two scaled
// components. A nil out is a valid discard destination.
func NewCArrayPrinter[T signal.Cartesian](in pipebuf.Reader[T], out io.Writer, head, format, tail string, options ...CArrayPrinterOption[T]) *CArrayPrinter[T] {
	p := &CArrayPrinter[T]{
		in:     in,
		head:   head,
		format: format,
		tail:   tail,
		scale:  1,
	}
	if out != nil {
		p.out = bufio.NewWriter(out)
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Step formats all readable elements into one record and consumes them.
func (p *CArrayPrinter[T]) Step() (sdrpipe.Status, error) {
	n := p.in.Readable()
	if n == 0 {
		return sdrpipe.Blocked, nil
	}
	if p.out != nil {
		if _, err := fmt.Fprintf(p.out, p.head, n); err != nil {
			return sdrpipe.Blocked, fmt.Errorf("print head: %w", err)
		}
		for _, v := range p.in.Rd()[:n] {
			re, im := v.Cartesian()
			if _, err := fmt.Fprintf(p.out, p.format, re*p.scale, im*p.scale); err != nil {
				return sdrpipe.Blocked, fmt.Errorf("print element: %w", err)
			}
		}
		if _, err := p.out.WriteString(p.tail); err != nil {
			return sdrpipe.Blocked, fmt.Errorf("print tail: %w", err)
		}
		if err := p.out.Flush(); err != nil {
			return sdrpipe.Blocked, fmt.Errorf("flush: %w", err)
		}
	}
	p.in.Read(n)
	return sdrpipe.Progress, nil
}
