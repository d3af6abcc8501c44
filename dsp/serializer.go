package dsp

import (
	"errors"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// ErrBadWidth is returned when a serializer cannot fix an integer
// conversion ratio between its element widths.
var ErrBadWidth = errors.New("element widths are not commensurate")

// Serializer re-chunks the raw bytes of input elements into output elements
// of a different width, with no value transformation. Construction fixes the
// smallest group (nin, nout) with nin*width(Tin) == nout*width(Tout); a step
// copies whole groups only.
type Serializer[Tin, Tout any] struct {
	nin  int
	nout int
	in   pipebuf.Reader[Tin]
	out  pipebuf.Writer[Tout]
}

// NewSerializer validates the width ratio between Tin and Tout.
func NewSerializer[Tin, Tout any](in pipebuf.Reader[Tin], out pipebuf.Writer[Tout]) (*Serializer[Tin, Tout], error) {
	win, wout := signal.Width[Tin](), signal.Width[Tout]()
	if win < 1 || wout < 1 {
		return nil, ErrBadWidth
	}
	g := gcd(win, wout)
	return &Serializer[Tin, Tout]{
		nin:  wout / g,
		nout: win / g,
		in:   in,
		out:  out,
	}, nil
}

// Ratio returns the conversion group sizes fixed at construction.
func (s *Serializer[Tin, Tout]) Ratio() (nin, nout int) {
	return s.nin, s.nout
}

// Step copies as many complete conversion groups as both sides allow.
func (s *Serializer[Tin, Tout]) Step() (sdrpipe.Status, error) {
	status := sdrpipe.Blocked
	for s.in.Readable() >= s.nin && s.out.Writable() >= s.nout {
		copy(signal.Bytes(s.out.Wr()[:s.nout]), signal.Bytes(s.in.Rd()[:s.nin]))
		s.in.Read(s.nin)
		s.out.Written(s.nout)
		status = sdrpipe.Progress
	}
	return status, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
