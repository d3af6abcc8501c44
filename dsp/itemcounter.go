package dsp

import (
	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// ItemCounter emits the readable element count of its input as a single
// output value and consumes the counted input whole. Without output
// capacity or input it does nothing: no partial consumption, no partial
// emission.
type ItemCounter[Tin any, Tout signal.Scalar] struct {
	in  pipebuf.Reader[Tin]
	out pipebuf.Writer[Tout]
}

// NewItemCounter creates a counter between an input and an output pipe.
func NewItemCounter[Tin any, Tout signal.Scalar](in pipebuf.Reader[Tin], out pipebuf.Writer[Tout]) *ItemCounter[Tin, Tout] {
	return &ItemCounter[Tin, Tout]{in: in, out: out}
}

// Step emits one count value when both sides allow it.
func (c *ItemCounter[Tin, Tout]) Step() (sdrpipe.Status, error) {
	if c.out.Writable() < 1 {
		return sdrpipe.Blocked, nil
	}
	count := c.in.Readable()
	if count == 0 {
		return sdrpipe.Blocked, nil
	}
	c.out.Wr()[0] = Tout(count)
	c.out.Written(1)
	c.in.Read(count)
	return sdrpipe.Progress, nil
}
