package sink_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
	"github.com/dudk/sdrpipe/sink"
)

func TestFilePrinter(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "print")
	assert.NoError(t, err)
	defer f.Close()

	in := pipebuf.New[int32]("in", 8)
	copy(in.Wr(), []int32{1, 2, 3, 4, 5, 6, 7})
	in.Written(7)

	p := sink.NewFilePrinter(in, int(f.Fd()), "%g\n",
		sink.WithDecimation[int32](3),
		sink.WithScale[int32](10),
	)
	status, err := p.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Progress, status)
	// every element is consumed, emitted or not
	assert.Equal(t, 0, in.Readable())

	got, err := os.ReadFile(f.Name())
	assert.NoError(t, err)
	assert.Equal(t, "30\n60\n", string(got))

	// the phase survives between steps: two more elements complete a run
	copy(in.Wr(), []int32{8, 9})
	in.Written(2)
	_, err = p.Step()
	assert.NoError(t, err)
	got, err = os.ReadFile(f.Name())
	assert.NoError(t, err)
	assert.Equal(t, "30\n60\n90\n", string(got))
}

func TestFilePrinterDefault(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "print")
	assert.NoError(t, err)
	defer f.Close()

	in := pipebuf.New[float64]("in", 4)
	copy(in.Wr(), []float64{0.5, 1.5})
	in.Written(2)

	p := sink.NewFilePrinter(in, int(f.Fd()), "%.1f\n")
	_, err = p.Step()
	assert.NoError(t, err)

	got, err := os.ReadFile(f.Name())
	assert.NoError(t, err)
	assert.Equal(t, "0.5\n1.5\n", string(got))
}

func TestCArrayPrinter(t *testing.T) {
	var buf bytes.Buffer
	in := pipebuf.New[signal.Complex[float32]]("in", 4)
	copy(in.Wr(), []signal.Complex[float32]{{Re: 1, Im: 2}, {Re: 3, Im: 4}})
	in.Written(2)

	p := sink.NewCArrayPrinter(in, &buf, "c%d=[", "(%g,%g)", "]\n",
		sink.WithComponentScale[signal.Complex[float32]](2),
	)
	status, err := p.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Progress, status)
	assert.Equal(t, "c2=[(2,4)(6,8)]\n", buf.String())
	assert.Equal(t, 0, in.Readable())

	status, err = p.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Blocked, status)
}

func TestCArrayPrinterDiscard(t *testing.T) {
	in := pipebuf.New[signal.Complex[float32]]("in", 4)
	copy(in.Wr(), []signal.Complex[float32]{{Re: 1, Im: 1}, {Re: 2, Im: 2}, {Re: 3, Im: 3}})
	in.Written(3)

	// output availability never blocks consumption
	p := sink.NewCArrayPrinter[signal.Complex[float32]](in, nil, "%d:", " %g%g", "\n")
	status, err := p.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Progress, status)
	assert.Equal(t, 0, in.Readable())
}
