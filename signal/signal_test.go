package signal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/sdrpipe/signal"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 1, signal.Width[uint8]())
	assert.Equal(t, 2, signal.Width[int16]())
	assert.Equal(t, 4, signal.Width[float32]())
	assert.Equal(t, 8, signal.Width[float64]())
	assert.Equal(t, 8, signal.Width[signal.Complex[float32]]())
	assert.Equal(t, 3, signal.Width[[3]byte]())
}

func TestBytes(t *testing.T) {
	assert.Nil(t, signal.Bytes([]uint16(nil)))

	s := []uint16{0x0102, 0x0304}
	b := signal.Bytes(s)
	assert.Len(t, b, 4)
	// the view aliases the elements regardless of platform byte order
	assert.Equal(t, b[:2], signal.Bytes(s[:1]))
	b[0], b[1] = 0, 0
	assert.Equal(t, uint16(0), s[0])
	assert.Equal(t, uint16(0x0304), s[1])
}

func TestComplexCartesian(t *testing.T) {
	var c signal.Cartesian = signal.Complex[int16]{Re: 3, Im: -4}
	re, im := c.Cartesian()
	assert.Equal(t, float64(3), re)
	assert.Equal(t, float64(-4), im)
}

func TestBitDepth(t *testing.T) {
	assert.True(t, signal.BitDepth8.Supported())
	assert.True(t, signal.BitDepth16.Supported())
	assert.True(t, signal.BitDepth32.Supported())
	assert.False(t, signal.BitDepth(24).Supported())

	assert.Equal(t, float64(1), signal.BitDepth16.AsFloat(math.MaxInt16))
	assert.Equal(t, math.MaxInt16-1, signal.BitDepth16.AsInt(1))
	assert.Equal(t, 0, signal.BitDepth32.AsInt(0))
	assert.InDelta(t, 0.5, signal.BitDepth16.AsFloat(signal.BitDepth16.AsInt(0.5)), 1e-4)
}
