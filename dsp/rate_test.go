package dsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/dsp"
	"github.com/dudk/sdrpipe/pipebuf"
)

func feedPairs(num, den *pipebuf.Pipe[int64], pairs [][2]int64) {
	for _, pair := range pairs {
		num.Wr()[0] = pair[0]
		num.Written(1)
		den.Wr()[0] = pair[1]
		den.Written(1)
	}
}

func TestRateEstimator(t *testing.T) {
	num := pipebuf.New[int64]("num", 16)
	den := pipebuf.New[int64]("den", 16)
	rate := pipebuf.New[float64]("rate", 1)
	re := dsp.NewRateEstimator[int64](num, den, rate, dsp.WithSampleSize[int64](100))

	// below the threshold: accumulate silently
	feedPairs(num, den, [][2]int64{{10, 25}, {10, 25}, {10, 25}})
	status, err := re.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Progress, status)
	assert.Equal(t, 0, rate.Readable())
	assert.Equal(t, 0, num.Readable())
	assert.Equal(t, 0, den.Readable())

	// the pair that completes the sample emits exactly one ratio
	feedPairs(num, den, [][2]int64{{10, 25}})
	status, err = re.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Progress, status)
	assert.Equal(t, []float64{0.4}, rate.Rd())
	rate.Read(1)

	// both accumulators were reset
	feedPairs(num, den, [][2]int64{{1, 99}})
	_, err = re.Step()
	assert.NoError(t, err)
	assert.Equal(t, 0, rate.Readable())
	feedPairs(num, den, [][2]int64{{1, 1}})
	_, err = re.Step()
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.02}, rate.Rd())
}

func TestRateEstimatorBackpressure(t *testing.T) {
	num := pipebuf.New[int64]("num", 4)
	den := pipebuf.New[int64]("den", 4)
	rate := pipebuf.New[float64]("rate", 1)
	re := dsp.NewRateEstimator[int64](num, den, rate, dsp.WithSampleSize[int64](10))

	feedPairs(num, den, [][2]int64{{5, 10}})
	_, err := re.Step()
	assert.NoError(t, err)
	assert.Equal(t, 1, rate.Readable())

	// a full output pipe defers consumption and accumulation entirely
	feedPairs(num, den, [][2]int64{{5, 10}})
	status, err := re.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Blocked, status)
	assert.Equal(t, 1, num.Readable())
	assert.Equal(t, 1, den.Readable())

	rate.Read(1)
	status, err = re.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Progress, status)
	assert.Equal(t, 0, num.Readable())
}

func TestRateEstimatorLockstep(t *testing.T) {
	num := pipebuf.New[int64]("num", 8)
	den := pipebuf.New[int64]("den", 8)
	rate := pipebuf.New[float64]("rate", 1)
	re := dsp.NewRateEstimator[int64](num, den, rate)

	copy(num.Wr(), []int64{1, 2, 3})
	num.Written(3)
	den.Wr()[0] = 1
	den.Written(1)

	_, err := re.Step()
	assert.NoError(t, err)
	// only matched pairs are consumed
	assert.Equal(t, 2, num.Readable())
	assert.Equal(t, 0, den.Readable())
}
