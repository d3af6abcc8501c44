package dsp

import (
	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/pipebuf"
	"github.com/dudk/sdrpipe/signal"
)

// defaultSampleSize is the denominator accumulation target that triggers
// ratio emission.
const defaultSampleSize = 10000

// RateEstimator consumes two matched count streams in lockstep, accumulates
// their sums across steps, and emits one ratio value (numerator sum over
// denominator sum) each time the denominator sum reaches the sample size.
//
// Zero writable output capacity defers everything: no input is consumed and
// nothing accumulates until the downstream consumer frees space. This ties
// upstream consumption to the output consumer's pace.
type RateEstimator[T signal.Scalar] struct {
	sampleSize int
	num        pipebuf.Reader[T]
	den        pipebuf.Reader[T]
	rate       pipebuf.Writer[float64]
	accNum     T
	accDen     T
}

// RateEstimatorOption provides a way to set functional parameters to
// RateEstimator.
type RateEstimatorOption[T signal.Scalar] func(re *RateEstimator[T])

// WithSampleSize sets the denominator accumulation target.
func WithSampleSize[T signal.Scalar](n int) RateEstimatorOption[T] {
	return func(re *RateEstimator[T]) {
		re.sampleSize = n
	}
}

// NewRateEstimator creates an estimator bound to numerator and denominator
// input pipes and a rate output pipe.
func NewRateEstimator[T signal.Scalar](num, den pipebuf.Reader[T], rate pipebuf.Writer[float64], options ...RateEstimatorOption[T]) *RateEstimator[T] {
	re := &RateEstimator[T]{
		sampleSize: defaultSampleSize,
		num:        num,
		den:        den,
		rate:       rate,
	}
	for _, option := range options {
		option(re)
	}
	return re
}

// Step accumulates available pairs and emits the ratio once the threshold
// is reached.
func (re *RateEstimator[T]) Step() (sdrpipe.Status, error) {
	if re.rate.Writable() < 1 {
		return sdrpipe.Blocked, nil
	}
	count := re.num.Readable()
	if d := re.den.Readable(); d < count {
		count = d
	}
	num, den := re.num.Rd(), re.den.Rd()
	for i := 0; i < count; i++ {
		re.accNum += num[i]
		re.accDen += den[i]
	}
	re.num.Read(count)
	re.den.Read(count)
	if float64(re.accDen) >= float64(re.sampleSize) {
		re.rate.Wr()[0] = float64(re.accNum) / float64(re.accDen)
		re.rate.Written(1)
		re.accNum, re.accDen = 0, 0
		return sdrpipe.Progress, nil
	}
	if count == 0 {
		return sdrpipe.Blocked, nil
	}
	return sdrpipe.Progress, nil
}
