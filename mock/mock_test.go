package mock_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/sdrpipe"
	"github.com/dudk/sdrpipe/mock"
)

func TestRunner(t *testing.T) {
	r := &mock.Runner{Limit: 1}
	status, err := r.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Progress, status)
	status, err = r.Step()
	assert.NoError(t, err)
	assert.Equal(t, sdrpipe.Blocked, status)
	assert.Equal(t, 2, r.Steps)
	assert.NoError(t, r.Flush())
	assert.Equal(t, 1, r.Flushed)
}

func TestRunnerErr(t *testing.T) {
	errStep := errors.New("step failed")
	r := &mock.Runner{Limit: 1, Err: errStep}
	_, err := r.Step()
	assert.ErrorIs(t, err, errStep)
}
