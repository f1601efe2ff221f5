package sentry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisabledWithoutDSN(t *testing.T) {
	assert.NoError(t, Initialize(Config{}))
	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() { CaptureException(errors.New("boom"), "tests/error") })
	assert.True(t, Flush(time.Millisecond))
}
