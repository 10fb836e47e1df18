package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsed_MonotonicallyIncreases(t *testing.T) {
	c := New()
	c.Start()
	first := c.Elapsed()
	time.Sleep(5 * time.Millisecond)
	second := c.Elapsed()
	assert.Greater(t, second, first)
}

func TestElapsed_NearZeroRightAfterStart(t *testing.T) {
	c := New()
	c.Start()
	assert.Less(t, c.Elapsed(), 0.05)
}
