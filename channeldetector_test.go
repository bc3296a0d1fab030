package seismod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChannelDetectorBoundary checks the strict-greater-than threshold
// comparison at its exact boundary: W=3, T=5, filter effectively disabled
// (cutoff equal to the sample rate, so alpha = 1 - exp(-2π) ≈ 0.998 and
// every sample below rounds back to its own value).
func TestChannelDetectorBoundary(t *testing.T) {
	d := newChannelTriggerDetector(1000, 1000, 3, 5)

	assert.False(t, d.addSample(0))
	assert.False(t, d.addSample(1))
	assert.False(t, d.addSample(2))

	// window becomes [6,1,2], range = 6-1 = 5, strict > fails
	assert.False(t, d.addSample(6))

	// window becomes [6,8,2], range = 8-2 = 6 > 5
	assert.True(t, d.addSample(8))
}

func TestChannelDetectorStaysFalseUntilWindowFull(t *testing.T) {
	d := newChannelTriggerDetector(1000, 1000, 4, 1)
	assert.False(t, d.addSample(0))
	assert.False(t, d.addSample(100))
	assert.False(t, d.addSample(0))
}

func TestChannelDetectorWindowFullStaysSet(t *testing.T) {
	d := newChannelTriggerDetector(1000, 1000, 2, 100)
	d.addSample(0)
	d.addSample(0)
	assert.True(t, d.windowFull)
	d.addSample(0)
	assert.True(t, d.windowFull)
}
