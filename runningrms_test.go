package seismod

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedRMS(a, b, c int32) uint32 {
	sqsum := uint64(int64(a)*int64(a)) + uint64(int64(b)*int64(b)) + uint64(int64(c)*int64(c))
	quotient := sqsum / 3
	remainder := sqsum % 3
	rms := math.Sqrt(float64(quotient) + float64(remainder)/3)
	return uint32(math.Round(rms))
}

func TestRunningRMS(t *testing.T) {
	r := NewRunningRMS(3)

	_, ok := r.AddSample(11)
	assert.False(t, ok)
	_, ok = r.AddSample(22)
	assert.False(t, ok)

	rms, ok := r.AddSample(33)
	require.True(t, ok)
	assert.Equal(t, expectedRMS(11, 22, 33), rms)

	rms, ok = r.AddSample(44)
	require.True(t, ok)
	assert.Equal(t, expectedRMS(22, 33, 44), rms)

	rms, ok = r.AddSample(55)
	require.True(t, ok)
	assert.Equal(t, expectedRMS(33, 44, 55), rms)

	rms, ok = r.AddSample(66)
	require.True(t, ok)
	assert.Equal(t, expectedRMS(44, 55, 66), rms)
}

func TestRunningRMSNegative(t *testing.T) {
	r := NewRunningRMS(3)

	r.AddSample(-11)
	r.AddSample(-22)

	rms, ok := r.AddSample(-33)
	require.True(t, ok)
	assert.Equal(t, expectedRMS(-11, -22, -33), rms)

	rms, ok = r.AddSample(-44)
	require.True(t, ok)
	assert.Equal(t, expectedRMS(-22, -33, -44), rms)
}

func TestRunningRMSBigNumbers(t *testing.T) {
	r := NewRunningRMS(3)

	_, ok := r.AddSample(math.MaxInt32)
	assert.False(t, ok)
	_, ok = r.AddSample(math.MaxInt32 - 1)
	assert.False(t, ok)

	rms, ok := r.AddSample(math.MaxInt32 - 2)
	require.True(t, ok)
	assert.Equal(t, expectedRMS(math.MaxInt32, math.MaxInt32-1, math.MaxInt32-2), rms)
}

func TestNewRunningRMSRejectsInvalidSize(t *testing.T) {
	assert.Panics(t, func() { NewRunningRMS(0) })
	assert.Panics(t, func() { NewRunningRMS(-1) })
}
