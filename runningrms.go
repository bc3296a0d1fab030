package seismod

import "math"

// RunningRMS computes a sliding-window RMS of signed 32-bit samples,
// rounded to the nearest uint32. Squares are kept in a uint64 ring; the
// running sum is kept in uint64 rather than a genuine 128-bit accumulator,
// which is safe because NewRunningRMS bounds the window size against
// overflow; windows of more than 3 samples are rejected.
type RunningRMS struct {
	window     []uint64
	sum        uint64
	cursor     int
	windowFull bool
}

// maxSquare is the largest square a signed 32-bit sample can produce
// (math.MinInt32 squared, 2^62).
const maxSquare = uint64(-int64(math.MinInt32)) * uint64(-int64(math.MinInt32))

// NewRunningRMS builds a RunningRMS over windowSize samples. It panics if
// windowSize is not positive, or if windowSize*maxSquare could overflow a
// uint64, which is the case for any window of more than 3 samples; the
// check keeps the 64-bit running sum free of overflow rather than assuming
// it.
func NewRunningRMS(windowSize int) *RunningRMS {
	if windowSize <= 0 {
		panic("seismod: RunningRMS window size must be positive")
	}
	if uint64(windowSize) > math.MaxUint64/maxSquare {
		panic("seismod: RunningRMS window size too large for a 64-bit running sum")
	}
	return &RunningRMS{window: make([]uint64, windowSize)}
}

// AddSample folds one raw sample into the running sum and returns the RMS
// of the current window, or ok=false until the window has filled once.
func (r *RunningRMS) AddSample(value int32) (rms uint32, ok bool) {
	sq := uint64(int64(value) * int64(value))

	r.sum -= r.window[r.cursor]
	r.window[r.cursor] = sq
	r.sum += sq

	r.cursor++
	if r.cursor == len(r.window) {
		r.cursor = 0
		r.windowFull = true
	}

	if !r.windowFull {
		return 0, false
	}
	return r.rms(), true
}

// rms splits the division into quotient and remainder before converting to
// float, so that it is the per-sample mean of the squares, not the whole
// sum, that is converted to float64.
func (r *RunningRMS) rms() uint32 {
	n := uint64(len(r.window))
	quotient := r.sum / n
	remainder := r.sum % n
	value := float64(quotient) + float64(remainder)/float64(n)
	return uint32(math.Round(math.Sqrt(value)))
}
