package seismod

import "math"

// channelTriggerDetector watches one axis: it low-pass filters the incoming
// samples, keeps a fixed-capacity ring of the most recent filtered values,
// and triggers when the peak-to-peak range across the whole ring strictly
// exceeds a threshold. It is direction-agnostic: it detects displacement
// range, not slope or sign.
type channelTriggerDetector struct {
	filter     *EMAFilter
	window     []int32
	cursor     int
	windowFull bool
	threshold  int32
}

func newChannelTriggerDetector(sampleHz, cutoffHz float64, windowSize int, threshold int32) *channelTriggerDetector {
	return &channelTriggerDetector{
		filter:    NewEMAFilter(sampleHz, cutoffHz),
		window:    make([]int32, windowSize),
		threshold: threshold,
	}
}

// addSample filters x, writes it into the ring, and reports whether the
// ring's peak-to-peak range strictly exceeds the threshold. Until the ring
// has been filled once, it always returns false; once full, window-full
// stays set for the detector's lifetime.
func (d *channelTriggerDetector) addSample(x int32) bool {
	filtered := int32(math.Round(d.filter.AddSample(float64(x))))

	d.window[d.cursor] = filtered
	d.cursor++
	if d.cursor == len(d.window) {
		d.cursor = 0
		d.windowFull = true
	}

	if !d.windowFull {
		return false
	}

	min, max := d.window[0], d.window[0]
	for _, v := range d.window[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		if max-min > d.threshold {
			return true
		}
	}
	return max-min > d.threshold
}
