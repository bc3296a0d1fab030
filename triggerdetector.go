package seismod

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// DebugSample is one row of the optional per-record trigger-detector debug
// sink: the filtered value and trigger verdict for each axis.
type DebugSample struct {
	TimestampUs uint64
	XFilter     int32
	YFilter     int32
	ZFilter     int32
	XTrig       bool
	YTrig       bool
	ZTrig       bool
}

// TriggerDetector combines three per-axis channel detectors into one
// record-level verdict. Every axis is fed on every record, even once an
// earlier axis has already triggered, so that each channel's ring stays
// aligned with the incoming record stream.
type TriggerDetector struct {
	x, y, z   *channelTriggerDetector
	debugSink io.Writer
}

// TriggerLevels holds the per-axis thresholds a TriggerDetector was built
// with, or should be reconfigured to.
type TriggerLevels struct {
	X, Y, Z int32
}

// NewTriggerDetector builds a TriggerDetector with a shared cutoff
// frequency and delta-window size across all three axes, and per-axis
// thresholds.
func NewTriggerDetector(sampleHz, cutoffHz float64, windowSize int, levels TriggerLevels) *TriggerDetector {
	return &TriggerDetector{
		x: newChannelTriggerDetector(sampleHz, cutoffHz, windowSize, levels.X),
		y: newChannelTriggerDetector(sampleHz, cutoffHz, windowSize, levels.Y),
		z: newChannelTriggerDetector(sampleHz, cutoffHz, windowSize, levels.Z),
	}
}

// SetDebugSink installs a writer that receives one spew.Fdump block per
// record processed by Detect, recording the filtered values and per-axis
// verdicts. A nil sink (the default) disables debug output.
func (t *TriggerDetector) SetDebugSink(w io.Writer) {
	t.debugSink = w
}

// Detect feeds the record's filtered channels to the three per-axis
// detectors and returns the logical OR of their verdicts.
func (t *TriggerDetector) Detect(rec *Record) bool {
	xTrig := t.x.addSample(rec.XFilt)
	yTrig := t.y.addSample(rec.YFilt)
	zTrig := t.z.addSample(rec.ZFilt)

	if t.debugSink != nil {
		spew.Fdump(t.debugSink, DebugSample{
			TimestampUs: rec.TimestampUs,
			XFilter:     t.x.window[prevIndex(t.x.cursor, len(t.x.window))],
			YFilter:     t.y.window[prevIndex(t.y.cursor, len(t.y.window))],
			ZFilter:     t.z.window[prevIndex(t.z.cursor, len(t.z.window))],
			XTrig:       xTrig,
			YTrig:       yTrig,
			ZTrig:       zTrig,
		})
	}

	return xTrig || yTrig || zTrig
}

// Reconfigure swaps in new per-axis thresholds without disturbing the
// filter state or delta-window contents of any axis.
func (t *TriggerDetector) Reconfigure(levels TriggerLevels) {
	t.x.threshold = levels.X
	t.y.threshold = levels.Y
	t.z.threshold = levels.Z
}

func prevIndex(cursor, size int) int {
	if cursor == 0 {
		return size - 1
	}
	return cursor - 1
}
