package seismod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriggerDetectorORsAxes(t *testing.T) {
	levels := TriggerLevels{X: 5, Y: 5, Z: 5}
	det := NewTriggerDetector(1000, 1000, 3, levels)

	// Fill the window on all three axes with quiet samples.
	for _, v := range []int32{0, 1, 2} {
		det.Detect(&Record{X: v, Y: v, Z: v, XFilt: v, YFilt: v, ZFilt: v})
	}

	// Only Y crosses its threshold; X and Z stay quiet.
	trig := det.Detect(&Record{XFilt: 2, YFilt: 50, ZFilt: 2})
	assert.True(t, trig)
}

func TestTriggerDetectorFeedsEveryAxisEveryRecord(t *testing.T) {
	levels := TriggerLevels{X: 1000, Y: 1000, Z: 1000}
	det := NewTriggerDetector(1000, 1000, 2, levels)

	det.Detect(&Record{XFilt: 0, YFilt: 0, ZFilt: 0})
	det.Detect(&Record{XFilt: 1, YFilt: 1, ZFilt: 1})

	assert.True(t, det.x.windowFull)
	assert.True(t, det.y.windowFull)
	assert.True(t, det.z.windowFull)
}

func TestTriggerDetectorReconfigureLeavesStateAlone(t *testing.T) {
	levels := TriggerLevels{X: 1, Y: 1, Z: 1}
	det := NewTriggerDetector(1000, 1000, 2, levels)
	det.Detect(&Record{XFilt: 5, YFilt: 5, ZFilt: 5})

	before := det.x.window[0]
	det.Reconfigure(TriggerLevels{X: 1000, Y: 1000, Z: 1000})

	assert.Equal(t, int32(1000), det.x.threshold)
	assert.Equal(t, before, det.x.window[0])
}
