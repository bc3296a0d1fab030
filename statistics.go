package seismod

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// AxisStatistics accumulates raw samples for one axis over a report
// interval, then reduces them with gonum/stat once the interval's worth of
// samples has arrived. The buffer is bounded to sampleCount entries so
// memory use tracks the configured report interval rather than growing
// without bound.
type AxisStatistics struct {
	samples    []float64
	sampleCount int
}

// NewAxisStatistics builds an AxisStatistics that reduces every sampleCount
// samples it receives.
func NewAxisStatistics(sampleCount int) *AxisStatistics {
	return &AxisStatistics{
		samples:     make([]float64, 0, sampleCount),
		sampleCount: sampleCount,
	}
}

// StatisticsReport is one reduction of a report interval's worth of
// samples for a single axis.
type StatisticsReport struct {
	Min, Max   int32
	Mean       float64
	StdDev     float64
	RMS        float64
	PeakToPeak int32
}

// Add appends one raw sample. When the buffer reaches its configured size
// it reduces the buffer to a StatisticsReport and resets, returning
// ok=true; otherwise it returns ok=false.
func (a *AxisStatistics) Add(value int32) (report StatisticsReport, ok bool) {
	a.samples = append(a.samples, float64(value))
	if len(a.samples) < a.sampleCount {
		return StatisticsReport{}, false
	}

	report = reduce(a.samples)
	a.samples = a.samples[:0]
	return report, true
}

func reduce(samples []float64) StatisticsReport {
	min, max := samples[0], samples[0]
	var sqsum float64
	for _, v := range samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sqsum += v * v
	}

	mean := stat.Mean(samples, nil)
	stddev := stat.StdDev(samples, nil)

	return StatisticsReport{
		Min:        int32(min),
		Max:        int32(max),
		Mean:       mean,
		StdDev:     stddev,
		RMS:        math.Sqrt(sqsum / float64(len(samples))),
		PeakToPeak: int32(max - min),
	}
}
